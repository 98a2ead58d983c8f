// Package expr defines the typed expression tree the retargeting engine
// operates on: a closed union of node kinds over the descriptors of
// internal/universe.
//
// The tree is strictly owned parent-to-child; the only intentional aliasing
// is repeated references to the same *Var binder.
package expr

import "github.com/kevmal/retarget/internal/universe"

// Kind identifies an expression node kind.
type Kind int

const (
	KindCall Kind = iota
	KindPropertyGet
	KindPropertySet
	KindFieldGet
	KindFieldSet
	KindNew
	KindCoerce
	KindNewArray
	KindNewTuple
	KindTupleGet
	KindNewDelegate
	KindLet
	KindVarRef
	KindLambda
	KindConst
	KindShape

	// Desugarable kinds: rewritten into primitive kinds before crossing a
	// universe boundary.
	KindApply
	KindNewUnionCase
	KindUnionCaseTest
	KindNewRecord
)

// String returns the string representation of the node kind.
func (k Kind) String() string {
	switch k {
	case KindCall:
		return "Call"
	case KindPropertyGet:
		return "PropertyGet"
	case KindPropertySet:
		return "PropertySet"
	case KindFieldGet:
		return "FieldGet"
	case KindFieldSet:
		return "FieldSet"
	case KindNew:
		return "New"
	case KindCoerce:
		return "Coerce"
	case KindNewArray:
		return "NewArray"
	case KindNewTuple:
		return "NewTuple"
	case KindTupleGet:
		return "TupleGet"
	case KindNewDelegate:
		return "NewDelegate"
	case KindLet:
		return "Let"
	case KindVarRef:
		return "VarRef"
	case KindLambda:
		return "Lambda"
	case KindConst:
		return "Const"
	case KindShape:
		return "Shape"
	case KindApply:
		return "Apply"
	case KindNewUnionCase:
		return "NewUnionCase"
	case KindUnionCaseTest:
		return "UnionCaseTest"
	case KindNewRecord:
		return "NewRecord"
	default:
		return "Unknown"
	}
}

// Expr is an expression node. Only types in this package implement it.
type Expr interface {
	Kind() Kind
	sealed()
}

// Call invokes a method. Receiver is nil for static methods.
type Call struct {
	Method   *universe.Method
	Receiver Expr
	Args     []Expr
}

func (*Call) Kind() Kind { return KindCall }
func (*Call) sealed()    {}

// PropertyGet reads a property. Receiver is nil for static properties;
// Args carries indexer arguments (and, for static accessors applied to a
// value, the value itself).
type PropertyGet struct {
	Property *universe.Property
	Receiver Expr
	Args     []Expr
}

func (*PropertyGet) Kind() Kind { return KindPropertyGet }
func (*PropertyGet) sealed()    {}

// PropertySet writes a property.
type PropertySet struct {
	Property *universe.Property
	Receiver Expr
	Args     []Expr
	Value    Expr
}

func (*PropertySet) Kind() Kind { return KindPropertySet }
func (*PropertySet) sealed()    {}

// FieldGet reads a field. Receiver is nil for static fields.
type FieldGet struct {
	Field    *universe.Field
	Receiver Expr
}

func (*FieldGet) Kind() Kind { return KindFieldGet }
func (*FieldGet) sealed()    {}

// FieldSet writes a field.
type FieldSet struct {
	Field    *universe.Field
	Receiver Expr
	Value    Expr
}

func (*FieldSet) Kind() Kind { return KindFieldSet }
func (*FieldSet) sealed()    {}

// New constructs an object.
type New struct {
	Ctor *universe.Constructor
	Args []Expr
}

func (*New) Kind() Kind { return KindNew }
func (*New) sealed()    {}

// Coerce converts Value to Target.
type Coerce struct {
	Value  Expr
	Target universe.Type
}

func (*Coerce) Kind() Kind { return KindCoerce }
func (*Coerce) sealed()    {}

// NewArray constructs a rank-1 array of Elem from Items.
type NewArray struct {
	Elem  universe.Type
	Items []Expr
}

func (*NewArray) Kind() Kind { return KindNewArray }
func (*NewArray) sealed()    {}

// NewTuple constructs a tuple.
type NewTuple struct {
	Items []Expr
}

func (*NewTuple) Kind() Kind { return KindNewTuple }
func (*NewTuple) sealed()    {}

// TupleGet projects element Index out of a tuple.
type TupleGet struct {
	Tuple Expr
	Index int
}

func (*TupleGet) Kind() Kind { return KindTupleGet }
func (*TupleGet) sealed()    {}

// NewDelegate constructs a delegate of the given type with Params bound
// over Body.
type NewDelegate struct {
	Delegate universe.Type
	Params   []*Var
	Body     Expr
}

func (*NewDelegate) Kind() Kind { return KindNewDelegate }
func (*NewDelegate) sealed()    {}

// Let binds Var to Value within Body.
type Let struct {
	Var   *Var
	Value Expr
	Body  Expr
}

func (*Let) Kind() Kind { return KindLet }
func (*Let) sealed()    {}

// VarRef references a bound variable.
type VarRef struct {
	Var *Var
}

func (*VarRef) Kind() Kind { return KindVarRef }
func (*VarRef) sealed()    {}

// Lambda is a first-class function literal used as a curried value. It
// cannot be carried across a universe boundary; the rewriter rejects it.
type Lambda struct {
	Param *Var
	Body  Expr
}

func (*Lambda) Kind() Kind { return KindLambda }
func (*Lambda) sealed()    {}

// Const is a literal constant of the given type.
type Const struct {
	Value any
	Type  universe.Type
}

func (*Const) Kind() Kind { return KindConst }
func (*Const) sealed()    {}

// Shape is a generic structural combination of sub-expressions. Op is
// shape-describing metadata assumed universe-independent; rewriting keeps
// it untouched and only rewrites Children.
type Shape struct {
	Op       string
	Children []Expr
}

func (*Shape) Kind() Kind { return KindShape }
func (*Shape) sealed()    {}

// Apply applies a function value to an argument. Desugared to a Call of
// the function type's Invoke method before crossing a boundary.
type Apply struct {
	Fun Expr
	Arg Expr
}

func (*Apply) Kind() Kind { return KindApply }
func (*Apply) sealed()    {}

// NewUnionCase constructs a discriminated-union case. Desugared to a Call
// of the case's pre-computed constructor function.
type NewUnionCase struct {
	Case *universe.UnionCase
	Args []Expr
}

func (*NewUnionCase) Kind() Kind { return KindNewUnionCase }
func (*NewUnionCase) sealed()    {}

// UnionCaseTest tests whether Value holds the given case. Desugared to an
// integer-tag equality comparison.
type UnionCaseTest struct {
	Value Expr
	Case  *universe.UnionCase
}

func (*UnionCaseTest) Kind() Kind { return KindUnionCaseTest }
func (*UnionCaseTest) sealed()    {}

// NewRecord constructs a record-style union type. Desugared to a New using
// the type's pre-computed record constructor.
type NewRecord struct {
	Type universe.Type
	Args []Expr
}

func (*NewRecord) Kind() Kind { return KindNewRecord }
func (*NewRecord) sealed()    {}
