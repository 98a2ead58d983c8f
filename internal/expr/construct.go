package expr

import (
	"fmt"

	"github.com/kevmal/retarget/internal/universe"
)

// The Make* helpers are the checked construction surface: they validate
// receiver presence and argument arity against the member descriptor.
// Struct-literal construction skips these checks; the rewriter relies on
// that to build nodes whose signatures are only valid in the other
// universe.

// MakeCall builds a checked method call.
func MakeCall(m *universe.Method, receiver Expr, args []Expr) (*Call, error) {
	if m == nil {
		return nil, fmt.Errorf("call: nil method")
	}
	if m.Static && receiver != nil {
		return nil, fmt.Errorf("call: static method %s given a receiver", m.Name)
	}
	if !m.Static && receiver == nil {
		return nil, fmt.Errorf("call: instance method %s missing a receiver", m.Name)
	}
	if len(args) != len(m.Params) {
		return nil, fmt.Errorf("call: method %s expects %d argument(s), got %d",
			m.Name, len(m.Params), len(args))
	}
	return &Call{Method: m, Receiver: receiver, Args: args}, nil
}

// MakeNew builds a checked object construction.
func MakeNew(c *universe.Constructor, args []Expr) (*New, error) {
	if c == nil {
		return nil, fmt.Errorf("new: nil constructor")
	}
	if len(args) != len(c.Params) {
		return nil, fmt.Errorf("new: constructor of %s expects %d argument(s), got %d",
			c.Declaring.FullName(), len(c.Params), len(args))
	}
	return &New{Ctor: c, Args: args}, nil
}

// MakeNewUnionCase builds a checked union-case construction.
func MakeNewUnionCase(uc *universe.UnionCase, args []Expr) (*NewUnionCase, error) {
	if uc == nil {
		return nil, fmt.Errorf("union case construction: nil case")
	}
	if len(args) != len(uc.Ctor.Params) {
		return nil, fmt.Errorf("union case %s.%s expects %d argument(s), got %d",
			uc.Union.Name, uc.Name, len(uc.Ctor.Params), len(args))
	}
	return &NewUnionCase{Case: uc, Args: args}, nil
}

// StaticType computes the declared type of an expression, or nil when the
// node kind carries no universe type of its own (tuples, shapes, lambdas).
func StaticType(e Expr) universe.Type {
	switch x := e.(type) {
	case *Call:
		return x.Method.Return
	case *PropertyGet:
		return x.Property.Type
	case *FieldGet:
		return x.Field.Type
	case *New:
		return x.Ctor.Declaring
	case *Coerce:
		return x.Target
	case *NewArray:
		return &universe.ArrayType{Elem: x.Elem, Rank: 1}
	case *NewDelegate:
		return x.Delegate
	case *Let:
		return StaticType(x.Body)
	case *VarRef:
		return x.Var.Type
	case *Const:
		return x.Type
	case *NewUnionCase:
		return x.Case.Union
	case *NewRecord:
		return x.Type
	case *Apply:
		return applyResultType(StaticType(x.Fun))
	case *PropertySet, *FieldSet:
		return universe.Void
	default:
		return nil
	}
}

// applyResultType computes the type an application of a function value of
// type ft produces: the return type of ft's single-argument Invoke method,
// with the instantiation's type arguments substituted. Nested applications
// chain through this, so a fully-applied curried value types out level by
// level.
func applyResultType(ft universe.Type) universe.Type {
	var named *universe.NamedType
	var subst map[string]universe.Type
	switch t := ft.(type) {
	case *universe.NamedType:
		named = t
	case *universe.InstanceType:
		def, ok := t.Def.(*universe.NamedType)
		if !ok {
			return nil
		}
		named = def
		subst = make(map[string]universe.Type, len(def.TypeParams))
		for i, name := range def.TypeParams {
			if i < len(t.Args) {
				subst[name] = t.Args[i]
			}
		}
	default:
		return nil
	}
	for _, m := range named.MethodsByName("Invoke") {
		if !m.Static && len(m.Params) == 1 {
			return universe.Substitute(m.Return, subst)
		}
	}
	return nil
}
