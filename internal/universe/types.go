// Package universe models type universes: ordered sets of modules that
// together define a closed set of types, plus the descriptors for those
// types and their members. A descriptor is only meaningful relative to the
// universe that owns it; crossing universes is the job of internal/replace.
package universe

import "strings"

// TypeKind identifies the category of a type descriptor.
type TypeKind int

const (
	KindNamed    TypeKind = iota // type defined by a module
	KindInstance                 // generic instantiation
	KindArray                    // array with rank
	KindPointer                  // pointer to element type
	KindByRef                    // by-reference wrapper
	KindParam                    // unbound generic parameter
	KindVoid                     // the universal void sentinel
)

// String returns the string representation of the type kind.
func (k TypeKind) String() string {
	switch k {
	case KindNamed:
		return "Named"
	case KindInstance:
		return "Instance"
	case KindArray:
		return "Array"
	case KindPointer:
		return "Pointer"
	case KindByRef:
		return "ByRef"
	case KindParam:
		return "Param"
	case KindVoid:
		return "Void"
	default:
		return "Unknown"
	}
}

// Type is a descriptor for a type within some universe.
//
// Only types in this package implement Type. Named types are canonical
// within their module: two lookups of the same name return the same
// *NamedType, so pointer equality is meaningful for them. Composite
// descriptors (instances, arrays, pointers) are values built on demand;
// compare them with Same.
type Type interface {
	Kind() TypeKind
	FullName() string
	HostDefined() bool
	sealed()
}

// NamedType is a type defined by a module. Name is the namespace-qualified
// name; generic definitions carry their arity and type parameter names.
type NamedType struct {
	Owner      Module
	Name       string
	Arity      int
	TypeParams []string
	Host       bool // synthesized by this system; exempt from resolution
	Alias      bool // abbreviation; passes through resolution unchanged
	Base       Type
	Properties []*Property
	Fields     []*Field
	Methods    []*Method
	Ctors      []*Constructor
	Union      *UnionMeta
}

func (t *NamedType) Kind() TypeKind    { return KindNamed }
func (t *NamedType) FullName() string  { return t.Name }
func (t *NamedType) HostDefined() bool { return t.Host }
func (t *NamedType) sealed()           {}

// PropertyByName returns the property with the given name, or nil.
func (t *NamedType) PropertyByName(name string) *Property {
	for _, p := range t.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// FieldByName returns the field with the given name, or nil.
func (t *NamedType) FieldByName(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// MethodsByName returns all methods with the given name (overload set).
func (t *NamedType) MethodsByName(name string) []*Method {
	var out []*Method
	for _, m := range t.Methods {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// RecordConstructor returns the type's record constructor: its single
// public constructor. Returns nil if the type has no unique public
// constructor.
func (t *NamedType) RecordConstructor() *Constructor {
	var found *Constructor
	for _, c := range t.Ctors {
		if !c.Public {
			continue
		}
		if found != nil {
			return nil
		}
		found = c
	}
	return found
}

// InstanceType is a generic instantiation: an open definition applied to
// type arguments.
type InstanceType struct {
	Def  Type
	Args []Type
}

// NewInstance instantiates a generic definition with the given arguments.
func NewInstance(def Type, args []Type) *InstanceType {
	return &InstanceType{Def: def, Args: args}
}

func (t *InstanceType) Kind() TypeKind { return KindInstance }
func (t *InstanceType) FullName() string {
	var sb strings.Builder
	sb.WriteString(t.Def.FullName())
	sb.WriteByte('[')
	for i, a := range t.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.FullName())
	}
	sb.WriteByte(']')
	return sb.String()
}
func (t *InstanceType) HostDefined() bool { return t.Def.HostDefined() }
func (t *InstanceType) sealed()           {}

// ArrayType is an array of Elem with the given rank (1 = vector).
type ArrayType struct {
	Elem Type
	Rank int
}

func (t *ArrayType) Kind() TypeKind { return KindArray }
func (t *ArrayType) FullName() string {
	rank := t.Rank
	if rank < 1 {
		rank = 1
	}
	return "[" + strings.Repeat(",", rank-1) + "]" + t.Elem.FullName()
}
func (t *ArrayType) HostDefined() bool { return t.Elem.HostDefined() }
func (t *ArrayType) sealed()           {}

// PointerType is a pointer to Elem.
type PointerType struct {
	Elem Type
}

func (t *PointerType) Kind() TypeKind    { return KindPointer }
func (t *PointerType) FullName() string  { return "*" + t.Elem.FullName() }
func (t *PointerType) HostDefined() bool { return t.Elem.HostDefined() }
func (t *PointerType) sealed()           {}

// ByRefType is a by-reference wrapper around Elem.
type ByRefType struct {
	Elem Type
}

func (t *ByRefType) Kind() TypeKind    { return KindByRef }
func (t *ByRefType) FullName() string  { return "&" + t.Elem.FullName() }
func (t *ByRefType) HostDefined() bool { return t.Elem.HostDefined() }
func (t *ByRefType) sealed()           {}

// ParamType is an unbound generic parameter. It belongs to no universe and
// passes through resolution unchanged.
type ParamType struct {
	Name string
}

func (t *ParamType) Kind() TypeKind    { return KindParam }
func (t *ParamType) FullName() string  { return "'" + t.Name }
func (t *ParamType) HostDefined() bool { return false }
func (t *ParamType) sealed()           {}

type voidType struct{}

func (voidType) Kind() TypeKind    { return KindVoid }
func (voidType) FullName() string  { return "void" }
func (voidType) HostDefined() bool { return false }
func (voidType) sealed()           {}

// Void is the universal void sentinel. It is shared by every universe and
// always resolves to itself.
var Void Type = voidType{}

// Same reports whether two descriptors denote the same type. Named types
// compare by identity (they are canonical within their module); composite
// descriptors compare structurally; generic parameters compare by name.
func Same(a, b Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *NamedType:
		return false // canonical; identity already checked
	case *InstanceType:
		y := b.(*InstanceType)
		if !Same(x.Def, y.Def) || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Same(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *ArrayType:
		y := b.(*ArrayType)
		return x.Rank == y.Rank && Same(x.Elem, y.Elem)
	case *PointerType:
		return Same(x.Elem, b.(*PointerType).Elem)
	case *ByRefType:
		return Same(x.Elem, b.(*ByRefType).Elem)
	case *ParamType:
		return x.Name == b.(*ParamType).Name
	case voidType:
		return true
	default:
		return false
	}
}

// Substitute replaces generic parameters in t by name according to subst.
// Descriptors containing no parameters are returned as-is.
func Substitute(t Type, subst map[string]Type) Type {
	if t == nil || len(subst) == 0 {
		return t
	}
	switch x := t.(type) {
	case *ParamType:
		if r, ok := subst[x.Name]; ok {
			return r
		}
		return t
	case *InstanceType:
		args := make([]Type, len(x.Args))
		changed := false
		for i, a := range x.Args {
			args[i] = Substitute(a, subst)
			changed = changed || args[i] != a
		}
		if !changed {
			return t
		}
		return &InstanceType{Def: x.Def, Args: args}
	case *ArrayType:
		if e := Substitute(x.Elem, subst); e != x.Elem {
			return &ArrayType{Elem: e, Rank: x.Rank}
		}
		return t
	case *PointerType:
		if e := Substitute(x.Elem, subst); e != x.Elem {
			return &PointerType{Elem: e}
		}
		return t
	case *ByRefType:
		if e := Substitute(x.Elem, subst); e != x.Elem {
			return &ByRefType{Elem: e}
		}
		return t
	default:
		return t
	}
}
