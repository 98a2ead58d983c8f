package universe

import "strings"

// Property is a property descriptor. Static-ness is derived from the
// presence of a static getter or setter.
type Property struct {
	Declaring Type
	Name      string
	Type      Type
	Getter    *Method
	Setter    *Method
	Public    bool
	Host      bool
}

// Static reports whether the property is static, detected via a static
// getter or setter.
func (p *Property) Static() bool {
	if p.Getter != nil && p.Getter.Static {
		return true
	}
	if p.Setter != nil && p.Setter.Static {
		return true
	}
	return false
}

// HostDefined reports whether the property was synthesized by this system.
func (p *Property) HostDefined() bool { return p.Host }

// Display returns the property's display form for error messages.
func (p *Property) Display() string {
	return p.Name + " : " + typeName(p.Type)
}

// Field is a field descriptor.
type Field struct {
	Declaring Type
	Name      string
	Type      Type
	Static    bool
	Public    bool
	Host      bool
}

// HostDefined reports whether the field was synthesized by this system.
func (f *Field) HostDefined() bool { return f.Host }

// Display returns the field's display form for error messages.
func (f *Field) Display() string {
	return f.Name + " : " + typeName(f.Type)
}

// Method is a method descriptor. A generic definition carries
// TypeParamNames; an instantiation carries TypeArgs and points back at its
// definition via GenericDef.
type Method struct {
	Declaring      Type
	Name           string
	Params         []Type
	Return         Type
	Static         bool
	Public         bool
	Host           bool
	TypeParamNames []string
	TypeArgs       []Type
	GenericDef     *Method

	// Impl backs the method for in-memory universes so rewritten trees can
	// be evaluated in tests. Nil for purely declarative descriptors.
	Impl func(recv any, args []any) (any, error)
}

// IsGenericDef reports whether m is an open generic method definition.
func (m *Method) IsGenericDef() bool { return len(m.TypeParamNames) > 0 && m.GenericDef == nil }

// IsGenericInstance reports whether m is an instantiated generic method.
func (m *Method) IsGenericInstance() bool { return m.GenericDef != nil }

// HostDefined reports whether the method was synthesized by this system.
func (m *Method) HostDefined() bool { return m.Host }

// Instantiate applies type arguments to a generic method definition,
// substituting them into the parameter and return types. The receiver must
// be a definition with matching arity.
func (m *Method) Instantiate(args []Type) *Method {
	subst := make(map[string]Type, len(m.TypeParamNames))
	for i, name := range m.TypeParamNames {
		if i < len(args) {
			subst[name] = args[i]
		}
	}
	params := make([]Type, len(m.Params))
	for i, p := range m.Params {
		params[i] = Substitute(p, subst)
	}
	return &Method{
		Declaring:  m.Declaring,
		Name:       m.Name,
		Params:     params,
		Return:     Substitute(m.Return, subst),
		Static:     m.Static,
		Public:     m.Public,
		Host:       m.Host,
		TypeArgs:   args,
		GenericDef: m,
		Impl:       m.Impl,
	}
}

// Display returns the method's display form for error messages.
func (m *Method) Display() string {
	var sb strings.Builder
	sb.WriteString(m.Name)
	if len(m.TypeArgs) > 0 {
		sb.WriteByte('[')
		for i, a := range m.TypeArgs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(typeName(a))
		}
		sb.WriteByte(']')
	}
	sb.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(typeName(p))
	}
	sb.WriteByte(')')
	return sb.String()
}

// Constructor is a constructor descriptor.
type Constructor struct {
	Declaring Type
	Params    []Type
	Public    bool
	Host      bool

	// Impl backs the constructor for in-memory universes. Nil for purely
	// declarative descriptors.
	Impl func(args []any) (any, error)
}

// HostDefined reports whether the constructor was synthesized by this
// system.
func (c *Constructor) HostDefined() bool { return c.Host }

// Display returns the constructor's display form for error messages.
func (c *Constructor) Display() string {
	var sb strings.Builder
	sb.WriteString(".ctor(")
	for i, p := range c.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(typeName(p))
	}
	sb.WriteByte(')')
	return sb.String()
}

func typeName(t Type) string {
	if t == nil {
		return "?"
	}
	return t.FullName()
}
