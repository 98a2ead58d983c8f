// Package declare builds provided member declarations. Bodies are authored
// against the origin universe; the externally visible signature is
// forward-rewritten into the target universe when the declaration is built,
// and at invocation time arguments are backward-rewritten into the origin
// universe before the body runs, with its result forward-rewritten back.
package declare

import (
	"github.com/kevmal/retarget/internal/expr"
	"github.com/kevmal/retarget/internal/replace"
	"github.com/kevmal/retarget/internal/universe"
)

// BodyFunc produces a declaration's body expression from its argument
// expressions. The facade hands it origin-universe arguments and expects an
// origin-universe result.
type BodyFunc func(args []expr.Expr) (expr.Expr, error)

// Facade builds declarations over one Replacer session. Declarations it
// synthesizes are host-defined and exempt from cross-universe resolution.
type Facade struct {
	r    *replace.Replacer
	host *universe.MemoryModule
}

// New creates a Facade over the given Replacer.
func New(r *replace.Replacer) *Facade {
	return &Facade{
		r:    r,
		host: universe.NewMemoryModule("provided"),
	}
}

// Parameter is a declaration parameter. Its type is an origin-universe
// descriptor; the facade resolves it when a signature is built.
type Parameter struct {
	Name string
	Type universe.Type
}

// NewParameter creates a parameter from an origin-universe type.
func (f *Facade) NewParameter(name string, t universe.Type) *Parameter {
	return &Parameter{Name: name, Type: t}
}

// invokeBody runs a body function on target-universe arguments: arguments
// cross backward so the author sees origin-universe types, and the result
// crosses forward before being spliced into the caller's tree.
func (f *Facade) invokeBody(body BodyFunc, args []expr.Expr) (expr.Expr, error) {
	originArgs := make([]expr.Expr, len(args))
	for i, a := range args {
		oa, err := f.r.RewriteExpr(replace.Backward, a)
		if err != nil {
			return nil, err
		}
		originArgs[i] = oa
	}
	res, err := body(originArgs)
	if err != nil {
		return nil, err
	}
	return f.r.RewriteExpr(replace.Forward, res)
}

func (f *Facade) resolveParams(params []*Parameter) ([]universe.Type, error) {
	out := make([]universe.Type, len(params))
	for i, p := range params {
		t, err := f.r.ResolveType(replace.Forward, p.Type)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// Method is a provided method: a target-universe signature over an
// origin-universe body.
type Method struct {
	*universe.Method
	fac  *Facade
	body BodyFunc
}

// NewMethod builds a provided method. Parameter and result types are given
// in the origin universe and forward-rewritten into the signature.
func (f *Facade) NewMethod(name string, params []*Parameter, result universe.Type, static bool, body BodyFunc) (*Method, error) {
	pts, err := f.resolveParams(params)
	if err != nil {
		return nil, err
	}
	ret, err := f.r.ResolveType(replace.Forward, result)
	if err != nil {
		return nil, err
	}
	return &Method{
		Method: &universe.Method{
			Name:   name,
			Params: pts,
			Return: ret,
			Static: static,
			Public: true,
			Host:   true,
		},
		fac:  f,
		body: body,
	}, nil
}

// Invoke produces the method's body for the given target-universe argument
// expressions.
func (m *Method) Invoke(args []expr.Expr) (expr.Expr, error) {
	return m.fac.invokeBody(m.body, args)
}

// Property is a provided property backed by a getter body.
type Property struct {
	*universe.Property
	fac    *Facade
	getter BodyFunc
}

// NewProperty builds a provided property whose type is given in the origin
// universe. The getter body receives the instance expression as its only
// argument.
func (f *Facade) NewProperty(name string, t universe.Type, getter BodyFunc) (*Property, error) {
	pt, err := f.r.ResolveType(replace.Forward, t)
	if err != nil {
		return nil, err
	}
	return &Property{
		Property: &universe.Property{
			Name: name,
			Type: pt,
			Getter: &universe.Method{
				Name:   "get_" + name,
				Return: pt,
				Public: true,
				Host:   true,
			},
			Public: true,
			Host:   true,
		},
		fac:    f,
		getter: getter,
	}, nil
}

// InvokeGetter produces the getter body for the given target-universe
// argument expressions.
func (p *Property) InvokeGetter(args []expr.Expr) (expr.Expr, error) {
	return p.fac.invokeBody(p.getter, args)
}

// Constructor is a provided constructor.
type Constructor struct {
	*universe.Constructor
	fac  *Facade
	body BodyFunc
}

// NewConstructor builds a provided constructor with origin-universe
// parameter types.
func (f *Facade) NewConstructor(params []*Parameter, body BodyFunc) (*Constructor, error) {
	pts, err := f.resolveParams(params)
	if err != nil {
		return nil, err
	}
	return &Constructor{
		Constructor: &universe.Constructor{
			Params: pts,
			Public: true,
			Host:   true,
		},
		fac:  f,
		body: body,
	}, nil
}

// Invoke produces the constructor's body for the given target-universe
// argument expressions.
func (c *Constructor) Invoke(args []expr.Expr) (expr.Expr, error) {
	return c.fac.invokeBody(c.body, args)
}

// TypeDefinition is a provided type definition. The presentation flags
// control whether inherited object-identity members are hidden and whether
// the type is treated as non-nullable by the host.
type TypeDefinition struct {
	*universe.NamedType
	HideObjectMethods bool
	NonNullable       bool
}

// NewTypeDefinition builds a provided type with the given origin-universe
// base type.
func (f *Facade) NewTypeDefinition(name string, base universe.Type, hideObjectMethods, nonNullable bool) (*TypeDefinition, error) {
	var rbase universe.Type
	if base != nil {
		var err error
		rbase, err = f.r.ResolveType(replace.Forward, base)
		if err != nil {
			return nil, err
		}
	}
	t := &universe.NamedType{
		Name: name,
		Host: true,
		Base: rbase,
	}
	f.host.AddType(t)
	return &TypeDefinition{
		NamedType:         t,
		HideObjectMethods: hideObjectMethods,
		NonNullable:       nonNullable,
	}, nil
}

// AddMethod attaches a provided method to the type definition.
func (td *TypeDefinition) AddMethod(m *Method) {
	m.Method.Declaring = td.NamedType
	td.NamedType.Methods = append(td.NamedType.Methods, m.Method)
}

// AddProperty attaches a provided property to the type definition.
func (td *TypeDefinition) AddProperty(p *Property) {
	p.Property.Declaring = td.NamedType
	if p.Property.Getter != nil {
		p.Property.Getter.Declaring = td.NamedType
	}
	td.NamedType.Properties = append(td.NamedType.Properties, p.Property)
}

// AddConstructor attaches a provided constructor to the type definition.
func (td *TypeDefinition) AddConstructor(c *Constructor) {
	c.Constructor.Declaring = td.NamedType
	td.NamedType.Ctors = append(td.NamedType.Ctors, c.Constructor)
}
