package replace

import (
	"github.com/kevmal/retarget/internal/universe"
	"github.com/kevmal/retarget/retargeterr"
)

// memberTarget peels a resolved declaring type down to the named definition
// that owns its members, together with the substitution mapping the
// definition's type parameters to the instantiation's arguments.
func memberTarget(t universe.Type) (*universe.NamedType, map[string]universe.Type) {
	switch x := t.(type) {
	case *universe.NamedType:
		return x, nil
	case *universe.InstanceType:
		def, ok := x.Def.(*universe.NamedType)
		if !ok {
			return nil, nil
		}
		subst := make(map[string]universe.Type, len(def.TypeParams))
		for i, name := range def.TypeParams {
			if i < len(x.Args) {
				subst[name] = x.Args[i]
			}
		}
		return def, subst
	default:
		return nil, nil
	}
}

// methodView projects a definition's method onto an instantiated declaring
// type, substituting the instantiation's type arguments into its signature.
func methodView(decl universe.Type, m *universe.Method, subst map[string]universe.Type) *universe.Method {
	if len(subst) == 0 {
		return m
	}
	params := make([]universe.Type, len(m.Params))
	for i, p := range m.Params {
		params[i] = universe.Substitute(p, subst)
	}
	return &universe.Method{
		Declaring:      decl,
		Name:           m.Name,
		Params:         params,
		Return:         universe.Substitute(m.Return, subst),
		Static:         m.Static,
		Public:         m.Public,
		Host:           m.Host,
		TypeParamNames: m.TypeParamNames,
		Impl:           m.Impl,
	}
}

// ResolveProperty resolves a property descriptor into the destination
// universe: declaring type first, then re-lookup by name with the original's
// visibility and static flags.
func (r *Replacer) ResolveProperty(d Direction, p *universe.Property) (*universe.Property, error) {
	if p.HostDefined() {
		return p, nil
	}
	decl, err := r.ResolveType(d, p.Declaring)
	if err != nil {
		return nil, err
	}
	named, subst := memberTarget(decl)
	if named == nil {
		return nil, retargeterr.NewMemberNotFound("property", p.Display(), decl.FullName())
	}
	cand := named.PropertyByName(p.Name)
	if cand == nil || cand.Public != p.Public || cand.Static() != p.Static() {
		return nil, retargeterr.NewMemberNotFound("property", p.Display(), decl.FullName())
	}
	if len(subst) == 0 {
		return cand, nil
	}
	view := &universe.Property{
		Declaring: decl,
		Name:      cand.Name,
		Type:      universe.Substitute(cand.Type, subst),
		Public:    cand.Public,
		Host:      cand.Host,
	}
	if cand.Getter != nil {
		view.Getter = methodView(decl, cand.Getter, subst)
	}
	if cand.Setter != nil {
		view.Setter = methodView(decl, cand.Setter, subst)
	}
	return view, nil
}

// ResolveField resolves a field descriptor into the destination universe by
// name with the original field's flags.
func (r *Replacer) ResolveField(d Direction, f *universe.Field) (*universe.Field, error) {
	if f.HostDefined() {
		return f, nil
	}
	decl, err := r.ResolveType(d, f.Declaring)
	if err != nil {
		return nil, err
	}
	named, subst := memberTarget(decl)
	if named == nil {
		return nil, retargeterr.NewMemberNotFound("field", f.Display(), decl.FullName())
	}
	cand := named.FieldByName(f.Name)
	if cand == nil || cand.Public != f.Public || cand.Static != f.Static {
		return nil, retargeterr.NewMemberNotFound("field", f.Display(), decl.FullName())
	}
	if len(subst) == 0 {
		return cand, nil
	}
	return &universe.Field{
		Declaring: decl,
		Name:      cand.Name,
		Type:      universe.Substitute(cand.Type, subst),
		Static:    cand.Static,
		Public:    cand.Public,
		Host:      cand.Host,
	}, nil
}

// ResolveMethod resolves a method descriptor into the destination universe.
// Generic instantiations resolve their definition first, then each type
// argument, and re-instantiate. Overload selection is exact-signature match
// only: every parameter type must resolve to the same destination type.
func (r *Replacer) ResolveMethod(d Direction, m *universe.Method) (*universe.Method, error) {
	if m.HostDefined() {
		return m, nil
	}

	if m.IsGenericInstance() {
		def, err := r.ResolveMethod(d, m.GenericDef)
		if err != nil {
			return nil, err
		}
		args := make([]universe.Type, len(m.TypeArgs))
		for i, a := range m.TypeArgs {
			if args[i], err = r.ResolveType(d, a); err != nil {
				return nil, err
			}
		}
		return def.Instantiate(args), nil
	}

	decl, err := r.ResolveType(d, m.Declaring)
	if err != nil {
		return nil, err
	}
	named, subst := memberTarget(decl)
	if named == nil {
		return nil, retargeterr.NewMemberNotFound("method", m.Display(), decl.FullName())
	}

	want := make([]universe.Type, len(m.Params))
	for i, p := range m.Params {
		if want[i], err = r.ResolveType(d, p); err != nil {
			return nil, err
		}
	}

	for _, cand := range named.MethodsByName(m.Name) {
		if cand.Static != m.Static || cand.Public != m.Public {
			continue
		}
		if len(cand.TypeParamNames) != len(m.TypeParamNames) {
			continue
		}
		if !signatureMatches(cand, m, want, subst) {
			continue
		}
		return methodView(decl, cand, subst), nil
	}
	return nil, retargeterr.NewMemberNotFound("method", m.Display(), decl.FullName())
}

// signatureMatches reports whether a candidate's parameter list matches the
// wanted (already resolved) parameter types exactly. The candidate's own
// generic parameter names are renamed positionally to the source method's
// so that structurally identical generic definitions compare equal.
func signatureMatches(cand, src *universe.Method, want []universe.Type, subst map[string]universe.Type) bool {
	if len(cand.Params) != len(want) {
		return false
	}
	rename := subst
	if len(cand.TypeParamNames) > 0 {
		rename = make(map[string]universe.Type, len(subst)+len(cand.TypeParamNames))
		for k, v := range subst {
			rename[k] = v
		}
		for i, name := range cand.TypeParamNames {
			if i < len(src.TypeParamNames) {
				rename[name] = &universe.ParamType{Name: src.TypeParamNames[i]}
			}
		}
	}
	for i, p := range cand.Params {
		if !universe.Same(universe.Substitute(p, rename), want[i]) {
			return false
		}
	}
	return true
}

// ResolveConstructor resolves a constructor by its resolved parameter-type
// list, exactly.
func (r *Replacer) ResolveConstructor(d Direction, c *universe.Constructor) (*universe.Constructor, error) {
	if c.HostDefined() {
		return c, nil
	}
	decl, err := r.ResolveType(d, c.Declaring)
	if err != nil {
		return nil, err
	}
	named, subst := memberTarget(decl)
	if named == nil {
		return nil, retargeterr.NewMemberNotFound("constructor", c.Display(), decl.FullName())
	}

	want := make([]universe.Type, len(c.Params))
	for i, p := range c.Params {
		if want[i], err = r.ResolveType(d, p); err != nil {
			return nil, err
		}
	}

	for _, cand := range named.Ctors {
		if cand.Public != c.Public || len(cand.Params) != len(want) {
			continue
		}
		match := true
		for i, p := range cand.Params {
			if !universe.Same(universe.Substitute(p, subst), want[i]) {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if len(subst) == 0 {
			return cand, nil
		}
		params := make([]universe.Type, len(cand.Params))
		for i, p := range cand.Params {
			params[i] = universe.Substitute(p, subst)
		}
		return &universe.Constructor{
			Declaring: decl,
			Params:    params,
			Public:    cand.Public,
			Host:      cand.Host,
			Impl:      cand.Impl,
		}, nil
	}
	return nil, retargeterr.NewMemberNotFound("constructor", c.Display(), decl.FullName())
}
