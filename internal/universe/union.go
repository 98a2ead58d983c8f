package universe

// UnionMeta describes a discriminated union type: its cases and the
// accessor that reads a value's integer tag. Exactly one of TagProperty and
// TagMethod is set.
type UnionMeta struct {
	Cases       []*UnionCase
	TagProperty *Property
	TagMethod   *Method
}

// CaseByName returns the case with the given name, or nil.
func (u *UnionMeta) CaseByName(name string) *UnionCase {
	for _, c := range u.Cases {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// UnionCase is one case of a discriminated union. Ctor is the pre-computed
// static constructor function for the case.
type UnionCase struct {
	Union *NamedType
	Name  string
	Tag   int
	Ctor  *Method
}
