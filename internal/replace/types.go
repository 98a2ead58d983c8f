package replace

import (
	"strings"

	"github.com/kevmal/retarget/internal/universe"
	"github.com/kevmal/retarget/retargeterr"
)

// sessionPrefix is the synthetic namespace segment an interactive host
// prepends to declarations, e.g. "FSI_0002.Vector". Lookup strips it; see
// fixName.
const sessionPrefix = "FSI_"

// fixName strips a leading interactive-session segment ("FSI_<digits>.")
// from a qualified name. Names without the pattern are returned unchanged.
func fixName(name string) string {
	if !strings.HasPrefix(name, sessionPrefix) {
		return name
	}
	dot := strings.IndexByte(name, '.')
	if dot < 0 {
		return name
	}
	digits := name[len(sessionPrefix):dot]
	if digits == "" {
		return name
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return name
		}
	}
	return name[dot+1:]
}

// ResolveType resolves a type descriptor into the destination universe of
// the given direction.
//
// Host-defined types, abbreviation aliases, and unbound generic parameters
// pass through unchanged. The void sentinel always maps to itself: the host
// compiler expects exactly the canonical void type regardless of universe.
// Composite descriptors are decomposed, resolved element-wise, and
// reassembled with their rank or modifier preserved.
func (r *Replacer) ResolveType(d Direction, t universe.Type) (universe.Type, error) {
	if t == nil {
		return nil, nil
	}
	if t.Kind() == universe.KindVoid {
		return universe.Void, nil
	}
	if t.HostDefined() {
		return t, nil
	}

	switch x := t.(type) {
	case *universe.ParamType:
		return t, nil
	case *universe.InstanceType:
		def, err := r.ResolveType(d, x.Def)
		if err != nil {
			return nil, err
		}
		args := make([]universe.Type, len(x.Args))
		for i, a := range x.Args {
			if args[i], err = r.ResolveType(d, a); err != nil {
				return nil, err
			}
		}
		return universe.NewInstance(def, args), nil
	case *universe.ArrayType:
		elem, err := r.ResolveType(d, x.Elem)
		if err != nil {
			return nil, err
		}
		return &universe.ArrayType{Elem: elem, Rank: x.Rank}, nil
	case *universe.PointerType:
		elem, err := r.ResolveType(d, x.Elem)
		if err != nil {
			return nil, err
		}
		return &universe.PointerType{Elem: elem}, nil
	case *universe.ByRefType:
		elem, err := r.ResolveType(d, x.Elem)
		if err != nil {
			return nil, err
		}
		return &universe.ByRefType{Elem: elem}, nil
	case *universe.NamedType:
		if x.Alias {
			return t, nil
		}
		if cached, ok := r.typeCache[d][t]; ok {
			return cached, nil
		}
		resolved, stable, err := r.lookupNamed(d, x)
		if err != nil {
			return nil, err
		}
		if stable {
			r.typeCache[d][t] = resolved
		}
		return resolved, nil
	default:
		panic(retargeterr.NewInternal("unhandled type descriptor kind " + t.Kind().String()))
	}
}

// lookupNamed finds the destination type for a named descriptor by
// qualified name across every module of the destination universe.
//
// Modules using interactive-session naming are searched by enumeration with
// fixed-up name comparison; the interactive host may define many successive
// versions of the same declaration, so the lexicographically last full name
// wins and the result is reported unstable (never cached).
func (r *Replacer) lookupNamed(d Direction, t *universe.NamedType) (*universe.NamedType, bool, error) {
	dst := r.destination(d)
	want := fixName(t.Name)

	var candidates []*universe.NamedType
	stable := true
	for _, mod := range dst {
		if mod.UsesSessionNaming() {
			var best *universe.NamedType
			for _, ct := range mod.AllTypes() {
				if fixName(ct.Name) != want {
					continue
				}
				if best == nil || ct.Name > best.Name {
					best = ct
				}
			}
			if best != nil {
				candidates = append(candidates, best)
				stable = false
			}
		} else if ct, ok := mod.TypeByName(want); ok {
			candidates = append(candidates, ct)
		}
	}

	// Distinct modules may hand back the same type object; dedupe by
	// identity before the ambiguity check.
	seen := make(map[*universe.NamedType]bool, len(candidates))
	uniq := candidates[:0]
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			uniq = append(uniq, c)
		}
	}

	switch len(uniq) {
	case 0:
		err := retargeterr.NewTypeNotFound(t.FullName(), dst.ModuleNames())
		err.Session = r.session.String()
		return nil, false, err
	case 1:
		return uniq[0], stable, nil
	default:
		err := retargeterr.NewAmbiguousType(t.FullName(), dst.ModuleNames())
		err.Session = r.session.String()
		return nil, false, err
	}
}
