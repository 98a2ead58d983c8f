package replace

import "github.com/kevmal/retarget/internal/expr"

// RewriteVar rewrites a bound variable across the universe boundary while
// preserving binding identity.
//
// Forward rewrites are memoized: the same origin variable may occur many
// times in one expression and every occurrence must land on the one same
// destination variable. Each forward rewrite also registers the reverse
// mapping, so the round trip backward(forward(v)) returns v itself.
//
// Backward rewrites of variables the table has never seen manufacture a
// fresh variable on every call: each such call represents a distinct
// invocation context entering user-authored code. The fresh variable is
// registered in the forward table so rewriting it forward again lands back
// on the variable it came from.
func (r *Replacer) RewriteVar(d Direction, v *expr.Var) (*expr.Var, error) {
	if v == nil {
		return nil, nil
	}

	if d == Forward {
		if out, ok := r.fwdVars[v]; ok {
			return out, nil
		}
		t, err := r.ResolveType(Forward, v.Type)
		if err != nil {
			return nil, err
		}
		out := expr.NewVar(v.Name, t, v.Mutable)
		r.fwdVars[v] = out
		r.bwdVars[out] = v
		return out, nil
	}

	if out, ok := r.bwdVars[v]; ok {
		return out, nil
	}
	t, err := r.ResolveType(Backward, v.Type)
	if err != nil {
		return nil, err
	}
	out := expr.NewVar(v.Name, t, v.Mutable)
	r.fwdVars[out] = v
	return out, nil
}
