package expr

import "github.com/kevmal/retarget/internal/universe"

// Var is an identity-carrying binder used in let-expressions, lambdas, and
// delegate parameter lists. Two Vars are never interchangeable even when
// name, type, and mutability coincide: pointer identity is the only
// equality.
type Var struct {
	Name    string
	Type    universe.Type
	Mutable bool
}

// NewVar creates a fresh variable. Every call produces a distinct identity.
func NewVar(name string, t universe.Type, mutable bool) *Var {
	return &Var{Name: name, Type: t, Mutable: mutable}
}
