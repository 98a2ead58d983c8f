// Package replace implements the retargeting engine: it rewrites typed
// expression trees authored against one type universe into equivalent trees
// valid against another, and back.
//
// A Replacer holds the resolution caches and the variable identity table
// for one provider session. It is not safe for concurrent use; callers must
// serialize rewrites per instance.
package replace

import (
	"github.com/google/uuid"

	"github.com/kevmal/retarget/internal/expr"
	"github.com/kevmal/retarget/internal/universe"
)

// Direction selects which universe is the source and which the
// destination of a resolution.
type Direction int

const (
	// Forward resolves origin -> target.
	Forward Direction = iota
	// Backward resolves target -> origin.
	Backward
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// Invert returns the opposite direction.
func (d Direction) Invert() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// Replacer rewrites descriptors and expression trees between an origin and
// a target universe. One instance spans one compilation session; its caches
// are append-only and discarded with it.
type Replacer struct {
	origin  universe.Universe
	target  universe.Universe
	session uuid.UUID

	// typeCache holds stable name-lookup results per direction. Unstable
	// results (session-named modules) are recomputed on every resolution.
	typeCache [2]map[universe.Type]universe.Type

	// fwdVars memoizes origin->target variable rewrites; bwdVars maps
	// forward-produced variables back to their originals.
	fwdVars map[*expr.Var]*expr.Var
	bwdVars map[*expr.Var]*expr.Var
}

// New creates a Replacer for one session over the given universes.
func New(origin, target universe.Universe) *Replacer {
	return &Replacer{
		origin:  origin,
		target:  target,
		session: uuid.New(),
		typeCache: [2]map[universe.Type]universe.Type{
			make(map[universe.Type]universe.Type),
			make(map[universe.Type]universe.Type),
		},
		fwdVars: make(map[*expr.Var]*expr.Var),
		bwdVars: make(map[*expr.Var]*expr.Var),
	}
}

// Session returns the session identifier, used to tag diagnostics.
func (r *Replacer) Session() uuid.UUID { return r.session }

// Origin returns the origin universe.
func (r *Replacer) Origin() universe.Universe { return r.origin }

// Target returns the target universe.
func (r *Replacer) Target() universe.Universe { return r.target }

// destination returns the universe a resolution in direction d lands in.
func (r *Replacer) destination(d Direction) universe.Universe {
	if d == Forward {
		return r.target
	}
	return r.origin
}
