// Package evalx is a small tree-walking evaluator over expression trees
// whose members carry Go implementations (in-memory universes). It exists
// so tests can check that a rewritten tree still computes what the original
// meant; it is not part of the engine.
package evalx

import (
	"fmt"
	"reflect"

	"github.com/kevmal/retarget/internal/expr"
)

// Env binds variables to values during evaluation.
type Env map[*expr.Var]any

// Eval evaluates an expression. Node kinds without a runtime meaning here
// (delegates, lambdas, unsugared union nodes) return an error.
func Eval(e expr.Expr, env Env) (any, error) {
	switch x := e.(type) {
	case *expr.Const:
		return x.Value, nil

	case *expr.VarRef:
		v, ok := env[x.Var]
		if !ok {
			return nil, fmt.Errorf("unbound variable %s", x.Var.Name)
		}
		return v, nil

	case *expr.Let:
		val, err := Eval(x.Value, env)
		if err != nil {
			return nil, err
		}
		inner := make(Env, len(env)+1)
		for k, v := range env {
			inner[k] = v
		}
		inner[x.Var] = val
		return Eval(x.Body, inner)

	case *expr.Call:
		m := x.Method
		if m.Impl == nil {
			return nil, fmt.Errorf("method %s has no implementation", m.Name)
		}
		var recv any
		if x.Receiver != nil {
			var err error
			if recv, err = Eval(x.Receiver, env); err != nil {
				return nil, err
			}
		}
		args, err := evalAll(x.Args, env)
		if err != nil {
			return nil, err
		}
		return m.Impl(recv, args)

	case *expr.PropertyGet:
		g := x.Property.Getter
		if g == nil || g.Impl == nil {
			return nil, fmt.Errorf("property %s has no getter implementation", x.Property.Name)
		}
		var recv any
		if x.Receiver != nil {
			var err error
			if recv, err = Eval(x.Receiver, env); err != nil {
				return nil, err
			}
		}
		args, err := evalAll(x.Args, env)
		if err != nil {
			return nil, err
		}
		return g.Impl(recv, args)

	case *expr.New:
		if x.Ctor.Impl == nil {
			return nil, fmt.Errorf("constructor of %s has no implementation", x.Ctor.Declaring.FullName())
		}
		args, err := evalAll(x.Args, env)
		if err != nil {
			return nil, err
		}
		return x.Ctor.Impl(args)

	case *expr.Coerce:
		return Eval(x.Value, env)

	case *expr.NewArray:
		return evalAll(x.Items, env)

	case *expr.NewTuple:
		return evalAll(x.Items, env)

	case *expr.TupleGet:
		tup, err := Eval(x.Tuple, env)
		if err != nil {
			return nil, err
		}
		items, ok := tup.([]any)
		if !ok || x.Index < 0 || x.Index >= len(items) {
			return nil, fmt.Errorf("tuple projection out of range: %d", x.Index)
		}
		return items[x.Index], nil

	case *expr.Shape:
		switch x.Op {
		case "eq":
			if len(x.Children) != 2 {
				return nil, fmt.Errorf("eq shape expects 2 children, got %d", len(x.Children))
			}
			a, err := Eval(x.Children[0], env)
			if err != nil {
				return nil, err
			}
			b, err := Eval(x.Children[1], env)
			if err != nil {
				return nil, err
			}
			if !comparableValue(a) || !comparableValue(b) {
				return nil, fmt.Errorf("cannot compare %T and %T", a, b)
			}
			return a == b, nil
		default:
			return nil, fmt.Errorf("cannot evaluate shape op %q", x.Op)
		}

	default:
		return nil, fmt.Errorf("cannot evaluate %s node", e.Kind())
	}
}

// comparableValue reports whether == is defined for the value's dynamic
// type. Interface comparison panics on slices, maps, and funcs.
func comparableValue(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

func evalAll(es []expr.Expr, env Env) ([]any, error) {
	out := make([]any, len(es))
	for i, e := range es {
		v, err := Eval(e, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
