package replace

import (
	"github.com/kevmal/retarget/internal/expr"
	"github.com/kevmal/retarget/internal/universe"
	"github.com/kevmal/retarget/retargeterr"
)

// RewriteExpr rewrites an expression tree into the destination universe of
// the given direction.
//
// Desugarable kinds (function application, union construction, union case
// tests, record construction) are lowered to primitive kinds first, in the
// source universe, and the lowered tree is rewritten recursively. All other
// kinds are reconstructed with their types and members resolved and their
// children rewritten. Reconstruction is unchecked: a rewritten node carries
// a signature that is only valid in the destination universe, so the
// checked constructors of package expr must not re-validate it here.
func (r *Replacer) RewriteExpr(d Direction, e expr.Expr) (expr.Expr, error) {
	if e == nil {
		return nil, nil
	}

	switch x := e.(type) {
	case *expr.Apply:
		return r.rewriteApply(d, x)
	case *expr.NewUnionCase:
		// The case's pre-computed constructor function replaces the union
		// construction itself.
		return r.RewriteExpr(d, &expr.Call{Method: x.Case.Ctor, Args: x.Args})
	case *expr.NewRecord:
		return r.rewriteNewRecord(d, x)
	case *expr.UnionCaseTest:
		return r.RewriteExpr(d, desugarCaseTest(x))
	case *expr.Lambda:
		return nil, retargeterr.NewUnsupportedConstruct("first-class function value",
			"a curried function value of type A -> (B -> C) cannot be represented across the "+
				"universe boundary; author the expression in uncurried form (A, B) -> C and "+
				"avoid point-free composition")

	case *expr.Call:
		m, err := r.ResolveMethod(d, x.Method)
		if err != nil {
			return nil, err
		}
		recv, err := r.RewriteExpr(d, x.Receiver)
		if err != nil {
			return nil, err
		}
		args, err := r.rewriteAll(d, x.Args)
		if err != nil {
			return nil, err
		}
		return &expr.Call{Method: m, Receiver: recv, Args: args}, nil

	case *expr.PropertyGet:
		p, err := r.ResolveProperty(d, x.Property)
		if err != nil {
			return nil, err
		}
		recv, err := r.RewriteExpr(d, x.Receiver)
		if err != nil {
			return nil, err
		}
		args, err := r.rewriteAll(d, x.Args)
		if err != nil {
			return nil, err
		}
		return &expr.PropertyGet{Property: p, Receiver: recv, Args: args}, nil

	case *expr.PropertySet:
		p, err := r.ResolveProperty(d, x.Property)
		if err != nil {
			return nil, err
		}
		recv, err := r.RewriteExpr(d, x.Receiver)
		if err != nil {
			return nil, err
		}
		args, err := r.rewriteAll(d, x.Args)
		if err != nil {
			return nil, err
		}
		value, err := r.RewriteExpr(d, x.Value)
		if err != nil {
			return nil, err
		}
		return &expr.PropertySet{Property: p, Receiver: recv, Args: args, Value: value}, nil

	case *expr.FieldGet:
		f, err := r.ResolveField(d, x.Field)
		if err != nil {
			return nil, err
		}
		recv, err := r.RewriteExpr(d, x.Receiver)
		if err != nil {
			return nil, err
		}
		return &expr.FieldGet{Field: f, Receiver: recv}, nil

	case *expr.FieldSet:
		f, err := r.ResolveField(d, x.Field)
		if err != nil {
			return nil, err
		}
		recv, err := r.RewriteExpr(d, x.Receiver)
		if err != nil {
			return nil, err
		}
		value, err := r.RewriteExpr(d, x.Value)
		if err != nil {
			return nil, err
		}
		return &expr.FieldSet{Field: f, Receiver: recv, Value: value}, nil

	case *expr.New:
		c, err := r.ResolveConstructor(d, x.Ctor)
		if err != nil {
			return nil, err
		}
		args, err := r.rewriteAll(d, x.Args)
		if err != nil {
			return nil, err
		}
		return &expr.New{Ctor: c, Args: args}, nil

	case *expr.Coerce:
		value, err := r.RewriteExpr(d, x.Value)
		if err != nil {
			return nil, err
		}
		target, err := r.ResolveType(d, x.Target)
		if err != nil {
			return nil, err
		}
		return &expr.Coerce{Value: value, Target: target}, nil

	case *expr.NewArray:
		elem, err := r.ResolveType(d, x.Elem)
		if err != nil {
			return nil, err
		}
		items, err := r.rewriteAll(d, x.Items)
		if err != nil {
			return nil, err
		}
		return &expr.NewArray{Elem: elem, Items: items}, nil

	case *expr.NewTuple:
		items, err := r.rewriteAll(d, x.Items)
		if err != nil {
			return nil, err
		}
		return &expr.NewTuple{Items: items}, nil

	case *expr.TupleGet:
		tuple, err := r.RewriteExpr(d, x.Tuple)
		if err != nil {
			return nil, err
		}
		return &expr.TupleGet{Tuple: tuple, Index: x.Index}, nil

	case *expr.NewDelegate:
		dt, err := r.ResolveType(d, x.Delegate)
		if err != nil {
			return nil, err
		}
		params := make([]*expr.Var, len(x.Params))
		for i, p := range x.Params {
			if params[i], err = r.RewriteVar(d, p); err != nil {
				return nil, err
			}
		}
		body, err := r.RewriteExpr(d, x.Body)
		if err != nil {
			return nil, err
		}
		return &expr.NewDelegate{Delegate: dt, Params: params, Body: body}, nil

	case *expr.Let:
		v, err := r.RewriteVar(d, x.Var)
		if err != nil {
			return nil, err
		}
		value, err := r.RewriteExpr(d, x.Value)
		if err != nil {
			return nil, err
		}
		body, err := r.RewriteExpr(d, x.Body)
		if err != nil {
			return nil, err
		}
		return &expr.Let{Var: v, Value: value, Body: body}, nil

	case *expr.VarRef:
		v, err := r.RewriteVar(d, x.Var)
		if err != nil {
			return nil, err
		}
		return &expr.VarRef{Var: v}, nil

	case *expr.Const:
		t, err := r.ResolveType(d, x.Type)
		if err != nil {
			return nil, err
		}
		return &expr.Const{Value: x.Value, Type: t}, nil

	case *expr.Shape:
		// The shape metadata is universe-independent; only the children
		// cross the boundary.
		children, err := r.rewriteAll(d, x.Children)
		if err != nil {
			return nil, err
		}
		return &expr.Shape{Op: x.Op, Children: children}, nil

	default:
		panic(retargeterr.NewInternal("unhandled expression kind " + e.Kind().String()))
	}
}

func (r *Replacer) rewriteAll(d Direction, es []expr.Expr) ([]expr.Expr, error) {
	if es == nil {
		return nil, nil
	}
	out := make([]expr.Expr, len(es))
	for i, e := range es {
		var err error
		if out[i], err = r.RewriteExpr(d, e); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// rewriteApply lowers first-class function application to an explicit call
// of the function type's Invoke method, then rewrites the call.
func (r *Replacer) rewriteApply(d Direction, x *expr.Apply) (expr.Expr, error) {
	ft := expr.StaticType(x.Fun)
	if ft == nil {
		return nil, retargeterr.NewUnsupportedConstruct("function application",
			"the applied function value has no declared type, so its Invoke method cannot be located")
	}
	named, subst := memberTarget(ft)
	if named == nil {
		return nil, retargeterr.NewMemberNotFound("method", "Invoke(...)", ft.FullName())
	}
	var invoke *universe.Method
	for _, m := range named.MethodsByName("Invoke") {
		if !m.Static && len(m.Params) == 1 {
			invoke = m
			break
		}
	}
	if invoke == nil {
		return nil, retargeterr.NewMemberNotFound("method", "Invoke(...)", ft.FullName())
	}
	call := &expr.Call{
		Method:   methodView(ft, invoke, subst),
		Receiver: x.Fun,
		Args:     []expr.Expr{x.Arg},
	}
	return r.RewriteExpr(d, call)
}

// rewriteNewRecord lowers record-style construction to an object
// construction using the type's pre-computed record constructor.
func (r *Replacer) rewriteNewRecord(d Direction, x *expr.NewRecord) (expr.Expr, error) {
	named, subst := memberTarget(x.Type)
	if named == nil {
		return nil, retargeterr.NewMemberNotFound("constructor", ".ctor(...)", x.Type.FullName())
	}
	ctor := named.RecordConstructor()
	if ctor == nil {
		return nil, retargeterr.NewMemberNotFound("constructor", ".ctor(...)", x.Type.FullName())
	}
	if len(subst) > 0 {
		params := make([]universe.Type, len(ctor.Params))
		for i, p := range ctor.Params {
			params[i] = universe.Substitute(p, subst)
		}
		ctor = &universe.Constructor{
			Declaring: x.Type,
			Params:    params,
			Public:    ctor.Public,
			Host:      ctor.Host,
			Impl:      ctor.Impl,
		}
	}
	return r.RewriteExpr(d, &expr.New{Ctor: ctor, Args: x.Args})
}

// desugarCaseTest lowers a union case test to an integer-tag equality
// comparison in the source universe. The union's tag accessor is a property
// or a method, static or instance; a static accessor takes the scrutinee as
// its argument, an instance accessor reads the tag off the scrutinee.
func desugarCaseTest(x *expr.UnionCaseTest) expr.Expr {
	uc := x.Case
	meta := uc.Union.Union
	if meta == nil {
		panic(retargeterr.NewInternal("union case test on " + uc.Union.Name + " which carries no union metadata"))
	}

	var tagRead expr.Expr
	var tagType universe.Type
	switch {
	case meta.TagProperty != nil:
		p := meta.TagProperty
		tagType = p.Type
		if p.Static() {
			tagRead = &expr.PropertyGet{Property: p, Args: []expr.Expr{x.Value}}
		} else {
			tagRead = &expr.PropertyGet{Property: p, Receiver: x.Value}
		}
	case meta.TagMethod != nil:
		m := meta.TagMethod
		tagType = m.Return
		if m.Static {
			tagRead = &expr.Call{Method: m, Args: []expr.Expr{x.Value}}
		} else {
			tagRead = &expr.Call{Method: m, Receiver: x.Value}
		}
	default:
		panic(retargeterr.NewInternal("tag accessor of " + uc.Union.Name + " is neither a property nor a method"))
	}

	return &expr.Shape{
		Op: "eq",
		Children: []expr.Expr{
			tagRead,
			&expr.Const{Value: uc.Tag, Type: tagType},
		},
	}
}
