package declare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevmal/retarget/internal/evalx"
	"github.com/kevmal/retarget/internal/expr"
	"github.com/kevmal/retarget/internal/replace"
	"github.com/kevmal/retarget/internal/universe"
)

func testUniverse(tag string) universe.Universe {
	core := universe.NewMemoryModule(tag + "-core")
	core.DefineType("System.Object", 0)
	intT := core.DefineType("System.Int32", 0)
	core.DefineType("System.String", 0)

	intT.Methods = append(intT.Methods, &universe.Method{
		Declaring: intT,
		Name:      "Add",
		Params:    []universe.Type{intT, intT},
		Return:    intT,
		Static:    true,
		Public:    true,
		Impl: func(_ any, args []any) (any, error) {
			return args[0].(int) + args[1].(int), nil
		},
	})

	return universe.Universe{core}
}

func named(u universe.Universe, name string) *universe.NamedType {
	t, ok := u[0].TypeByName(name)
	if !ok {
		panic("fixture has no type " + name)
	}
	return t
}

func TestNewMethodSignatureCrossesForward(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	f := New(replace.New(origin, target))

	intO := named(origin, "System.Int32")
	strO := named(origin, "System.String")

	m, err := f.NewMethod("Describe",
		[]*Parameter{f.NewParameter("n", intO)},
		strO, true, nil)
	require.NoError(t, err)

	assert.Same(t, named(target, "System.Int32"), m.Params[0])
	assert.Same(t, named(target, "System.String"), m.Return)
	assert.True(t, m.Static)
	assert.True(t, m.HostDefined())
}

func TestMethodInvokeBodySeesOriginUniverse(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	f := New(replace.New(origin, target))

	intO := named(origin, "System.Int32")

	var seen universe.Type
	m, err := f.NewMethod("Twice",
		[]*Parameter{f.NewParameter("n", intO)},
		intO, true,
		func(args []expr.Expr) (expr.Expr, error) {
			seen = args[0].(*expr.Const).Type
			add := named(origin, "System.Int32").MethodsByName("Add")[0]
			return &expr.Call{Method: add, Args: []expr.Expr{args[0], args[0]}}, nil
		})
	require.NoError(t, err)

	out, err := m.Invoke([]expr.Expr{
		&expr.Const{Value: 21, Type: named(target, "System.Int32")},
	})
	require.NoError(t, err)

	assert.Same(t, intO, seen, "body arguments must arrive in the origin universe")

	call := out.(*expr.Call)
	assert.Same(t, named(target, "System.Int32").MethodsByName("Add")[0], call.Method,
		"result must leave in the target universe")

	got, err := evalx.Eval(out, nil)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestMethodInvokePreservesCallerVariables(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	f := New(replace.New(origin, target))

	intO := named(origin, "System.Int32")
	m, err := f.NewMethod("Id",
		[]*Parameter{f.NewParameter("x", intO)},
		intO, true,
		func(args []expr.Expr) (expr.Expr, error) {
			return args[0], nil
		})
	require.NoError(t, err)

	w := expr.NewVar("x", named(target, "System.Int32"), false)
	out, err := m.Invoke([]expr.Expr{&expr.VarRef{Var: w}})
	require.NoError(t, err)

	ref := out.(*expr.VarRef)
	assert.Same(t, w, ref.Var, "a caller variable crossing both ways must come back as itself")
}

func TestNewProperty(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	f := New(replace.New(origin, target))

	p, err := f.NewProperty("Size", named(origin, "System.Int32"),
		func(args []expr.Expr) (expr.Expr, error) {
			return &expr.Const{Value: 0, Type: named(origin, "System.Int32")}, nil
		})
	require.NoError(t, err)

	assert.Same(t, named(target, "System.Int32"), p.Type)
	assert.True(t, p.HostDefined())
	require.NotNil(t, p.Getter)
	assert.Equal(t, "get_Size", p.Getter.Name)
	assert.True(t, p.Getter.Host)

	body, err := p.InvokeGetter(nil)
	require.NoError(t, err)
	c := body.(*expr.Const)
	assert.Same(t, named(target, "System.Int32"), c.Type)
}

func TestNewConstructor(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	f := New(replace.New(origin, target))

	c, err := f.NewConstructor(
		[]*Parameter{f.NewParameter("n", named(origin, "System.Int32"))},
		func(args []expr.Expr) (expr.Expr, error) {
			return args[0], nil
		})
	require.NoError(t, err)

	assert.Same(t, named(target, "System.Int32"), c.Params[0])
	assert.True(t, c.HostDefined())
}

func TestNewTypeDefinition(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	f := New(replace.New(origin, target))

	td, err := f.NewTypeDefinition("Provided.Widget", named(origin, "System.Object"), true, true)
	require.NoError(t, err)

	assert.True(t, td.Host)
	assert.Same(t, named(target, "System.Object"), td.Base)
	assert.True(t, td.HideObjectMethods)
	assert.True(t, td.NonNullable)

	intO := named(origin, "System.Int32")
	m, err := f.NewMethod("Run", nil, intO, false, nil)
	require.NoError(t, err)
	td.AddMethod(m)
	assert.Same(t, td.NamedType, m.Method.Declaring)
	require.Len(t, td.NamedType.MethodsByName("Run"), 1)

	p, err := f.NewProperty("Size", intO, nil)
	require.NoError(t, err)
	td.AddProperty(p)
	assert.Same(t, td.NamedType, p.Property.Declaring)
	assert.Same(t, td.NamedType, p.Property.Getter.Declaring)

	c, err := f.NewConstructor(nil, nil)
	require.NoError(t, err)
	td.AddConstructor(c)
	assert.Same(t, td.NamedType, c.Constructor.Declaring)
	require.Len(t, td.NamedType.Ctors, 1)
}

func TestProvidedMembersBypassResolution(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	r := replace.New(origin, target)
	f := New(r)

	intO := named(origin, "System.Int32")
	m, err := f.NewMethod("Custom", nil, intO, true, nil)
	require.NoError(t, err)

	// A host-defined method is valid in either universe as-is; resolving it
	// must hand back the same descriptor.
	got, err := r.ResolveMethod(replace.Backward, m.Method)
	require.NoError(t, err)
	assert.Same(t, m.Method, got)
}
