package replace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevmal/retarget/internal/universe"
	"github.com/kevmal/retarget/retargeterr"
)

func TestResolveProperty(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	r := New(origin, target)

	src := namedType(origin, "Collections.List`1").PropertyByName("Length")
	require.NotNil(t, src)

	got, err := r.ResolveProperty(Forward, src)
	require.NoError(t, err)
	assert.Same(t, namedType(target, "Collections.List`1").PropertyByName("Length"), got)
	assert.Same(t, namedType(target, "System.Int32"), got.Type)
}

func TestResolvePropertyOnInstance(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	r := New(origin, target)

	list := namedType(origin, "Collections.List`1")
	inst := universe.NewInstance(list, []universe.Type{namedType(origin, "System.Int32")})
	src := &universe.Property{
		Declaring: inst,
		Name:      "Length",
		Type:      namedType(origin, "System.Int32"),
		Getter:    list.PropertyByName("Length").Getter,
		Public:    true,
	}

	got, err := r.ResolveProperty(Forward, src)
	require.NoError(t, err)
	inst2, ok := got.Declaring.(*universe.InstanceType)
	require.True(t, ok)
	assert.Same(t, namedType(target, "Collections.List`1"), inst2.Def)
	assert.Same(t, namedType(target, "System.Int32"), got.Type)
}

func TestResolvePropertyNotFound(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	r := New(origin, target)

	src := &universe.Property{
		Declaring: namedType(origin, "Geom.Point"),
		Name:      "Missing",
		Type:      namedType(origin, "System.Int32"),
		Public:    true,
	}
	_, err := r.ResolveProperty(Forward, src)
	require.Error(t, err)
	var notFound *retargeterr.MemberNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "Missing")
	assert.Contains(t, err.Error(), "Geom.Point")
}

func TestResolveField(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	r := New(origin, target)

	src := namedType(origin, "Geom.Point").FieldByName("X")
	require.NotNil(t, src)

	got, err := r.ResolveField(Forward, src)
	require.NoError(t, err)
	assert.Same(t, namedType(target, "Geom.Point").FieldByName("X"), got)
}

func TestResolveFieldFlagMismatch(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	r := New(origin, target)

	// Same name but claiming static must not match the instance field.
	src := &universe.Field{
		Declaring: namedType(origin, "Geom.Point"),
		Name:      "X",
		Type:      namedType(origin, "System.Int32"),
		Static:    true,
		Public:    true,
	}
	_, err := r.ResolveField(Forward, src)
	require.Error(t, err)
	var notFound *retargeterr.MemberNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestResolveMethodInstance(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	r := New(origin, target)

	src := namedType(origin, "Collections.List`1").MethodsByName("Add")[0]
	got, err := r.ResolveMethod(Forward, src)
	require.NoError(t, err)
	assert.Same(t, namedType(target, "Collections.List`1").MethodsByName("Add")[0], got)
}

func TestResolveMethodStatic(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	r := New(origin, target)

	src := namedType(origin, "System.String").MethodsByName("Concat")[0]
	got, err := r.ResolveMethod(Forward, src)
	require.NoError(t, err)
	assert.Same(t, namedType(target, "System.String").MethodsByName("Concat")[0], got)
	assert.True(t, got.Static)
}

func TestResolveMethodGenericInstantiation(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	r := New(origin, target)

	def := namedType(origin, "Core.Util").MethodsByName("Identity")[0]
	inst := def.Instantiate([]universe.Type{namedType(origin, "System.Int32")})

	got, err := r.ResolveMethod(Forward, inst)
	require.NoError(t, err)
	require.True(t, got.IsGenericInstance())
	assert.Same(t, namedType(target, "Core.Util").MethodsByName("Identity")[0], got.GenericDef)
	assert.Same(t, namedType(target, "System.Int32"), got.TypeArgs[0])
	assert.Same(t, namedType(target, "System.Int32"), got.Params[0])
	assert.Same(t, namedType(target, "System.Int32"), got.Return)
}

func TestResolveMethodExactSignatureOnly(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	r := New(origin, target)

	// An int overload of Concat exists nowhere; nearest-overload matching
	// must not kick in.
	strT := namedType(origin, "System.String")
	src := &universe.Method{
		Declaring: strT,
		Name:      "Concat",
		Params:    []universe.Type{namedType(origin, "System.Int32"), strT},
		Return:    strT,
		Static:    true,
		Public:    true,
	}
	_, err := r.ResolveMethod(Forward, src)
	require.Error(t, err)
	var notFound *retargeterr.MemberNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestResolveConstructor(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	r := New(origin, target)

	src := namedType(origin, "Geom.Point").Ctors[0]
	got, err := r.ResolveConstructor(Forward, src)
	require.NoError(t, err)
	assert.Same(t, namedType(target, "Geom.Point").Ctors[0], got)
}

func TestResolveConstructorParamMismatch(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	r := New(origin, target)

	src := &universe.Constructor{
		Declaring: namedType(origin, "Geom.Point"),
		Params:    []universe.Type{namedType(origin, "System.Int32")},
		Public:    true,
	}
	_, err := r.ResolveConstructor(Forward, src)
	require.Error(t, err)
	var notFound *retargeterr.MemberNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestResolveHostMembersPassThrough(t *testing.T) {
	origin := testUniverse("a")
	target := testUniverse("b")
	r := New(origin, target)

	hostType := &universe.NamedType{Name: "Provided.Thing", Host: true}
	m := &universe.Method{Declaring: hostType, Name: "DoIt", Host: true, Public: true}
	p := &universe.Property{Declaring: hostType, Name: "Value", Host: true, Public: true}
	f := &universe.Field{Declaring: hostType, Name: "state", Host: true}
	c := &universe.Constructor{Declaring: hostType, Host: true, Public: true}

	gm, err := r.ResolveMethod(Forward, m)
	require.NoError(t, err)
	assert.Same(t, m, gm)
	gp, err := r.ResolveProperty(Backward, p)
	require.NoError(t, err)
	assert.Same(t, p, gp)
	gf, err := r.ResolveField(Forward, f)
	require.NoError(t, err)
	assert.Same(t, f, gf)
	gc, err := r.ResolveConstructor(Backward, c)
	require.NoError(t, err)
	assert.Same(t, c, gc)
}
