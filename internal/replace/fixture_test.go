package replace

import (
	"fmt"

	"github.com/kevmal/retarget/internal/universe"
)

// optValue is the runtime representation union values take in the test
// universes.
type optValue struct {
	Tag   int
	Value any
}

// testUniverse builds one self-contained universe. Two calls with different
// tags produce structurally corresponding but distinct type objects, which
// is exactly the situation the engine exists for.
func testUniverse(tag string) universe.Universe {
	core := universe.NewMemoryModule(tag + "-core")
	core.DefineType("System.Object", 0)
	core.DefineType("System.Boolean", 0)
	intT := core.DefineType("System.Int32", 0)
	strT := core.DefineType("System.String", 0)

	strT.Methods = append(strT.Methods, &universe.Method{
		Declaring: strT,
		Name:      "Concat",
		Params:    []universe.Type{strT, strT},
		Return:    strT,
		Static:    true,
		Public:    true,
		Impl: func(_ any, args []any) (any, error) {
			return args[0].(string) + args[1].(string), nil
		},
	})

	lib := universe.NewMemoryModule(tag + "-lib")

	list := lib.DefineType("Collections.List`1", 1)
	list.TypeParams = []string{"T"}
	list.Ctors = append(list.Ctors, &universe.Constructor{
		Declaring: list,
		Public:    true,
		Impl: func(_ []any) (any, error) {
			return &[]any{}, nil
		},
	})
	list.Methods = append(list.Methods, &universe.Method{
		Declaring: list,
		Name:      "Add",
		Params:    []universe.Type{&universe.ParamType{Name: "T"}},
		Return:    universe.Void,
		Public:    true,
	})
	listLen := &universe.Method{
		Declaring: list,
		Name:      "get_Length",
		Return:    intT,
		Public:    true,
		Impl: func(recv any, _ []any) (any, error) {
			return len(*recv.(*[]any)), nil
		},
	}
	list.Methods = append(list.Methods, listLen)
	list.Properties = append(list.Properties, &universe.Property{
		Declaring: list,
		Name:      "Length",
		Type:      intT,
		Getter:    listLen,
		Public:    true,
	})

	mapT := lib.DefineType("Collections.Map`2", 2)
	mapT.TypeParams = []string{"K", "V"}

	util := lib.DefineType("Core.Util", 0)
	util.Methods = append(util.Methods, &universe.Method{
		Declaring:      util,
		Name:           "Identity",
		TypeParamNames: []string{"U"},
		Params:         []universe.Type{&universe.ParamType{Name: "U"}},
		Return:         &universe.ParamType{Name: "U"},
		Static:         true,
		Public:         true,
		Impl: func(_ any, args []any) (any, error) {
			return args[0], nil
		},
	})

	fn := lib.DefineType("Core.Func`2", 2)
	fn.TypeParams = []string{"A", "B"}
	fn.Methods = append(fn.Methods, &universe.Method{
		Declaring: fn,
		Name:      "Invoke",
		Params:    []universe.Type{&universe.ParamType{Name: "A"}},
		Return:    &universe.ParamType{Name: "B"},
		Public:    true,
		Impl: func(recv any, args []any) (any, error) {
			return recv.(func(any) any)(args[0]), nil
		},
	})

	option := lib.DefineType("Data.Option`1", 1)
	option.TypeParams = []string{"T"}
	tagGetter := &universe.Method{
		Declaring: option,
		Name:      "get_Tag",
		Return:    intT,
		Public:    true,
		Impl: func(recv any, _ []any) (any, error) {
			return recv.(optValue).Tag, nil
		},
	}
	option.Methods = append(option.Methods, tagGetter)
	tagProp := &universe.Property{
		Declaring: option,
		Name:      "Tag",
		Type:      intT,
		Getter:    tagGetter,
		Public:    true,
	}
	option.Properties = append(option.Properties, tagProp)
	noneCtor := &universe.Method{
		Declaring: option,
		Name:      "NewNone",
		Return:    option,
		Static:    true,
		Public:    true,
		Impl: func(_ any, _ []any) (any, error) {
			return optValue{Tag: 0}, nil
		},
	}
	someCtor := &universe.Method{
		Declaring: option,
		Name:      "NewSome",
		Params:    []universe.Type{&universe.ParamType{Name: "T"}},
		Return:    option,
		Static:    true,
		Public:    true,
		Impl: func(_ any, args []any) (any, error) {
			return optValue{Tag: 1, Value: args[0]}, nil
		},
	}
	option.Methods = append(option.Methods, noneCtor, someCtor)
	option.Union = &universe.UnionMeta{
		TagProperty: tagProp,
		Cases: []*universe.UnionCase{
			{Union: option, Name: "None", Tag: 0, Ctor: noneCtor},
			{Union: option, Name: "Some", Tag: 1, Ctor: someCtor},
		},
	}

	point := lib.DefineType("Geom.Point", 0)
	point.Fields = append(point.Fields,
		&universe.Field{Declaring: point, Name: "X", Type: intT, Public: true},
		&universe.Field{Declaring: point, Name: "Y", Type: intT, Public: true},
	)
	point.Ctors = append(point.Ctors, &universe.Constructor{
		Declaring: point,
		Params:    []universe.Type{intT, intT},
		Public:    true,
		Impl: func(args []any) (any, error) {
			return [2]any{args[0], args[1]}, nil
		},
	})

	return universe.Universe{core, lib}
}

// namedType fetches a type the fixture is known to define.
func namedType(u universe.Universe, name string) *universe.NamedType {
	for _, m := range u {
		if t, ok := m.TypeByName(name); ok {
			return t
		}
	}
	panic(fmt.Sprintf("fixture has no type %s", name))
}
