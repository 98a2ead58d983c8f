package universe

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk description of a universe: modules, their types,
// and the members of those types. Member types are written as textual type
// references resolved against the manifest's own types in a second pass.
type Manifest struct {
	Universe string           `yaml:"universe"`
	Modules  []ModuleManifest `yaml:"modules"`
}

// ModuleManifest describes one module of a manifest.
type ModuleManifest struct {
	Name          string         `yaml:"name"`
	SessionNaming bool           `yaml:"sessionNaming"`
	Types         []TypeManifest `yaml:"types"`
}

// TypeManifest describes one named type.
type TypeManifest struct {
	Name       string             `yaml:"name"`
	TypeParams []string           `yaml:"typeParams"`
	Alias      bool               `yaml:"alias"`
	Base       string             `yaml:"base"`
	Fields     []FieldManifest    `yaml:"fields"`
	Properties []PropertyManifest `yaml:"properties"`
	Methods    []MethodManifest   `yaml:"methods"`
	Ctors      []CtorManifest     `yaml:"ctors"`
	Union      *UnionManifest     `yaml:"union"`
}

// FieldManifest describes a field. Private defaults to false (public).
type FieldManifest struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Static  bool   `yaml:"static"`
	Private bool   `yaml:"private"`
}

// PropertyManifest describes a property; a getter method is synthesized so
// static-ness is carried the same way reflection reports it.
type PropertyManifest struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Static  bool   `yaml:"static"`
	Private bool   `yaml:"private"`
}

// MethodManifest describes a method.
type MethodManifest struct {
	Name       string   `yaml:"name"`
	TypeParams []string `yaml:"typeParams"`
	Params     []string `yaml:"params"`
	Return     string   `yaml:"return"`
	Static     bool     `yaml:"static"`
	Private    bool     `yaml:"private"`
}

// CtorManifest describes a constructor.
type CtorManifest struct {
	Params  []string `yaml:"params"`
	Private bool     `yaml:"private"`
}

// UnionManifest describes discriminated-union metadata. Exactly one of
// TagProperty and TagMethod must be set; the named accessor is synthesized
// onto the type.
type UnionManifest struct {
	TagProperty string         `yaml:"tagProperty"`
	TagMethod   string         `yaml:"tagMethod"`
	TagType     string         `yaml:"tagType"`
	Cases       []CaseManifest `yaml:"cases"`
}

// CaseManifest describes one union case.
type CaseManifest struct {
	Name   string   `yaml:"name"`
	Tag    int      `yaml:"tag"`
	Params []string `yaml:"params"`
}

// LoadManifest reads and links a universe manifest from a file.
func LoadManifest(path string) (Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses and links a universe manifest. Linking happens in
// two passes: all named types are declared first, then member type
// references are resolved against them.
func ParseManifest(data []byte) (Universe, error) {
	var man Manifest
	if err := yaml.Unmarshal(data, &man); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	// Pass 1: declare modules and types. A type name declared twice in one
	// manifest would make member references to it ambiguous, so it is an
	// error rather than a silent first-wins.
	var u Universe
	mods := make([]*MemoryModule, 0, len(man.Modules))
	index := make(map[string]*NamedType)
	owner := make(map[string]string)
	for _, mm := range man.Modules {
		mod := NewMemoryModule(mm.Name)
		mod.sessionNaming = mm.SessionNaming
		for _, tm := range mm.Types {
			if prev, dup := owner[tm.Name]; dup {
				if prev == mm.Name {
					return nil, fmt.Errorf("type %s declared twice by module %s", tm.Name, mm.Name)
				}
				return nil, fmt.Errorf("type %s declared by both module %s and module %s", tm.Name, prev, mm.Name)
			}
			owner[tm.Name] = mm.Name
			t := mod.DefineType(tm.Name, len(tm.TypeParams))
			t.TypeParams = tm.TypeParams
			t.Alias = tm.Alias
			index[tm.Name] = t
		}
		u = append(u, mod)
		mods = append(mods, mod)
	}

	// Pass 2: resolve member type references.
	for mi, mm := range man.Modules {
		for _, tm := range mm.Types {
			t, _ := mods[mi].TypeByName(tm.Name)
			if err := linkType(t, tm, index); err != nil {
				return nil, fmt.Errorf("type %s: %w", tm.Name, err)
			}
		}
	}
	return u, nil
}

func linkType(t *NamedType, tm TypeManifest, index map[string]*NamedType) error {
	params := make(map[string]bool, len(tm.TypeParams))
	for _, p := range tm.TypeParams {
		params[p] = true
	}

	ref := func(s string) (Type, error) { return parseTypeRef(s, index) }

	if tm.Base != "" {
		base, err := ref(tm.Base)
		if err != nil {
			return err
		}
		t.Base = base
	}

	for _, fm := range tm.Fields {
		ft, err := ref(fm.Type)
		if err != nil {
			return fmt.Errorf("field %s: %w", fm.Name, err)
		}
		t.Fields = append(t.Fields, &Field{
			Declaring: t,
			Name:      fm.Name,
			Type:      ft,
			Static:    fm.Static,
			Public:    !fm.Private,
		})
	}

	for _, pm := range tm.Properties {
		pt, err := ref(pm.Type)
		if err != nil {
			return fmt.Errorf("property %s: %w", pm.Name, err)
		}
		addProperty(t, pm.Name, pt, pm.Static, !pm.Private)
	}

	for _, mm := range tm.Methods {
		ret := Void
		if mm.Return != "" {
			var err error
			ret, err = ref(mm.Return)
			if err != nil {
				return fmt.Errorf("method %s: %w", mm.Name, err)
			}
		}
		ps := make([]Type, len(mm.Params))
		for i, p := range mm.Params {
			pt, err := ref(p)
			if err != nil {
				return fmt.Errorf("method %s: %w", mm.Name, err)
			}
			ps[i] = pt
		}
		t.Methods = append(t.Methods, &Method{
			Declaring:      t,
			Name:           mm.Name,
			Params:         ps,
			Return:         ret,
			Static:         mm.Static,
			Public:         !mm.Private,
			TypeParamNames: mm.TypeParams,
		})
	}

	for _, cm := range tm.Ctors {
		ps := make([]Type, len(cm.Params))
		for i, p := range cm.Params {
			pt, err := ref(p)
			if err != nil {
				return fmt.Errorf("constructor: %w", err)
			}
			ps[i] = pt
		}
		t.Ctors = append(t.Ctors, &Constructor{
			Declaring: t,
			Params:    ps,
			Public:    !cm.Private,
		})
	}

	if tm.Union != nil {
		if err := linkUnion(t, tm.Union, index); err != nil {
			return err
		}
	}
	return nil
}

func linkUnion(t *NamedType, um *UnionManifest, index map[string]*NamedType) error {
	tagType := Type(Void)
	if um.TagType != "" {
		var err error
		tagType, err = parseTypeRef(um.TagType, index)
		if err != nil {
			return fmt.Errorf("union tag type: %w", err)
		}
	}

	meta := &UnionMeta{}
	switch {
	case um.TagProperty != "":
		meta.TagProperty = addProperty(t, um.TagProperty, tagType, false, true)
	case um.TagMethod != "":
		m := &Method{
			Declaring: t,
			Name:      um.TagMethod,
			Return:    tagType,
			Public:    true,
		}
		t.Methods = append(t.Methods, m)
		meta.TagMethod = m
	default:
		return fmt.Errorf("union on %s declares neither tagProperty nor tagMethod", t.Name)
	}

	for _, cm := range um.Cases {
		ps := make([]Type, len(cm.Params))
		for i, p := range cm.Params {
			pt, err := parseTypeRef(p, index)
			if err != nil {
				return fmt.Errorf("union case %s: %w", cm.Name, err)
			}
			ps[i] = pt
		}
		ctor := &Method{
			Declaring: t,
			Name:      "New" + cm.Name,
			Params:    ps,
			Return:    t,
			Static:    true,
			Public:    true,
		}
		t.Methods = append(t.Methods, ctor)
		meta.Cases = append(meta.Cases, &UnionCase{
			Union: t,
			Name:  cm.Name,
			Tag:   cm.Tag,
			Ctor:  ctor,
		})
	}
	t.Union = meta
	return nil
}

func addProperty(t *NamedType, name string, pt Type, static, public bool) *Property {
	getter := &Method{
		Declaring: t,
		Name:      "get_" + name,
		Return:    pt,
		Static:    static,
		Public:    public,
	}
	p := &Property{
		Declaring: t,
		Name:      name,
		Type:      pt,
		Getter:    getter,
		Public:    public,
	}
	t.Properties = append(t.Properties, p)
	return p
}

// parseTypeRef parses a textual type reference:
//
//	void          the void sentinel
//	'T            generic parameter T
//	*X            pointer to X
//	&X            by-ref X
//	[]X  [,]X     array of X (rank = commas + 1)
//	Def[A, B]     generic instantiation
//	Ns.Name       named type, looked up in the manifest's types
func parseTypeRef(s string, index map[string]*NamedType) (Type, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, fmt.Errorf("empty type reference")
	case s == "void":
		return Void, nil
	case strings.HasPrefix(s, "'"):
		return &ParamType{Name: s[1:]}, nil
	case strings.HasPrefix(s, "*"):
		elem, err := parseTypeRef(s[1:], index)
		if err != nil {
			return nil, err
		}
		return &PointerType{Elem: elem}, nil
	case strings.HasPrefix(s, "&"):
		elem, err := parseTypeRef(s[1:], index)
		if err != nil {
			return nil, err
		}
		return &ByRefType{Elem: elem}, nil
	case strings.HasPrefix(s, "["):
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, fmt.Errorf("unterminated array reference %q", s)
		}
		rank := strings.Count(s[:end], ",") + 1
		elem, err := parseTypeRef(s[end+1:], index)
		if err != nil {
			return nil, err
		}
		return &ArrayType{Elem: elem, Rank: rank}, nil
	}

	if idx := strings.IndexByte(s, '['); idx > 0 && strings.HasSuffix(s, "]") {
		def, err := parseTypeRef(s[:idx], index)
		if err != nil {
			return nil, err
		}
		var args []Type
		depth := 0
		body := s[idx+1 : len(s)-1]
		segStart := 0
		for i := 0; i <= len(body); i++ {
			if i == len(body) || (body[i] == ',' && depth == 0) {
				arg, err := parseTypeRef(body[segStart:i], index)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				segStart = i + 1
				continue
			}
			switch body[i] {
			case '[':
				depth++
			case ']':
				depth--
			}
		}
		return NewInstance(def, args), nil
	}

	if t, ok := index[s]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unknown type reference %q", s)
}
