package universe

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryModuleLookup(t *testing.T) {
	m := NewMemoryModule("core")
	intT := m.DefineType("System.Int32", 0)

	got, ok := m.TypeByName("System.Int32")
	require.True(t, ok)
	assert.Same(t, intT, got)
	assert.Same(t, Module(m), intT.Owner)

	_, ok = m.TypeByName("System.Int64")
	assert.False(t, ok)
}

func TestMemoryModuleOrderPreserved(t *testing.T) {
	m := NewMemoryModule("core")
	m.DefineType("B", 0)
	m.DefineType("A", 0)
	m.DefineType("C", 0)

	all := m.AllTypes()
	require.Len(t, all, 3)
	assert.Equal(t, "B", all[0].Name)
	assert.Equal(t, "A", all[1].Name)
	assert.Equal(t, "C", all[2].Name)
}

func TestMemoryModuleRedefineReplaces(t *testing.T) {
	m := NewMemoryModule("core")
	m.DefineType("Vector", 0)
	second := m.DefineType("Vector", 0)

	got, ok := m.TypeByName("Vector")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Len(t, m.AllTypes(), 1)
}

func TestMemoryModuleConcurrentAccess(t *testing.T) {
	m := NewMemoryModule("core")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.DefineType(fmt.Sprintf("T%d_%d", i, j), 0)
				m.TypeByName("T0_0")
				m.AllTypes()
			}
		}(i)
	}
	wg.Wait()
	assert.Len(t, m.AllTypes(), 8*50)
}

func TestSessionModuleFlag(t *testing.T) {
	assert.False(t, NewMemoryModule("plain").UsesSessionNaming())
	assert.True(t, NewSessionModule("session").UsesSessionNaming())
}

func TestUniverseNames(t *testing.T) {
	core := NewMemoryModule("core")
	core.DefineType("System.Int32", 0)
	lib := NewMemoryModule("lib")
	lib.DefineType("Collections.List`1", 1)
	lib.DefineType("Collections.Map`2", 2)

	u := Universe{core, lib}
	assert.Equal(t, []string{"core", "lib"}, u.ModuleNames())
	assert.Equal(t, "core, lib", u.String())
	assert.Equal(t, []string{"Collections.List`1", "Collections.Map`2", "System.Int32"}, u.TypeNames())
}
