package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookbusy1344/alanppc/config"
	"github.com/lookbusy1344/alanppc/driver"
)

func TestCompile_EmptySegmentsAreDiscarded(t *testing.T) {
	results := driver.Compile("{}$$$  $", config.DefaultConfig())
	assert.Len(t, results, 1)
}

func TestCompile_MissingEOPWarnsThroughTheRealPipeline(t *testing.T) {
	results := driver.Compile("{ int a }", config.DefaultConfig())
	require.Len(t, results, 1)
	assert.Contains(t, results[0].LexLog.Render(false), "missing end-of-program marker")
}

func TestCompile_MultipleSubProgramsAreIndependent(t *testing.T) {
	results := driver.Compile(`{ int a }$ { a = 3 }$`, config.DefaultConfig())
	require.Len(t, results, 2)

	// First sub-program: declares 'a', never uses it.
	assert.False(t, results[0].SemLog.HasErrors())
	require.NotNil(t, results[0].Symbols)

	// Second sub-program: 'a' was never declared here -- it must not see
	// the first sub-program's symbol table.
	assert.True(t, results[1].SemLog.HasErrors())
	assert.Nil(t, results[1].Symbols)
}

func TestCompile_ParserErrorSkipsSemanticAnalysis(t *testing.T) {
	results := driver.Compile(`{ int a $`, config.DefaultConfig())
	require.Len(t, results, 1)
	assert.True(t, results[0].ParseLog.HasErrors())
	assert.Nil(t, results[0].AST)
	assert.Nil(t, results[0].Symbols)
	assert.Equal(t, byte(0x00), results[0].Code[0])
}

func TestCompile_TypeMismatchYieldsMinimalImage(t *testing.T) {
	results := driver.Compile(`{ int a boolean b b = true a = b }$`, config.DefaultConfig())
	require.Len(t, results, 1)
	assert.True(t, results[0].SemLog.HasErrors())
	assert.Nil(t, results[0].Symbols)
	for i, b := range results[0].Code {
		if i == 0 {
			assert.Equal(t, byte(0x00), b)
			continue
		}
		assert.Equal(t, byte(0x00), b, "byte %d should be zero in the fallback image", i)
	}
}

func TestCompile_ScenarioSixProducesCode(t *testing.T) {
	results := driver.Compile(`{ if (1 == 1) { print("hi") } }$`, config.DefaultConfig())
	require.Len(t, results, 1)
	require.False(t, results[0].SemLog.HasErrors())
	require.NotEmpty(t, results[0].MemoryMap)

	var sawHi bool
	for _, e := range results[0].MemoryMap {
		if e.IsLiteral && e.Name == "hi" {
			sawHi = true
			assert.Equal(t, uint16(0x00E0), e.Address)
		}
	}
	assert.True(t, sawHi, "expected \"hi\" to be interned in the memory map")
}
