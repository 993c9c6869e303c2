package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXRef_LabelDefinitionAndBranchReference(t *testing.T) {
	source := "loop:\njmp loop\nhalt\n"

	gen := NewXRefGenerator()
	symbols, err := gen.Generate(source, "test.vm")
	require.NoError(t, err)

	sym, ok := symbols["loop"]
	require.True(t, ok)
	require.NotNil(t, sym.Definition)
	assert.Equal(t, RefDefinition, sym.Definition.Type)
	require.Len(t, sym.References, 1)
	assert.Equal(t, RefBranch, sym.References[0].Type)
}

func TestXRef_CallMarksFunction(t *testing.T) {
	source := "fn:\nret\ncall fn\n"

	gen := NewXRefGenerator()
	symbols, err := gen.Generate(source, "test.vm")
	require.NoError(t, err)

	sym, ok := symbols["fn"]
	require.True(t, ok)
	assert.True(t, sym.IsFunction)
}

func TestXRef_ConstantIsMarked(t *testing.T) {
	source := "width = 80\nmovw.i2r r0, width\n"

	gen := NewXRefGenerator()
	symbols, err := gen.Generate(source, "test.vm")
	require.NoError(t, err)

	sym, ok := symbols["width"]
	require.True(t, ok)
	assert.True(t, sym.IsConstant)
	require.Len(t, sym.References, 1)
	assert.Equal(t, RefData, sym.References[0].Type)
}

func TestXRef_GetUndefinedSymbols(t *testing.T) {
	source := "jmp missing\n"

	gen := NewXRefGenerator()
	_, err := gen.Generate(source, "test.vm")
	require.NoError(t, err)

	undefined := gen.GetUndefinedSymbols()
	require.Len(t, undefined, 1)
	assert.Equal(t, "missing", undefined[0].Name)
}

func TestXRef_GetUnusedSymbols(t *testing.T) {
	source := "dead:\nhalt\n"

	gen := NewXRefGenerator()
	_, err := gen.Generate(source, "test.vm")
	require.NoError(t, err)

	unused := gen.GetUnusedSymbols()
	require.Len(t, unused, 1)
	assert.Equal(t, "dead", unused[0].Name)
}

func TestXRef_GetFunctions(t *testing.T) {
	source := "a:\nret\nb:\nret\ncall a\ncall a\ncall b\n"

	gen := NewXRefGenerator()
	_, err := gen.Generate(source, "test.vm")
	require.NoError(t, err)

	functions := gen.GetFunctions()
	require.Len(t, functions, 2)
	assert.Equal(t, "a", functions[0].Name)
	assert.Equal(t, "b", functions[1].Name)
}

func TestGenerateXRef_ReportContainsSummary(t *testing.T) {
	source := "start:\nhalt\n"

	report, err := GenerateXRef(source, "test.vm")
	require.NoError(t, err)
	assert.Contains(t, report, "Symbol Cross-Reference")
	assert.Contains(t, report, "Summary")
	assert.Contains(t, report, "start")
}
