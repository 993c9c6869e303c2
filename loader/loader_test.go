package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dextero/evilvm-go/vm"
)

func baseOpts() Options {
	return Options{
		CharBit:    8,
		WordSize:   1,
		AddrSize:   2,
		RAMWords:   16,
		StackWords: 8,
	}
}

func TestLoad_AssemblesProgramAndSizesRAMAndStack(t *testing.T) {
	cpu, err := Load("halt\n", "t.vm", baseOpts())
	require.NoError(t, err)
	assert.Equal(t, 16, cpu.RAM.Len())
	assert.Equal(t, 16, cpu.CallStack.Len())
}

func TestLoad_WiresADefaultGPUSink(t *testing.T) {
	cpu, err := Load("halt\n", "t.vm", baseOpts())
	require.NoError(t, err)
	assert.NotNil(t, cpu.GPU.Sink)
}

func TestLoad_SizesGPUFromOptionsWhenGiven(t *testing.T) {
	opts := baseOpts()
	opts.GPUWidth = 10
	opts.GPUHeight = 4
	cpu, err := Load("halt\n", "t.vm", opts)
	require.NoError(t, err)
	assert.Equal(t, 10, cpu.GPU.Width)
	assert.Equal(t, 4, cpu.GPU.Height)
}

func TestLoad_ZeroProgramSizeAutoGrowsToFitBytecode(t *testing.T) {
	cpu, err := Load("movb.i2r a, 5\nhalt\n", "t.vm", baseOpts())
	require.NoError(t, err)
	// movb.i2r (3 bytes) + halt (1 byte) = 4.
	assert.Equal(t, 4, cpu.Program.Len())
}

func TestLoad_FixedProgramSizeIsNotShrunkToBytecode(t *testing.T) {
	opts := baseOpts()
	opts.ProgramSize = 64
	cpu, err := Load("halt\n", "t.vm", opts)
	require.NoError(t, err)
	assert.Equal(t, 64, cpu.Program.Len())
}

func TestLoad_ResetsCPUBeforeReturning(t *testing.T) {
	cpu, err := Load("halt\n", "t.vm", baseOpts())
	require.NoError(t, err)
	assert.Equal(t, int64(0), cpu.Registers.Get(vm.IP))
	assert.Equal(t, int64(cpu.RAM.Len()), cpu.Registers.Get(vm.SP))
	assert.Equal(t, int64(cpu.CallStack.Len()), cpu.Registers.Get(vm.RP))
}

func TestLoad_SyntaxErrorPropagatesFromParser(t *testing.T) {
	_, err := Load("frobnicate\n", "t.vm", baseOpts())
	assert.Error(t, err)
}

func TestLoad_AppliesMemoryMapAliasing(t *testing.T) {
	opts := baseOpts()
	opts.MapMemory = []string{"stack=ram"}
	cpu, err := Load("halt\n", "t.vm", opts)
	require.NoError(t, err)
	assert.Same(t, cpu.RAM, cpu.CallStack)
}

func TestLoad_InvalidMemoryMapFormatErrors(t *testing.T) {
	opts := baseOpts()
	opts.MapMemory = []string{"stack"}
	_, err := Load("halt\n", "t.vm", opts)
	assert.Error(t, err)
}

func TestLoad_UnknownMemoryMapNameErrors(t *testing.T) {
	opts := baseOpts()
	opts.MapMemory = []string{"stack=bogus"}
	_, err := Load("halt\n", "t.vm", opts)
	assert.Error(t, err)
}

func TestApplyMemoryMap_LaterMappingWinsOverEarlierOne(t *testing.T) {
	program := &vm.Memory{}
	ram := &vm.Memory{}
	stack := &vm.Memory{}
	blocks := map[string]*vm.Memory{"program": program, "ram": ram, "stack": stack}
	err := applyMemoryMap(blocks, []string{"stack=ram", "stack=program"})
	require.NoError(t, err)
	assert.Same(t, program, blocks["stack"])
}
