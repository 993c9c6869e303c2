package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dextero/evilvm-go/endian"
)

func newTestCPU() *CPU {
	types := newTypes()
	program := NewMemory(64, 8, endian.Big, Plain, types)
	ram := NewMemory(64, 8, endian.Big, Plain, types)
	stack := NewMemory(40, 8, endian.Big, Plain, types)
	cpu := NewCPU(program, ram, stack, types, 5)
	cpu.Reset()
	return cpu
}

func TestOp_AddSetsFlagsFromResult(t *testing.T) {
	c := newTestCPU()
	c.Registers.Set(A, 5)
	require.Nil(t, opAddB(c, []int64{int64(A), 10}))
	assert.Equal(t, int64(15), c.Registers.Get(A))
	assert.True(t, c.Registers.HasFlag(FlagGreater))
	assert.False(t, c.Registers.HasFlag(FlagZero))
}

func TestOp_SubToZeroSetsZeroFlag(t *testing.T) {
	c := newTestCPU()
	c.Registers.Set(A, 10)
	require.Nil(t, opSubB(c, []int64{int64(A), 10}))
	assert.Zero(t, c.Registers.Get(A))
	assert.True(t, c.Registers.HasFlag(FlagZero))
}

func TestOp_MulR(t *testing.T) {
	c := newTestCPU()
	c.Registers.Set(A, 6)
	c.Registers.Set(B, 7)
	require.Nil(t, opMulR(c, []int64{int64(A), int64(B)}))
	assert.Equal(t, int64(42), c.Registers.Get(A))
}

func TestOp_ShlShr(t *testing.T) {
	c := newTestCPU()
	c.Registers.Set(A, 1)
	require.Nil(t, opShlB(c, []int64{int64(A), 4}))
	assert.Equal(t, int64(16), c.Registers.Get(A))
	require.Nil(t, opShrB(c, []int64{int64(A), 2}))
	assert.Equal(t, int64(4), c.Registers.Get(A))
}

func TestOp_CmpRSetsFlagsWithoutMutatingOperands(t *testing.T) {
	c := newTestCPU()
	c.Registers.Set(A, 3)
	c.Registers.Set(B, 5)
	require.Nil(t, opCmpR(c, []int64{int64(A), int64(B)}))
	assert.Equal(t, int64(3), c.Registers.Get(A))
	assert.False(t, c.Registers.HasFlag(FlagGreater))
	assert.False(t, c.Registers.HasFlag(FlagZero))
}

func TestOp_JmpSetsIP(t *testing.T) {
	c := newTestCPU()
	require.Nil(t, opJmp(c, []int64{42}))
	assert.Equal(t, int64(42), c.Registers.Get(IP))
}

func TestOp_JeTakenOnlyWhenZeroFlagSet(t *testing.T) {
	c := newTestCPU()
	c.Registers.Set(IP, 0)
	c.Registers.SetFlags(0)
	require.Nil(t, opJe(c, []int64{99}))
	assert.Equal(t, int64(99), c.Registers.Get(IP))

	c.Registers.Set(IP, 0)
	c.Registers.SetFlags(5)
	require.Nil(t, opJe(c, []int64{99}))
	assert.Equal(t, int64(0), c.Registers.Get(IP))
}

func TestOp_JmpRelAddsToIP(t *testing.T) {
	c := newTestCPU()
	c.Registers.Set(IP, 10)
	require.Nil(t, opJmpRel(c, []int64{5}))
	assert.Equal(t, int64(15), c.Registers.Get(IP))
}

func TestOp_LoopDecrementsAndBranchesUntilZero(t *testing.T) {
	c := newTestCPU()
	c.Registers.Set(C, 2)
	require.Nil(t, opLoop(c, []int64{7}))
	assert.Equal(t, int64(1), c.Registers.Get(C))
	assert.Equal(t, int64(7), c.Registers.Get(IP))

	c.Registers.Set(IP, 0)
	require.Nil(t, opLoop(c, []int64{7}))
	assert.Zero(t, c.Registers.Get(C))
	assert.Equal(t, int64(0), c.Registers.Get(IP))
}

func TestOp_CallAndRetRoundTrip(t *testing.T) {
	c := newTestCPU()
	c.Registers.Set(IP, 20)
	require.Nil(t, opCall(c, []int64{100}))
	assert.Equal(t, int64(100), c.Registers.Get(IP))

	require.Nil(t, opRet(c, nil))
	assert.Equal(t, int64(20), c.Registers.Get(IP))
}

func TestOp_CallRUsesRegisterTarget(t *testing.T) {
	c := newTestCPU()
	c.Registers.Set(B, 55)
	c.Registers.Set(IP, 5)
	require.Nil(t, opCallR(c, []int64{int64(B)}))
	assert.Equal(t, int64(55), c.Registers.Get(IP))
}

func TestOp_HaltReturnsHaltRequested(t *testing.T) {
	c := newTestCPU()
	f := opHalt(c, nil)
	_, ok := f.(*HaltRequested)
	assert.True(t, ok)
}

func TestOp_MovStoreLoadRoundTripThroughRAM(t *testing.T) {
	c := newTestCPU()
	c.Registers.Set(A, 123)
	require.Nil(t, opMovbR2M(c, []int64{0, int64(A)}))
	require.Nil(t, opMovbM2R(c, []int64{int64(B), 0}))
	assert.Equal(t, int64(123), c.Registers.Get(B))
}

func TestOp_IndirectLoadSetsFlagsFromLoadedValue(t *testing.T) {
	c := newTestCPU()
	require.Nil(t, c.RAM.Set("b", 0, 0))
	c.Registers.Set(A, 0)
	require.Nil(t, opLdbR(c, []int64{int64(B), int64(A)}))
	assert.True(t, c.Registers.HasFlag(FlagZero))
}

func TestOp_PushPopIsFullDescending(t *testing.T) {
	c := newTestCPU()
	initialSP := c.Registers.Get(SP)
	c.Registers.Set(A, 77)
	require.Nil(t, opPush(c, []int64{int64(A)}))
	assert.Less(t, c.Registers.Get(SP), initialSP)

	require.Nil(t, opPop(c, []int64{int64(B)}))
	assert.Equal(t, int64(77), c.Registers.Get(B))
	assert.Equal(t, initialSP, c.Registers.Get(SP))
}
