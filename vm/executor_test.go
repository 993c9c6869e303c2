package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dextero/evilvm-go/endian"
)

func TestArgsEndianness_OddOpcodeIsLittleEvenIsBig(t *testing.T) {
	assert.Equal(t, endian.Little, ArgsEndianness(1))
	assert.Equal(t, endian.Big, ArgsEndianness(2))
	assert.Equal(t, endian.Little, ArgsEndianness(99))
	assert.Equal(t, endian.Big, ArgsEndianness(0))
}

// writeInstruction encodes one instruction's opcode byte plus its arguments
// (already-resolved register indices or immediates) directly into program
// memory, bypassing the assembler entirely — used to drive Step/Run against
// a hand-built program without exercising the parser.
func writeInstruction(t *testing.T, program *Memory, pos int64, op *Operation, values []int64) int64 {
	t.Helper()
	require.Nil(t, program.WriteByte(pos, uint64(op.Opcode)))
	pos++
	enc := ArgsEndianness(op.Opcode)
	for i, ch := range op.ArgDef {
		typeName := string(ch)
		sz, err := program.types.Sizeof(typeName)
		require.NoError(t, err)
		encoded, encErr := endian.Encode(enc, values[i], program.charBit, sz)
		require.NoError(t, encErr)
		require.Nil(t, program.LoadBytes(pos, encoded))
		pos += int64(sz)
	}
	return pos
}

func TestStep_FetchesDecodesAndExecutesOneInstruction(t *testing.T) {
	c := newTestCPU()
	movOp, ok := LookupMnemonic("movb.i2r")
	require.True(t, ok)
	writeInstruction(t, c.Program, 0, movOp, []int64{int64(A), 42})

	halt, f := c.Step()
	require.Nil(t, f)
	assert.Nil(t, halt)
	assert.Equal(t, int64(42), c.Registers.Get(A))
	assert.Equal(t, int64(1), c.InstructionCount())
}

func TestStep_AdvancesIPPastTheFetchedInstruction(t *testing.T) {
	c := newTestCPU()
	movOp, _ := LookupMnemonic("movb.i2r")
	end := writeInstruction(t, c.Program, 0, movOp, []int64{int64(A), 7})

	_, f := c.Step()
	require.Nil(t, f)
	assert.Equal(t, end, c.Registers.Get(IP))
}

func TestStep_InvalidOpcodeFaults(t *testing.T) {
	c := newTestCPU()
	require.Nil(t, c.Program.WriteByte(0, 250))
	_, f := c.Step()
	require.NotNil(t, f)
	_, ok := f.(*InvalidOpcodeFault)
	assert.True(t, ok)
}

func TestRun_StopsAtHalt(t *testing.T) {
	c := newTestCPU()
	movOp, _ := LookupMnemonic("movb.i2r")
	haltOp, _ := LookupMnemonic("halt")
	pos := writeInstruction(t, c.Program, 0, movOp, []int64{int64(A), 9})
	writeInstruction(t, c.Program, pos, haltOp, nil)

	result := c.Run(0)
	assert.Equal(t, Halted, result)
	assert.Equal(t, int64(9), c.Registers.Get(A))
}

func TestRun_BudgetExhaustedWithoutHalt(t *testing.T) {
	c := newTestCPU()
	jmpOp, _ := LookupMnemonic("jmp")
	writeInstruction(t, c.Program, 0, jmpOp, []int64{0})

	result := c.Run(3)
	assert.Equal(t, BudgetExhausted, result)
	assert.Equal(t, int64(3), c.InstructionCount())
}
