package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dextero/evilvm-go/endian"
)

func newTypes() *TypeContext {
	tc := NewTypeContext()
	tc.SetWord(7, 7)
	tc.SetAddress(5, 5)
	return tc
}

func TestMemory_SetGetRoundTrip(t *testing.T) {
	m := NewMemory(16, 8, endian.Big, Plain, newTypes())
	require.Nil(t, m.Set("w", 0, 12345))
	v, f := m.Get("w", 0)
	require.Nil(t, f)
	assert.Equal(t, int64(12345), v)
}

func TestMemory_CharBit9DefaultHoldsWideCells(t *testing.T) {
	// char_bit's documented default is 9; a single cell must be able to
	// hold values up to 511 without truncating against Go's 8-bit byte.
	m := NewMemory(4, 9, endian.Little, Plain, newTypes())
	require.Nil(t, m.WriteByte(0, 500))
	got, f := m.ReadByte(0)
	require.Nil(t, f)
	assert.Equal(t, uint64(500), got)
}

func TestMemory_PlainFaultsOutOfRange(t *testing.T) {
	m := NewMemory(4, 8, endian.Big, Plain, newTypes())
	_, f := m.ReadByte(10)
	require.NotNil(t, f)
	_, ok := f.(*OutOfRangeFault)
	assert.True(t, ok)
}

func TestMemory_PlainNeverGrows(t *testing.T) {
	m := NewMemory(2, 8, endian.Big, Plain, newTypes())
	f := m.WriteByte(5, 1)
	require.NotNil(t, f)
	assert.Equal(t, 2, m.Len())
}

func TestMemory_ExtendableGrowsZeroFilled(t *testing.T) {
	m := NewMemory(0, 8, endian.Big, Extendable, newTypes())
	require.Nil(t, m.Set("w", 14, 99))
	assert.GreaterOrEqual(t, m.Len(), 21)
	v, f := m.Get("w", 0)
	require.Nil(t, f)
	assert.Zero(t, v)
}

func TestMemory_StrictlyAlignedRejectsMisalignedAccess(t *testing.T) {
	m := NewMemory(32, 8, endian.Big, StrictlyAligned, newTypes())
	f := m.Set("w", 1, 7)
	require.NotNil(t, f)
	_, ok := f.(*UnalignedFault)
	assert.True(t, ok)
}

func TestMemory_StrictlyAlignedAcceptsAlignedAccess(t *testing.T) {
	m := NewMemory(32, 8, endian.Big, StrictlyAligned, newTypes())
	require.Nil(t, m.Set("w", 7, 7))
}

func TestMemory_GetMultiDecodesArgDefInOrder(t *testing.T) {
	m := NewMemory(32, 8, endian.Big, Plain, newTypes())
	require.Nil(t, m.Set("r", 0, 3))
	require.Nil(t, m.Set("a", 1, 1000))
	values, f := m.GetMulti("ra", 0)
	require.Nil(t, f)
	assert.Equal(t, []int64{3, 1000}, values)
}

func TestMemory_LoadBytesCopiesCellsAndGrows(t *testing.T) {
	m := NewMemory(0, 8, endian.Big, Extendable, newTypes())
	require.Nil(t, m.LoadBytes(0, []uint64{1, 2, 3}))
	assert.Equal(t, 3, m.Len())
	v, f := m.ReadByte(2)
	require.Nil(t, f)
	assert.Equal(t, uint64(3), v)
}

func TestMemory_SetRejectsUnknownType(t *testing.T) {
	m := NewMemory(8, 8, endian.Big, Plain, newTypes())
	f := m.Set("z", 0, 1)
	require.NotNil(t, f)
	_, ok := f.(*InvalidEncodingFault)
	assert.True(t, ok)
}

func TestMemory_DumpIncludesAddressAndPrintableColumn(t *testing.T) {
	m := NewMemory(4, 8, endian.Big, Plain, newTypes())
	require.Nil(t, m.WriteByte(0, uint64('A')))
	out := m.Dump(1)
	assert.Contains(t, out, "00000000")
	assert.Contains(t, out, "A")
}
