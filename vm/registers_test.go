package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister_String(t *testing.T) {
	assert.Equal(t, "ip", IP.String())
	assert.Equal(t, "a", A.String())
	assert.Contains(t, Register(99).String(), "Register")
}

func TestRegisterByName(t *testing.T) {
	r, ok := RegisterByName("rp")
	assert.True(t, ok)
	assert.Equal(t, RP, r)

	_, ok = RegisterByName("zz")
	assert.False(t, ok)
}

func TestRegisterSet_GetSet(t *testing.T) {
	rs := NewRegisterSet()
	rs.Set(A, -5)
	assert.Equal(t, int64(-5), rs.Get(A))
}

func TestRegisterSet_SetFlagsZero(t *testing.T) {
	rs := NewRegisterSet()
	rs.SetFlags(0)
	assert.True(t, rs.HasFlag(FlagZero))
	assert.False(t, rs.HasFlag(FlagGreater))
}

func TestRegisterSet_SetFlagsPositive(t *testing.T) {
	rs := NewRegisterSet()
	rs.SetFlags(5)
	assert.False(t, rs.HasFlag(FlagZero))
	assert.True(t, rs.HasFlag(FlagGreater))
}

func TestRegisterSet_SetFlagsNegative(t *testing.T) {
	rs := NewRegisterSet()
	rs.SetFlags(-5)
	assert.False(t, rs.HasFlag(FlagZero))
	assert.False(t, rs.HasFlag(FlagGreater))
}
