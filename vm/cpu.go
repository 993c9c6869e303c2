package vm

import (
	"io"
	"os"

	"github.com/dextero/evilvm-go/endian"
)

// CPU owns the three memory regions, the register file, and the GPU sink
// that together make up one running machine.
type CPU struct {
	Registers *RegisterSet
	Program   *Memory
	RAM       *Memory
	CallStack *Memory
	GPU       *GPU
	Types     *TypeContext

	// AddrSize is the byte width of the "a" data type, needed by call/ret to
	// size their call-stack slot.
	AddrSize int

	// Output receives dbg/dbg.reg/dbg.regs/dbg.ram text; defaults to stderr.
	Output io.Writer

	instructionCount int64
}

// NewCPU wires a CPU around already-constructed memory blocks. Program/RAM/
// CallStack are expected to share the same char-bit width and data-type
// registry; Program and RAM may use independent endianness/policy choices
// from the caller (the loader), but operation argument decoding always uses
// the per-opcode parity rule, never the memory's own configured endianness.
func NewCPU(program, ram, callStack *Memory, types *TypeContext, addrSize int) *CPU {
	return &CPU{
		Registers: NewRegisterSet(),
		Program:   program,
		RAM:       ram,
		CallStack: callStack,
		GPU:       NewGPU(80, 24, 60),
		Types:     types,
		AddrSize:  addrSize,
		Output:    os.Stderr,
	}
}

// Reset reinitializes IP/SP/RP to their boot values: IP=0, SP=len(RAM),
// RP=len(CallStack).
func (c *CPU) Reset() {
	c.Registers = NewRegisterSet()
	c.Registers.Set(IP, 0)
	c.Registers.Set(SP, int64(c.RAM.Len()))
	c.Registers.Set(RP, int64(c.CallStack.Len()))
	c.instructionCount = 0
}

// InstructionCount reports how many instructions have executed since Reset.
func (c *CPU) InstructionCount() int64 {
	return c.instructionCount
}

// ArgsEndianness is the core per-operation invariant: odd opcodes decode
// (and must be assembled) with their argument bytes little-endian, even
// opcodes big-endian, independent of how the backing Program memory itself
// is configured. Shared by the CPU's decode path and the assembler's emit
// path so the two can never drift apart.
func ArgsEndianness(opcode int) endian.Encoding {
	if opcode%2 == 1 {
		return endian.Little
	}
	return endian.Big
}

// decodeArgs reads raw bytes at addr (sized by argDef) directly from the
// Program memory's cell array and decodes each according to argDef's type
// sequence using enc, bypassing the Program memory's own configured
// endianness entirely (per the per-operation parity rule).
func (c *CPU) decodeArgs(argDef string, addr int64, enc endian.Encoding) ([]int64, Fault) {
	values := make([]int64, 0, len(argDef))
	cur := addr
	for _, ch := range argDef {
		typeName := string(ch)
		sz, err := c.Types.Sizeof(typeName)
		if err != nil {
			return nil, &InvalidEncodingFault{Reason: err.Error()}
		}
		raw := make([]uint64, sz)
		for i := 0; i < sz; i++ {
			b, f := c.Program.ReadByte(cur + int64(i))
			if f != nil {
				return nil, f
			}
			raw[i] = b
		}
		v, decErr := endian.Decode(enc, raw, c.charBit())
		if decErr != nil {
			return nil, &InvalidEncodingFault{Reason: decErr.Error()}
		}
		values = append(values, v)
		cur += int64(sz)
	}
	return values, nil
}

func (c *CPU) charBit() int {
	return c.Program.charBit
}

// reg resolves an argument value decoded for a 'r' position into the
// Register it names.
func reg(value int64) Register {
	return Register(value)
}
