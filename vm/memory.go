package vm

import (
	"fmt"
	"strings"

	"github.com/dextero/evilvm-go/endian"
)

// Policy selects how a Memory instance reacts to unaligned or out-of-range
// accesses.
type Policy int

const (
	// Plain performs no alignment checking and never grows; writes past the
	// end fault.
	Plain Policy = iota
	// StrictlyAligned rejects any access whose address is not a multiple of
	// the accessed type's alignment, before the range check.
	StrictlyAligned
	// Extendable starts empty and grows (zero-filling) to accommodate any
	// write, never faulting on range.
	Extendable
)

// Memory is linear, byte-addressed storage with a configurable bits-per-cell
// width, a chosen endianness for multi-byte typed access, and one of the
// three access policies above. Each cell is a uint64 rather than a Go byte,
// since char_bit can configure up to 64 bits per cell (default 9).
type Memory struct {
	cells   []uint64
	charBit int
	endian  endian.Encoding
	policy  Policy
	types   *TypeContext
}

// NewMemory allocates a zero-filled block of size cells.
func NewMemory(size int, charBit int, enc endian.Encoding, policy Policy, types *TypeContext) *Memory {
	return &Memory{
		cells:   make([]uint64, size),
		charBit: charBit,
		endian:  enc,
		policy:  policy,
		types:   types,
	}
}

// Len returns the number of addressable cells.
func (m *Memory) Len() int { return len(m.cells) }

// ensureCapacity grows extendable memory to cover [addr, addr+n), zero-filling
// the new space. It is a no-op for non-extendable policies.
func (m *Memory) ensureCapacity(addr, n int64) {
	if m.policy != Extendable {
		return
	}
	need := addr + n
	if need <= int64(len(m.cells)) {
		return
	}
	grown := make([]uint64, need)
	copy(grown, m.cells)
	m.cells = grown
}

func (m *Memory) checkRange(addr, n int64) Fault {
	if addr < 0 {
		return &OutOfRangeFault{Address: addr, Limit: int64(len(m.cells))}
	}
	if m.policy == Extendable {
		return nil
	}
	if addr+n > int64(len(m.cells)) {
		return &OutOfRangeFault{Address: addr, Limit: int64(len(m.cells))}
	}
	return nil
}

func (m *Memory) checkAlignment(addr int64, alignment int) Fault {
	if m.policy != StrictlyAligned {
		return nil
	}
	if alignment <= 1 {
		return nil
	}
	if addr%int64(alignment) != 0 {
		return &UnalignedFault{Address: addr, Alignment: alignment}
	}
	return nil
}

// ReadByte reads a single raw cell, ignoring the data-type registry. Despite
// the name (kept for continuity with the byte-addressed memory model), the
// returned value may hold up to char_bit bits, not just 8.
func (m *Memory) ReadByte(addr int64) (uint64, Fault) {
	if f := m.checkRange(addr, 1); f != nil {
		return 0, f
	}
	return m.cells[addr], nil
}

// WriteByte writes a single raw cell, ignoring the data-type registry.
func (m *Memory) WriteByte(addr int64, value uint64) Fault {
	m.ensureCapacity(addr, 1)
	if f := m.checkRange(addr, 1); f != nil {
		return f
	}
	m.cells[addr] = value
	return nil
}

// Get decodes a value of the named type (b, r, a, w, ...) at addr.
func (m *Memory) Get(typeName string, addr int64) (int64, Fault) {
	dt, err := m.types.Lookup(typeName)
	if err != nil {
		return 0, &InvalidEncodingFault{Reason: err.Error()}
	}
	if f := m.checkAlignment(addr, dt.Alignment); f != nil {
		return 0, f
	}
	if f := m.checkRange(addr, int64(dt.SizeBytes)); f != nil {
		return 0, f
	}
	raw := m.cells[addr : addr+int64(dt.SizeBytes)]
	value, err := endian.Decode(m.endian, raw, m.charBit)
	if err != nil {
		return 0, &InvalidEncodingFault{Reason: err.Error()}
	}
	return value, nil
}

// Set encodes value as the named type and writes it at addr.
func (m *Memory) Set(typeName string, addr int64, value int64) Fault {
	dt, err := m.types.Lookup(typeName)
	if err != nil {
		return &InvalidEncodingFault{Reason: err.Error()}
	}
	m.ensureCapacity(addr, int64(dt.SizeBytes))
	if f := m.checkAlignment(addr, dt.Alignment); f != nil {
		return f
	}
	if f := m.checkRange(addr, int64(dt.SizeBytes)); f != nil {
		return f
	}
	encoded, err := endian.Encode(m.endian, value, m.charBit, dt.SizeBytes)
	if err != nil {
		return &InvalidEncodingFault{Reason: err.Error()}
	}
	copy(m.cells[addr:addr+int64(dt.SizeBytes)], encoded)
	return nil
}

// GetMulti decodes a sequence of typed values back to back, advancing addr
// by each type's size in turn, using this memory's own endianness. The CPU
// does not use it for instruction arguments: those go through decodeArgs,
// which applies the per-opcode parity rule instead.
func (m *Memory) GetMulti(argDef string, addr int64) ([]int64, Fault) {
	values := make([]int64, 0, len(argDef))
	cur := addr
	for _, ch := range argDef {
		typeName := string(ch)
		v, f := m.Get(typeName, cur)
		if f != nil {
			return nil, f
		}
		values = append(values, v)
		sz, err := m.types.Sizeof(typeName)
		if err != nil {
			return nil, &InvalidEncodingFault{Reason: err.Error()}
		}
		cur += int64(sz)
	}
	return values, nil
}

// LoadBytes copies raw cells into memory starting at addr, growing extendable
// memory as needed.
func (m *Memory) LoadBytes(addr int64, data []uint64) Fault {
	m.ensureCapacity(addr, int64(len(data)))
	if f := m.checkRange(addr, int64(len(data))); f != nil {
		return f
	}
	copy(m.cells[addr:addr+int64(len(data))], data)
	return nil
}

// Dump renders a hexdump-style listing of the whole block: cells grouped by
// alignment, words per line sized to fit 80 columns, with a parallel
// printable-ASCII column and an address prefix per line.
func (m *Memory) Dump(alignment int) string {
	if alignment < 1 {
		alignment = 1
	}
	const lineLength = 80
	var cellMax uint64
	if m.charBit >= 64 {
		cellMax = ^uint64(0)
	} else {
		cellMax = (uint64(1) << uint(m.charBit)) - 1
	}
	byteStrLen := len(fmt.Sprintf("%x", cellMax))
	wordsPerLine := ((lineLength - 10 - 2) / ((alignment*(byteStrLen+1+1) + 1 + 1)))
	if wordsPerLine < 1 {
		wordsPerLine = 1
	}

	var out strings.Builder
	data := m.cells
	perLine := wordsPerLine * alignment

	for lineStart := 0; lineStart < len(data); lineStart += perLine {
		lineEnd := lineStart + perLine
		if lineEnd > len(data) {
			lineEnd = len(data)
		}
		line := data[lineStart:lineEnd]

		fmt.Fprintf(&out, "%08x  ", lineStart)

		var hexParts []string
		var asciiParts []string
		for g := 0; g < len(line); g += alignment {
			ge := g + alignment
			if ge > len(line) {
				ge = len(line)
			}
			group := line[g:ge]
			var hexGroup strings.Builder
			var asciiGroup strings.Builder
			for i, b := range group {
				if i > 0 {
					hexGroup.WriteString(" ")
				}
				fmt.Fprintf(&hexGroup, "%0*x", byteStrLen, b)
				asciiGroup.WriteString(toPrintable(b))
			}
			hexParts = append(hexParts, hexGroup.String())
			asciiParts = append(asciiParts, asciiGroup.String())
		}
		out.WriteString(strings.Join(hexParts, "  "))
		out.WriteString("  ")
		out.WriteString(strings.Join(asciiParts, " "))
		out.WriteString("\n")
	}
	return out.String()
}

func toPrintable(b uint64) string {
	if b >= 0x20 && b < 0x7f {
		return string(rune(b))
	}
	return "."
}
