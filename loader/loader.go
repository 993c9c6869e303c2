// Package loader builds a ready-to-run CPU from assembly source text and a
// set of CLI-controlled sizing options: it owns assembling the program into
// its memory block, sizing RAM and the call stack, and applying any
// requested memory-block aliasing before the machine's first Reset.
package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/dextero/evilvm-go/assembler"
	"github.com/dextero/evilvm-go/endian"
	"github.com/dextero/evilvm-go/parser"
	"github.com/dextero/evilvm-go/vm"
)

// Options mirrors the CLI flags that control memory sizing and layout.
type Options struct {
	// ProgramSize, in bytes. Zero means auto-size: the program block grows
	// to exactly fit the assembled bytecode.
	ProgramSize int
	// RAMWords is RAM's size in machine words (multiplied by WordSize).
	RAMWords int
	// StackWords is the call stack's size in address-words (multiplied by
	// AddrSize).
	StackWords int
	// MapMemory holds "dst=src" strings naming one of "program", "ram",
	// "stack"; later entries win, applied in order.
	MapMemory []string

	CharBit       int
	WordSize      int
	WordAlignment int
	AddrSize      int
	AddrAlignment int

	// GPUWidth/GPUHeight/GPURefreshHz size and pace the GPU's character
	// grid. Zero width or height keeps vm.NewCPU's own 80x24x60 default.
	GPUWidth     int
	GPUHeight    int
	GPURefreshHz float64
}

// Load parses and assembles source, then builds a CPU with program/ram/
// stack memory blocks sized per opts, with any requested aliasing applied.
// The returned CPU has already had Reset called, ready for Run.
func Load(source, filename string, opts Options) (*vm.CPU, error) {
	types := vm.NewTypeContext()
	wordAlignment := opts.WordAlignment
	if wordAlignment == 0 {
		wordAlignment = opts.WordSize
	}
	addrAlignment := opts.AddrAlignment
	if addrAlignment == 0 {
		addrAlignment = opts.AddrSize
	}
	types.SetWord(opts.WordSize, wordAlignment)
	types.SetAddress(opts.AddrSize, addrAlignment)

	p := parser.NewParser(source, filename)
	prog, err := p.Parse()
	if err != nil {
		return nil, err
	}

	symbols, err := assembler.Layout(prog, types)
	if err != nil {
		return nil, err
	}

	var programMem *vm.Memory
	if opts.ProgramSize <= 0 {
		programMem = vm.NewMemory(0, opts.CharBit, endian.Big, vm.Extendable, types)
	} else {
		programMem = vm.NewMemory(opts.ProgramSize, opts.CharBit, endian.Big, vm.Plain, types)
	}
	if err := assembler.Emit(prog, symbols, types, programMem, opts.CharBit); err != nil {
		return nil, err
	}

	ramMem := vm.NewMemory(opts.WordSize*opts.RAMWords, opts.CharBit, endian.Big, vm.StrictlyAligned, types)
	stackMem := vm.NewMemory(opts.AddrSize*opts.StackWords, opts.CharBit, endian.Big, vm.StrictlyAligned, types)

	blocks := map[string]*vm.Memory{"program": programMem, "ram": ramMem, "stack": stackMem}
	if err := applyMemoryMap(blocks, opts.MapMemory); err != nil {
		return nil, err
	}

	cpu := vm.NewCPU(blocks["program"], blocks["ram"], blocks["stack"], types, opts.AddrSize)
	if opts.GPUWidth > 0 && opts.GPUHeight > 0 {
		cpu.GPU = vm.NewGPU(opts.GPUWidth, opts.GPUHeight, opts.GPURefreshHz)
	}
	// refresh/out are specified to render to the host's text output; a
	// caller wanting a different front-end (e.g. a terminal sink) replaces
	// this after Load returns.
	cpu.GPU.Sink = vm.StdoutSink(os.Stdout)
	cpu.Reset()
	return cpu, nil
}

// applyMemoryMap processes "dst=src" mappings in order, replacing dst's
// block wholesale with src's (the two names now share the same backing
// Memory). A later mapping observes any earlier mapping's effect, matching
// the reference loader's plain dict reassignment.
func applyMemoryMap(blocks map[string]*vm.Memory, mappings []string) error {
	for _, mapping := range mappings {
		parts := strings.SplitN(mapping, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("loader: invalid memory mapping %q, expected dst=src", mapping)
		}
		dst, src := parts[0], parts[1]
		srcMem, ok := blocks[src]
		if !ok {
			return fmt.Errorf("loader: invalid memory mapping %q: unknown block %q", mapping, src)
		}
		if _, ok := blocks[dst]; !ok {
			return fmt.Errorf("loader: invalid memory mapping %q: unknown block %q", mapping, dst)
		}
		blocks[dst] = srcMem
	}
	return nil
}
