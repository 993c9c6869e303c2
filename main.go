package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dextero/evilvm-go/assembler"
	"github.com/dextero/evilvm-go/config"
	"github.com/dextero/evilvm-go/loader"
	"github.com/dextero/evilvm-go/vm"
)

func main() {
	// Config-then-flags layering: the config file (or its built-in
	// defaults, if absent) seeds every flag's default value, so an
	// explicit flag on the command line always wins and an absent one
	// falls through to whatever the config file says.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "evilvm: %v, falling back to built-in defaults\n", err)
		cfg = config.DefaultConfig()
	}

	var (
		programSize   int
		ramSize       int
		stackSize     int
		mapMemory     string
		charBit       int
		wordSize      int
		wordAlignment int
		addrSize      int
		addrAlignment int
		haltAfter     int
		gpuWidth      int
		gpuHeight     int
		gpuRefreshHz  float64
		terminal      bool
	)

	// Each option is registered under both its short and long name, sharing
	// one backing variable, matching the CLI's documented -x/--xxx pairs.
	intFlag := func(p *int, short, long string, value int, usage string) {
		flag.IntVar(p, short, value, usage)
		flag.IntVar(p, long, value, usage)
	}
	intFlag(&programSize, "p", "program-size", 0, "Size, in bytes, of the program address space (0 = exact bytecode length)")
	intFlag(&ramSize, "r", "ram-size", cfg.Execution.RAMWords, "Size, in machine words, of the RAM address space")
	intFlag(&stackSize, "s", "stack-size", cfg.Execution.StackWords, "Size, in address-words, of the return-stack address space")
	flag.StringVar(&mapMemory, "m", "", "Comma-separated dst=src memory aliases, e.g. ram=program")
	flag.StringVar(&mapMemory, "map-memory", "", "Comma-separated dst=src memory aliases, e.g. ram=program")
	intFlag(&charBit, "b", "char-bit", cfg.Types.CharBit, "Number of bits per byte")
	intFlag(&wordSize, "w", "word-size", cfg.Types.WordSize, "Number of bytes per machine word")
	intFlag(&wordAlignment, "W", "word-alignment", cfg.Types.WordAlignment, "Machine word memory alignment (0 = equal to word size)")
	intFlag(&addrSize, "a", "addr-size", cfg.Types.AddrSize, "Number of bytes per memory address")
	intFlag(&addrAlignment, "A", "addr-alignment", cfg.Types.AddrAlignment, "Address memory alignment (0 = equal to address size)")
	intFlag(&haltAfter, "H", "halt-after-instructions", int(cfg.Execution.MaxCycles), "Halt VM after executing this many instructions (0 = unbounded)")
	intFlag(&gpuWidth, "g", "gpu-width", cfg.GPU.Width, "GPU character grid width")
	intFlag(&gpuHeight, "G", "gpu-height", cfg.GPU.Height, "GPU character grid height")
	flag.Float64Var(&gpuRefreshHz, "gpu-refresh-hz", cfg.GPU.RefreshRateHz, "GPU refresh rate in Hz")
	flag.BoolVar(&terminal, "t", false, "Render the GPU to a real terminal screen instead of plain stdout")
	flag.BoolVar(&terminal, "terminal", false, "Render the GPU to a real terminal screen instead of plain stdout")

	flag.Usage = printUsage
	flag.Parse()

	logLevel := os.Getenv("LOGLEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}
	if logLevel == "DEBUG" {
		assembler.SetDebug(true)
	}
	log.SetFlags(0)
	log.SetPrefix("evilvm: ")

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	sourcePath := flag.Arg(0)

	source, err := os.ReadFile(sourcePath) // #nosec G304 -- user-specified program source path
	if err != nil {
		fmt.Fprintf(os.Stderr, "evilvm: cannot read %s: %v\n", sourcePath, err)
		os.Exit(1)
	}

	var mapEntries []string
	if mapMemory != "" {
		mapEntries = splitNonEmpty(mapMemory, ',')
	}

	opts := loader.Options{
		ProgramSize:   programSize,
		RAMWords:      ramSize,
		StackWords:    stackSize,
		MapMemory:     mapEntries,
		CharBit:       charBit,
		WordSize:      wordSize,
		WordAlignment: wordAlignment,
		AddrSize:      addrSize,
		AddrAlignment: addrAlignment,
		GPUWidth:      gpuWidth,
		GPUHeight:     gpuHeight,
		GPURefreshHz:  gpuRefreshHz,
	}

	cpu, err := loader.Load(string(source), sourcePath, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evilvm: %v\n", err)
		os.Exit(1)
	}

	var sink *vm.TerminalSink
	if terminal {
		sink, err = vm.NewTerminalSink()
		if err != nil {
			fmt.Fprintf(os.Stderr, "evilvm: cannot start terminal: %v\n", err)
			os.Exit(1)
		}
		sink.Attach(cpu.GPU)
	}

	// Both a clean halt and budget exhaustion are a successful run per the
	// CLI's exit-code contract; only assembler/setup failure above exits
	// non-zero. os.Exit skips defers, so the terminal sink (if any) is
	// closed explicitly before exiting rather than via defer.
	cpu.Run(int64(haltAfter))
	if sink != nil {
		sink.Close()
	}
	os.Exit(0)
}

// splitNonEmpty splits s on sep, dropping empty fields (a trailing comma or
// doubled separator shouldn't produce a bogus empty mapping).
func splitNonEmpty(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `evilvm - run a program on the Evil VM

Usage: evilvm [options] <source-file>

Recognized environment variables:
  LOGLEVEL - diagnostic threshold. Default is INFO; DEBUG also prints the
             assembled instruction listing as it's emitted.

Flag defaults are seeded from the config file (see config.GetConfigPath);
an explicit flag always overrides the config file's value.

Options:
`)
	flag.PrintDefaults()
}
