package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dextero/evilvm-go/parser"
)

// ReferenceType classifies how a symbol is used at one source location.
type ReferenceType int

const (
	RefDefinition ReferenceType = iota // symbol defined here
	RefBranch                          // jump/jmp.rel target
	RefCall                            // call/call.rel target
	RefData                            // used as a data directive value or plain expression operand
)

func (r ReferenceType) String() string {
	switch r {
	case RefDefinition:
		return "definition"
	case RefBranch:
		return "branch"
	case RefCall:
		return "call"
	case RefData:
		return "data"
	default:
		return "unknown"
	}
}

// Reference is one use of a symbol at a source location.
type Reference struct {
	Type ReferenceType
	Pos  parser.Position
}

// Symbol is a label or constant plus everywhere it's defined and used.
type Symbol struct {
	Name       string
	Definition *Reference
	References []*Reference
	IsConstant bool
	IsFunction bool // referenced by at least one call/call.rel
}

// XRefGenerator builds a cross-reference table from parsed source.
type XRefGenerator struct {
	symbols map[string]*Symbol
}

// NewXRefGenerator creates an empty generator.
func NewXRefGenerator() *XRefGenerator {
	return &XRefGenerator{symbols: make(map[string]*Symbol)}
}

// Generate parses input and returns every symbol found, keyed by name.
func (x *XRefGenerator) Generate(input, filename string) (map[string]*Symbol, error) {
	p := parser.NewParser(input, filename)
	prog, _ := p.Parse()
	if prog == nil {
		return nil, fmt.Errorf("failed to parse program")
	}

	for _, stmt := range prog.Statements {
		switch stmt.Kind {
		case parser.StmtLabel:
			x.entry(stmt.LabelName).Definition = &Reference{Type: RefDefinition, Pos: stmt.Pos}
		case parser.StmtConstantDefinition:
			sym := x.entry(stmt.ConstantName)
			sym.Definition = &Reference{Type: RefDefinition, Pos: stmt.Pos}
			sym.IsConstant = true
			x.walkExpr(stmt.ConstantValue, RefData)
		case parser.StmtData:
			for _, v := range stmt.DataValues {
				x.walkExpr(v, RefData)
			}
		case parser.StmtInstruction:
			x.collectInstructionRefs(stmt)
		}
	}

	for _, sym := range x.symbols {
		for _, ref := range sym.References {
			if ref.Type == RefCall {
				sym.IsFunction = true
				break
			}
		}
	}

	return x.symbols, nil
}

func (x *XRefGenerator) entry(name string) *Symbol {
	if sym, ok := x.symbols[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name}
	x.symbols[name] = sym
	return sym
}

func (x *XRefGenerator) addReference(name string, refType ReferenceType, pos parser.Position) {
	sym := x.entry(name)
	sym.References = append(sym.References, &Reference{Type: refType, Pos: pos})
}

func (x *XRefGenerator) walkExpr(e *parser.Expression, refType ReferenceType) {
	if e == nil {
		return
	}
	switch e.Kind {
	case parser.ExprConstantRef:
		x.addReference(e.ConstantName, refType, e.Pos)
	case parser.ExprUnary:
		x.walkExpr(e.UnaryArg, refType)
	case parser.ExprBinary:
		x.walkExpr(e.BinaryLeft, refType)
		x.walkExpr(e.BinaryRight, refType)
	}
}

// collectInstructionRefs classifies each operand's reference type by the
// instruction's mnemonic: call/call.rel targets are RefCall, the jump
// family is RefBranch, everything else is a plain RefData use.
func (x *XRefGenerator) collectInstructionRefs(stmt *parser.Statement) {
	refType := RefData
	switch stmt.Mnemonic {
	case "call", "call.rel", "call.r":
		refType = RefCall
	case "jmp", "jmp.rel", "je", "je.rel", "jne", "jne.rel",
		"ja", "ja.rel", "jae", "jae.rel", "jb", "jb.rel", "jbe", "jbe.rel",
		"loop", "loop.rel":
		refType = RefBranch
	}
	for _, op := range stmt.Operands {
		if op.Kind == parser.OperandExpression {
			x.walkExpr(op.Expression, refType)
		}
	}
}

// XRefReport renders a Generate result as a human-readable text report.
type XRefReport struct {
	symbols []*Symbol
}

// NewXRefReport sorts symbols by name for deterministic report output.
func NewXRefReport(symbols map[string]*Symbol) *XRefReport {
	sorted := make([]*Symbol, 0, len(symbols))
	for _, sym := range symbols {
		sorted = append(sorted, sym)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &XRefReport{symbols: sorted}
}

func (r *XRefReport) String() string {
	var sb strings.Builder

	sb.WriteString("Symbol Cross-Reference\n")
	sb.WriteString("======================\n\n")

	for _, sym := range r.symbols {
		sb.WriteString(fmt.Sprintf("%-30s", sym.Name))
		switch {
		case sym.IsConstant:
			sb.WriteString(" [constant]")
		case sym.IsFunction:
			sb.WriteString(" [function]")
		default:
			sb.WriteString(" [label]")
		}
		sb.WriteString("\n")

		if sym.Definition != nil {
			sb.WriteString(fmt.Sprintf("  Defined:     line %d\n", sym.Definition.Pos.Line))
		} else {
			sb.WriteString("  Defined:     (undefined)\n")
		}

		if len(sym.References) == 0 {
			sb.WriteString("  Referenced:  (never)\n")
		} else {
			sb.WriteString(fmt.Sprintf("  Referenced:  %d time(s)\n", len(sym.References)))
			byType := make(map[ReferenceType][]int)
			for _, ref := range sym.References {
				byType[ref.Type] = append(byType[ref.Type], ref.Pos.Line)
			}
			for _, refType := range []ReferenceType{RefCall, RefBranch, RefData} {
				lines := byType[refType]
				if len(lines) == 0 {
					continue
				}
				strs := make([]string, len(lines))
				for i, ln := range lines {
					strs[i] = fmt.Sprintf("%d", ln)
				}
				sb.WriteString(fmt.Sprintf("    %-10s: line(s) %s\n", refType.String(), strings.Join(strs, ", ")))
			}
		}
		sb.WriteString("\n")
	}

	var defined, undefined, unused, functions int
	for _, sym := range r.symbols {
		if sym.Definition != nil {
			defined++
		} else {
			undefined++
		}
		if len(sym.References) == 0 {
			unused++
		}
		if sym.IsFunction {
			functions++
		}
	}

	sb.WriteString("Summary\n")
	sb.WriteString("=======\n")
	sb.WriteString(fmt.Sprintf("Total symbols:     %d\n", len(r.symbols)))
	sb.WriteString(fmt.Sprintf("Defined:           %d\n", defined))
	sb.WriteString(fmt.Sprintf("Undefined:         %d\n", undefined))
	sb.WriteString(fmt.Sprintf("Unused:            %d\n", unused))
	sb.WriteString(fmt.Sprintf("Functions:         %d\n", functions))

	return sb.String()
}

// GenerateXRef is a convenience wrapper returning the rendered report text.
func GenerateXRef(input, filename string) (string, error) {
	gen := NewXRefGenerator()
	symbols, err := gen.Generate(input, filename)
	if err != nil {
		return "", err
	}
	return NewXRefReport(symbols).String(), nil
}

// GetSymbols returns every symbol found by the last Generate call.
func (x *XRefGenerator) GetSymbols() map[string]*Symbol {
	return x.symbols
}

// GetFunctions returns symbols referenced by at least one call/call.rel.
func (x *XRefGenerator) GetFunctions() []*Symbol {
	var funcs []*Symbol
	for _, sym := range x.symbols {
		if sym.IsFunction {
			funcs = append(funcs, sym)
		}
	}
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].Name < funcs[j].Name })
	return funcs
}

// GetUndefinedSymbols returns symbols referenced but never defined.
func (x *XRefGenerator) GetUndefinedSymbols() []*Symbol {
	var undefined []*Symbol
	for _, sym := range x.symbols {
		if sym.Definition == nil && len(sym.References) > 0 {
			undefined = append(undefined, sym)
		}
	}
	sort.Slice(undefined, func(i, j int) bool { return undefined[i].Name < undefined[j].Name })
	return undefined
}

// GetUnusedSymbols returns symbols defined but never referenced.
func (x *XRefGenerator) GetUnusedSymbols() []*Symbol {
	var unused []*Symbol
	for _, sym := range x.symbols {
		if sym.Definition != nil && len(sym.References) == 0 {
			unused = append(unused, sym)
		}
	}
	sort.Slice(unused, func(i, j int) bool { return unused[i].Name < unused[j].Name })
	return unused
}
