package tools

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dextero/evilvm-go/parser"
)

// FormatStyle selects how much whitespace the formatter spends on column
// alignment.
type FormatStyle int

const (
	FormatDefault  FormatStyle = iota // labels own a line, aligned operand column
	FormatCompact                     // minimal whitespace, no column alignment
	FormatExpanded                    // extra whitespace for readability
)

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	Style             FormatStyle
	InstructionColumn int // column mnemonics/directives start at
	OperandColumn     int // column operands start at, when aligned
	AlignOperands     bool
}

// DefaultFormatOptions returns the formatter's default column layout.
func DefaultFormatOptions() *FormatOptions {
	return &FormatOptions{
		Style:             FormatDefault,
		InstructionColumn: 8,
		OperandColumn:     16,
		AlignOperands:     true,
	}
}

// CompactFormatOptions returns options for single-space, unaligned output.
func CompactFormatOptions() *FormatOptions {
	return &FormatOptions{Style: FormatCompact}
}

// ExpandedFormatOptions returns options with wider columns than the default.
func ExpandedFormatOptions() *FormatOptions {
	opts := DefaultFormatOptions()
	opts.Style = FormatExpanded
	opts.InstructionColumn = 12
	opts.OperandColumn = 28
	return opts
}

// Formatter re-renders a parsed Program as source text in a canonical
// layout, the way an auto-indenter reformats code without changing its
// meaning.
type Formatter struct {
	options *FormatOptions
	output  strings.Builder
}

// NewFormatter creates a formatter using options (DefaultFormatOptions if
// nil).
func NewFormatter(options *FormatOptions) *Formatter {
	if options == nil {
		options = DefaultFormatOptions()
	}
	return &Formatter{options: options}
}

// Format parses input and re-renders it in canonical layout.
func (f *Formatter) Format(input, filename string) (string, error) {
	p := parser.NewParser(input, filename)
	prog, err := p.Parse()
	if err != nil {
		return "", fmt.Errorf("parse error: %w", err)
	}

	f.output.Reset()
	for _, stmt := range prog.Statements {
		f.formatStatement(stmt)
	}
	return f.output.String(), nil
}

func (f *Formatter) formatStatement(stmt *parser.Statement) {
	switch stmt.Kind {
	case parser.StmtLabel:
		f.output.WriteString(stmt.LabelName)
		f.output.WriteString(":\n")

	case parser.StmtConstantDefinition:
		f.output.WriteString(stmt.ConstantName)
		f.output.WriteString(" = ")
		f.output.WriteString(renderExpr(stmt.ConstantValue))
		f.output.WriteString("\n")

	case parser.StmtData:
		line := strings.Builder{}
		if f.options.Style != FormatCompact {
			f.padToColumn(&line, f.options.InstructionColumn)
		}
		line.WriteString(dataDirectiveName(stmt.DataType))
		line.WriteString(" ")
		values := make([]string, len(stmt.DataValues))
		for i, v := range stmt.DataValues {
			values[i] = renderExpr(v)
		}
		line.WriteString(strings.Join(values, ", "))
		f.output.WriteString(line.String())
		f.output.WriteString("\n")

	case parser.StmtInstruction:
		line := strings.Builder{}
		if f.options.Style == FormatCompact {
			line.WriteString(stmt.Mnemonic)
		} else {
			f.padToColumn(&line, f.options.InstructionColumn)
			line.WriteString(stmt.Mnemonic)
			if len(stmt.Operands) > 0 && f.options.AlignOperands {
				f.padToColumn(&line, f.options.OperandColumn)
			} else if len(stmt.Operands) > 0 {
				line.WriteString(" ")
			}
		}
		if len(stmt.Operands) > 0 {
			if f.options.Style == FormatCompact {
				line.WriteString(" ")
			}
			operands := make([]string, len(stmt.Operands))
			for i, op := range stmt.Operands {
				operands[i] = renderOperand(op)
			}
			line.WriteString(strings.Join(operands, ", "))
		}
		f.output.WriteString(line.String())
		f.output.WriteString("\n")
	}
}

func dataDirectiveName(dataType string) string {
	switch dataType {
	case "b":
		return "db"
	case "a":
		return "da"
	case "w":
		return "dw"
	default:
		return "d" + dataType
	}
}

func renderOperand(op *parser.InstructionOperand) string {
	if op.Kind == parser.OperandRegister {
		return op.Register
	}
	return renderExpr(op.Expression)
}

// renderExpr renders an Expression tree back to source syntax. Binary
// nodes are always fully parenthesized: the formatter favors unambiguous
// output over mirroring the author's original spacing and grouping. Unary
// nodes render as a bare prefix with no parentheses of their own.
func renderExpr(e *parser.Expression) string {
	switch e.Kind {
	case parser.ExprNumeric:
		return strconv.FormatInt(e.NumericValue, 10)
	case parser.ExprCharacter:
		return "'" + string(rune(e.CharValue)) + "'"
	case parser.ExprConstantRef:
		return e.ConstantName
	case parser.ExprUnary:
		switch e.UnaryOp {
		case parser.UnarySizeof:
			return "sizeof " + e.UnaryTypeName
		case parser.UnaryAlignof:
			return "alignof " + e.UnaryTypeName
		case parser.UnaryMinus:
			return "-" + renderExpr(e.UnaryArg)
		default:
			return "+" + renderExpr(e.UnaryArg)
		}
	case parser.ExprBinary:
		return "(" + renderExpr(e.BinaryLeft) + " " + binaryOpSymbol(e.BinaryOp) + " " + renderExpr(e.BinaryRight) + ")"
	default:
		return "?"
	}
}

func binaryOpSymbol(op parser.BinaryOperator) string {
	switch op {
	case parser.BinaryAdd:
		return "+"
	case parser.BinarySub:
		return "-"
	case parser.BinaryMul:
		return "*"
	case parser.BinaryDiv:
		return "/"
	case parser.BinaryShl:
		return "<<"
	default:
		return ">>"
	}
}

// padToColumn pads sb out to column, or adds a single separating space if
// already past it.
func (f *Formatter) padToColumn(sb *strings.Builder, column int) {
	current := sb.Len()
	if current < column {
		sb.WriteString(strings.Repeat(" ", column-current))
	} else {
		sb.WriteString(" ")
	}
}

// FormatString formats input with default options.
func FormatString(input, filename string) (string, error) {
	return NewFormatter(DefaultFormatOptions()).Format(input, filename)
}

// FormatStringWithStyle formats input with the given style's options.
func FormatStringWithStyle(input, filename string, style FormatStyle) (string, error) {
	var options *FormatOptions
	switch style {
	case FormatCompact:
		options = CompactFormatOptions()
	case FormatExpanded:
		options = ExpandedFormatOptions()
	default:
		options = DefaultFormatOptions()
	}
	return NewFormatter(options).Format(input, filename)
}
