package parser

import (
	"strings"

	"github.com/dextero/evilvm-go/vm"
)

// Program is the full result of parsing a source file: every statement in
// source order. Label and constant offsets are not known yet — those are
// resolved by the assembler's layout pass, which walks Statements to build
// the SymbolTable.
type Program struct {
	Statements []*Statement
}

// Parser turns source text into a Program, one physical line at a time —
// each line is exactly one Statement (label, constant definition, data
// directive, instruction) or nothing (blank line / comment-only line).
type Parser struct {
	input    string
	filename string
	errors   ErrorList
}

// NewParser creates a parser over input.
func NewParser(input, filename string) *Parser {
	return &Parser{input: input, filename: filename}
}

// Errors returns every error accumulated while parsing.
func (p *Parser) Errors() *ErrorList {
	return &p.errors
}

// Parse tokenizes and parses the whole input, returning a Program. Parse
// errors are both returned and accumulated in Errors() so a caller can
// report every problem in a file, not just the first.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{}

	lexer := NewLexer(p.input, p.filename)
	allTokens := lexer.TokenizeAll()

	for _, lineTokens := range splitLines(allTokens) {
		if len(lineTokens) == 0 {
			continue
		}
		stmt, err := p.parseStatement(lineTokens)
		if err != nil {
			if perr, ok := err.(*Error); ok {
				p.errors.Add(perr)
			}
			continue
		}
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}

	if p.errors.HasErrors() {
		return prog, &p.errors
	}
	return prog, nil
}

// splitLines groups a flat token stream by source line number.
func splitLines(tokens []Token) [][]Token {
	var lines [][]Token
	var current []Token
	lastLine := -1
	for _, t := range tokens {
		if t.Type == TokenEOF {
			break
		}
		if lastLine != -1 && t.Pos.Line != lastLine {
			lines = append(lines, current)
			current = nil
		}
		current = append(current, t)
		lastLine = t.Pos.Line
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// parseStatement dispatches one line's tokens to the matching Statement
// form: `IDENT :` -> Label, `IDENT = expr` -> ConstantDefinition,
// `IDENT ...` where IDENT names a data directive (db/da/dw) -> Data,
// `IDENT ...` where IDENT names a known mnemonic -> Instruction. Symbol
// definitions themselves (and duplicate-name detection) are the assembler
// layout pass's job, not the parser's — at this point no offsets exist yet.
func (p *Parser) parseStatement(tokens []Token) (*Statement, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	first := tokens[0]
	if first.Type != TokenIdentifier {
		return nil, NewErrorWithContext(first.Pos, ErrorSyntax, "expected label, constant, directive or instruction", first.Literal)
	}

	if len(tokens) >= 2 && tokens[1].Type == TokenPunctuation && tokens[1].Literal == ":" {
		return &Statement{Kind: StmtLabel, Pos: first.Pos, LabelName: first.Literal}, nil
	}

	if len(tokens) >= 2 && tokens[1].Type == TokenPunctuation && tokens[1].Literal == "=" {
		expr, err := BuildExpression(tokens[2:])
		if err != nil {
			return nil, err
		}
		return &Statement{Kind: StmtConstantDefinition, Pos: first.Pos, ConstantName: first.Literal, ConstantValue: expr}, nil
	}

	if dataType, ok := dataDirectiveType(first.Literal); ok {
		groups := commaSeparatedGroups(tokens[1:])
		var values []*Expression
		for _, g := range groups {
			if len(g) == 1 && g[0].Type == TokenString {
				for _, ch := range unquote(g[0].Literal) {
					values = append(values, &Expression{Kind: ExprCharacter, Pos: g[0].Pos, CharValue: byte(ch)})
				}
				continue
			}
			expr, err := BuildExpression(g)
			if err != nil {
				return nil, err
			}
			values = append(values, expr)
		}
		return &Statement{Kind: StmtData, Pos: first.Pos, DataType: dataType, DataValues: values}, nil
	}

	if _, ok := vm.LookupMnemonic(first.Literal); ok {
		operands, err := parseOperands(tokens[1:])
		if err != nil {
			return nil, err
		}
		return &Statement{Kind: StmtInstruction, Pos: first.Pos, Mnemonic: first.Literal, Operands: operands}, nil
	}

	return nil, NewErrorWithContext(first.Pos, ErrorSyntax, "unknown mnemonic or directive", first.Literal)
}

func dataDirectiveType(name string) (string, bool) {
	switch name {
	case "db":
		return "b", true
	case "da":
		return "a", true
	case "dw":
		return "w", true
	}
	return "", false
}

// commaSeparatedGroups splits tokens on top-level `,` punctuation.
func commaSeparatedGroups(tokens []Token) [][]Token {
	var groups [][]Token
	var current []Token
	depth := 0
	for _, t := range tokens {
		if t.Type == TokenPunctuation && (t.Literal == "(" || t.Literal == "[") {
			depth++
		}
		if t.Type == TokenPunctuation && (t.Literal == ")" || t.Literal == "]") {
			depth--
		}
		if depth == 0 && t.Type == TokenPunctuation && t.Literal == "," {
			groups = append(groups, current)
			current = nil
			continue
		}
		current = append(current, t)
	}
	if len(current) > 0 || len(groups) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// parseOperands builds one InstructionOperand per comma-separated group: a
// single bare identifier matching a register name becomes OperandRegister,
// everything else is parsed as a general expression.
func parseOperands(tokens []Token) ([]*InstructionOperand, error) {
	groups := commaSeparatedGroups(tokens)
	operands := make([]*InstructionOperand, 0, len(groups))
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		if len(g) == 1 && g[0].Type == TokenIdentifier {
			if _, ok := vm.RegisterByName(strings.ToLower(g[0].Literal)); ok {
				operands = append(operands, &InstructionOperand{Kind: OperandRegister, Register: strings.ToLower(g[0].Literal)})
				continue
			}
		}
		expr, err := BuildExpression(g)
		if err != nil {
			return nil, err
		}
		operands = append(operands, &InstructionOperand{Kind: OperandExpression, Expression: expr})
	}
	return operands, nil
}

func unquote(lit string) string {
	if len(lit) >= 2 {
		return lit[1 : len(lit)-1]
	}
	return lit
}
