package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dextero/evilvm-go/assembler"
	"github.com/dextero/evilvm-go/parser"
	"github.com/dextero/evilvm-go/vm"
)

// LintLevel is the severity of a lint finding.
type LintLevel int

const (
	LintError   LintLevel = iota // would fail assembly
	LintWarning                  // likely a mistake, assembles fine
	LintInfo                     // style suggestion
)

func (l LintLevel) String() string {
	switch l {
	case LintError:
		return "error"
	case LintWarning:
		return "warning"
	case LintInfo:
		return "info"
	default:
		return "unknown"
	}
}

// LintIssue is a single finding.
type LintIssue struct {
	Level   LintLevel
	Line    int
	Column  int
	Message string
	Code    string
}

func (i *LintIssue) String() string {
	return fmt.Sprintf("line %d:%d: %s: %s [%s]", i.Line, i.Column, i.Level, i.Message, i.Code)
}

// LintOptions controls which analysis passes Lint runs.
type LintOptions struct {
	CheckUnused  bool // warn about labels defined but never referenced
	CheckReach   bool // warn about statements after an unconditional jump/halt
	SuggestFixes bool // append a "did you mean" suggestion to undefined-symbol errors
}

// DefaultLintOptions enables every check.
func DefaultLintOptions() *LintOptions {
	return &LintOptions{CheckUnused: true, CheckReach: true, SuggestFixes: true}
}

// Linter analyzes assembly source for errors and style issues beyond what
// assembling it would itself report.
type Linter struct {
	options *LintOptions
	issues  []*LintIssue

	types            *vm.TypeContext
	definedLabels    map[string]parser.Position
	definedConstants map[string]parser.Position
	referenced       map[string]bool
}

// NewLinter creates a linter using options (DefaultLintOptions if nil).
func NewLinter(options *LintOptions) *Linter {
	if options == nil {
		options = DefaultLintOptions()
	}
	return &Linter{
		options:          options,
		definedLabels:    make(map[string]parser.Position),
		definedConstants: make(map[string]parser.Position),
		referenced:       make(map[string]bool),
	}
}

// Lint parses and analyzes input, returning every issue found, sorted by
// source position.
func (l *Linter) Lint(input, filename string) []*LintIssue {
	l.types = vm.NewTypeContext()
	l.types.SetWord(7, 7)
	l.types.SetAddress(5, 5)

	p := parser.NewParser(input, filename)
	prog, err := p.Parse()
	if err != nil {
		if errs, ok := err.(*parser.ErrorList); ok {
			for _, perr := range errs.Errors {
				l.issues = append(l.issues, &LintIssue{
					Level:   LintError,
					Line:    perr.Pos.Line,
					Column:  perr.Pos.Column,
					Message: perr.Message,
					Code:    "PARSE_ERROR",
				})
			}
		}
	}
	if prog == nil {
		return l.issues
	}

	l.collectDefinitions(prog)

	if _, layoutErr := assembler.Layout(prog, l.types); layoutErr != nil {
		if perr, ok := layoutErr.(*parser.Error); ok {
			l.issues = append(l.issues, &LintIssue{
				Level:   LintError,
				Line:    perr.Pos.Line,
				Column:  perr.Pos.Column,
				Message: perr.Message,
				Code:    "LAYOUT_ERROR",
			})
		}
	}

	l.checkUndefinedReferences(prog)
	if l.options.CheckUnused {
		l.checkUnusedLabels()
	}
	if l.options.CheckReach {
		l.checkUnreachableCode(prog)
	}
	l.checkInstructionArity(prog)

	sort.Slice(l.issues, func(i, j int) bool {
		if l.issues[i].Line == l.issues[j].Line {
			return l.issues[i].Column < l.issues[j].Column
		}
		return l.issues[i].Line < l.issues[j].Line
	})
	return l.issues
}

func (l *Linter) collectDefinitions(prog *parser.Program) {
	for _, stmt := range prog.Statements {
		switch stmt.Kind {
		case parser.StmtLabel:
			l.definedLabels[stmt.LabelName] = stmt.Pos
		case parser.StmtConstantDefinition:
			l.definedConstants[stmt.ConstantName] = stmt.Pos
		}
	}
}

// checkUndefinedReferences walks every expression reachable from a
// statement (data values, constant definitions, instruction operands) and
// flags any ExprConstantRef naming neither a label nor a constant.
func (l *Linter) checkUndefinedReferences(prog *parser.Program) {
	var walk func(e *parser.Expression)
	walk = func(e *parser.Expression) {
		if e == nil {
			return
		}
		switch e.Kind {
		case parser.ExprConstantRef:
			l.referenced[e.ConstantName] = true
			_, isLabel := l.definedLabels[e.ConstantName]
			_, isConst := l.definedConstants[e.ConstantName]
			if !isLabel && !isConst {
				msg := fmt.Sprintf("undefined symbol %q", e.ConstantName)
				if suggestion := l.findSimilar(e.ConstantName); suggestion != "" && l.options.SuggestFixes {
					msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
				}
				l.issues = append(l.issues, &LintIssue{
					Level: LintError, Line: e.Pos.Line, Column: e.Pos.Column,
					Message: msg, Code: "UNDEF_SYMBOL",
				})
			}
		case parser.ExprUnary:
			walk(e.UnaryArg)
		case parser.ExprBinary:
			walk(e.BinaryLeft)
			walk(e.BinaryRight)
		}
	}

	for _, stmt := range prog.Statements {
		switch stmt.Kind {
		case parser.StmtConstantDefinition:
			walk(stmt.ConstantValue)
		case parser.StmtData:
			for _, v := range stmt.DataValues {
				walk(v)
			}
		case parser.StmtInstruction:
			for _, op := range stmt.Operands {
				if op.Kind == parser.OperandExpression {
					walk(op.Expression)
				}
			}
		}
	}
}

func (l *Linter) checkUnusedLabels() {
	for name, pos := range l.definedLabels {
		if isEntryLabel(name) {
			continue
		}
		if !l.referenced[name] {
			l.issues = append(l.issues, &LintIssue{
				Level: LintWarning, Line: pos.Line, Column: pos.Column,
				Message: fmt.Sprintf("label %q defined but never referenced", name),
				Code:    "UNUSED_LABEL",
			})
		}
	}
}

// checkUnreachableCode warns about any statement immediately following an
// unconditional jmp/jmp.rel/halt that isn't itself a label (a jump target
// would make it reachable after all).
func (l *Linter) checkUnreachableCode(prog *parser.Program) {
	for i, stmt := range prog.Statements {
		if stmt.Kind != parser.StmtInstruction {
			continue
		}
		if stmt.Mnemonic != "jmp" && stmt.Mnemonic != "jmp.rel" && stmt.Mnemonic != "halt" {
			continue
		}
		if i+1 >= len(prog.Statements) {
			continue
		}
		next := prog.Statements[i+1]
		if next.Kind == parser.StmtLabel {
			continue
		}
		l.issues = append(l.issues, &LintIssue{
			Level: LintWarning, Line: next.Pos.Line, Column: next.Pos.Column,
			Message: "unreachable code after unconditional jump or halt",
			Code:    "UNREACHABLE_CODE",
		})
	}
}

// checkInstructionArity flags operand-count mismatches. The mnemonic itself
// is always valid here: parseStatement already rejected anything
// vm.LookupMnemonic doesn't recognize before a Statement was ever built.
func (l *Linter) checkInstructionArity(prog *parser.Program) {
	for _, stmt := range prog.Statements {
		if stmt.Kind != parser.StmtInstruction {
			continue
		}
		op, _ := vm.LookupMnemonic(stmt.Mnemonic)
		if len(stmt.Operands) != len(op.ArgDef) {
			l.issues = append(l.issues, &LintIssue{
				Level: LintError, Line: stmt.Pos.Line, Column: stmt.Pos.Column,
				Message: fmt.Sprintf("%s expects %d operand(s), got %d", stmt.Mnemonic, len(op.ArgDef), len(stmt.Operands)),
				Code:    "ARITY_MISMATCH",
			})
		}
	}
}

func (l *Linter) findSimilar(target string) string {
	target = strings.ToLower(target)
	best, bestDist := "", 999
	consider := func(name string) {
		dist := levenshteinDistance(strings.ToLower(name), target)
		if dist < bestDist && dist <= 3 {
			best, bestDist = name, dist
		}
	}
	for name := range l.definedLabels {
		consider(name)
	}
	for name := range l.definedConstants {
		consider(name)
	}
	return best
}

func isEntryLabel(name string) bool {
	switch strings.ToLower(name) {
	case "start", "_start", "main":
		return true
	}
	return false
}

func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}
	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}
	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = minOf3(matrix[i-1][j]+1, matrix[i][j-1]+1, matrix[i-1][j-1]+cost)
		}
	}
	return matrix[len(s1)][len(s2)]
}

func minOf3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
