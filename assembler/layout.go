// Package assembler turns a parsed Program into bytecode inside a Memory
// block, in the classic two-pass shape: pass 1 computes every label's byte
// offset (and records every constant's unresolved expression) without
// emitting anything; pass 2 walks the statements again, resolving
// expressions and appending encoded bytes.
package assembler

import (
	"github.com/dextero/evilvm-go/parser"
	"github.com/dextero/evilvm-go/vm"
)

// Layout runs pass 1 over prog, returning a SymbolTable with every label
// bound to its byte offset and every named constant recorded (but not yet
// resolved — resolution happens lazily, on first reference, during pass 2
// or later sizeof/alignof queries). Redefining a name is a fatal
// DuplicateSymbol error, matching spec.md §4.5 pass 1.
func Layout(prog *parser.Program, types *vm.TypeContext) (*parser.SymbolTable, error) {
	symbols := parser.NewSymbolTable(types)
	var currOffset int64

	for _, stmt := range prog.Statements {
		switch stmt.Kind {
		case parser.StmtLabel:
			if err := symbols.DefineLabel(stmt.LabelName, currOffset, stmt.Pos); err != nil {
				return nil, err
			}
		case parser.StmtConstantDefinition:
			if err := symbols.DefineConstant(stmt.ConstantName, stmt.ConstantValue, stmt.Pos); err != nil {
				return nil, err
			}
		case parser.StmtData:
			sz, err := types.Sizeof(stmt.DataType)
			if err != nil {
				return nil, parser.NewErrorWithContext(stmt.Pos, parser.ErrorSyntax, "unknown data type", stmt.DataType)
			}
			currOffset += int64(sz) * int64(len(stmt.DataValues))
		case parser.StmtInstruction:
			op, ok := vm.LookupMnemonic(stmt.Mnemonic)
			if !ok {
				return nil, parser.NewErrorWithContext(stmt.Pos, parser.ErrorSyntax, "unknown mnemonic", stmt.Mnemonic)
			}
			size, err := op.SizeBytes(types)
			if err != nil {
				return nil, parser.NewErrorWithContext(stmt.Pos, parser.ErrorSyntax, "cannot size instruction", stmt.Mnemonic)
			}
			currOffset += int64(size)
		}
	}
	return symbols, nil
}
