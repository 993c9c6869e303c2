package assembler

import (
	"fmt"
	"strings"

	"github.com/dextero/evilvm-go/endian"
	"github.com/dextero/evilvm-go/parser"
	"github.com/dextero/evilvm-go/vm"
)

// debugEmit enables a trace line per emitted unit when LOGLEVEL=DEBUG;
// wired up by the caller (main.go) via SetDebug.
var debugEmit = false

// SetDebug toggles emit-time trace logging (offset, mnemonic/directive,
// resolved bytes) gated on the LOGLEVEL=DEBUG environment variable.
func SetDebug(enabled bool) {
	debugEmit = enabled
}

// Emit runs pass 2: walks prog's statements again, resolves every
// expression against symbols, and appends encoded bytes to program (an
// Extendable Memory expected to start empty). charBit must match the value
// program was constructed with, since instruction arguments are encoded
// directly via endian.Encode rather than through program's own Set (whose
// configured endianness would ignore the per-opcode parity rule).
func Emit(prog *parser.Program, symbols *parser.SymbolTable, types *vm.TypeContext, program *vm.Memory, charBit int) error {
	var pos int64

	for _, stmt := range prog.Statements {
		switch stmt.Kind {
		case parser.StmtLabel, parser.StmtConstantDefinition:
			continue

		case parser.StmtData:
			sz, err := types.Sizeof(stmt.DataType)
			if err != nil {
				return fmt.Errorf("assembler: %s:%d: unknown data type %q", stmt.Pos.Filename, stmt.Pos.Line, stmt.DataType)
			}
			for _, expr := range stmt.DataValues {
				value, err := resolve(expr, symbols)
				if err != nil {
					return err
				}
				encoded, encErr := endian.Encode(endian.Big, value, charBit, sz)
				if encErr != nil {
					return fmt.Errorf("assembler: %s:%d: %w", stmt.Pos.Filename, stmt.Pos.Line, encErr)
				}
				if f := program.LoadBytes(pos, encoded); f != nil {
					return f
				}
				if debugEmit {
					fmt.Printf("DEBUG assembler: %06x  %s %d -> % x\n", pos, stmt.DataType, value, encoded)
				}
				pos += int64(sz)
			}

		case parser.StmtInstruction:
			op, ok := vm.LookupMnemonic(stmt.Mnemonic)
			if !ok {
				return fmt.Errorf("assembler: %s:%d: unknown mnemonic %q", stmt.Pos.Filename, stmt.Pos.Line, stmt.Mnemonic)
			}
			if len(stmt.Operands) != len(op.ArgDef) {
				return fmt.Errorf("assembler: %s:%d: %s expects %d operand(s), got %d", stmt.Pos.Filename, stmt.Pos.Line, stmt.Mnemonic, len(op.ArgDef), len(stmt.Operands))
			}

			if f := program.WriteByte(pos, uint64(op.Opcode)); f != nil {
				return f
			}
			opcodePos := pos
			pos++

			argsSize, err := types.CalcSize(op.ArgDef)
			if err != nil {
				return fmt.Errorf("assembler: %s:%d: %w", stmt.Pos.Filename, stmt.Pos.Line, err)
			}
			currIP := pos + int64(argsSize)

			enc := vm.ArgsEndianness(op.Opcode)
			isRel := strings.HasSuffix(stmt.Mnemonic, ".rel")

			for i, ch := range op.ArgDef {
				typeName := string(ch)
				sz, szErr := types.Sizeof(typeName)
				if szErr != nil {
					return fmt.Errorf("assembler: %s:%d: %w", stmt.Pos.Filename, stmt.Pos.Line, szErr)
				}
				operand := stmt.Operands[i]

				var value int64
				switch operand.Kind {
				case parser.OperandRegister:
					r, ok := vm.RegisterByName(operand.Register)
					if !ok {
						return fmt.Errorf("assembler: %s:%d: unknown register %q", stmt.Pos.Filename, stmt.Pos.Line, operand.Register)
					}
					value = int64(r)
				case parser.OperandExpression:
					v, resErr := resolve(operand.Expression, symbols)
					if resErr != nil {
						return resErr
					}
					if typeName == "a" && isRel {
						v -= currIP
					}
					value = v
				}

				encoded, encErr := endian.Encode(enc, value, charBit, sz)
				if encErr != nil {
					return fmt.Errorf("assembler: %s:%d: %w", stmt.Pos.Filename, stmt.Pos.Line, encErr)
				}
				if f := program.LoadBytes(pos, encoded); f != nil {
					return f
				}
				pos += int64(sz)
			}

			if debugEmit {
				fmt.Printf("DEBUG assembler: %06x  %s -> opcode 0x%02x, %d arg byte(s)\n", opcodePos, stmt.Mnemonic, op.Opcode, argsSize)
			}
		}
	}
	return nil
}
