package assembler

import (
	"github.com/dextero/evilvm-go/parser"
)

// resolve evaluates expr against symbols, starting a fresh visited-set for
// circular-constant detection on each top-level call (a constant resolved
// while emitting one statement must not poison the visited-set used for the
// next statement's resolution).
func resolve(expr *parser.Expression, symbols *parser.SymbolTable) (int64, error) {
	return expr.Evaluate(symbols, nil)
}
