package vm

import "fmt"

// DataType describes one named, fixed-size, fixed-alignment memory shape.
type DataType struct {
	Name      string
	SizeBytes int
	Alignment int
}

// TypeContext is the mutable registry of named data types (b, r, a, w).
// Unlike the registry this is modeled on, it is an explicit object threaded
// through callers rather than a package-level global: every CLI invocation
// can configure its own word/address size and alignment without disturbing
// any other instance (concurrent tests included).
type TypeContext struct {
	types map[string]DataType
}

// NewTypeContext builds the default registry: byte and register index are
// fixed at size 1 / alignment 1; address and word default to size 5 and
// size 7 respectively, both self-aligned, and are overridable by the caller
// (CLI flags, test fixtures) before any encoding happens.
func NewTypeContext() *TypeContext {
	tc := &TypeContext{types: make(map[string]DataType, 4)}
	tc.types["b"] = DataType{Name: "b", SizeBytes: 1, Alignment: 1}
	tc.types["r"] = DataType{Name: "r", SizeBytes: 1, Alignment: 1}
	tc.types["a"] = DataType{Name: "a", SizeBytes: 5, Alignment: 5}
	tc.types["w"] = DataType{Name: "w", SizeBytes: 7, Alignment: 7}
	return tc
}

// SetAddress overrides the "a" type's size and alignment.
func (tc *TypeContext) SetAddress(size, alignment int) {
	tc.types["a"] = DataType{Name: "a", SizeBytes: size, Alignment: alignment}
}

// SetWord overrides the "w" type's size and alignment.
func (tc *TypeContext) SetWord(size, alignment int) {
	tc.types["w"] = DataType{Name: "w", SizeBytes: size, Alignment: alignment}
}

// Lookup returns the named data type, or an error if name isn't registered.
func (tc *TypeContext) Lookup(name string) (DataType, error) {
	dt, ok := tc.types[name]
	if !ok {
		return DataType{}, fmt.Errorf("vm: unknown data type %q", name)
	}
	return dt, nil
}

// Sizeof is a convenience wrapper returning just the size in bytes.
func (tc *TypeContext) Sizeof(name string) (int, error) {
	dt, err := tc.Lookup(name)
	if err != nil {
		return 0, err
	}
	return dt.SizeBytes, nil
}

// Alignof is a convenience wrapper returning just the alignment.
func (tc *TypeContext) Alignof(name string) (int, error) {
	dt, err := tc.Lookup(name)
	if err != nil {
		return 0, err
	}
	return dt.Alignment, nil
}

// CalcSize sums the sizes of a sequence of type characters (an arg_def
// string such as "rb" or "aa"), used to compute an operation's argument
// byte width.
func (tc *TypeContext) CalcSize(argDef string) (int, error) {
	total := 0
	for _, ch := range argDef {
		dt, err := tc.Lookup(string(ch))
		if err != nil {
			return 0, err
		}
		total += dt.SizeBytes
	}
	return total, nil
}
