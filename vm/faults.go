package vm

import "fmt"

// Fault is the runtime error taxonomy raised during assembly or execution.
// Every case is a distinct type so callers can type-switch instead of
// string-matching; there is no catch-all string error in this package.
type Fault interface {
	error
	faultTag()
}

// OutOfRangeFault is raised when an address or cell index falls outside the
// addressable memory or register space.
type OutOfRangeFault struct {
	Address int64
	Limit   int64
}

func (f *OutOfRangeFault) Error() string {
	return fmt.Sprintf("vm: address %d out of range [0,%d)", f.Address, f.Limit)
}
func (*OutOfRangeFault) faultTag() {}

// UnalignedFault is raised by strictly-aligned memory when an access address
// is not a multiple of the accessed type's alignment.
type UnalignedFault struct {
	Address   int64
	Alignment int
}

func (f *UnalignedFault) Error() string {
	return fmt.Sprintf("vm: address %d is not aligned to %d", f.Address, f.Alignment)
}
func (*UnalignedFault) faultTag() {}

// InvalidOpcodeFault is raised when the fetched opcode byte has no
// registered operation.
type InvalidOpcodeFault struct {
	Opcode byte
	IP     int64
}

func (f *InvalidOpcodeFault) Error() string {
	return fmt.Sprintf("vm: invalid opcode 0x%02x at ip=%d", f.Opcode, f.IP)
}
func (*InvalidOpcodeFault) faultTag() {}

// InvalidEncodingFault is raised when a value cannot be represented in the
// requested endianness/width (e.g. PDP with an odd byte count, or a
// magnitude exceeding the available bits).
type InvalidEncodingFault struct {
	Reason string
}

func (f *InvalidEncodingFault) Error() string {
	return fmt.Sprintf("vm: invalid encoding: %s", f.Reason)
}
func (*InvalidEncodingFault) faultTag() {}

// GPUFault is raised by the GPU sink on an out-of-range seek or a codepoint
// outside the representable Unicode range.
type GPUFault struct {
	Reason string
}

func (f *GPUFault) Error() string {
	return fmt.Sprintf("vm: gpu fault: %s", f.Reason)
}
func (*GPUFault) faultTag() {}

// HaltRequested is not an error condition; it unwinds the fetch/decode/
// execute loop cleanly when the halt instruction runs. Callers should treat
// it as a normal program terminator, not a fault to log.
type HaltRequested struct{}

func (h *HaltRequested) Error() string { return "vm: halt requested" }
func (*HaltRequested) faultTag()       {}
