package vm

import "log"

// RunResult reports how Run's loop ended.
type RunResult int

const (
	// Halted means the program executed a halt instruction.
	Halted RunResult = iota
	// BudgetExhausted means the instruction-count budget ran out before a
	// halt was reached.
	BudgetExhausted
)

// Step fetches, decodes and executes exactly one instruction. Any Fault
// other than HaltRequested is logged and returned; the machine keeps
// running, matching the reference CPU's catch-and-continue per-instruction
// fault handling. A fault raised by the handler leaves IP at the next
// instruction; a fetch, invalid-opcode or decode fault happens before IP
// is advanced and leaves IP unchanged. HaltRequested propagates to the
// caller so Run can stop cleanly.
func (c *CPU) Step() (*HaltRequested, Fault) {
	c.instructionCount++

	ip := c.Registers.Get(IP)
	opcodeByte, f := c.Program.ReadByte(ip)
	if f != nil {
		log.Printf("fetch fault at ip=%d: %v", ip, f)
		return nil, f
	}

	op, ok := LookupOpcode(int(opcodeByte))
	if !ok {
		fault := &InvalidOpcodeFault{Opcode: byte(opcodeByte), IP: ip}
		log.Printf("%v", fault)
		return nil, fault
	}

	size, err := op.SizeBytes(c.Types)
	if err != nil {
		fault := &InvalidEncodingFault{Reason: err.Error()}
		log.Printf("%v", fault)
		return nil, fault
	}

	enc := ArgsEndianness(op.Opcode)
	args, decodeFault := c.decodeArgs(op.ArgDef, ip+1, enc)
	if decodeFault != nil {
		log.Printf("decode fault for %s at ip=%d: %v", op.Mnemonic, ip, decodeFault)
		return nil, decodeFault
	}

	// Advance IP to the next instruction's address before running the
	// handler: call/ret and relative jumps compute against this
	// post-advance IP, not the address the opcode byte was fetched from.
	c.Registers.Set(IP, ip+int64(size))

	if runFault := op.Run(c, args); runFault != nil {
		if halt, isHalt := runFault.(*HaltRequested); isHalt {
			return halt, nil
		}
		log.Printf("fault executing %s at ip=%d: %v", op.Mnemonic, ip, runFault)
		return nil, runFault
	}

	return nil, nil
}

// Run repeatedly steps the machine until halt or until the instruction
// budget is exhausted, requesting a rate-limited GPU refresh after each
// step and a forced one on exit. maxSteps <= 0 means unbounded (spec's -H
// default of infinity).
func (c *CPU) Run(maxSteps int64) RunResult {
	for maxSteps <= 0 || c.instructionCount < maxSteps {
		halt, _ := c.Step()
		c.GPU.Refresh(false)
		if halt != nil {
			c.GPU.Refresh(true)
			return Halted
		}
	}
	c.GPU.Refresh(true)
	return BudgetExhausted
}
