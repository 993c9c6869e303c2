package vm

// push/pop operate on RAM at SP, a full-descending stack: push first
// decrements SP by sizeof(w), then stores; pop reads at SP then increments
// SP by sizeof(w). This is the general-purpose data stack, distinct from
// the dedicated call-stack memory used by call/ret.

func opPush(c *CPU, args []int64) Fault {
	src := reg(args[0])
	wordSize, err := c.Types.Sizeof("w")
	if err != nil {
		return &InvalidEncodingFault{Reason: err.Error()}
	}
	sp := c.Registers.Get(SP) - int64(wordSize)
	if f := c.RAM.Set("w", sp, c.Registers.Get(src)); f != nil {
		return f
	}
	c.Registers.Set(SP, sp)
	return nil
}

func opPop(c *CPU, args []int64) Fault {
	dst := reg(args[0])
	wordSize, err := c.Types.Sizeof("w")
	if err != nil {
		return &InvalidEncodingFault{Reason: err.Error()}
	}
	sp := c.Registers.Get(SP)
	v, f := c.RAM.Get("w", sp)
	if f != nil {
		return f
	}
	c.Registers.Set(SP, sp+int64(wordSize))
	c.Registers.Set(dst, v)
	return nil
}
