package vm

// Control-flow operations: absolute and relative jumps, conditional jumps
// driven by the F register's Zero/Greater flags, the call/ret pair (which
// use the dedicated call-stack memory, distinct from push/pop's RAM-backed
// data stack), and loop/halt.

func opJmp(c *CPU, args []int64) Fault {
	c.Registers.Set(IP, args[0])
	return nil
}

func opJmpRel(c *CPU, args []int64) Fault {
	c.Registers.Set(IP, c.Registers.Get(IP)+args[0])
	return nil
}

func condJump(c *CPU, target int64, take bool) Fault {
	if take {
		c.Registers.Set(IP, target)
	}
	return nil
}

func opJe(c *CPU, args []int64) Fault {
	return condJump(c, args[0], c.Registers.HasFlag(FlagZero))
}

func opJeRel(c *CPU, args []int64) Fault {
	return condJump(c, c.Registers.Get(IP)+args[0], c.Registers.HasFlag(FlagZero))
}

func opJne(c *CPU, args []int64) Fault {
	return condJump(c, args[0], !c.Registers.HasFlag(FlagZero))
}

func opJneRel(c *CPU, args []int64) Fault {
	return condJump(c, c.Registers.Get(IP)+args[0], !c.Registers.HasFlag(FlagZero))
}

func opJa(c *CPU, args []int64) Fault {
	return condJump(c, args[0], c.Registers.HasFlag(FlagGreater))
}

func opJaRel(c *CPU, args []int64) Fault {
	return condJump(c, c.Registers.Get(IP)+args[0], c.Registers.HasFlag(FlagGreater))
}

func opJae(c *CPU, args []int64) Fault {
	return condJump(c, args[0], c.Registers.HasFlag(FlagGreater) || c.Registers.HasFlag(FlagZero))
}

func opJaeRel(c *CPU, args []int64) Fault {
	take := c.Registers.HasFlag(FlagGreater) || c.Registers.HasFlag(FlagZero)
	return condJump(c, c.Registers.Get(IP)+args[0], take)
}

func opJb(c *CPU, args []int64) Fault {
	take := !c.Registers.HasFlag(FlagGreater) && !c.Registers.HasFlag(FlagZero)
	return condJump(c, args[0], take)
}

func opJbRel(c *CPU, args []int64) Fault {
	take := !c.Registers.HasFlag(FlagGreater) && !c.Registers.HasFlag(FlagZero)
	return condJump(c, c.Registers.Get(IP)+args[0], take)
}

func opJbe(c *CPU, args []int64) Fault {
	return condJump(c, args[0], !c.Registers.HasFlag(FlagGreater))
}

func opJbeRel(c *CPU, args []int64) Fault {
	return condJump(c, c.Registers.Get(IP)+args[0], !c.Registers.HasFlag(FlagGreater))
}

func opLoop(c *CPU, args []int64) Fault {
	count := c.Registers.Get(C) - 1
	c.Registers.Set(C, count)
	if count > 0 {
		c.Registers.Set(IP, args[0])
	}
	return nil
}

func opLoopRel(c *CPU, args []int64) Fault {
	count := c.Registers.Get(C) - 1
	c.Registers.Set(C, count)
	if count > 0 {
		c.Registers.Set(IP, c.Registers.Get(IP)+args[0])
	}
	return nil
}

func pushCallAddr(c *CPU, returnAddr int64) Fault {
	rp := c.Registers.Get(RP) - int64(c.AddrSize)
	if f := c.CallStack.Set("a", rp, returnAddr); f != nil {
		return f
	}
	c.Registers.Set(RP, rp)
	return nil
}

func opCall(c *CPU, args []int64) Fault {
	returnAddr := c.Registers.Get(IP)
	if f := pushCallAddr(c, returnAddr); f != nil {
		return f
	}
	c.Registers.Set(IP, args[0])
	return nil
}

func opCallR(c *CPU, args []int64) Fault {
	target := c.Registers.Get(reg(args[0]))
	returnAddr := c.Registers.Get(IP)
	if f := pushCallAddr(c, returnAddr); f != nil {
		return f
	}
	c.Registers.Set(IP, target)
	return nil
}

func opCallRel(c *CPU, args []int64) Fault {
	returnAddr := c.Registers.Get(IP)
	target := returnAddr + args[0]
	if f := pushCallAddr(c, returnAddr); f != nil {
		return f
	}
	c.Registers.Set(IP, target)
	return nil
}

func opRet(c *CPU, args []int64) Fault {
	rp := c.Registers.Get(RP)
	addr, f := c.CallStack.Get("a", rp)
	if f != nil {
		return f
	}
	c.Registers.Set(RP, rp+int64(c.AddrSize))
	c.Registers.Set(IP, addr)
	return nil
}

func opHalt(c *CPU, args []int64) Fault {
	return &HaltRequested{}
}
