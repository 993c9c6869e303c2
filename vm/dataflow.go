package vm

// Data-movement operations: register-to-register moves, immediate loads,
// direct-addressed RAM access, and register-indirect program/RAM access.

func opMovwR2R(c *CPU, args []int64) Fault {
	dst, src := reg(args[0]), reg(args[1])
	c.Registers.Set(dst, c.Registers.Get(src))
	return nil
}

func opMovbI2R(c *CPU, args []int64) Fault {
	dst := reg(args[0])
	c.Registers.Set(dst, args[1])
	return nil
}

func opMovbM2R(c *CPU, args []int64) Fault {
	dst := reg(args[0])
	addr := args[1]
	v, f := c.RAM.Get("b", addr)
	if f != nil {
		return f
	}
	c.Registers.Set(dst, v)
	return nil
}

func opMovbR2M(c *CPU, args []int64) Fault {
	addr := args[0]
	src := reg(args[1])
	return c.RAM.Set("b", addr, c.Registers.Get(src))
}

func opMovwI2R(c *CPU, args []int64) Fault {
	dst := reg(args[0])
	c.Registers.Set(dst, args[1])
	return nil
}

func opMovwM2R(c *CPU, args []int64) Fault {
	dst := reg(args[0])
	addr := args[1]
	v, f := c.RAM.Get("w", addr)
	if f != nil {
		return f
	}
	c.Registers.Set(dst, v)
	return nil
}

func opMovwR2M(c *CPU, args []int64) Fault {
	addr := args[0]
	src := reg(args[1])
	return c.RAM.Set("w", addr, c.Registers.Get(src))
}

// Register-indirect loads from PROGRAM memory set Zero/Greater from the
// loaded value, matching the original's diagnostic convenience of being
// able to branch on the freshly loaded byte/address/word without a
// separate cmp.

func opLpbR(c *CPU, args []int64) Fault {
	dstReg, addrReg := reg(args[0]), reg(args[1])
	addr := c.Registers.Get(addrReg)
	v, f := c.Program.Get("b", addr)
	if f != nil {
		return f
	}
	c.Registers.Set(dstReg, v)
	c.Registers.SetFlags(v)
	return nil
}

func opLpaR(c *CPU, args []int64) Fault {
	dstReg, addrReg := reg(args[0]), reg(args[1])
	addr := c.Registers.Get(addrReg)
	v, f := c.Program.Get("a", addr)
	if f != nil {
		return f
	}
	c.Registers.Set(dstReg, v)
	c.Registers.SetFlags(v)
	return nil
}

func opLpwR(c *CPU, args []int64) Fault {
	dstReg, addrReg := reg(args[0]), reg(args[1])
	addr := c.Registers.Get(addrReg)
	v, f := c.Program.Get("w", addr)
	if f != nil {
		return f
	}
	c.Registers.Set(dstReg, v)
	c.Registers.SetFlags(v)
	return nil
}

func opLdbR(c *CPU, args []int64) Fault {
	dstReg, addrReg := reg(args[0]), reg(args[1])
	addr := c.Registers.Get(addrReg)
	v, f := c.RAM.Get("b", addr)
	if f != nil {
		return f
	}
	c.Registers.Set(dstReg, v)
	c.Registers.SetFlags(v)
	return nil
}

func opLdaR(c *CPU, args []int64) Fault {
	dstReg, addrReg := reg(args[0]), reg(args[1])
	addr := c.Registers.Get(addrReg)
	v, f := c.RAM.Get("a", addr)
	if f != nil {
		return f
	}
	c.Registers.Set(dstReg, v)
	c.Registers.SetFlags(v)
	return nil
}

func opLdwR(c *CPU, args []int64) Fault {
	dstReg, addrReg := reg(args[0]), reg(args[1])
	addr := c.Registers.Get(addrReg)
	v, f := c.RAM.Get("w", addr)
	if f != nil {
		return f
	}
	c.Registers.Set(dstReg, v)
	c.Registers.SetFlags(v)
	return nil
}

// Register-indirect stores to RAM never touch the flags.

func opStbR(c *CPU, args []int64) Fault {
	addrReg, srcReg := reg(args[0]), reg(args[1])
	addr := c.Registers.Get(addrReg)
	return c.RAM.Set("b", addr, c.Registers.Get(srcReg))
}

func opStaR(c *CPU, args []int64) Fault {
	addrReg, srcReg := reg(args[0]), reg(args[1])
	addr := c.Registers.Get(addrReg)
	return c.RAM.Set("a", addr, c.Registers.Get(srcReg))
}

func opStwR(c *CPU, args []int64) Fault {
	addrReg, srcReg := reg(args[0]), reg(args[1])
	addr := c.Registers.Get(addrReg)
	return c.RAM.Set("w", addr, c.Registers.Get(srcReg))
}
