package vm

import "fmt"

// out writes the A register's value to the GPU sink as a codepoint and
// advances the cursor.
func opOut(c *CPU, args []int64) Fault {
	if err := c.GPU.Put(c.Registers.Get(A)); err != nil {
		return err
	}
	return nil
}

// seek repositions the GPU cursor to the (x, y) held in two registers.
func opSeek(c *CPU, args []int64) Fault {
	x := c.Registers.Get(reg(args[0]))
	y := c.Registers.Get(reg(args[1]))
	if err := c.GPU.Seek(x, y); err != nil {
		return err
	}
	return nil
}

// dbg prints the full machine state to Output: registers, then a RAM dump.
func opDbg(c *CPU, args []int64) Fault {
	fmt.Fprintln(c.Output, "registers:")
	for r := Register(0); r < numRegisters; r++ {
		fmt.Fprintf(c.Output, "  %-3s = %d\n", r, c.Registers.Get(r))
	}
	fmt.Fprintln(c.Output, "ram:")
	fmt.Fprint(c.Output, c.RAM.Dump(1))
	return nil
}

func opDbgReg(c *CPU, args []int64) Fault {
	r := reg(args[0])
	fmt.Fprintf(c.Output, "%s = %d\n", r, c.Registers.Get(r))
	return nil
}

func opDbgRegs(c *CPU, args []int64) Fault {
	for r := Register(0); r < numRegisters; r++ {
		fmt.Fprintf(c.Output, "%-3s = %d\n", r, c.Registers.Get(r))
	}
	return nil
}

// dbg.ram dumps the range [lo, hi) of RAM, one "address: hex value" line
// per cell.
func opDbgRam(c *CPU, args []int64) Fault {
	lo, hi := args[0], args[1]
	if hi < lo {
		lo, hi = hi, lo
	}
	for addr := lo; addr < hi && addr < int64(c.RAM.Len()); addr++ {
		b, f := c.RAM.ReadByte(addr)
		if f != nil {
			return f
		}
		fmt.Fprintf(c.Output, "%08x: %02x\n", addr, b)
	}
	return nil
}
