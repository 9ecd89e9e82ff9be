package vm

import "fmt"

// execTrap dispatches the TRAP opcode's low 8 bits to the corresponding
// service routine (§4.5). R7 holds the return address, matching a
// subroutine call, though no trap defined here ever resumes the caller
// other than by falling through.
func (c *CPU) execTrap(instr uint16) error {
	c.Reg.GP[R7] = c.Reg.PC

	switch instr & 0xFF {
	case TrapGETC:
		c.Reg.GP[R0] = uint16(c.Host.KeyRead())
		c.Reg.UpdateFlags(R0)

	case TrapOUT:
		if err := c.writeByte(byte(c.Reg.GP[R0])); err != nil {
			return err
		}
		if err := c.flush(); err != nil {
			return err
		}

	case TrapPUTS:
		addr := c.Reg.GP[R0]
		for {
			w := c.Mem.Read(addr)
			if w == 0 {
				break
			}
			if err := c.writeByte(byte(w)); err != nil {
				return err
			}
			addr++
		}
		if err := c.flush(); err != nil {
			return err
		}

	case TrapIN:
		if err := c.writeString("Enter a character: "); err != nil {
			return err
		}
		b := c.Host.KeyRead()
		if err := c.writeByte(b); err != nil {
			return err
		}
		if err := c.flush(); err != nil {
			return err
		}
		c.Reg.GP[R0] = uint16(b)
		c.Reg.UpdateFlags(R0)

	case TrapPUTSP:
		addr := c.Reg.GP[R0]
		for {
			w := c.Mem.Read(addr)
			if w == 0 {
				break
			}
			if err := c.writeByte(byte(w)); err != nil {
				return err
			}
			if hi := byte(w >> 8); hi != 0 {
				if err := c.writeByte(hi); err != nil {
					return err
				}
			}
			addr++
		}
		if err := c.flush(); err != nil {
			return err
		}

	case TrapHALT:
		if err := c.writeString("HALT\n"); err != nil {
			return err
		}
		c.Running = false
	}

	return nil
}

func (c *CPU) writeByte(b byte) error {
	if err := c.Host.WriteByte(b); err != nil {
		return fmt.Errorf("%w: %v", ErrHostIO, err)
	}
	return nil
}

func (c *CPU) writeString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := c.writeByte(s[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c *CPU) flush() error {
	if err := c.Host.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrHostIO, err)
	}
	return nil
}
