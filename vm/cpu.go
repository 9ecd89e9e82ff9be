package vm

import (
	"fmt"
	"log"
)

// CPU holds the register file and drives the fetch-decode-execute loop
// against Memory and Host.
type CPU struct {
	Reg     Registers
	Mem     *Memory
	Host    Host
	Running bool

	// Trace, when set, logs every decoded instruction. Off by default;
	// enabled by cmd/lc3vm's --trace flag.
	Trace bool
}

// NewCPU wires a CPU to the given memory and host adapter. The register
// file starts zeroed; call Reset before Run.
func NewCPU(mem *Memory, host Host) *CPU {
	return &CPU{Mem: mem, Host: host}
}

// Reset restores the register file to the power-on state and marks the
// CPU running.
func (c *CPU) Reset() {
	c.Reg.Reset()
	c.Running = true
}

// Run executes instructions until HALT clears Running or a fatal error
// occurs (a reserved opcode or a host I/O failure).
func (c *CPU) Run() error {
	for c.Running {
		if err := c.Step(); err != nil {
			c.Running = false
			return err
		}
	}
	return nil
}

// Step performs one fetch-decode-execute cycle.
func (c *CPU) Step() error {
	instr := c.Mem.Read(c.Reg.PC)
	c.Reg.PC++
	op := Opcode(instr >> 12)

	switch op {
	case OpADD:
		dr, sr1 := field(instr, 9), field(instr, 6)
		if immFlag(instr) {
			imm5 := signExtend(instr&0x1F, 5)
			c.trace("ADD R%d, R%d, #%d", dr, sr1, int16(imm5))
			c.Reg.GP[dr] = c.Reg.GP[sr1] + imm5
		} else {
			sr2 := field(instr, 0)
			c.trace("ADD R%d, R%d, R%d", dr, sr1, sr2)
			c.Reg.GP[dr] = c.Reg.GP[sr1] + c.Reg.GP[sr2]
		}
		c.Reg.UpdateFlags(dr)

	case OpAND:
		dr, sr1 := field(instr, 9), field(instr, 6)
		if immFlag(instr) {
			imm5 := signExtend(instr&0x1F, 5)
			c.trace("AND R%d, R%d, #%d", dr, sr1, int16(imm5))
			c.Reg.GP[dr] = c.Reg.GP[sr1] & imm5
		} else {
			sr2 := field(instr, 0)
			c.trace("AND R%d, R%d, R%d", dr, sr1, sr2)
			c.Reg.GP[dr] = c.Reg.GP[sr1] & c.Reg.GP[sr2]
		}
		c.Reg.UpdateFlags(dr)

	case OpNOT:
		dr, sr := field(instr, 9), field(instr, 6)
		c.trace("NOT R%d, R%d", dr, sr)
		c.Reg.GP[dr] = ^c.Reg.GP[sr]
		c.Reg.UpdateFlags(dr)

	case OpBR:
		nzp := instr >> 9 & 0b111
		pcOffset9 := signExtend(instr&0x1FF, 9)
		c.trace("BR nzp=%03b pcoffset9=%d", nzp, int16(pcOffset9))
		if nzp&uint16(c.Reg.Cond) != 0 {
			c.Reg.PC += pcOffset9
		}

	case OpJMP:
		base := field(instr, 6)
		c.trace("JMP R%d", base)
		c.Reg.PC = c.Reg.GP[base]

	case OpJSR:
		c.Reg.GP[R7] = c.Reg.PC
		if instr>>11&0x1 == 1 {
			pcOffset11 := signExtend(instr&0x7FF, 11)
			c.trace("JSR #%d", int16(pcOffset11))
			c.Reg.PC += pcOffset11
		} else {
			base := field(instr, 6)
			c.trace("JSRR R%d", base)
			c.Reg.PC = c.Reg.GP[base]
		}

	case OpLD:
		dr := field(instr, 9)
		pcOffset9 := signExtend(instr&0x1FF, 9)
		c.trace("LD R%d, #%d", dr, int16(pcOffset9))
		c.Reg.GP[dr] = c.Mem.Read(c.Reg.PC + pcOffset9)
		c.Reg.UpdateFlags(dr)

	case OpLDI:
		dr := field(instr, 9)
		pcOffset9 := signExtend(instr&0x1FF, 9)
		c.trace("LDI R%d, #%d", dr, int16(pcOffset9))
		c.Reg.GP[dr] = c.Mem.Read(c.Mem.Read(c.Reg.PC + pcOffset9))
		c.Reg.UpdateFlags(dr)

	case OpLDR:
		dr, base := field(instr, 9), field(instr, 6)
		offset6 := signExtend(instr&0x3F, 6)
		c.trace("LDR R%d, R%d, #%d", dr, base, int16(offset6))
		c.Reg.GP[dr] = c.Mem.Read(c.Reg.GP[base] + offset6)
		c.Reg.UpdateFlags(dr)

	case OpLEA:
		dr := field(instr, 9)
		pcOffset9 := signExtend(instr&0x1FF, 9)
		c.trace("LEA R%d, #%d", dr, int16(pcOffset9))
		c.Reg.GP[dr] = c.Reg.PC + pcOffset9
		c.Reg.UpdateFlags(dr)

	case OpST:
		sr := field(instr, 9)
		pcOffset9 := signExtend(instr&0x1FF, 9)
		c.trace("ST R%d, #%d", sr, int16(pcOffset9))
		c.Mem.Write(c.Reg.PC+pcOffset9, c.Reg.GP[sr])

	case OpSTI:
		sr := field(instr, 9)
		pcOffset9 := signExtend(instr&0x1FF, 9)
		c.trace("STI R%d, #%d", sr, int16(pcOffset9))
		c.Mem.Write(c.Mem.Read(c.Reg.PC+pcOffset9), c.Reg.GP[sr])

	case OpSTR:
		sr, base := field(instr, 9), field(instr, 6)
		offset6 := signExtend(instr&0x3F, 6)
		c.trace("STR R%d, R%d, #%d", sr, base, int16(offset6))
		c.Mem.Write(c.Reg.GP[base]+offset6, c.Reg.GP[sr])

	case OpTRAP:
		return c.execTrap(instr)

	case OpRTI, OpRES:
		return fmt.Errorf("%w: 0x%X at pc 0x%04X", ErrReservedOpcode, op, c.Reg.PC-1)
	}

	return nil
}

// field extracts the 3-bit register field starting at bit shift.
func field(instr, shift uint16) int {
	return int(instr >> shift & 0b111)
}

// immFlag reports whether bit 5 (the ADD/AND immediate-mode flag) is set.
func immFlag(instr uint16) bool {
	return instr>>5&0x1 == 1
}

func (c *CPU) trace(format string, args ...interface{}) {
	if !c.Trace {
		return
	}
	log.Printf("0x%04X "+format, append([]interface{}{c.Reg.PC - 1}, args...)...)
}
