package vm

// Opcode is the top 4 bits of an instruction word.
type Opcode uint16

const (
	OpBR Opcode = iota
	OpADD
	OpLD
	OpST
	OpJSR
	OpAND
	OpLDR
	OpSTR
	OpRTI
	OpNOT
	OpLDI
	OpSTI
	OpJMP
	OpRES
	OpLEA
	OpTRAP
)

// Trap service codes dispatched by the TRAP opcode (§4.5).
const (
	TrapGETC  uint16 = 0x20 // read a character, not echoed
	TrapOUT   uint16 = 0x21 // write a character
	TrapPUTS  uint16 = 0x22 // write a null-terminated word string, one char/word
	TrapIN    uint16 = 0x23 // prompt, read and echo a character
	TrapPUTSP uint16 = 0x24 // write a null-terminated packed byte string
	TrapHALT  uint16 = 0x25 // stop execution
)

// signExtend widens the low bitCount bits of x to a full 16-bit two's
// complement value, replicating bit (bitCount-1) into the vacated high
// bits.
func signExtend(x, bitCount uint16) uint16 {
	if (x>>(bitCount-1))&0x1 != 0 {
		x |= 0xFFFF << bitCount
	}
	return x
}
