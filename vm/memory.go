package vm

// MemorySize is the number of 16-bit words addressable by the LC-3: the
// full range of a 16-bit address.
const MemorySize = 1 << 16

// Conventional LC-3 address-space regions.
const (
	TrapVectorTableStart       = 0x0000
	InterruptVectorTableStart  = 0x0100
	SystemSpaceStart           = 0x0200
	UserSpaceStart             = 0x3000
	MemoryMappedRegistersStart = 0xFE00
)

// Memory-mapped keyboard device registers (§3).
const (
	KBSR = MemoryMappedRegistersStart          // keyboard status register
	KBDR = MemoryMappedRegistersStart + 0x0002 // keyboard data register
)

const keyboardReady uint16 = 1 << 15

// Memory is the LC-3's flat 64Ki-word address space. Reading KBSR polls the
// host for a pending key as a side effect; every other address is plain
// storage.
type Memory struct {
	words [MemorySize]uint16
	host  Host
}

// NewMemory returns a zeroed Memory backed by host for keyboard polling.
// host may be nil for tests that never touch the keyboard device registers.
func NewMemory(host Host) *Memory {
	return &Memory{host: host}
}

// Read returns the word stored at addr. Reading KBSR latches a pending host
// keystroke into KBDR with the ready bit set, or clears the ready bit when
// none is pending.
func (m *Memory) Read(addr uint16) uint16 {
	if addr == KBSR {
		if m.host != nil && m.host.KeyPoll() {
			m.words[KBSR] = keyboardReady
			m.words[KBDR] = uint16(m.host.KeyRead())
		} else {
			m.words[KBSR] = 0
		}
	}
	return m.words[addr]
}

// Write stores value at addr. Device registers have no special write
// behavior; they are ordinary storage from the write side.
func (m *Memory) Write(addr, value uint16) {
	m.words[addr] = value
}
