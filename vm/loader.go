package vm

import (
	"fmt"
	"os"
)

// LoadImage reads the LC-3 binary image at path into memory. The first
// word of the file is the big-endian origin address; the remaining words
// are placed contiguously starting there.
func (m *Memory) LoadImage(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoadFailure, path, err)
	}
	if err := m.loadImageBytes(data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoadFailure, path, err)
	}
	return nil
}

// loadImageBytes decodes origin and program words from a raw image buffer.
// Bytes that would land past the top of the address space are silently
// ignored, and a trailing odd byte (a truncated final word) is dropped.
func (m *Memory) loadImageBytes(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("image too short: %d bytes", len(data))
	}
	origin := int(uint16(data[0])<<8 | uint16(data[1]))
	words := (len(data) - 2) / 2
	for i := 0; i < words; i++ {
		addr := origin + i
		if addr >= MemorySize {
			break
		}
		hi, lo := data[2+2*i], data[2+2*i+1]
		m.words[addr] = uint16(hi)<<8 | uint16(lo)
	}
	return nil
}
