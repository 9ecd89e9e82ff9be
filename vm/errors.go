package vm

import "errors"

// Error kinds per §7. Callers match with errors.Is; the dynamic detail
// (path, opcode, pc) is wrapped on with fmt.Errorf("%w: ...").
var (
	// ErrUsage signals too few image-file arguments were supplied.
	ErrUsage = errors.New("usage: lc3vm <image-file> [<image-file> ...]")

	// ErrLoadFailure signals an image file could not be opened or read.
	ErrLoadFailure = errors.New("failed to load image")

	// ErrReservedOpcode signals execution reached RTI or the reserved
	// opcode 1101.
	ErrReservedOpcode = errors.New("reserved opcode")

	// ErrHostIO signals a failure from the host adapter (terminal or
	// console I/O).
	ErrHostIO = errors.New("host i/o failure")
)
