package vm

// VM wires together the register file, memory and host adapter and owns
// their lifecycle: load images, enter raw mode, run, leave raw mode.
type VM struct {
	Memory *Memory
	CPU    *CPU
	Host   Host
}

// New constructs a VM backed by host. Call LoadImages then Start before
// Run.
func New(host Host) *VM {
	mem := NewMemory(host)
	cpu := NewCPU(mem, host)
	return &VM{Memory: mem, CPU: cpu, Host: host}
}

// LoadImages loads each image file in order; later images overwrite any
// memory regions earlier ones also populated.
func (vm *VM) LoadImages(paths []string) error {
	for _, path := range paths {
		if err := vm.Memory.LoadImage(path); err != nil {
			return err
		}
	}
	return nil
}

// Start acquires the host's raw terminal mode and resets the register
// file to the power-on state.
func (vm *VM) Start() error {
	if err := vm.Host.EnterRawMode(); err != nil {
		return err
	}
	vm.CPU.Reset()
	return nil
}

// Run drives the fetch-decode-execute loop to completion (HALT or a
// fatal error).
func (vm *VM) Run() error {
	return vm.CPU.Run()
}

// Stop releases the host's raw terminal mode. Safe to call after a
// normal HALT, a fatal error, or an interrupt; always runs to release
// the terminal regardless of how execution ended.
func (vm *VM) Stop() error {
	if err := vm.Host.LeaveRawMode(); err != nil {
		return err
	}
	if err := vm.Host.WriteByte('\n'); err != nil {
		return err
	}
	return vm.Host.Flush()
}
