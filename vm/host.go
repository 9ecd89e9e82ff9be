package vm

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Host is the capability bundle the core requires from its environment
// (§6, §9 "Polymorphism over the capability set"). The core is
// parameterized over this interface so it is testable with an in-memory
// fake instead of a real terminal.
type Host interface {
	// KeyPoll reports, without blocking, whether a byte is available.
	KeyPoll() bool
	// KeyRead reads one byte, blocking if necessary.
	KeyRead() byte
	// WriteByte buffers one byte of output.
	WriteByte(b byte) error
	// Flush delivers buffered output to its destination.
	Flush() error
	// EnterRawMode disables canonical input and echo, if stdin is a
	// terminal; terminal settings are left unchanged otherwise.
	EnterRawMode() error
	// LeaveRawMode restores whatever terminal state EnterRawMode found.
	LeaveRawMode() error
}

// TerminalHost is the real Host: stdin/stdout behind raw-mode terminal
// control, with a background goroutine polling stdin for keystrokes so
// KeyPoll never blocks the interpreter loop.
type TerminalHost struct {
	fd  int
	out *bufio.Writer

	origTermios unix.Termios
	origState   *term.State
	rawEntered  bool

	keys    chan byte
	pending *byte
	stop    chan struct{}
}

// NewTerminalHost constructs a Host backed by the process's stdin/stdout.
func NewTerminalHost() *TerminalHost {
	return &TerminalHost{
		fd:   int(os.Stdin.Fd()),
		out:  bufio.NewWriter(os.Stdout),
		keys: make(chan byte, 32),
		stop: make(chan struct{}),
	}
}

// EnterRawMode disables canonical mode and echo so the VM sees every
// keystroke immediately and unprinted. Non-terminal stdin (a pipe, a
// redirected file, as in tests) is left untouched, but is still polled
// for input.
func (h *TerminalHost) EnterRawMode() error {
	if !term.IsTerminal(h.fd) {
		go h.pollKeyboard()
		return nil
	}

	state, err := term.GetState(h.fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	h.origState = state

	if err := termios.Tcgetattr(uintptr(h.fd), &h.origTermios); err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	raw := h.origTermios
	raw.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(uintptr(h.fd), termios.TCSANOW, &raw); err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}

	h.rawEntered = true
	go h.pollKeyboard()
	return nil
}

// LeaveRawMode restores the terminal to the state EnterRawMode found it
// in. Safe to call multiple times and on the no-raw-mode path.
func (h *TerminalHost) LeaveRawMode() error {
	if !h.rawEntered {
		return nil
	}
	h.rawEntered = false
	close(h.stop)

	if err := termios.Tcsetattr(uintptr(h.fd), termios.TCSANOW, &h.origTermios); err != nil {
		return fmt.Errorf("leave raw mode: %w", err)
	}
	if h.origState != nil {
		return term.Restore(h.fd, h.origState)
	}
	return nil
}

func (h *TerminalHost) pollKeyboard() {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	buf := make([]byte, 1)
	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				continue
			}
			select {
			case h.keys <- buf[0]:
			case <-h.stop:
				return
			}
		}
	}
}

// KeyPoll reports whether a key is pending without consuming it, and
// without blocking.
func (h *TerminalHost) KeyPoll() bool {
	if h.pending != nil {
		return true
	}
	select {
	case b := <-h.keys:
		h.pending = &b
		return true
	default:
		return false
	}
}

// KeyRead returns the pending key if KeyPoll already latched one,
// otherwise blocks until the next keystroke arrives.
func (h *TerminalHost) KeyRead() byte {
	if h.pending != nil {
		b := *h.pending
		h.pending = nil
		return b
	}
	return <-h.keys
}

func (h *TerminalHost) WriteByte(b byte) error {
	return h.out.WriteByte(b)
}

func (h *TerminalHost) Flush() error {
	return h.out.Flush()
}

// InstallInterruptHandler invokes fn on the process's first interrupt
// signal. fn is responsible for restoring the terminal and terminating
// the process (§6).
func (h *TerminalHost) InstallInterruptHandler(fn func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		fn()
	}()
}
