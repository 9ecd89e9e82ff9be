package vm

import "strings"

// fakeHost is an in-memory Host for deterministic tests: KeyPoll/KeyRead
// drain a preset queue of bytes, WriteByte/Flush accumulate into a
// buffer, and raw-mode acquisition is a no-op (§9 "Polymorphism over the
// capability set").
type fakeHost struct {
	pendingKeys []byte
	written     strings.Builder
	rawEntered  bool
}

func newFakeHost(keys string) *fakeHost {
	return &fakeHost{pendingKeys: []byte(keys)}
}

func (h *fakeHost) KeyPoll() bool {
	return len(h.pendingKeys) > 0
}

func (h *fakeHost) KeyRead() byte {
	if len(h.pendingKeys) == 0 {
		return 0
	}
	b := h.pendingKeys[0]
	h.pendingKeys = h.pendingKeys[1:]
	return b
}

func (h *fakeHost) WriteByte(b byte) error {
	h.written.WriteByte(b)
	return nil
}

func (h *fakeHost) Flush() error { return nil }

func (h *fakeHost) EnterRawMode() error {
	h.rawEntered = true
	return nil
}

func (h *fakeHost) LeaveRawMode() error {
	h.rawEntered = false
	return nil
}

func (h *fakeHost) Output() string { return h.written.String() }
