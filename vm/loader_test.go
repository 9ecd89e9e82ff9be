package vm

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeImage(t *testing.T, words ...uint16) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "image.obj")
	buf := make([]byte, 0, len(words)*2)
	for _, w := range words {
		buf = append(buf, byte(w>>8), byte(w))
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadImagePlacesWordsAtOrigin(t *testing.T) {
	expect := func(got, want interface{}) {
		t.Helper()
		if got != want {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	path := writeImage(t, 0x3000, 0xF025, 0x1234)
	mem := NewMemory(nil)
	if err := mem.LoadImage(path); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	w0, w1 := mem.Read(0x3000), mem.Read(0x3001)
	t.Logf("mem[0x3000]=0x%04X mem[0x3001]=0x%04X", w0, w1)
	expect(w0, uint16(0xF025))
	expect(w1, uint16(0x1234))
}

func TestLoadImageTruncatedTrailingByteDropped(t *testing.T) {
	path := writeImage(t, 0x3000, 0xABCD)
	dir := filepath.Dir(path)
	full, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	truncated := filepath.Join(dir, "truncated.obj")
	if err := os.WriteFile(truncated, append(full, 0xFF), 0o644); err != nil {
		t.Fatal(err)
	}

	mem := NewMemory(nil)
	if err := mem.LoadImage(truncated); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if got := mem.Read(0x3000); got != 0xABCD {
		t.Fatalf("mem[0x3000] = 0x%04X, want 0xABCD", got)
	}
	if got := mem.Read(0x3001); got != 0 {
		t.Fatalf("mem[0x3001] = 0x%04X, want 0 (trailing odd byte dropped)", got)
	}
}

func TestLoadImageOverflowIsIgnored(t *testing.T) {
	path := writeImage(t, 0xFFFF, 0x1111, 0x2222)
	mem := NewMemory(nil)
	if err := mem.LoadImage(path); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if got := mem.Read(0xFFFF); got != 0x1111 {
		t.Fatalf("mem[0xFFFF] = 0x%04X, want 0x1111", got)
	}
	// the second word would land at address 0x10000, past the address
	// space; it must be dropped, not wrapped to 0x0000.
	if got := mem.Read(0x0000); got != 0 {
		t.Fatalf("mem[0x0000] = 0x%04X, want 0 (overflowed word dropped, not wrapped)", got)
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	mem := NewMemory(nil)
	err := mem.LoadImage(filepath.Join(t.TempDir(), "does-not-exist.obj"))
	if !errors.Is(err, ErrLoadFailure) {
		t.Fatalf("err = %v, want wrapping ErrLoadFailure", err)
	}
}

func TestLoadImagesLaterOverwritesEarlier(t *testing.T) {
	first := writeImage(t, 0x3000, 0x1111, 0x2222)
	second := writeImage(t, 0x3000, 0x3333)

	vm := New(newFakeHost(""))
	if err := vm.LoadImages([]string{first, second}); err != nil {
		t.Fatalf("LoadImages: %v", err)
	}
	if got := vm.Memory.Read(0x3000); got != 0x3333 {
		t.Fatalf("mem[0x3000] = 0x%04X, want 0x3333 (second image wins)", got)
	}
	if got := vm.Memory.Read(0x3001); got != 0x2222 {
		t.Fatalf("mem[0x3001] = 0x%04X, want 0x2222 (untouched by second image)", got)
	}
}
