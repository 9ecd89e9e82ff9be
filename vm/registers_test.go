package vm

import "testing"

func TestRegistersReset(t *testing.T) {
	var r Registers
	r.GP[R3] = 0xBEEF
	r.PC = 0x1234
	r.Cond = FlagNeg
	r.Reset()

	if r.PC != UserSpaceStart {
		t.Fatalf("PC after reset = 0x%04X, want 0x%04X", r.PC, UserSpaceStart)
	}
	if r.Cond != FlagZro {
		t.Fatalf("Cond after reset = %v, want FlagZro", r.Cond)
	}
	for i, v := range r.GP {
		if v != 0 {
			t.Fatalf("GP[%d] after reset = 0x%04X, want 0", i, v)
		}
	}
}

func TestUpdateFlags(t *testing.T) {
	expect := func(got, want interface{}) {
		t.Helper()
		if got != want {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	cases := []struct {
		name string
		val  uint16
		want Flag
	}{
		{"zero", 0x0000, FlagZro},
		{"positive", 0x0001, FlagPos},
		{"max positive", 0x7FFF, FlagPos},
		{"negative", 0x8000, FlagNeg},
		{"all ones", 0xFFFF, FlagNeg},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r Registers
			r.GP[R2] = tc.val
			r.UpdateFlags(R2)
			t.Logf("value=0x%04X Cond=%v", tc.val, r.Cond)
			expect(r.Cond, tc.want)
		})
	}
}

func TestConditionFlagsExactlyOneSet(t *testing.T) {
	var r Registers
	for _, v := range []uint16{0, 1, 0x7FFF, 0x8000, 0xFFFF} {
		r.GP[R0] = v
		r.UpdateFlags(R0)
		set := 0
		for _, f := range []Flag{FlagPos, FlagZro, FlagNeg} {
			if r.Cond == f {
				set++
			}
		}
		if set != 1 {
			t.Fatalf("value 0x%04X: expected exactly one flag set, Cond=%v", v, r.Cond)
		}
	}
}
