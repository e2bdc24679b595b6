package core

import "testing"

func TestTargetsFormula(t *testing.T) {
	tt := NewTargets()
	for parity := 0; parity < 2; parity++ {
		for _, i := range []int{0, 1, C - 1, C, BC / 2, BC - 1} {
			indJ := i / C
			targets := tt.Lookup(uint16(parity), uint16(i))
			for m := 0; m < ExtraBitsPow; m++ {
				want := ((indJ+m)%B)*C + ((2*m+parity)*(2*m+parity)+i)%C
				if got := int(targets[m]); got != want {
					t.Errorf("target[%d][%d][%d] = %d, want %d", parity, i, m, got, want)
				}
			}
		}
	}
}

func TestTargetsInRange(t *testing.T) {
	tt := NewTargets()
	for parity := 0; parity < 2; parity++ {
		for i := 0; i < BC; i++ {
			for _, target := range tt.Lookup(uint16(parity), uint16(i)) {
				if int(target) >= BC {
					t.Fatalf("target[%d][%d] = %d exceeds BC-1", parity, i, target)
				}
			}
		}
	}
}
