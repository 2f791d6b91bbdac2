package wave

import (
	"math"
	"testing"
)

func TestVerticalFactor_Bounds(t *testing.T) {
	for _, mod := range []float64{0, 0.3, 0.75, 1} {
		for _, rows := range []int{1, 2, 3, 8, 25} {
			for row := 0; row < rows; row++ {
				v := VerticalFactor(row, rows, mod)
				if v < mod-epsilon || v > 1+epsilon {
					t.Errorf("VerticalFactor(%d, %d, %v) = %v outside [%v, 1]", row, rows, mod, v, mod)
				}
			}
		}
	}
}

func TestVerticalFactor_EdgesAndMiddle(t *testing.T) {
	const mod = 0.3
	const rows = 5

	if got := VerticalFactor(0, rows, mod); math.Abs(got-mod) > epsilon {
		t.Errorf("first row factor = %v, want %v", got, mod)
	}
	if got := VerticalFactor(rows-1, rows, mod); math.Abs(got-mod) > epsilon {
		t.Errorf("last row factor = %v, want %v", got, mod)
	}
	if got := VerticalFactor(2, rows, mod); math.Abs(got-1) > epsilon {
		t.Errorf("middle row factor = %v, want 1", got)
	}
}

func TestVerticalFactor_SingleRowFallback(t *testing.T) {
	for _, mod := range []float64{0, 0.4, 1} {
		got := VerticalFactor(0, 1, mod)
		if math.IsNaN(got) || got != mod {
			t.Errorf("VerticalFactor(0, 1, %v) = %v, want fallback %v", mod, got, mod)
		}
	}
}

func TestRowAmplitudes(t *testing.T) {
	p := DefaultParams()
	p.MinAmplitude = 0.5
	p.MaxAmplitude = 2
	p.VerticalAmplitudeMod = 0.25

	amps := p.RowAmplitudes(nil, 0, 3)
	if len(amps) != 3 {
		t.Fatalf("len = %d, want 3", len(amps))
	}

	// t=0 时 E = MaxAmplitude
	want := []float64{2 * 0.25, 2 * 1, 2 * 0.25}
	for row, w := range want {
		if math.Abs(amps[row]-w) > epsilon {
			t.Errorf("A(%d) = %v, want %v", row, amps[row], w)
		}
	}

	// 复用缓冲区
	reused := p.RowAmplitudes(amps, 0, 2)
	if &reused[0] != &amps[0] {
		t.Error("RowAmplitudes should reuse dst when capacity allows")
	}
}

func TestRowAmplitudes_SingleRow(t *testing.T) {
	p := DefaultParams()
	amps := p.RowAmplitudes(nil, 0, 1)
	want := p.MaxAmplitude * p.VerticalAmplitudeMod
	if len(amps) != 1 || math.Abs(amps[0]-want) > epsilon {
		t.Errorf("RowAmplitudes(rows=1) = %v, want [%v]", amps, want)
	}
}
