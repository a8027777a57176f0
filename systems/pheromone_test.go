package systems

import (
	"math"
	"math/rand"
	"testing"
)

func TestFieldDepositAndSample(t *testing.T) {
	f := NewField(120, 80, 2)

	f.Deposit(10, 10, 0.4)
	if got := f.Sample(10, 10); math.Abs(float64(got)-0.4) > 1e-6 {
		t.Errorf("Sample after deposit = %v, want 0.4", got)
	}

	// Same cell accumulates
	f.Deposit(10.5, 10.5, 0.4)
	if got := f.Sample(10, 10); math.Abs(float64(got)-0.8) > 1e-6 {
		t.Errorf("Sample after second deposit = %v, want 0.8", got)
	}

	// Clamped at 1
	f.Deposit(10, 10, 5.0)
	if got := f.Sample(10, 10); got != 1 {
		t.Errorf("Sample after oversized deposit = %v, want 1", got)
	}
}

func TestFieldOutOfBoundsIsNeutral(t *testing.T) {
	f := NewField(120, 80, 2)

	// Deposits outside the grid are no-ops
	f.Deposit(-1, 40, 0.5)
	f.Deposit(40, -1, 0.5)
	f.Deposit(500, 40, 0.5)
	f.Deposit(40, 500, 0.5)

	if got := f.Total(); got != 0 {
		t.Errorf("Total after out-of-bounds deposits = %v, want 0", got)
	}

	// Samples outside the grid read zero
	if got := f.Sample(-3, 40); got != 0 {
		t.Errorf("Sample(-3, 40) = %v, want 0", got)
	}
	if got := f.Sample(40, 9999); got != 0 {
		t.Errorf("Sample(40, 9999) = %v, want 0", got)
	}
}

func TestFieldEvaporationMonotoneToZero(t *testing.T) {
	f := NewField(60, 60, 2)
	f.Deposit(30, 30, 1.0)

	// At rate 0.15 and dt 0.05 the cell shrinks by 0.75% per step; the
	// 0.001 snap threshold is crossed after roughly 920 steps.
	prev := f.Sample(30, 30)
	for i := 0; i < 1000; i++ {
		f.Evaporate(0.15, 0.05)
		v := f.Sample(30, 30)
		if v > prev {
			t.Fatalf("evaporation increased cell value: %v -> %v", prev, v)
		}
		prev = v
	}
	if prev != 0 {
		t.Errorf("cell value after long evaporation = %v, want exactly 0", prev)
	}
}

func TestFieldEvaporationSnapsResidues(t *testing.T) {
	f := NewField(10, 10, 1)
	f.Deposit(5, 5, 0.0015)
	f.Evaporate(0.5, 1.0) // 0.0015 * 0.5 = 0.00075 < epsilon
	if got := f.Sample(5, 5); got != 0 {
		t.Errorf("residue below epsilon not snapped to 0, got %v", got)
	}
}

func TestFieldValuesStayInRange(t *testing.T) {
	f := NewField(50, 50, 2)
	rng := rand.New(rand.NewSource(7))

	// Random deposit/evaporate sequences never escape [0,1]
	for i := 0; i < 5000; i++ {
		if rng.Float32() < 0.7 {
			f.Deposit(rng.Float32()*60-5, rng.Float32()*60-5, rng.Float32()*2)
		} else {
			f.Evaporate(rng.Float32()*3, rng.Float32()*0.1)
		}
	}
	for i, v := range f.Values {
		if v < 0 || v > 1 {
			t.Fatalf("cell %d = %v, outside [0,1]", i, v)
		}
	}
}

func TestFieldCoversWholeWorld(t *testing.T) {
	// 121x80 with cell size 2 needs an extra column
	f := NewField(121, 80, 2)
	if f.Cols != 61 || f.Rows != 40 {
		t.Errorf("grid = %dx%d, want 61x40", f.Cols, f.Rows)
	}
	f.Deposit(120.5, 79.5, 0.3)
	if got := f.Sample(120.5, 79.5); got != 0.3 {
		t.Errorf("deposit near far edge lost, sample = %v", got)
	}
}

func TestFieldClone(t *testing.T) {
	f := NewField(20, 20, 2)
	f.Deposit(5, 5, 0.5)

	cp := f.Clone()
	f.Deposit(5, 5, 0.4)

	if got := cp.Sample(5, 5); math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("clone affected by later deposit, sample = %v, want 0.5", got)
	}
}
