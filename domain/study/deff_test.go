package study

import (
	"math"
	"testing"
)

func TestDesignEffect_ClusteringOffIsExactlyOne(t *testing.T) {
	// icc must be ignored outright when clustering is off, including
	// nonsense values a stale slider might hold.
	for _, icc := range []float64{0, 0.01, 0.2, 0.5, 1.0, 7.5} {
		if got := DesignEffect(22, icc, false); got != 1 {
			t.Fatalf("DesignEffect(22, %v, false) = %v, want exactly 1", icc, got)
		}
	}
}

func TestDesignEffect_ZeroICCIsOne(t *testing.T) {
	if got := DesignEffect(22, 0, true); got != 1 {
		t.Fatalf("DesignEffect(22, 0, true) = %v, want exactly 1", got)
	}
}

func TestDesignEffect_Formula(t *testing.T) {
	tests := []struct {
		students int
		icc      float64
		want     float64
	}{
		{22, 0.2, 5.2},
		{22, 0.5, 11.5},
		{22, 0.01, 1.21},
		{2, 0.5, 1.5},
		{1, 0.9, 1.0}, // single student per teacher: nothing to cluster
	}
	for _, tt := range tests {
		got := DesignEffect(tt.students, tt.icc, true)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("DesignEffect(%d, %v, true) = %v, want %v", tt.students, tt.icc, got, tt.want)
		}
	}
}

func TestDesignEffect_StrictlyIncreasingInICC(t *testing.T) {
	prev := DesignEffect(22, 0.01, true)
	if prev <= 1 {
		t.Fatalf("DesignEffect(22, 0.01, true) = %v, want > 1", prev)
	}
	for icc := 0.02; icc <= 1.0; icc += 0.01 {
		got := DesignEffect(22, icc, true)
		if got <= prev {
			t.Fatalf("DesignEffect not strictly increasing at icc=%v: %v <= %v", icc, got, prev)
		}
		prev = got
	}
}

func TestDesign_DEFF(t *testing.T) {
	d := Design{Teachers: 25, OutcomeShare: 1, StudentsPerTeacher: 22, UseClustering: true, ICC: 0.2}
	if got := d.DEFF(); math.Abs(got-5.2) > 1e-12 {
		t.Fatalf("DEFF() = %v, want 5.2", got)
	}

	d.UseClustering = false
	if got := d.DEFF(); got != 1 {
		t.Fatalf("DEFF() with clustering off = %v, want 1", got)
	}
}
