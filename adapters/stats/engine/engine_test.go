package engine

import (
	"math"
	"testing"

	"gopower/domain/study"
	"gopower/internal/errors"
)

// Reference values recomputed independently with the noncentral-t power
// formulation used by standard power software (pooled two-sample t-test,
// two-sided, equal variances). Cohen's textbook case d=0.5 at alpha=0.05
// and power 0.80 requires 63.77 observations per group.
func TestSolvePower_GoldStandard(t *testing.T) {
	e := NewTTestEngine()

	tests := []struct {
		name       string
		effectSize float64
		nObs1      float64
		want       float64
	}{
		{"cohen d=0.5 n=64", 0.5, 64, 0.8014596},
		{"es=0.03 n=550", 0.03, 550, 0.0787513},
		{"es=0.06 n=550", 0.06, 550, 0.1686285},
		{"es=0.09 n=550", 0.09, 550, 0.3198897},
		{"es=0.12 n=550", 0.12, 550, 0.5113161},
		{"es=0.15 n=550", 0.15, 550, 0.7003269},
		{"es=0.18 n=550", 0.18, 550, 0.8467014},
		{"es=0.21 n=550", 0.21, 550, 0.9356747},
		{"es=0.24 n=550", 0.24, 550, 0.9781263},
		{"clustered effective n", 0.12, 550.0 / 5.2, 0.1399085},
		{"es=0.2 n=394", 0.2, 394, 0.8005931},
		{"small sample", 0.5, 5, 0.1076860},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.SolvePower(tt.effectSize, tt.nObs1, 1, study.Alpha)
			if err != nil {
				t.Fatalf("SolvePower: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-5 {
				t.Fatalf("SolvePower(%v, %v) = %.7f, want %.7f", tt.effectSize, tt.nObs1, got, tt.want)
			}
		})
	}
}

func TestSolvePower_FloorAtDegenerateN(t *testing.T) {
	e := NewTTestEngine()
	// With df <= 0 there is nothing to test against; the floor is the
	// test's size.
	for _, n := range []float64{0, 0.5, 1} {
		got, err := e.SolvePower(0.12, n, 1, study.Alpha)
		if err != nil {
			t.Fatalf("SolvePower(n=%v): %v", n, err)
		}
		if got != study.Alpha {
			t.Fatalf("SolvePower(n=%v) = %v, want floor %v", n, got, study.Alpha)
		}
	}
}

func TestSolvePower_MonotoneInEffectSize(t *testing.T) {
	e := NewTTestEngine()
	prev := -1.0
	for _, es := range study.SweepGrid {
		got, err := e.SolvePower(es, 550, 1, study.Alpha)
		if err != nil {
			t.Fatalf("SolvePower(es=%v): %v", es, err)
		}
		if got < prev {
			t.Fatalf("power decreased at es=%v: %v < %v", es, got, prev)
		}
		prev = got
	}
}

func TestSolvePower_InvalidInputs(t *testing.T) {
	e := NewTTestEngine()
	if _, err := e.SolvePower(0.12, 100, 1, 0); err == nil {
		t.Fatal("expected error for alpha=0")
	}
	if _, err := e.SolvePower(0.12, 100, 0, 0.05); err == nil {
		t.Fatal("expected error for ratio=0")
	}
	if _, err := e.SolvePower(math.NaN(), 100, 1, 0.05); err == nil {
		t.Fatal("expected error for NaN effect size")
	}
}

func TestSolveSampleSize_GoldStandard(t *testing.T) {
	e := NewTTestEngine()

	tests := []struct {
		name       string
		effectSize float64
		want       float64
		tol        float64
	}{
		{"cohen d=0.5", 0.5, 63.766, 0.01},
		{"es=0.2", 0.2, 393.406, 0.01},
		{"es=0.12", 0.12, 1091.081, 0.05},
		{"es=0.06", 0.06, 4361.439, 0.2},
		{"es=0.03", 0.03, 17442.873, 0.5},
		{"es=0.24", 0.24, 273.494, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.SolveSampleSize(tt.effectSize, study.Alpha, study.TargetPower, 1)
			if err != nil {
				t.Fatalf("SolveSampleSize: %v", err)
			}
			if math.Abs(got-tt.want) > tt.tol {
				t.Fatalf("SolveSampleSize(%v) = %.3f, want %.3f", tt.effectSize, got, tt.want)
			}
		})
	}
}

func TestSolveSampleSize_SelfConsistent(t *testing.T) {
	e := NewTTestEngine()
	for _, es := range study.SweepGrid {
		n, err := e.SolveSampleSize(es, study.Alpha, study.TargetPower, 1)
		if err != nil {
			t.Fatalf("SolveSampleSize(es=%v): %v", es, err)
		}
		p, err := e.SolvePower(es, n, 1, study.Alpha)
		if err != nil {
			t.Fatalf("SolvePower(es=%v, n=%v): %v", es, n, err)
		}
		if math.Abs(p-study.TargetPower) > 1e-6 {
			t.Fatalf("solve not self-consistent at es=%v: power(%v) = %v", es, n, p)
		}
	}
}

func TestSolveSampleSize_Failures(t *testing.T) {
	e := NewTTestEngine()

	if _, err := e.SolveSampleSize(0, study.Alpha, study.TargetPower, 1); !errors.HasCode(err, errors.CodeSolverFailure) {
		t.Fatalf("expected SOLVER_FAILURE for zero effect size, got %v", err)
	}
	if _, err := e.SolveSampleSize(-0.1, study.Alpha, study.TargetPower, 1); !errors.HasCode(err, errors.CodeSolverFailure) {
		t.Fatalf("expected SOLVER_FAILURE for negative effect size, got %v", err)
	}
	// Effect sizes near zero push the requirement past the solve bound.
	if _, err := e.SolveSampleSize(1e-6, study.Alpha, study.TargetPower, 1); !errors.HasCode(err, errors.CodeSolverFailure) {
		t.Fatalf("expected SOLVER_FAILURE for vanishing effect size, got %v", err)
	}
	if _, err := e.SolveSampleSize(0.5, study.Alpha, 0.04, 1); !errors.HasCode(err, errors.CodeInvalidRange) {
		t.Fatalf("expected INVALID_RANGE for power below alpha, got %v", err)
	}
}

func TestSolveSampleSize_HugeEffectHitsLowerBound(t *testing.T) {
	e := NewTTestEngine()
	got, err := e.SolveSampleSize(10, study.Alpha, study.TargetPower, 1)
	if err != nil {
		t.Fatalf("SolveSampleSize: %v", err)
	}
	if got != 2 {
		t.Fatalf("SolveSampleSize(10) = %v, want lower bound 2", got)
	}
}
