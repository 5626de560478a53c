package app

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gopower/adapters/stats/engine"
	"gopower/domain/study"
)

// Property-based checks of the estimator's monotonicity guarantees: power
// never drops when the design gets stronger (more teachers, bigger effect)
// and never rises when clustering gets worse (higher ICC).
func TestEstimatePower_MonotonicityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.Rng.Seed(42)
	properties := gopter.NewProperties(parameters)

	svc := NewPowerService(engine.NewTTestEngine())

	powerAt := func(teachers int, share, es, icc float64, clustered bool) float64 {
		est, err := svc.EstimatePower(PowerRequest{
			Design: study.Design{
				Teachers:           teachers,
				OutcomeShare:       share,
				StudentsPerTeacher: 22,
				UseClustering:      clustered,
				ICC:                icc,
			},
			EffectSize: es,
		})
		if err != nil {
			t.Fatalf("EstimatePower: %v", err)
		}
		return est.Power
	}

	properties.Property("power non-decreasing in teachers", prop.ForAll(
		func(teachers int, share, es float64) bool {
			return powerAt(teachers+1, share, es, 0, false) >= powerAt(teachers, share, es, 0, false)-1e-9
		},
		gen.IntRange(1, 300),
		gen.Float64Range(0.1, 1.0),
		gen.Float64Range(0.03, 0.24),
	))

	properties.Property("power non-decreasing in effect size", prop.ForAll(
		func(teachers int, share, es float64) bool {
			return powerAt(teachers, share, es+0.01, 0, false) >= powerAt(teachers, share, es, 0, false)-1e-9
		},
		gen.IntRange(1, 300),
		gen.Float64Range(0.1, 1.0),
		gen.Float64Range(0.03, 0.23),
	))

	properties.Property("power non-increasing in icc", prop.ForAll(
		func(teachers int, es, icc float64) bool {
			return powerAt(teachers, 1, es, icc+0.05, true) <= powerAt(teachers, 1, es, icc, true)+1e-9
		},
		gen.IntRange(1, 300),
		gen.Float64Range(0.03, 0.24),
		gen.Float64Range(0.0, 0.45),
	))

	properties.TestingRun(t)
}
