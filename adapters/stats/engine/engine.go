// Package engine implements the two-sample t-test power routine behind
// ports.PowerSolver: achieved power from the noncentral t-distribution,
// and the inverse solve for the observation count reaching a target power.
package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gopower/internal/errors"
)

const (
	// maxObservations bounds the inverse solve. Effect sizes near zero push
	// the required sample size past any plausible study; beyond this the
	// solve is reported as a failure rather than an astronomical number.
	maxObservations = 1e9

	solveIterations = 200
)

// TTestEngine computes power for an independent two-sample t-test with
// equal variances. It is stateless and safe for concurrent use.
type TTestEngine struct{}

// NewTTestEngine creates the gonum-backed power engine.
func NewTTestEngine() *TTestEngine {
	return &TTestEngine{}
}

// SolvePower returns the achieved power for the given standardized effect
// size and first-group observation count, with nObs2 = nObs1*ratio.
//
// Degenerate designs (fewer than two total observations beyond the two
// estimated means, i.e. df <= 0) report the test's size alpha as the floor:
// with no usable observations the rejection probability is indistinguishable
// from chance.
func (e *TTestEngine) SolvePower(effectSize, nObs1, ratio, alpha float64) (float64, error) {
	if alpha <= 0 || alpha >= 1 {
		return 0, errors.InvalidRange("alpha", "must be in (0,1)")
	}
	if ratio <= 0 {
		return 0, errors.InvalidRange("ratio", "must be positive")
	}
	if math.IsNaN(effectSize) || math.IsInf(effectSize, 0) {
		return 0, errors.InvalidRange("effect_size", "must be finite")
	}

	nObs2 := nObs1 * ratio
	df := nObs1 + nObs2 - 2
	if df <= 0 {
		return alpha, nil
	}

	// Noncentrality parameter for the pooled two-sample statistic.
	nc := effectSize * math.Sqrt(nObs1*nObs2/(nObs1+nObs2))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	crit := tDist.Quantile(1 - alpha/2)

	power := 1 - noncentralTCDF(crit, df, nc) + noncentralTCDF(-crit, df, nc)
	if math.IsNaN(power) || power < 0 || power > 1 {
		return 0, errors.SolverFailure(
			fmt.Sprintf("implausible power %v for effect_size=%v nobs1=%v", power, effectSize, nObs1), nil)
	}
	return power, nil
}

// SolveSampleSize solves for the first-group observation count at which the
// test reaches the target power, by bisection on the monotone power curve.
// The returned count is real-valued; callers round up in their own units.
func (e *TTestEngine) SolveSampleSize(effectSize, alpha, power, ratio float64) (float64, error) {
	if alpha <= 0 || alpha >= 1 {
		return 0, errors.InvalidRange("alpha", "must be in (0,1)")
	}
	if power <= alpha || power >= 1 {
		return 0, errors.InvalidRange("power", "must be in (alpha,1)")
	}
	if ratio <= 0 {
		return 0, errors.InvalidRange("ratio", "must be positive")
	}
	if effectSize <= 0 || math.IsNaN(effectSize) || math.IsInf(effectSize, 0) {
		return 0, errors.SolverFailure(
			fmt.Sprintf("cannot solve sample size for effect_size=%v", effectSize), nil)
	}

	lo := 2.0
	if p, err := e.SolvePower(effectSize, lo, ratio, alpha); err != nil {
		return 0, err
	} else if p >= power {
		return lo, nil
	}

	// Expand the bracket until the target power is enclosed.
	hi := 4.0
	for {
		p, err := e.SolvePower(effectSize, hi, ratio, alpha)
		if err != nil {
			return 0, err
		}
		if p >= power {
			break
		}
		hi *= 2
		if hi > maxObservations {
			return 0, errors.SolverFailure(
				fmt.Sprintf("no sample size below %.0g reaches power %v for effect_size=%v",
					maxObservations, power, effectSize), nil)
		}
	}

	for i := 0; i < solveIterations; i++ {
		mid := 0.5 * (lo + hi)
		p, err := e.SolvePower(effectSize, mid, ratio, alpha)
		if err != nil {
			return 0, err
		}
		if p < power {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-9*hi {
			break
		}
	}
	return hi, nil
}
