package engine

import (
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	nctTolerance = 1e-12
	nctMaxTerms  = 1000
)

// noncentralTCDF evaluates P(T <= t) for the noncentral t-distribution with
// df degrees of freedom and noncentrality parameter delta, using Lenth's
// series (Algorithm AS 243). The incomplete-beta terms come from
// gonum/mathext; gonum's distuv has no noncentral t.
//
// df may be fractional: clustering adjustments produce non-integer
// effective sample sizes.
func noncentralTCDF(t, df, delta float64) float64 {
	if df <= 0 || math.IsNaN(t) || math.IsNaN(delta) {
		return math.NaN()
	}

	negdel := false
	tt, del := t, delta
	if t < 0 {
		negdel = true
		tt, del = -t, -delta
	}

	x := tt * tt / (tt*tt + df)
	if x <= 0 {
		// t == 0: the series degenerates to the normal tail.
		return finishNCT(pnorm(-del), negdel)
	}

	lambda := del * del
	p := 0.5 * math.Exp(-0.5*lambda)
	q := math.Sqrt(2/math.Pi) * p * del
	// s = 0.5 - p, computed via expm1 to survive tiny lambda
	s := -0.5 * math.Expm1(-0.5*lambda)

	a := 0.5
	b := 0.5 * df
	rxb := math.Pow(1-x, b)
	albeta := lgamma(a) + lgamma(b) - lgamma(a+b)
	xodd := mathext.RegIncBeta(a, b, x)
	godd := 2 * rxb * math.Exp(a*math.Log(x)-albeta)
	xeven := 1 - rxb
	geven := b * x * rxb

	tnc := p*xodd + q*xeven
	en := 1.0
	for i := 0; i < nctMaxTerms; i++ {
		a++
		xodd -= godd
		xeven -= geven
		godd *= x * (a + b - 1) / a
		geven *= x * (a + b - 0.5) / (a + 0.5)
		p *= lambda / (2 * en)
		q *= lambda / (2*en + 1)
		s -= p
		en++
		tnc += p*xodd + q*xeven

		if errbd := 2 * s * (xodd - godd); math.Abs(errbd) < nctTolerance {
			break
		}
	}

	return finishNCT(tnc+pnorm(-del), negdel)
}

func finishNCT(tnc float64, negdel bool) float64 {
	if negdel {
		tnc = 1 - tnc
	}
	return math.Min(1, math.Max(0, tnc))
}

func pnorm(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}
