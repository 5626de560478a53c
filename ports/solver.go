package ports

// PowerSolver is the external power-analysis routine for the two-sample
// t-test, abstracted so the estimators can be exercised against a
// deterministic stub instead of the real numeric solver.
//
// Both operations assume equal variance and a two-sided alternative.
// Observation counts are real-valued: clustering adjustments produce
// fractional effective sample sizes.
type PowerSolver interface {
	// SolvePower returns the achieved power for the given standardized
	// effect size, first-group observation count, group-size ratio
	// (nObs2 = nObs1*ratio) and significance level.
	SolvePower(effectSize, nObs1, ratio, alpha float64) (float64, error)

	// SolveSampleSize solves the same power equation for the first-group
	// observation count needed to reach the target power.
	SolveSampleSize(effectSize, alpha, power, ratio float64) (float64, error)
}
