package study

import (
	"gopower/internal/errors"
)

// Conventional analysis settings. The calculator fixes these rather than
// exposing them: alpha and target power follow the usual reporting
// conventions in education research, and the cluster size default is the
// approximate statewide average classroom size.
const (
	Alpha                     = 0.05
	TargetPower               = 0.80
	DefaultStudentsPerTeacher = 22
)

// SweepGrid is the effect-size grid rendered in the power table:
// 0.03 through 0.24 in steps of 0.03.
var SweepGrid = []float64{0.03, 0.06, 0.09, 0.12, 0.15, 0.18, 0.21, 0.24}

// Design describes one arm of a two-arm study in which treatment is
// assigned to teachers while outcomes are measured on their students.
// The comparison arm is always constrained equal in size, so a Design
// fully determines both arms.
type Design struct {
	// Teachers is the number of treated teachers (primary sampling units)
	// in the intervention arm.
	Teachers int `json:"teachers"`

	// OutcomeShare is the fraction of teachers whose students actually
	// contribute measured outcomes, in [0,1].
	OutcomeShare float64 `json:"outcome_share"`

	// StudentsPerTeacher is the assumed cluster size.
	StudentsPerTeacher int `json:"students_per_teacher"`

	// UseClustering enables the design-effect adjustment. ICC is not read
	// at all when this is false.
	UseClustering bool `json:"use_clustering"`

	// ICC is the intraclass correlation coefficient, in [0,1]. Read only
	// when UseClustering is true.
	ICC float64 `json:"icc"`
}

// Validate rejects inputs outside their declared domain before they reach
// the estimators.
func (d Design) Validate() error {
	if d.Teachers < 0 {
		return errors.InvalidRange("teachers", "must be non-negative")
	}
	if d.OutcomeShare < 0 || d.OutcomeShare > 1 {
		return errors.InvalidRange("outcome_share", "must be in [0,1]")
	}
	if d.StudentsPerTeacher < 1 {
		return errors.InvalidRange("students_per_teacher", "must be at least 1")
	}
	if d.UseClustering && (d.ICC < 0 || d.ICC > 1) {
		return errors.InvalidRange("icc", "must be in [0,1]")
	}
	return nil
}

// EffectiveTeachers is the per-arm teacher count actually contributing
// outcomes. Both arms share this value because the arms are equal by
// construction.
func (d Design) EffectiveTeachers() float64 {
	return float64(d.Teachers) * d.OutcomeShare
}

// EffectBand classifies an effect size using the Kraft (2019) bands for
// education interventions. Informational only; nothing is enforced.
type EffectBand string

const (
	EffectSmall  EffectBand = "small"
	EffectMedium EffectBand = "medium"
	EffectLarge  EffectBand = "large"
)

// BandFor returns the Kraft band for an effect size:
// <0.05 small, [0.05,0.20) medium, >=0.20 large.
func BandFor(effectSize float64) EffectBand {
	switch {
	case effectSize < 0.05:
		return EffectSmall
	case effectSize < 0.20:
		return EffectMedium
	default:
		return EffectLarge
	}
}

// ValidateEffectSize rejects non-positive effect sizes. The sweep grid and
// sliders keep values in [0.03, 0.24]; anything positive is accepted here.
func ValidateEffectSize(effectSize float64) error {
	if effectSize <= 0 {
		return errors.InvalidRange("effect_size", "must be positive")
	}
	return nil
}
