package app

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"gopower/domain/core"
	"gopower/domain/study"
	"gopower/internal/errors"
	"gopower/ports"
)

// PowerService answers the two questions the calculator exists for: what
// power does a given study design achieve, and how many teachers does a
// target effect size require. All state lives in the request; each call is
// an independent pure computation over its inputs.
type PowerService struct {
	solver ports.PowerSolver
}

// NewPowerService creates a power service backed by the given solver.
func NewPowerService(solver ports.PowerSolver) *PowerService {
	return &PowerService{solver: solver}
}

// PowerRequest asks for the achieved power of a design at one effect size.
type PowerRequest struct {
	Design     study.Design `json:"design"`
	EffectSize float64      `json:"effect_size"`
}

// PowerEstimate is the achieved power plus the intermediate figures the
// original calculator displayed alongside it.
type PowerEstimate struct {
	Power              float64          `json:"power"`
	EffectSize         float64          `json:"effect_size"`
	Band               study.EffectBand `json:"band"`
	DesignEffect       float64          `json:"design_effect"`
	EffectiveTeachers  float64          `json:"effective_teachers_per_arm"`
	EffectiveObsPerArm float64          `json:"effective_obs_per_arm"`
	TotalTeachers      int              `json:"total_teachers"`
	Adequate           bool             `json:"adequate"`
}

// EstimatePower computes achieved power for a two-arm comparison with equal
// arms: teacher counts are scaled by the outcome share, converted to student
// observations, shrunk by the design effect, and handed to the solver at
// the conventional alpha.
func (s *PowerService) EstimatePower(req PowerRequest) (*PowerEstimate, error) {
	if err := req.Design.Validate(); err != nil {
		return nil, err
	}
	if err := study.ValidateEffectSize(req.EffectSize); err != nil {
		return nil, err
	}

	d := req.Design
	deff := d.DEFF()
	effectiveTeachers := d.EffectiveTeachers()
	effectiveObs := effectiveTeachers * float64(d.StudentsPerTeacher) / deff

	power, err := s.solver.SolvePower(req.EffectSize, effectiveObs, 1, study.Alpha)
	if err != nil {
		return nil, errors.Wrap(err, "power solve failed")
	}

	return &PowerEstimate{
		Power:              power,
		EffectSize:         req.EffectSize,
		Band:               study.BandFor(req.EffectSize),
		DesignEffect:       deff,
		EffectiveTeachers:  effectiveTeachers,
		EffectiveObsPerArm: effectiveObs,
		TotalTeachers:      d.Teachers * 2,
		Adequate:           power >= study.TargetPower,
	}, nil
}

// SampleSizeRequest asks how many teachers a target effect size requires.
// Teacher count is the unknown, so the design is described without one.
type SampleSizeRequest struct {
	EffectSize         float64 `json:"effect_size"`
	OutcomeShare       float64 `json:"outcome_share"`
	StudentsPerTeacher int     `json:"students_per_teacher"`
	UseClustering      bool    `json:"use_clustering"`
	ICC                float64 `json:"icc"`
}

// SampleSizeEstimate is the teacher requirement for 80% power.
type SampleSizeEstimate struct {
	TotalTeachers  int              `json:"total_teachers"`
	TeachersPerArm int              `json:"teachers_per_arm"`
	MinimumFellows int              `json:"minimum_fellows"`
	EffectSize     float64          `json:"effect_size"`
	Band           study.EffectBand `json:"band"`
	DesignEffect   float64          `json:"design_effect"`
	StudentsPerArm float64          `json:"students_per_arm"`
}

// EstimateSampleSize inverts the power computation: the solver finds the
// per-arm student count reaching the target power, which is then inflated
// by the design effect and converted back to whole teachers.
//
// An outcome share of zero makes the requirement undefined (no number of
// teachers yields any measured student), reported as DEGENERATE_INPUT.
func (s *PowerService) EstimateSampleSize(req SampleSizeRequest) (*SampleSizeEstimate, error) {
	if err := study.ValidateEffectSize(req.EffectSize); err != nil {
		return nil, err
	}
	if req.OutcomeShare < 0 || req.OutcomeShare > 1 {
		return nil, errors.InvalidRange("outcome_share", "must be in [0,1]")
	}
	if req.StudentsPerTeacher < 1 {
		return nil, errors.InvalidRange("students_per_teacher", "must be at least 1")
	}
	if req.UseClustering && (req.ICC < 0 || req.ICC > 1) {
		return nil, errors.InvalidRange("icc", "must be in [0,1]")
	}
	if req.OutcomeShare == 0 {
		return nil, errors.DegenerateInput("outcome share is zero: required sample size is undefined")
	}

	nObs, err := s.solver.SolveSampleSize(req.EffectSize, study.Alpha, study.TargetPower, 1)
	if err != nil {
		return nil, errors.Wrap(err, "sample size solve failed")
	}
	if nObs <= 0 || math.IsNaN(nObs) || math.IsInf(nObs, 0) {
		return nil, errors.SolverFailure("solver returned implausible observation count", nil)
	}

	deff := study.DesignEffect(req.StudentsPerTeacher, req.ICC, req.UseClustering)
	perArm := int(math.Ceil(nObs * deff / (float64(req.StudentsPerTeacher) * req.OutcomeShare)))

	return &SampleSizeEstimate{
		TotalTeachers:  perArm * 2,
		TeachersPerArm: perArm,
		MinimumFellows: perArm,
		EffectSize:     req.EffectSize,
		Band:           study.BandFor(req.EffectSize),
		DesignEffect:   deff,
		StudentsPerArm: nObs,
	}, nil
}

// SweepRow is one cell of the power table.
type SweepRow struct {
	EffectSize float64          `json:"effect_size"`
	Band       study.EffectBand `json:"band"`
	Power      float64          `json:"power"`
	Adequate   bool             `json:"adequate"`
}

// SweepSummary aggregates a sweep for display.
type SweepSummary struct {
	MinPower      float64 `json:"min_power"`
	MaxPower      float64 `json:"max_power"`
	MeanPower     float64 `json:"mean_power"`
	AdequateCells int     `json:"adequate_cells"`
}

// SweepResult is the power table for a fixed design across the standard
// effect-size grid.
type SweepResult struct {
	SweepID   core.SweepID   `json:"sweep_id"`
	Design    study.Design   `json:"design"`
	Rows      []SweepRow     `json:"rows"`
	Summary   SweepSummary   `json:"summary"`
	CreatedAt core.Timestamp `json:"created_at"`
	RuntimeMs int64          `json:"runtime_ms"`
}

// PowerSweep evaluates the design at every grid effect size. Each cell is
// an independent EstimatePower call; nothing is shared between cells.
func (s *PowerService) PowerSweep(design study.Design) (*SweepResult, error) {
	start := time.Now()

	rows := make([]SweepRow, 0, len(study.SweepGrid))
	powers := make([]float64, 0, len(study.SweepGrid))
	for _, es := range study.SweepGrid {
		est, err := s.EstimatePower(PowerRequest{Design: design, EffectSize: es})
		if err != nil {
			return nil, errors.Wrapf(err, "sweep cell effect_size=%.2f", es)
		}
		rows = append(rows, SweepRow{
			EffectSize: est.EffectSize,
			Band:       est.Band,
			Power:      est.Power,
			Adequate:   est.Adequate,
		})
		powers = append(powers, est.Power)
	}

	summary, err := summarize(powers)
	if err != nil {
		return nil, errors.Wrap(err, "sweep summary failed")
	}
	for _, r := range rows {
		if r.Adequate {
			summary.AdequateCells++
		}
	}

	return &SweepResult{
		SweepID:   core.NewSweepID(),
		Design:    design,
		Rows:      rows,
		Summary:   summary,
		CreatedAt: core.Now(),
		RuntimeMs: time.Since(start).Milliseconds(),
	}, nil
}

func summarize(powers []float64) (SweepSummary, error) {
	min, err := stats.Min(powers)
	if err != nil {
		return SweepSummary{}, err
	}
	max, err := stats.Max(powers)
	if err != nil {
		return SweepSummary{}, err
	}
	mean, err := stats.Mean(powers)
	if err != nil {
		return SweepSummary{}, err
	}
	return SweepSummary{MinPower: min, MaxPower: max, MeanPower: mean}, nil
}
