package study

// DesignEffect computes the multiplicative inflation factor (DEFF) that
// converts a clustered sample's nominal size into its statistically
// effective size: 1 + (m-1)*icc for m students per teacher.
//
// When clustering is disabled, or the ICC is zero, the design effect is
// exactly 1: the icc argument is ignored entirely rather than zeroed, so a
// stale slider value can never leak into an unclustered calculation.
func DesignEffect(studentsPerTeacher int, icc float64, useClustering bool) float64 {
	if !useClustering || icc <= 0 {
		return 1
	}
	return 1 + float64(studentsPerTeacher-1)*icc
}

// DEFF returns the design effect for this study design.
func (d Design) DEFF() float64 {
	return DesignEffect(d.StudentsPerTeacher, d.ICC, d.UseClustering)
}
