package study

import (
	"testing"

	"gopower/internal/errors"
)

func TestDesign_Validate(t *testing.T) {
	valid := Design{Teachers: 25, OutcomeShare: 1, StudentsPerTeacher: 22}

	tests := []struct {
		name        string
		mutate      func(d *Design)
		expectError bool
	}{
		{name: "valid baseline", mutate: func(d *Design) {}, expectError: false},
		{name: "zero teachers allowed", mutate: func(d *Design) { d.Teachers = 0 }, expectError: false},
		{name: "negative teachers", mutate: func(d *Design) { d.Teachers = -1 }, expectError: true},
		{name: "share below zero", mutate: func(d *Design) { d.OutcomeShare = -0.1 }, expectError: true},
		{name: "share above one", mutate: func(d *Design) { d.OutcomeShare = 1.1 }, expectError: true},
		{name: "zero cluster size", mutate: func(d *Design) { d.StudentsPerTeacher = 0 }, expectError: true},
		{name: "icc above one with clustering", mutate: func(d *Design) { d.UseClustering = true; d.ICC = 1.5 }, expectError: true},
		{name: "negative icc with clustering", mutate: func(d *Design) { d.UseClustering = true; d.ICC = -0.1 }, expectError: true},
		{name: "wild icc ignored without clustering", mutate: func(d *Design) { d.ICC = 42 }, expectError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()
			if tt.expectError && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil && errors.GetCode(err) != errors.CodeInvalidRange {
				t.Fatalf("expected INVALID_RANGE code, got %s", errors.GetCode(err))
			}
		})
	}
}

func TestDesign_EffectiveTeachers(t *testing.T) {
	d := Design{Teachers: 25, OutcomeShare: 0.8, StudentsPerTeacher: 22}
	if got := d.EffectiveTeachers(); got != 20 {
		t.Fatalf("EffectiveTeachers() = %v, want 20", got)
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		effectSize float64
		want       EffectBand
	}{
		{0.03, EffectSmall},
		{0.049, EffectSmall},
		{0.05, EffectMedium},
		{0.12, EffectMedium},
		{0.199, EffectMedium},
		{0.20, EffectLarge},
		{0.24, EffectLarge},
	}
	for _, tt := range tests {
		if got := BandFor(tt.effectSize); got != tt.want {
			t.Errorf("BandFor(%v) = %v, want %v", tt.effectSize, got, tt.want)
		}
	}
}

func TestValidateEffectSize(t *testing.T) {
	if err := ValidateEffectSize(0.12); err != nil {
		t.Fatalf("unexpected error for 0.12: %v", err)
	}
	for _, es := range []float64{0, -0.1} {
		if err := ValidateEffectSize(es); err == nil {
			t.Fatalf("expected error for effect size %v", es)
		}
	}
}
