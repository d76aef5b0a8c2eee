package scoring

import (
	"testing"

	"github.com/talentsift/talentsift/internal/models"
)

func TestDimensionWeightsValidate(t *testing.T) {
	if err := DefaultDimensionWeights().Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}

	bad := DimensionWeights{JDMatch: 0.5, HardSkills: 0.5, SoftSkills: 0.5}
	err := bad.Validate()
	if err == nil {
		t.Fatal("expected error for weights summing to 1.5")
	}
	if _, ok := err.(*models.ConfigurationError); !ok {
		t.Errorf("error type = %T, want *ConfigurationError", err)
	}

	// A negative component can sum to 1.0 but breaks monotonicity.
	negative := DimensionWeights{JDMatch: 0.7, HardSkills: 0.7, SoftSkills: -0.4}
	if err := negative.Validate(); err == nil {
		t.Fatal("expected error for a negative dimension weight")
	}
}

func TestDimensionWeightsBlend(t *testing.T) {
	w := DefaultDimensionWeights()

	uniform := models.SubScores{JDMatch: 80, HardSkills: 80, SoftSkills: 80, KeywordMatch: 80, CulturalFit: 80}
	if got := w.Blend(uniform); got != 80 {
		t.Errorf("Blend(uniform 80) = %v, want 80", got)
	}

	mixed := models.SubScores{JDMatch: 100, HardSkills: 50, SoftSkills: 60, KeywordMatch: 40, CulturalFit: 80}
	// 100*.3 + 50*.3 + 60*.2 + 40*.1 + 80*.1 = 69
	if got := w.Blend(mixed); got != 69 {
		t.Errorf("Blend(mixed) = %v, want 69", got)
	}
}

func TestNewFusionValidates(t *testing.T) {
	if _, err := NewFusion(0.6, 0.4); err != nil {
		t.Fatalf("valid fusion rejected: %v", err)
	}

	_, err := NewFusion(0.8, 0.4)
	if err == nil {
		t.Fatal("expected error for weights summing to 1.2")
	}
	if _, ok := err.(*models.ConfigurationError); !ok {
		t.Errorf("error type = %T, want *ConfigurationError", err)
	}

	if _, err := NewFusion(1.4, -0.4); err == nil {
		t.Fatal("expected error for a negative fusion weight")
	}
}

func TestFuse(t *testing.T) {
	f := DefaultFusion()

	// 80*.6 + 50*.4 = 68
	if got := f.Fuse(80, 50); got != 68 {
		t.Errorf("Fuse(80, 50) = %v, want 68", got)
	}
	if got := f.Fuse(0, 0); got != 0 {
		t.Errorf("Fuse(0, 0) = %v, want 0", got)
	}
	if got := f.Fuse(100, 100); got != 100 {
		t.Errorf("Fuse(100, 100) = %v, want 100", got)
	}
}

func TestBlendMonotonicPerDimension(t *testing.T) {
	w := DefaultDimensionWeights()
	base := models.SubScores{JDMatch: 50, HardSkills: 50, SoftSkills: 50, KeywordMatch: 50, CulturalFit: 50}

	bump := []func(models.SubScores, float64) models.SubScores{
		func(s models.SubScores, v float64) models.SubScores { s.JDMatch = v; return s },
		func(s models.SubScores, v float64) models.SubScores { s.HardSkills = v; return s },
		func(s models.SubScores, v float64) models.SubScores { s.SoftSkills = v; return s },
		func(s models.SubScores, v float64) models.SubScores { s.KeywordMatch = v; return s },
		func(s models.SubScores, v float64) models.SubScores { s.CulturalFit = v; return s },
	}

	for dim, apply := range bump {
		prev := w.Blend(apply(base, 0))
		for v := 10.0; v <= 100; v += 10 {
			cur := w.Blend(apply(base, v))
			if cur < prev {
				t.Fatalf("dimension %d: Blend dropped from %v to %v at %v", dim, prev, cur, v)
			}
			prev = cur
		}
	}
}

func TestFuseMonotonic(t *testing.T) {
	f := DefaultFusion()

	// Increasing either input never decreases the final score.
	prev := f.Fuse(0, 40)
	for model := 10.0; model <= 100; model += 10 {
		cur := f.Fuse(model, 40)
		if cur < prev {
			t.Fatalf("Fuse(%v, 40) = %v dropped below %v", model, cur, prev)
		}
		prev = cur
	}

	prev = f.Fuse(40, 0)
	for kw := 10.0; kw <= 100; kw += 10 {
		cur := f.Fuse(40, kw)
		if cur < prev {
			t.Fatalf("Fuse(40, %v) = %v dropped below %v", kw, cur, prev)
		}
		prev = cur
	}
}
