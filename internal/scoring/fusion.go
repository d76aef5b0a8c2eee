package scoring

import (
	"fmt"
	"math"

	"github.com/talentsift/talentsift/internal/models"
)

const weightEpsilon = 0.01

// DimensionWeights blend the five semantic sub-dimensions into the
// model-side score.
type DimensionWeights struct {
	JDMatch      float64
	HardSkills   float64
	SoftSkills   float64
	KeywordMatch float64
	CulturalFit  float64
}

// DefaultDimensionWeights favor job fit and hard skills.
func DefaultDimensionWeights() DimensionWeights {
	return DimensionWeights{
		JDMatch:      0.30,
		HardSkills:   0.30,
		SoftSkills:   0.20,
		KeywordMatch: 0.10,
		CulturalFit:  0.10,
	}
}

// Validate rejects negative components and weight sets that do not sum
// to 1 within epsilon. Non-negative weights keep the blend monotonic in
// every dimension.
func (w DimensionWeights) Validate() error {
	for _, v := range []float64{w.JDMatch, w.HardSkills, w.SoftSkills, w.KeywordMatch, w.CulturalFit} {
		if v < 0 {
			return &models.ConfigurationError{
				Reason: fmt.Sprintf("dimension weights must be non-negative, got %.4f", v),
			}
		}
	}
	sum := w.JDMatch + w.HardSkills + w.SoftSkills + w.KeywordMatch + w.CulturalFit
	if math.Abs(sum-1.0) > weightEpsilon {
		return &models.ConfigurationError{
			Reason: fmt.Sprintf("dimension weights must sum to 1.0, got %.4f", sum),
		}
	}
	return nil
}

// Blend collapses sub-scores into a single 0-100 model score.
func (w DimensionWeights) Blend(s models.SubScores) float64 {
	return round2(s.JDMatch*w.JDMatch +
		s.HardSkills*w.HardSkills +
		s.SoftSkills*w.SoftSkills +
		s.KeywordMatch*w.KeywordMatch +
		s.CulturalFit*w.CulturalFit)
}

// Fusion combines the model score and the keyword score into the final
// score with a validated two-factor weighting.
type Fusion struct {
	ModelWeight   float64
	KeywordWeight float64
}

// DefaultFusion weights the model score at 0.6 and keywords at 0.4.
func DefaultFusion() Fusion {
	return Fusion{ModelWeight: 0.6, KeywordWeight: 0.4}
}

func NewFusion(modelWeight, keywordWeight float64) (Fusion, error) {
	f := Fusion{ModelWeight: modelWeight, KeywordWeight: keywordWeight}
	if err := f.Validate(); err != nil {
		return Fusion{}, err
	}
	return f, nil
}

func (f Fusion) Validate() error {
	if f.ModelWeight < 0 || f.KeywordWeight < 0 {
		return &models.ConfigurationError{
			Reason: fmt.Sprintf("fusion weights must be non-negative, got %.4f/%.4f",
				f.ModelWeight, f.KeywordWeight),
		}
	}
	sum := f.ModelWeight + f.KeywordWeight
	if math.Abs(sum-1.0) > weightEpsilon {
		return &models.ConfigurationError{
			Reason: fmt.Sprintf("fusion weights must sum to 1.0, got %.4f", sum),
		}
	}
	return nil
}

// Fuse computes the final 0-100 score.
func (f Fusion) Fuse(modelScore, keywordScore float64) float64 {
	return round2(modelScore*f.ModelWeight + keywordScore*f.KeywordWeight)
}
