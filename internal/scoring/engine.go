package scoring

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/models"
)

// Engine scores one candidate against one job description end to end.
type Engine struct {
	semantic      *SemanticScorer
	dimensions    DimensionWeights
	fusion        Fusion
	passThreshold float64
	log           *zap.Logger
}

// NewEngine validates the weight configuration up front so a
// misconfigured engine is rejected before any scoring runs.
func NewEngine(semantic *SemanticScorer, dimensions DimensionWeights, fusion Fusion, passThreshold float64, log *zap.Logger) (*Engine, error) {
	if err := dimensions.Validate(); err != nil {
		return nil, err
	}
	if err := fusion.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		semantic:      semantic,
		dimensions:    dimensions,
		fusion:        fusion,
		passThreshold: passThreshold,
		log:           log,
	}, nil
}

// Score evaluates a candidate against a job description, producing the
// full score record minus rank and percentile, which require a pool.
func (e *Engine) Score(ctx context.Context, candidate models.CandidateProfile, jd models.JobDescription) models.ScoreRecord {
	keyword := ScoreKeywords(candidate.AllSkills(), jd.Skills)

	resumeText := candidate.VectorText
	if resumeText == "" {
		resumeText = candidate.Summary
	}
	subScores, fallbackUsed := e.semantic.Score(ctx, resumeText, jd.Text())

	modelScore := e.dimensions.Blend(subScores)
	finalScore := e.fusion.Fuse(modelScore, keyword.Score)

	record := models.ScoreRecord{
		CandidateIdentity: candidate.Identity,
		JDIdentity:        jd.ID,
		SubScores:         subScores,
		LLMScore:          modelScore,
		KeywordScore:      keyword.Score,
		MatchedSkills:     keyword.Matched,
		MissingSkills:     keyword.Missing,
		FinalScore:        finalScore,
		FallbackUsed:      fallbackUsed,
		Recommendation:    models.RecommendationFor(finalScore),
		Status:            models.StatusFor(finalScore, e.passThreshold),
		ScoredAt:          time.Now().UTC(),
	}

	e.log.Info("candidate scored",
		zap.String("candidate", candidate.Identity),
		zap.Float64("final_score", finalScore),
		zap.Bool("fallback_used", fallbackUsed),
		zap.String("recommendation", string(record.Recommendation)))

	return record
}
