package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/models"
)

// Generator produces text completions for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// fallbackKeywords drive the deterministic heuristic used when the
// model is unavailable or returns an unparseable response.
var fallbackKeywords = []string{"python", "django", "api", "ai", "ml", "docker"}

// SemanticScorer produces the five sub-dimension scores from a model,
// degrading to a deterministic keyword heuristic on any failure.
type SemanticScorer struct {
	gen     Generator
	log     *zap.Logger
	timeout time.Duration
}

func NewSemanticScorer(gen Generator, log *zap.Logger, timeout time.Duration) *SemanticScorer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SemanticScorer{gen: gen, log: log, timeout: timeout}
}

// Score evaluates resume text against job description text. The second
// return reports whether the heuristic fallback was used.
func (s *SemanticScorer) Score(ctx context.Context, resumeText, jdText string) (models.SubScores, bool) {
	if s.gen != nil {
		scores, err := s.scoreWithModel(ctx, resumeText, jdText)
		if err == nil {
			return scores, false
		}
		s.log.Warn("semantic scoring failed, using heuristic fallback", zap.Error(err))
	}
	return FallbackScores(resumeText), true
}

func (s *SemanticScorer) scoreWithModel(ctx context.Context, resumeText, jdText string) (models.SubScores, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := buildSemanticPrompt(resumeText, jdText)
	response, err := s.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return models.SubScores{}, fmt.Errorf("failed to get model response: %w", err)
	}

	return parseSubScores(response)
}

func buildSemanticPrompt(resumeText, jdText string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert HR analyst. Score the resume against the job description.\n\n")
	sb.WriteString("## RESUME\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n\n## JOB DESCRIPTION\n")
	sb.WriteString(jdText)
	sb.WriteString("\n\n## INSTRUCTIONS\n")
	sb.WriteString("Provide your evaluation in the following JSON format, each value an integer 0-100:\n")
	sb.WriteString("{\n")
	sb.WriteString(`  "jd_match": <0-100>,` + "\n")
	sb.WriteString(`  "hard_skills": <0-100>,` + "\n")
	sb.WriteString(`  "soft_skills": <0-100>,` + "\n")
	sb.WriteString(`  "keyword_match": <0-100>,` + "\n")
	sb.WriteString(`  "cultural_fit": <0-100>` + "\n")
	sb.WriteString("}\n\n")
	sb.WriteString("Return ONLY the JSON object, no additional text.\n")
	return sb.String()
}

// parseSubScores extracts the score JSON from a model response that may
// carry surrounding prose. Pointer fields distinguish a missing key
// from a legitimate zero.
func parseSubScores(response string) (models.SubScores, error) {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return models.SubScores{}, fmt.Errorf("no JSON found in response")
	}

	var raw struct {
		JDMatch      *float64 `json:"jd_match"`
		HardSkills   *float64 `json:"hard_skills"`
		SoftSkills   *float64 `json:"soft_skills"`
		KeywordMatch *float64 `json:"keyword_match"`
		CulturalFit  *float64 `json:"cultural_fit"`
	}
	if err := json.Unmarshal([]byte(response[startIdx:endIdx+1]), &raw); err != nil {
		return models.SubScores{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if raw.JDMatch == nil || raw.HardSkills == nil || raw.SoftSkills == nil ||
		raw.KeywordMatch == nil || raw.CulturalFit == nil {
		return models.SubScores{}, fmt.Errorf("response missing one or more score dimensions")
	}

	return models.SubScores{
		JDMatch:      clampScore(*raw.JDMatch),
		HardSkills:   clampScore(*raw.HardSkills),
		SoftSkills:   clampScore(*raw.SoftSkills),
		KeywordMatch: clampScore(*raw.KeywordMatch),
		CulturalFit:  clampScore(*raw.CulturalFit),
	}, nil
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// FallbackScores derives all five dimensions from keyword hit counts in
// the resume text. It is fully deterministic so repeated runs over the
// same input produce identical records.
func FallbackScores(resumeText string) models.SubScores {
	lower := strings.ToLower(resumeText)
	hits := 0.0
	for _, k := range fallbackKeywords {
		if strings.Contains(lower, k) {
			hits++
		}
	}

	return models.SubScores{
		JDMatch:      clampScore(50 + hits*5),
		HardSkills:   clampScore(45 + hits*6),
		SoftSkills:   clampScore(55 + hits*5),
		KeywordMatch: clampScore(hits * 10),
		CulturalFit:  clampScore(50 + hits*5),
	}
}
