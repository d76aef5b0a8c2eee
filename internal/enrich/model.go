package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/talentsift/talentsift/internal/models"
)

// Generator produces text completions for a prompt. The Vertex AI
// client satisfies this.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

const (
	maxInferredSkills = 10

	// A stalled model call fails this strategy and lets the chain
	// fall through instead of holding an ingestion worker.
	modelCallTimeout = 30 * time.Second
)

// ModelStrategy infers skills with a generative model.
type ModelStrategy struct {
	gen     Generator
	timeout time.Duration
}

func NewModelStrategy(gen Generator) *ModelStrategy {
	return &ModelStrategy{gen: gen, timeout: modelCallTimeout}
}

func (*ModelStrategy) Name() string { return "model" }

func (m *ModelStrategy) Enrich(ctx context.Context, profile models.CandidateProfile) (Result, error) {
	titles := make([]string, 0, len(profile.Experience))
	for _, exp := range profile.Experience {
		titles = append(titles, exp.Title)
	}

	prompt := fmt.Sprintf(`Based on this candidate's profile, suggest additional technical and soft skills they likely possess:

Current Skills: %s
Experience: %s

Provide only a comma-separated list of 5-10 additional skills they likely have (no explanations).
Focus on related technologies, frameworks, and professional competencies.`,
		strings.Join(profile.Skills, ", "), strings.Join(titles, ", "))

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	response, err := m.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return Result{}, &models.ExternalServiceError{Service: "model", Err: err}
	}

	return Result{Skills: parseSkillList(response)}, nil
}

// parseSkillList splits a comma-separated model response, dropping empty
// and implausibly long entries and capping the total.
func parseSkillList(response string) []string {
	var skills []string
	for _, s := range strings.Split(response, ",") {
		s = strings.TrimSpace(s)
		if s == "" || len(s) >= 50 {
			continue
		}
		skills = append(skills, s)
		if len(skills) == maxInferredSkills {
			break
		}
	}
	return skills
}
