package enrich

import (
	"context"
	"strings"

	"github.com/talentsift/talentsift/internal/models"
)

// skillRelationships maps a known skill to technologies commonly used
// alongside it.
var skillRelationships = map[string][]string{
	"python":           {"Django", "FastAPI", "Pandas", "NumPy", "Pytest"},
	"javascript":       {"TypeScript", "React", "Node.js", "npm", "Webpack"},
	"react":            {"Redux", "React Router", "JSX", "Hooks"},
	"django":           {"Django REST Framework", "Celery", "PostgreSQL"},
	"go":               {"gRPC", "Protocol Buffers", "Goroutines"},
	"aws":              {"EC2", "S3", "Lambda", "RDS", "CloudFormation"},
	"docker":           {"Docker Compose", "Kubernetes", "Container Orchestration"},
	"sql":              {"Database Design", "Query Optimization", "Indexing"},
	"machine learning": {"Scikit-learn", "Feature Engineering", "Model Evaluation"},
}

// RuleStrategy infers skills from static relationship rules and job
// title seniority cues. It never fails, which makes it the terminal
// strategy of any chain.
type RuleStrategy struct{}

func NewRuleStrategy() *RuleStrategy { return &RuleStrategy{} }

func (*RuleStrategy) Name() string { return "rules" }

func (*RuleStrategy) Enrich(_ context.Context, profile models.CandidateProfile) (Result, error) {
	var inferred []string

	for _, skill := range profile.Skills {
		if related, ok := skillRelationships[strings.ToLower(skill)]; ok {
			inferred = append(inferred, related...)
		}
	}

	for _, exp := range profile.Experience {
		title := strings.ToLower(exp.Title)
		if strings.Contains(title, "senior") || strings.Contains(title, "lead") {
			inferred = append(inferred, "Leadership", "Mentoring", "Code Review")
		}
		if strings.Contains(title, "manager") {
			inferred = append(inferred, "Team Management", "Project Planning", "Stakeholder Communication")
		}
		if strings.Contains(title, "architect") {
			inferred = append(inferred, "System Design", "Architecture Patterns", "Technical Documentation")
		}
	}

	return Result{Skills: inferred}, nil
}
