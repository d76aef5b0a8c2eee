package models

import (
	"strings"
	"testing"
	"time"
)

func TestCandidateIdentity(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"plain email", "jane@example.com", "jane@example.com"},
		{"uppercase normalized", "Jane@Example.COM", "jane@example.com"},
		{"whitespace trimmed", "  jane@example.com  ", "jane@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CandidateIdentity(tt.email, now); got != tt.want {
				t.Errorf("CandidateIdentity(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}

func TestCandidateIdentitySurrogate(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	got := CandidateIdentity("", now)
	if !strings.HasPrefix(got, "candidate_20260314_092653_") {
		t.Errorf("surrogate identity = %q, want candidate_20260314_092653_<suffix>", got)
	}

	other := CandidateIdentity("", now)
	if got == other {
		t.Error("surrogate identities must be unique per call")
	}
}

func TestRecommendationFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Recommendation
	}{
		{100, StrongMatch},
		{75, StrongMatch},
		{74.99, GoodMatch},
		{60, GoodMatch},
		{59.99, Potential},
		{50, Potential},
		{49.99, WeakMatch},
		{0, WeakMatch},
	}

	for _, tt := range tests {
		if got := RecommendationFor(tt.score); got != tt.want {
			t.Errorf("RecommendationFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		score     float64
		threshold float64
		want      Status
	}{
		{85, 70, StatusSelected},
		{70, 70, StatusSelected},
		{65, 70, StatusPending},
		{60, 70, StatusPending},
		{59.99, 70, StatusRejected},
		{30, 70, StatusRejected},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.score, tt.threshold); got != tt.want {
			t.Errorf("StatusFor(%v, %v) = %q, want %q", tt.score, tt.threshold, got, tt.want)
		}
	}
}

func TestNewJobDescription(t *testing.T) {
	jd, err := NewJobDescription("Backend Engineer", []string{"go", "  docker ", "Go"}, 3, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewJobDescription returned error: %v", err)
	}

	if len(jd.Skills) != 2 {
		t.Fatalf("skills = %v, want 2 deduplicated entries", jd.Skills)
	}
	if jd.Skills[0] != "Go" || jd.Skills[1] != "Docker" {
		t.Errorf("skills = %v, want [Go Docker]", jd.Skills)
	}
	if jd.ExperienceRequired != "3 years" {
		t.Errorf("experience = %q, want \"3 years\"", jd.ExperienceRequired)
	}
	if !strings.HasPrefix(jd.ID, "jd_") {
		t.Errorf("id = %q, want jd_ prefix", jd.ID)
	}
}

func TestNewJobDescriptionEntryLevel(t *testing.T) {
	jd, err := NewJobDescription("Intern", []string{"python"}, 0, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewJobDescription returned error: %v", err)
	}
	if jd.ExperienceRequired != "Entry level" {
		t.Errorf("experience = %q, want \"Entry level\"", jd.ExperienceRequired)
	}
}

func TestNewJobDescriptionRequiresSkills(t *testing.T) {
	_, err := NewJobDescription("Backend Engineer", nil, 3, nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for job description without skills")
	}
	if _, ok := err.(*ConfigurationError); !ok {
		t.Errorf("error type = %T, want *ConfigurationError", err)
	}
}

func TestAllSkills(t *testing.T) {
	p := CandidateProfile{
		Skills:         []string{"Python", "Docker"},
		EnrichedSkills: []string{"pandas", "docker", "NumPy"},
	}

	got := p.AllSkills()
	want := []string{"Docker", "NumPy", "Python", "pandas"}
	if len(got) != len(want) {
		t.Fatalf("AllSkills() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllSkills()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestJobDescriptionText(t *testing.T) {
	jd, err := NewJobDescription("Data Engineer", []string{"python", "sql"}, 2,
		[]string{"Build pipelines"}, []string{"BS degree"}, []string{"etl"})
	if err != nil {
		t.Fatalf("NewJobDescription returned error: %v", err)
	}

	text := jd.Text()
	for _, want := range []string{
		"Role: Data Engineer",
		"Required Skills: Python, Sql",
		"Experience Required: 2 years",
		"Responsibilities: Build pipelines",
		"Requirements: BS degree",
		"Keywords: etl",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Text() missing %q in:\n%s", want, text)
		}
	}
}
