package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxEducationEntries bounds parsed education history.
	MaxEducationEntries = 3
	// MaxExperienceEntries bounds parsed work history.
	MaxExperienceEntries = 5
)

// Education is a single parsed education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Experience is a single parsed work-history entry.
type Experience struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
}

// Metadata carries pipeline provenance for a candidate profile.
type Metadata struct {
	ExtractedAt       time.Time `json:"extracted_at,omitempty"`
	EnrichedAt        time.Time `json:"enriched_at,omitempty"`
	FinalizedAt       time.Time `json:"finalized_at,omitempty"`
	EnrichmentSources []string  `json:"enrichment_sources,omitempty"`
	ReadyForScoring   bool      `json:"ready_for_scoring"`
	SourceItemID      string    `json:"source_item_id,omitempty"`
	Sender            string    `json:"sender,omitempty"`
	ReceivedAt        time.Time `json:"received_at,omitempty"`
}

// CandidateProfile is one parsed applicant. It is created by extraction,
// mutated by enrichment and formatting, then persisted once.
type CandidateProfile struct {
	Identity       string       `json:"identity"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Skills         []string     `json:"skills"`
	EnrichedSkills []string     `json:"enriched_skills"`
	Education      []Education  `json:"education"`
	Experience     []Experience `json:"experience"`
	Summary        string       `json:"summary"`
	VectorText     string       `json:"vector_text"`
	Metadata       Metadata     `json:"metadata"`
}

// HasSkill reports whether s is already present in the base skill set,
// compared case-insensitively.
func (p *CandidateProfile) HasSkill(s string) bool {
	for _, existing := range p.Skills {
		if strings.EqualFold(existing, s) {
			return true
		}
	}
	return false
}

// AllSkills returns the union of base and enriched skills, deduplicated
// case-insensitively and sorted for deterministic output.
func (p *CandidateProfile) AllSkills() []string {
	seen := make(map[string]bool)
	var all []string
	for _, s := range append(append([]string{}, p.Skills...), p.EnrichedSkills...) {
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		all = append(all, s)
	}
	sort.Strings(all)
	return all
}

// CandidateIdentity derives the stable dedup key for a profile: the
// normalized email when present, otherwise a timestamp-based surrogate.
func CandidateIdentity(email string, now time.Time) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		return email
	}
	return fmt.Sprintf("candidate_%s_%s", now.UTC().Format("20060102_150405"), uuid.NewString()[:8])
}

// JobDescription is a normalized job posting used for scoring.
type JobDescription struct {
	ID                 string   `json:"id"`
	Role               string   `json:"role"`
	Skills             []string `json:"skills"`
	ExperienceRequired string   `json:"experience_required"`
	Responsibilities   []string `json:"responsibilities,omitempty"`
	Requirements       []string `json:"requirements,omitempty"`
	Keywords           []string `json:"keywords,omitempty"`
}

// NewJobDescription builds a normalized JobDescription. Skills are
// title-cased and deduplicated; years <= 0 renders as "Entry level".
func NewJobDescription(role string, skills []string, years int, responsibilities, requirements, keywords []string) (JobDescription, error) {
	if len(skills) == 0 {
		return JobDescription{}, &ConfigurationError{Reason: "job description requires at least one skill"}
	}

	seen := make(map[string]bool)
	normalized := make([]string, 0, len(skills))
	for _, s := range skills {
		s = TitleCase(strings.TrimSpace(s))
		if s == "" || seen[strings.ToLower(s)] {
			continue
		}
		seen[strings.ToLower(s)] = true
		normalized = append(normalized, s)
	}

	experience := "Entry level"
	if years > 0 {
		experience = fmt.Sprintf("%d years", years)
	}

	return JobDescription{
		ID:                 fmt.Sprintf("jd_%s", uuid.NewString()[:8]),
		Role:               strings.TrimSpace(role),
		Skills:             normalized,
		ExperienceRequired: experience,
		Responsibilities:   responsibilities,
		Requirements:       requirements,
		Keywords:           keywords,
	}, nil
}

// Text flattens the job description into prompt-ready text.
func (jd JobDescription) Text() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role: %s\n", jd.Role))
	sb.WriteString(fmt.Sprintf("Required Skills: %s\n", strings.Join(jd.Skills, ", ")))
	sb.WriteString(fmt.Sprintf("Experience Required: %s\n", jd.ExperienceRequired))
	if len(jd.Responsibilities) > 0 {
		sb.WriteString(fmt.Sprintf("Responsibilities: %s\n", strings.Join(jd.Responsibilities, "; ")))
	}
	if len(jd.Requirements) > 0 {
		sb.WriteString(fmt.Sprintf("Requirements: %s\n", strings.Join(jd.Requirements, "; ")))
	}
	if len(jd.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("Keywords: %s\n", strings.Join(jd.Keywords, ", ")))
	}
	return sb.String()
}

// TitleCase uppercases the first letter of each space-separated word.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Recommendation buckets a final score into a hiring recommendation.
// Scores use a single 0-100 scale end to end.
type Recommendation string

const (
	StrongMatch Recommendation = "strong_match"
	GoodMatch   Recommendation = "good_match"
	Potential   Recommendation = "potential"
	WeakMatch   Recommendation = "weak_match"
)

// Recommendation thresholds, inclusive on the lower bound.
const (
	StrongMatchThreshold = 75.0
	GoodMatchThreshold   = 60.0
	PotentialThreshold   = 50.0
)

// RecommendationFor classifies a 0-100 final score.
func RecommendationFor(score float64) Recommendation {
	switch {
	case score >= StrongMatchThreshold:
		return StrongMatch
	case score >= GoodMatchThreshold:
		return GoodMatch
	case score >= PotentialThreshold:
		return Potential
	default:
		return WeakMatch
	}
}

// Status is the pass/fail screening outcome relative to a configured
// pass threshold.
type Status string

const (
	StatusSelected Status = "selected"
	StatusPending  Status = "pending"
	StatusRejected Status = "rejected"
)

// StatusFor screens a 0-100 final score against the pass threshold.
// Scores below the threshold but at or above the good-match cut stay pending.
func StatusFor(score, passThreshold float64) Status {
	switch {
	case score >= passThreshold:
		return StatusSelected
	case score >= GoodMatchThreshold:
		return StatusPending
	default:
		return StatusRejected
	}
}

// SubScores are the five semantic sub-dimensions, each 0-100.
type SubScores struct {
	JDMatch      float64 `json:"jd_match"`
	HardSkills   float64 `json:"hard_skills"`
	SoftSkills   float64 `json:"soft_skills"`
	KeywordMatch float64 `json:"keyword_match"`
	CulturalFit  float64 `json:"cultural_fit"`
}

// ScoreRecord is the evaluation of one candidate against one job
// description. Rank and Percentile are assigned only when the record is
// part of a ranked pool.
type ScoreRecord struct {
	CandidateIdentity string         `json:"candidate_identity"`
	JDIdentity        string         `json:"jd_identity"`
	SubScores         SubScores      `json:"sub_scores"`
	LLMScore          float64        `json:"llm_score"`
	KeywordScore      float64        `json:"keyword_score"`
	MatchedSkills     []string       `json:"matched_skills,omitempty"`
	MissingSkills     []string       `json:"missing_skills,omitempty"`
	FinalScore        float64        `json:"final_score"`
	FallbackUsed      bool           `json:"fallback_used"`
	Recommendation    Recommendation `json:"recommendation"`
	Status            Status         `json:"status"`
	Rank              int            `json:"rank,omitempty"`
	Percentile        float64        `json:"percentile,omitempty"`
	ScoredAt          time.Time      `json:"scored_at"`
}
