// Package formatting finalizes candidate profiles into the deterministic
// vector text consumed by scoring.
package formatting

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/models"
)

// Formatter is the last pipeline stage before persistence.
type Formatter struct {
	log *zap.Logger
}

func NewFormatter(log *zap.Logger) *Formatter {
	return &Formatter{log: log}
}

// Finalize builds the vector text and marks the profile ready for
// scoring. The same profile always yields byte-identical vector text.
func (f *Formatter) Finalize(profile models.CandidateProfile) models.CandidateProfile {
	finalized := profile
	finalized.VectorText = BuildVectorText(profile)
	finalized.Metadata.FinalizedAt = time.Now().UTC()
	finalized.Metadata.ReadyForScoring = true

	f.log.Debug("candidate finalized",
		zap.String("name", profile.Name),
		zap.Int("vector_text_len", len(finalized.VectorText)))

	return finalized
}

// BuildVectorText flattens a profile into one text block for embedding
// and prompting. Sections with no content are omitted; skills are the
// sorted union of base and enriched skills so output is deterministic.
func BuildVectorText(profile models.CandidateProfile) string {
	var parts []string

	if profile.Name != "" {
		parts = append(parts, fmt.Sprintf("Name: %s", profile.Name))
	}
	if profile.Summary != "" {
		parts = append(parts, fmt.Sprintf("Summary: %s", profile.Summary))
	}
	if skills := profile.AllSkills(); len(skills) > 0 {
		parts = append(parts, fmt.Sprintf("Skills: %s", strings.Join(skills, ", ")))
	}
	if len(profile.Experience) > 0 {
		entries := make([]string, 0, len(profile.Experience))
		for _, exp := range profile.Experience {
			entries = append(entries, experienceText(exp))
		}
		parts = append(parts, fmt.Sprintf("Experience: %s", strings.Join(entries, "; ")))
	}
	if len(profile.Education) > 0 {
		entries := make([]string, 0, len(profile.Education))
		for _, edu := range profile.Education {
			entries = append(entries, educationText(edu))
		}
		parts = append(parts, fmt.Sprintf("Education: %s", strings.Join(entries, "; ")))
	}

	return strings.Join(parts, ". ")
}

func experienceText(exp models.Experience) string {
	s := exp.Title
	if exp.Company != "" {
		s += fmt.Sprintf(" at %s", exp.Company)
	}
	if exp.Duration != "" {
		s += fmt.Sprintf(" (%s)", exp.Duration)
	}
	return s
}

func educationText(edu models.Education) string {
	s := edu.Degree
	if edu.Institution != "" {
		s += fmt.Sprintf(" from %s", edu.Institution)
	}
	if edu.Year != "" {
		s += fmt.Sprintf(" (%s)", edu.Year)
	}
	return s
}
