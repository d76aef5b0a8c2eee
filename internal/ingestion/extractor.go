package ingestion

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/models"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	yearRe  = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	// Phone patterns tried in order; the first matching pattern wins.
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{10}\b`),
		regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+\d{1,3}\s*\d{10}`),
	}

	nonPhoneCharsRe = regexp.MustCompile(`[^\d+]`)
)

// skillVocabulary is the curated membership list for skill detection.
var skillVocabulary = []string{
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "go", "rust",
	"react", "angular", "vue", "node.js", "express", "django", "flask", "spring",
	"sql", "nosql", "mongodb", "postgresql", "mysql", "redis",
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins",
	"git", "agile", "scrum", "jira", "ci/cd",
	"machine learning", "deep learning", "tensorflow", "pytorch", "scikit-learn",
	"data analysis", "pandas", "numpy", "matplotlib",
	"html", "css", "sass", "bootstrap", "tailwind",
	"rest api", "graphql", "microservices", "websockets",
	"linux", "bash", "shell scripting",
}

var degreeKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "b.s.", "m.s.", "b.a.", "m.a.",
	"b.tech", "m.tech", "mba", "associate",
}

var jobTitleKeywords = []string{
	"engineer", "developer", "manager", "analyst", "designer", "consultant",
}

var sectionKeywords = []string{"education", "skills", "projects", "certifications"}

// Extractor turns raw document text into a structured CandidateProfile.
type Extractor struct {
	log *zap.Logger
}

func NewExtractor(log *zap.Logger) *Extractor {
	return &Extractor{log: log}
}

// ExtractFile reads the document at path and parses it into a profile.
// Unsupported formats fail; unreadable supported files degrade to an
// empty-but-valid profile.
func (e *Extractor) ExtractFile(path string) (models.CandidateProfile, error) {
	text, err := ReadDocumentText(path)
	if err != nil {
		var unsupported *models.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			return models.CandidateProfile{}, err
		}
		e.log.Warn("document unreadable, producing empty profile",
			zap.String("path", path), zap.Error(err))
		text = ""
	}
	return e.ExtractText(text), nil
}

// ExtractText parses raw resume text into a profile. It never fails:
// empty input yields an empty-but-valid profile that downstream stages
// tolerate.
func (e *Extractor) ExtractText(text string) models.CandidateProfile {
	profile := models.CandidateProfile{
		Name:       extractName(text),
		Email:      extractEmail(text),
		Phone:      extractPhone(text),
		Skills:     extractSkills(text),
		Education:  extractEducation(text),
		Experience: extractExperience(text),
		Metadata: models.Metadata{
			ExtractedAt: time.Now().UTC(),
		},
	}

	if n := len(profile.Experience); n > 0 {
		profile.Summary = fmt.Sprintf("Professional with %d relevant experience entries", n)
	}

	e.log.Debug("extracted candidate fields",
		zap.String("name", profile.Name),
		zap.String("email", profile.Email),
		zap.Int("skills", len(profile.Skills)))

	return profile
}

// extractEmail returns the first RFC-like email match.
func extractEmail(text string) string {
	return strings.ToLower(emailRe.FindString(text))
}

// extractPhone tries the digit patterns in order, keeping digits and the
// leading plus of the first match.
func extractPhone(text string) string {
	for _, re := range phoneRes {
		if m := re.FindString(text); m != "" {
			return nonPhoneCharsRe.ReplaceAllString(m, "")
		}
	}
	return ""
}

// extractName scans the first ten lines for a "Name:" label, then falls
// back to the first short line that is neither an email nor a number.
func extractName(text string) string {
	lines := strings.Split(text, "\n")

	limit := min(10, len(lines))
	for _, line := range lines[:limit] {
		if strings.Contains(strings.ToLower(line), "name") && strings.Contains(line, ":") {
			name := strings.TrimSpace(line[strings.Index(line, ":")+1:])
			if name != "" && len(name) < 50 {
				return name
			}
		}
	}

	limit = min(5, len(lines))
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if line == "" || len(line) >= 50 || strings.Contains(line, "@") || isDigits(line) {
			continue
		}
		return line
	}

	return "Unknown"
}

// extractSkills runs a case-insensitive substring membership test against
// the curated vocabulary; matches are title-cased and deduplicated.
func extractSkills(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var skills []string
	for _, skill := range skillVocabulary {
		if !strings.Contains(lower, skill) || seen[skill] {
			continue
		}
		seen[skill] = true
		skills = append(skills, models.TitleCase(skill))
	}
	return skills
}

// extractEducation looks for degree keywords and captures the following
// line as the institution, capped at MaxEducationEntries.
func extractEducation(text string) []models.Education {
	var entries []models.Education
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, degree := range degreeKeywords {
			if !strings.Contains(lower, degree) {
				continue
			}
			institution := ""
			if i+1 < len(lines) {
				institution = strings.TrimSpace(lines[i+1])
			}
			entries = append(entries, models.Education{
				Degree:      strings.TrimSpace(line),
				Institution: institution,
				Year:        yearRe.FindString(line + " " + institution),
			})
			break
		}
		if len(entries) == models.MaxEducationEntries {
			break
		}
	}

	return entries
}

// extractExperience scans the experience section for job-title lines,
// capped at MaxExperienceEntries.
func extractExperience(text string) []models.Experience {
	var entries []models.Experience

	for _, line := range strings.Split(experienceSection(text), "\n") {
		lower := strings.ToLower(line)
		for _, title := range jobTitleKeywords {
			if !strings.Contains(lower, title) {
				continue
			}
			entries = append(entries, models.Experience{
				Title:    strings.TrimSpace(line),
				Duration: yearRe.FindString(line),
			})
			break
		}
		if len(entries) == models.MaxExperienceEntries {
			break
		}
	}

	return entries
}

// experienceSection returns the text between an "Experience" heading and
// the next section heading.
func experienceSection(text string) string {
	var sb strings.Builder
	inSection := false
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if !inSection {
			if strings.Contains(lower, "experience") && len(line) < 30 {
				inSection = true
			}
			continue
		}
		stop := false
		for _, keyword := range sectionKeywords {
			if strings.Contains(lower, keyword) {
				stop = true
				break
			}
		}
		if stop {
			break
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
