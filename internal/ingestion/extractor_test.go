package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/models"
)

const sampleResume = `John Doe
john.doe@example.com
555-123-4567

Skills: Python, Docker, Machine Learning, PostgreSQL

Experience
Senior Software Engineer at Acme Corp 2019
Backend Developer at Widgets Inc 2016

Education
Bachelor of Science in Computer Science
State University 2015
`

func newTestExtractor() *Extractor {
	return NewExtractor(zap.NewNop())
}

func TestExtractTextFields(t *testing.T) {
	profile := newTestExtractor().ExtractText(sampleResume)

	if profile.Name != "John Doe" {
		t.Errorf("name = %q, want %q", profile.Name, "John Doe")
	}
	if profile.Email != "john.doe@example.com" {
		t.Errorf("email = %q, want %q", profile.Email, "john.doe@example.com")
	}
	if profile.Phone != "5551234567" {
		t.Errorf("phone = %q, want %q", profile.Phone, "5551234567")
	}
	if profile.Metadata.ExtractedAt.IsZero() {
		t.Error("ExtractedAt not set")
	}
}

func TestExtractTextSkills(t *testing.T) {
	profile := newTestExtractor().ExtractText(sampleResume)

	want := map[string]bool{
		"Python":           true,
		"Docker":           true,
		"Machine Learning": true,
		"Postgresql":       true,
	}
	for _, s := range profile.Skills {
		delete(want, s)
	}
	if len(want) != 0 {
		t.Errorf("skills %v missing from %v", want, profile.Skills)
	}
}

func TestExtractTextExperience(t *testing.T) {
	profile := newTestExtractor().ExtractText(sampleResume)

	if len(profile.Experience) != 2 {
		t.Fatalf("experience entries = %d, want 2", len(profile.Experience))
	}
	if profile.Experience[0].Title != "Senior Software Engineer at Acme Corp 2019" {
		t.Errorf("first title = %q", profile.Experience[0].Title)
	}
	if profile.Experience[0].Duration != "2019" {
		t.Errorf("first duration = %q, want 2019", profile.Experience[0].Duration)
	}
	if profile.Summary != "Professional with 2 relevant experience entries" {
		t.Errorf("summary = %q", profile.Summary)
	}
}

func TestExtractTextEducation(t *testing.T) {
	profile := newTestExtractor().ExtractText(sampleResume)

	if len(profile.Education) == 0 {
		t.Fatal("no education entries extracted")
	}
	first := profile.Education[0]
	if first.Degree != "Bachelor of Science in Computer Science" {
		t.Errorf("degree = %q", first.Degree)
	}
	if first.Institution != "State University 2015" {
		t.Errorf("institution = %q", first.Institution)
	}
	if first.Year != "2015" {
		t.Errorf("year = %q, want 2015", first.Year)
	}
}

func TestExtractTextDeterministic(t *testing.T) {
	e := newTestExtractor()

	a := e.ExtractText(sampleResume)
	b := e.ExtractText(sampleResume)

	// Timestamps differ between runs; everything else must not.
	a.Metadata.ExtractedAt = b.Metadata.ExtractedAt
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated extraction differs:\n%+v\n%+v", a, b)
	}
}

func TestExtractTextMinimalResume(t *testing.T) {
	profile := newTestExtractor().ExtractText("Name: Jane Doe\njane@x.com\nPython, React")

	if profile.Name != "Jane Doe" {
		t.Errorf("name = %q, want %q", profile.Name, "Jane Doe")
	}
	if profile.Email != "jane@x.com" {
		t.Errorf("email = %q, want %q", profile.Email, "jane@x.com")
	}
	want := map[string]bool{"Python": true, "React": true}
	for _, s := range profile.Skills {
		delete(want, s)
	}
	if len(want) != 0 {
		t.Errorf("skills missing %v in %v", want, profile.Skills)
	}
}

func TestExtractTextEmptyInput(t *testing.T) {
	profile := newTestExtractor().ExtractText("")

	if profile.Name != "Unknown" {
		t.Errorf("name = %q, want Unknown", profile.Name)
	}
	if len(profile.Skills) != 0 || len(profile.Education) != 0 || len(profile.Experience) != 0 {
		t.Errorf("empty input produced non-empty fields: %+v", profile)
	}
}

func TestExtractNameFallbacks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"label", "Name: Ada Lovelace\nother", "Ada Lovelace"},
		{"first line", "Grace Hopper\ngrace@example.com", "Grace Hopper"},
		{"skips email line", "grace@example.com\nGrace Hopper", "Grace Hopper"},
		{"skips digits", "12345\nGrace Hopper", "Grace Hopper"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractName(tt.text); got != tt.want {
				t.Errorf("extractName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractPhonePatterns(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"call 5551234567 today", "5551234567"},
		{"call 555-123-4567 today", "5551234567"},
		{"call (555) 123-4567 today", "5551234567"},
		{"call +1 5551234567 today", "+15551234567"},
		{"no phone here", ""},
	}

	for _, tt := range tests {
		if got := extractPhone(tt.text); got != tt.want {
			t.Errorf("extractPhone(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractFileUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.png")
	if err := os.WriteFile(path, []byte("not a resume"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := newTestExtractor().ExtractFile(path)
	var unsupported *models.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want *models.UnsupportedFormatError", err)
	}
	if unsupported.Format != ".png" {
		t.Errorf("format = %q, want .png", unsupported.Format)
	}
}

func TestExtractFilePlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, []byte(sampleResume), 0o644); err != nil {
		t.Fatal(err)
	}

	profile, err := newTestExtractor().ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile returned error: %v", err)
	}
	if profile.Email != "john.doe@example.com" {
		t.Errorf("email = %q", profile.Email)
	}
}

func TestSupportedExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"cv.pdf", true},
		{"cv.PDF", true},
		{"cv.docx", true},
		{"cv.doc", true},
		{"cv.txt", true},
		{"cv.png", false},
		{"cv", false},
	}

	for _, tt := range tests {
		if got := SupportedExtension(tt.name); got != tt.want {
			t.Errorf("SupportedExtension(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
