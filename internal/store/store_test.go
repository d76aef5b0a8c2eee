package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/talentsift/talentsift/internal/models"
)

func TestSanitizeIdentity(t *testing.T) {
	tests := []struct {
		identity string
		want     string
	}{
		{"jane@example.com", "jane@example.com"},
		{"jane doe@example.com", "jane_doe@example.com"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"  spaced  ", "spaced"},
	}

	for _, tt := range tests {
		if got := SanitizeIdentity(tt.identity); got != tt.want {
			t.Errorf("SanitizeIdentity(%q) = %q, want %q", tt.identity, got, tt.want)
		}
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	profile := models.CandidateProfile{Identity: "jane@example.com", Name: "Jane"}
	if err := s.Create(profile); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	err = s.Create(profile)
	if !errors.Is(err, models.ErrDuplicateCandidate) {
		t.Fatalf("second create err = %v, want ErrDuplicateCandidate", err)
	}
}

func TestCreateInterruptedWriteDoesNotClaimIdentity(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	// A temp file left over from a write that died mid-stream must not
	// make the identity look stored or poison later creates.
	if err := os.WriteFile(filepath.Join(dir, ".create-123"), []byte(`{"identity": "ja`), 0o644); err != nil {
		t.Fatal(err)
	}

	if s.Exists("jane@example.com") {
		t.Fatal("Exists() true with only a partial temp file present")
	}
	if err := s.Create(models.CandidateProfile{Identity: "jane@example.com", Name: "Jane"}); err != nil {
		t.Fatalf("create after interrupted write failed: %v", err)
	}

	profiles, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(profiles) != 1 || profiles[0].Identity != "jane@example.com" {
		t.Errorf("List() = %+v, want only the stored profile", profiles)
	}
}

func TestCreateLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Create(models.CandidateProfile{Identity: "jane@example.com"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Create(models.CandidateProfile{Identity: "jane@example.com"}); !errors.Is(err, models.ErrDuplicateCandidate) {
		t.Fatalf("duplicate create err = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "jane@example.com.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("store directory = %v, want only the candidate document", names)
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	profile := models.CandidateProfile{
		Identity: "jane@example.com",
		Name:     "Jane",
		Skills:   []string{"Go", "Docker"},
	}
	if err := s.Create(profile); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get("jane@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Jane" || len(got.Skills) != 2 {
		t.Errorf("Get() = %+v", got)
	}
}

func TestExists(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if s.Exists("jane@example.com") {
		t.Error("Exists() true before create")
	}
	if err := s.Create(models.CandidateProfile{Identity: "jane@example.com"}); err != nil {
		t.Fatal(err)
	}
	if !s.Exists("jane@example.com") {
		t.Error("Exists() false after create")
	}
}

func TestListSorted(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"carol@example.com", "alice@example.com", "bob@example.com"} {
		if err := s.Create(models.CandidateProfile{Identity: id}); err != nil {
			t.Fatal(err)
		}
	}

	profiles, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(profiles) != 3 {
		t.Fatalf("List() returned %d profiles, want 3", len(profiles))
	}
	want := []string{"alice@example.com", "bob@example.com", "carol@example.com"}
	for i, w := range want {
		if profiles[i].Identity != w {
			t.Errorf("profiles[%d].Identity = %q, want %q", i, profiles[i].Identity, w)
		}
	}
}

func TestPutOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Create(models.CandidateProfile{Identity: "jane@example.com", Name: "Jane"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(models.CandidateProfile{Identity: "jane@example.com", Name: "Jane Updated"}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get("jane@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Jane Updated" {
		t.Errorf("name = %q, want %q", got.Name, "Jane Updated")
	}
}
