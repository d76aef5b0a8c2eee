// Package store persists candidate profiles as JSON documents on disk,
// one file per identity, with create-once semantics for idempotent
// ingestion.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/talentsift/talentsift/internal/models"
)

var unsafeIdentityRe = regexp.MustCompile(`[^a-zA-Z0-9._@-]`)

// SanitizeIdentity maps a candidate identity to a safe filename stem.
func SanitizeIdentity(identity string) string {
	return unsafeIdentityRe.ReplaceAllString(strings.TrimSpace(identity), "_")
}

// Store is a directory-backed candidate document store.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(identity string) string {
	return filepath.Join(s.dir, SanitizeIdentity(identity)+".json")
}

// Exists reports whether a profile is already stored under identity.
func (s *Store) Exists(identity string) bool {
	_, err := os.Stat(s.path(identity))
	return err == nil
}

// Create persists a new profile. A second create for the same identity
// fails with ErrDuplicateCandidate. The document is written to a temp
// file and hard-linked into place, so a failed or interrupted write
// never occupies the identity's path; the link is the race-free
// create-once point across workers.
func (s *Store) Create(profile models.CandidateProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode candidate document: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".create-*")
	if err != nil {
		return fmt.Errorf("failed to create candidate document: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write candidate document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write candidate document: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write candidate document: %w", err)
	}

	if err := os.Link(tmp.Name(), s.path(profile.Identity)); err != nil {
		if errors.Is(err, os.ErrExist) {
			return models.ErrDuplicateCandidate
		}
		return fmt.Errorf("failed to create candidate document: %w", err)
	}
	return nil
}

// Put overwrites the stored profile, creating it if absent.
func (s *Store) Put(profile models.CandidateProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode candidate document: %w", err)
	}
	if err := os.WriteFile(s.path(profile.Identity), data, 0o644); err != nil {
		return fmt.Errorf("failed to write candidate document: %w", err)
	}
	return nil
}

// Get loads one stored profile by identity.
func (s *Store) Get(identity string) (models.CandidateProfile, error) {
	data, err := os.ReadFile(s.path(identity))
	if err != nil {
		return models.CandidateProfile{}, fmt.Errorf("failed to read candidate document: %w", err)
	}
	var profile models.CandidateProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return models.CandidateProfile{}, fmt.Errorf("failed to decode candidate document %s: %w", identity, err)
	}
	return profile, nil
}

// List loads every stored profile, sorted by identity. Documents that
// fail to decode are skipped rather than failing the whole listing.
func (s *Store) List() ([]models.CandidateProfile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}

	var profiles []models.CandidateProfile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var profile models.CandidateProfile
		if err := json.Unmarshal(data, &profile); err != nil {
			continue
		}
		profiles = append(profiles, profile)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Identity < profiles[j].Identity
	})
	return profiles, nil
}
