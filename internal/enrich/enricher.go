// Package enrich augments extracted candidate profiles with inferred
// skills via a chain of fallback strategies.
package enrich

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/models"
)

// Result is the output of one enrichment strategy.
type Result struct {
	Skills []string
}

// Strategy infers additional skills for a candidate. Strategies are
// tried in order; the first to succeed wins.
type Strategy interface {
	Name() string
	Enrich(ctx context.Context, profile models.CandidateProfile) (Result, error)
}

// Enricher runs a fallback chain of strategies over a profile.
type Enricher struct {
	strategies []Strategy
	log        *zap.Logger
}

func NewEnricher(log *zap.Logger, strategies ...Strategy) *Enricher {
	return &Enricher{strategies: strategies, log: log}
}

// Enrich tries each strategy in order until one succeeds, merges the
// inferred skills into EnrichedSkills, and stamps the enrichment
// metadata. A chain where every strategy fails still returns a valid
// profile with no enriched skills.
func (e *Enricher) Enrich(ctx context.Context, profile models.CandidateProfile) models.CandidateProfile {
	enriched := profile

	for _, s := range e.strategies {
		result, err := s.Enrich(ctx, profile)
		if err != nil {
			e.log.Warn("enrichment strategy failed, trying next",
				zap.String("strategy", s.Name()), zap.Error(err))
			continue
		}
		enriched.EnrichedSkills = mergeSkills(profile, result.Skills)
		enriched.Metadata.EnrichmentSources = append(enriched.Metadata.EnrichmentSources, s.Name())
		e.log.Info("enrichment complete",
			zap.String("strategy", s.Name()),
			zap.Int("skills_added", len(enriched.EnrichedSkills)))
		break
	}

	enriched.Metadata.EnrichedAt = time.Now().UTC()
	return enriched
}

// mergeSkills deduplicates inferred skills case-insensitively and drops
// any that the profile already lists, returning them in sorted order.
func mergeSkills(profile models.CandidateProfile, inferred []string) []string {
	base := make(map[string]bool, len(profile.Skills))
	for _, s := range profile.Skills {
		base[strings.ToLower(s)] = true
	}

	seen := make(map[string]bool, len(inferred))
	var merged []string
	for _, s := range inferred {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || base[key] || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, s)
	}

	sort.Strings(merged)
	return merged
}
