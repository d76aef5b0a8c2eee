// Package scoring evaluates candidates against job descriptions with a
// keyword matcher and a model-backed semantic scorer, fused into one
// final score.
package scoring

import (
	"math"
	"sort"
	"strings"
)

// KeywordResult is the outcome of exact skill matching.
type KeywordResult struct {
	Score   float64
	Matched []string
	Missing []string
}

// ScoreKeywords computes the percentage of required skills the candidate
// covers, case-insensitively. No required skills scores zero rather than
// a vacuous hundred. Matched and missing lists come back sorted.
func ScoreKeywords(candidateSkills, requiredSkills []string) KeywordResult {
	if len(requiredSkills) == 0 {
		return KeywordResult{Score: 0}
	}

	have := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}

	var matched, missing []string
	seen := make(map[string]bool, len(requiredSkills))
	for _, req := range requiredSkills {
		req = strings.TrimSpace(req)
		key := strings.ToLower(req)
		if req == "" || seen[key] {
			continue
		}
		seen[key] = true
		if have[key] {
			matched = append(matched, req)
		} else {
			missing = append(missing, req)
		}
	}

	total := len(matched) + len(missing)
	if total == 0 {
		return KeywordResult{Score: 0}
	}

	sort.Strings(matched)
	sort.Strings(missing)

	return KeywordResult{
		Score:   round2(100 * float64(len(matched)) / float64(total)),
		Matched: matched,
		Missing: missing,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
