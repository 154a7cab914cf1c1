package services

import (
	"strings"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// DefaultEvidenceSaturation is the density (hits per ten words) that maps to
// full evidence strength.
const DefaultEvidenceSaturation = 1.8

// EvidenceStrength maps a section's hit density to [0,1]. It is monotonically
// non-decreasing in hits and saturates at 1.
func EvidenceStrength(section domain.Section, hits int, saturation float64) float64 {
	if saturation <= 0 {
		saturation = DefaultEvidenceSaturation
	}

	words := len(strings.Fields(section.Title + " " + section.Body))
	if words < 1 {
		words = 1
	}

	density := float64(hits) / (float64(words) / 10)
	return clamp01(density / saturation)
}

// ScoreEvidence computes the evidence strength of every section.
func ScoreEvidence(sections []domain.Section, stats domain.HitStatistics, saturation float64) domain.EvidenceMap {
	out := make(domain.EvidenceMap, len(sections))
	for _, s := range sections {
		out[s.ID] = EvidenceStrength(s, stats.SectionHits(s.ID), saturation)
	}
	return out
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
