package geo

import (
	"strings"

	"aml-screening-engine/internal/domain/screening"
)

// Reason codes attached to geo scoring results
const (
	ReasonSameCountry     = "geo_same_country"
	ReasonHighRiskCountry = "geo_high_risk_country"
	ReasonNeighborCountry = "geo_neighbor_country"
	ReasonSameRegion      = "geo_same_region"
	ReasonCrossRegion     = "geo_cross_region"
	ReasonUnknownCountry  = "geo_unknown_country"
)

// ScorerConfig holds the score assigned to each geographic outcome.
// Neighbor scores must stay within [20,30] and region scores within
// [50,70]; config validation enforces the bands at startup.
type ScorerConfig struct {
	NeighborSameRegion  int
	NeighborCrossRegion int
	SameRegion          int
	CrossRegion         int
	UnknownCountry      int
}

// DefaultScorerConfig returns the standard band values
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		NeighborSameRegion:  20,
		NeighborCrossRegion: 25,
		SameRegion:          50,
		CrossRegion:         60,
		UnknownCountry:      65,
	}
}

// Scorer computes the geographic mismatch risk for a country pair
type Scorer struct {
	table *Table
	cfg   ScorerConfig
}

// NewScorer creates a geo scorer backed by the given country table
func NewScorer(table *Table, cfg ScorerConfig) *Scorer {
	return &Scorer{table: table, cfg: cfg}
}

// Score evaluates (declared, observed) and returns a 0-100 score with a
// risk level and reason code.
//
// The high-risk jurisdiction check runs before everything else: a user
// can sit in a sanctioned country even when the IP-resolved location
// matches the registered one, so it must not be short-circuited by the
// same-country branch. Unknown codes degrade to HIGH with a distinct
// reason, never to a silent LOW.
func (s *Scorer) Score(declared, observed string) screening.GeoResult {
	declared = strings.ToUpper(declared)
	observed = strings.ToUpper(observed)

	result := screening.GeoResult{
		DeclaredCountry: declared,
		ObservedCountry: observed,
	}

	if s.table.IsHighRisk(declared) || s.table.IsHighRisk(observed) {
		result.Score = 100
		result.Level = screening.RiskLevelCritical
		result.Reason = ReasonHighRiskCountry
		return result
	}

	if observed != "" && declared == observed {
		result.Score = 0
		result.Level = screening.RiskLevelLow
		result.Reason = ReasonSameCountry
		return result
	}

	declaredEntry, declaredKnown := s.table.Lookup(declared)
	observedEntry, observedKnown := s.table.Lookup(observed)
	if observed == "" || !declaredKnown || !observedKnown {
		result.Score = s.cfg.UnknownCountry
		result.Level = screening.RiskLevelHigh
		result.Reason = ReasonUnknownCountry
		return result
	}

	sameRegion := declaredEntry.Region == observedEntry.Region &&
		declaredEntry.Region != RegionUnknown

	if s.table.AreNeighbors(declared, observed) {
		if sameRegion {
			result.Score = s.cfg.NeighborSameRegion
		} else {
			result.Score = s.cfg.NeighborCrossRegion
		}
		result.Level = screening.RiskLevelMedium
		result.Reason = ReasonNeighborCountry
		return result
	}

	if sameRegion {
		result.Score = s.cfg.SameRegion
		result.Reason = ReasonSameRegion
	} else {
		result.Score = s.cfg.CrossRegion
		result.Reason = ReasonCrossRegion
	}
	result.Level = screening.RiskLevelHigh
	return result
}
