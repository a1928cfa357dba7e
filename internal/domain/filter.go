package domain

import "strings"

// Filter returns the subset of results matching the given criteria. An empty
// criterion is ignored. Risk level matches exactly against the assessed tier,
// so cities with no statistics never match a risk filter; city names match
// case-insensitively but exactly.
func Filter(results []CityResult, riskLevel, city string) []CityResult {
	filtered := []CityResult{}
	for _, r := range results {
		if riskLevel != "" {
			if r.Stats == nil || r.Stats.RiskLevel != RiskLevel(riskLevel) {
				continue
			}
		}
		if city != "" && !strings.EqualFold(r.City, city) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
