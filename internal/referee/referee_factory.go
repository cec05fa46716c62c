package referee

import (
	"fmt"
	"strings"

	"agebounds/domain/verdict"
)

// referee_factory.go
// Maps configured mode names (including legacy aliases) to evaluation modes

// ModeConfig describes one evaluation mode
type ModeConfig struct {
	Mode        verdict.Mode
	Aliases     []string
	Description string
}

// GetModeConfigs returns every supported evaluation mode
func GetModeConfigs() []ModeConfig {
	return []ModeConfig{
		{
			Mode:        verdict.ModeRatioOfTotals,
			Aliases:     []string{"ratio", "ratio_of_totals", "average_denominator"},
			Description: "bounds scaled by the average denominator across trials",
		},
		{
			Mode:        verdict.ModeFixedCount,
			Aliases:     []string{"fixed", "fixed_count", "pop_size", "population"},
			Description: "bounds scaled by the configured population size",
		},
	}
}

// ResolveMode returns the evaluation mode named by s. Empty input selects
// ModeRatioOfTotals.
func ResolveMode(s string) (verdict.Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return verdict.ModeRatioOfTotals, nil
	}
	for _, cfg := range GetModeConfigs() {
		for _, alias := range cfg.Aliases {
			if key == alias {
				return cfg.Mode, nil
			}
		}
	}
	return "", fmt.Errorf("unknown evaluation mode: %s", s)
}
