// Package rank converts tier/division/LP triples into a single comparable
// value. Higher values always rank better.
package rank

import (
	"fmt"
	"strings"

	"lol-tracker/internal/domain"
)

// Standard tiers are 400 apart so that any tier beats any lower tier
// regardless of division and LP (division 300 max + LP 99 max < 400).
var tierValues = map[string]int{
	"IRON":     0,
	"BRONZE":   400,
	"SILVER":   800,
	"GOLD":     1200,
	"PLATINUM": 1600,
	"EMERALD":  2000,
	"DIAMOND":  2400,
}

var divisionValues = map[string]int{
	"IV":  0,
	"III": 100,
	"II":  200,
	"I":   300,
}

// apexBase sits above the best standard value (Diamond I 99 LP = 2799).
const apexBase = 2800

var apexTiers = map[string]bool{
	"MASTER":      true,
	"GRANDMASTER": true,
	"CHALLENGER":  true,
}

// Tiers lists every recognized tier, worst to best.
var Tiers = []string{"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM", "EMERALD", "DIAMOND", "MASTER", "GRANDMASTER", "CHALLENGER"}

// Divisions lists the standard-tier divisions, worst to best.
var Divisions = []string{"IV", "III", "II", "I"}

// IsApex reports whether tier has no divisions and an open-ended LP scale.
func IsApex(tier string) bool {
	return apexTiers[normalize(tier)]
}

// Value maps a standing onto the ladder scalar. Standard tiers yield
// tier + division + LP in 0..2799; apex tiers yield 2800 + LP, ignoring
// the division entirely.
func Value(tier, division string, lp int) (int, error) {
	tier = normalize(tier)

	if apexTiers[tier] {
		return apexBase + lp, nil
	}

	base, ok := tierValues[tier]
	if !ok {
		return 0, fmt.Errorf("%w: unknown tier %q", domain.ErrInvalidRank, tier)
	}

	div, ok := divisionValues[normalize(division)]
	if !ok {
		return 0, fmt.Errorf("%w: unknown division %q", domain.ErrInvalidRank, division)
	}

	return base + div + lp, nil
}

// Format renders a standing for display, e.g. "GOLD II 45 LP" or
// "MASTER 210 LP".
func Format(tier, division string, lp int) string {
	tier = normalize(tier)
	if apexTiers[tier] {
		return fmt.Sprintf("%s %d LP", tier, lp)
	}
	return fmt.Sprintf("%s %s %d LP", tier, normalize(division), lp)
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
