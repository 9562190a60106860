// Package paytable selects prize tiers from a configured paytable, either
// by weighted draw or by forced id (finite-deck mode).
package paytable

import (
	"log"

	"github.com/scratchcraft/rgs/pkg/entities"
	"github.com/scratchcraft/rgs/pkg/rng"
)

// Select returns one tier from the paytable by weighted draw. The walk
// accumulates weights until the running sum exceeds the draw; if
// floating-point drift leaves the walk short, the last tier is returned so
// coverage is total.
func Select(pt entities.Paytable, src rng.Source) (entities.PrizeTier, error) {
	if err := pt.Validate(); err != nil {
		return entities.PrizeTier{}, err
	}

	total := float64(pt.TotalWeight())
	r := src.Next() * total

	var running float64
	for _, tier := range pt {
		if tier.Weight <= 0 {
			continue
		}
		running += float64(tier.Weight)
		if r < running {
			return tier, nil
		}
	}

	// Floating-point drift fallback
	return pt[len(pt)-1], nil
}

// SelectForced returns the tier with the given id. If the id is not found
// in the paytable the round is not dropped: the miss is logged and
// selection falls back to the weighted draw.
func SelectForced(pt entities.Paytable, src rng.Source, forcedTierID string) (entities.PrizeTier, error) {
	if tier, ok := pt.FindTier(forcedTierID); ok {
		return tier, nil
	}

	log.Printf("[PAYTABLE] forced tier %q not found, falling back to weighted draw", forcedTierID)
	return Select(pt, src)
}
