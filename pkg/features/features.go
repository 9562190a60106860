// Package features applies post-selection modifiers to a chosen prize
// tier: multiplier triggers, second-chance upgrades and near-miss shaping.
// Modifiers draw from the same generator stream as tier selection and
// never re-seed it, so the whole round replays from one seed.
package features

import (
	"github.com/scratchcraft/rgs/pkg/entities"
	"github.com/scratchcraft/rgs/pkg/rng"
)

// Result is the adjusted tier plus the flags describing what fired.
type Result struct {
	Tier         entities.PrizeTier
	Multiplier   int64
	SecondChance bool
	NearMiss     bool
}

// Apply runs the configured modifiers against a selected tier. It is a
// pure function of (tier, generator state, config).
//
// Order matters and is fixed: multiplier triggers only for wins; second
// chance may upgrade a loss to a synthetic win; near miss only shapes
// outcomes that remain losses.
func Apply(cfg entities.FeatureConfig, pt entities.Paytable, tier entities.PrizeTier, src rng.Source) Result {
	res := Result{Tier: tier, Multiplier: 1}

	if tier.IsWin() {
		if cfg.Multipliers.Enabled && len(cfg.Multipliers.Values) > 0 {
			if src.Next() < cfg.Multipliers.Probability {
				res.Multiplier = rng.Pick(src, cfg.Multipliers.Values)
			}
		}
		return res
	}

	if cfg.SecondChance.Enabled {
		if src.Next() < cfg.SecondChance.Probability {
			if winners := pt.WinningTiers(); len(winners) > 0 {
				res.Tier = rng.Pick(src, winners)
				res.SecondChance = true
				return res
			}
		}
	}

	if cfg.NearMiss.Enabled {
		if src.Next() < cfg.NearMiss.Probability {
			res.NearMiss = true
		}
	}

	return res
}
