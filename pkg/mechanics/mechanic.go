// Package mechanics builds the reveal structure for each game mechanic.
// A resolver receives the game config, the round's generator and the final
// tier (after feature modifiers) and returns a ResolvedOutcome whose
// reveal can never contradict the tier's win/loss status.
package mechanics

import (
	"fmt"

	"github.com/scratchcraft/rgs/pkg/entities"
	"github.com/scratchcraft/rgs/pkg/features"
	"github.com/scratchcraft/rgs/pkg/rng"
)

// Resolve dispatches to the resolver for the game's mechanic kind. Instant
// games are handled first; grid mechanics share the scratch-card reveal
// path. The switch is exhaustive over MechanicKind.
func Resolve(cfg *entities.GameConfig, src rng.Source, feat features.Result) (*entities.ResolvedOutcome, error) {
	var (
		out *entities.ResolvedOutcome
		err error
	)

	switch cfg.Mechanic.Kind {
	case entities.MechanicPlinko:
		out, err = resolvePlinko(cfg, src)
	case entities.MechanicMines:
		out, err = resolveMines(cfg, src, feat)
	case entities.MechanicCoinFlip:
		out, err = resolveCoinFlip(cfg, src, feat)
	case entities.MechanicMatchN:
		out, err = resolveMatchN(cfg, src, feat)
	case entities.MechanicLuckyNumber:
		out, err = resolveLuckyNumber(cfg, src, feat)
	case entities.MechanicFindSymbol:
		out, err = resolveFindSymbol(cfg, src, feat)
	default:
		return nil, fmt.Errorf("%w: %q", entities.ErrUnknownMechanic, cfg.Mechanic.Kind)
	}

	if err != nil {
		return nil, err
	}

	out.PresentationSeed = src.Range(0, 1<<30)
	return out, nil
}

// baseOutcome fills the tier-derived fields shared by every resolver.
func baseOutcome(feat features.Result) *entities.ResolvedOutcome {
	base := feat.Tier.ValueCents
	return &entities.ResolvedOutcome{
		TierID:          feat.Tier.ID,
		BasePrizeCents:  base,
		FinalPrizeCents: base * feat.Multiplier,
		Multiplier:      feat.Multiplier,
		IsWin:           feat.Tier.IsWin(),
		Features: entities.Features{
			Multiplier:   feat.Multiplier,
			SecondChance: feat.SecondChance,
			NearMiss:     feat.NearMiss,
		},
	}
}

// randomPositions returns n distinct cell indexes in [0, cells).
func randomPositions(src rng.Source, cells, n int) []int {
	idx := make([]int, cells)
	for i := range idx {
		idx[i] = i
	}
	return rng.PickUnique(src, idx, n)
}

// toGrid shapes a flat cell slice into rows x cols.
func toGrid(flat []string, rows, cols int) [][]string {
	grid := make([][]string, rows)
	for r := 0; r < rows; r++ {
		grid[r] = flat[r*cols : (r+1)*cols]
	}
	return grid
}

// symbolCounts tallies occurrences per symbol in a flat grid.
func symbolCounts(flat []string) map[string]int {
	counts := make(map[string]int)
	for _, s := range flat {
		counts[s]++
	}
	return counts
}
