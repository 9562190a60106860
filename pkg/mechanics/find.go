package mechanics

import (
	"github.com/scratchcraft/rgs/pkg/entities"
	"github.com/scratchcraft/rgs/pkg/features"
	"github.com/scratchcraft/rgs/pkg/rng"
)

// teaseBias is the probability that a losing find-symbol grid shows
// requiredHits-1 tease copies instead of none when the near-miss feature
// did not already fire.
const teaseBias = 0.6

// resolveFindSymbol builds a find-the-symbol grid. A winning grid places
// requiredHits copies of the target symbol at distinct cells; a losing
// grid places either zero or requiredHits-1 tease copies of a real win
// symbol, biased toward the near miss.
func resolveFindSymbol(cfg *entities.GameConfig, src rng.Source, feat features.Result) (*entities.ResolvedOutcome, error) {
	params := cfg.Mechanic.Find
	grid := cfg.Mechanic.Grid
	hits := params.RequiredHits
	cells := grid.Cells()
	winSymbols := cfg.Paytable.WinningSymbols()

	flat := make([]string, cells)

	var target string
	if feat.Tier.IsWin() {
		target = feat.Tier.ID
		for _, pos := range randomPositions(src, cells, hits) {
			flat[pos] = target
		}
	} else if len(winSymbols) > 0 {
		target = rng.Pick(src, winSymbols)
		if hits > 1 && (feat.NearMiss || src.Next() < teaseBias) {
			for _, pos := range randomPositions(src, cells, hits-1) {
				flat[pos] = target
			}
		}
	}

	for i, s := range flat {
		if s == "" {
			flat[i] = rng.Pick(src, cfg.LosingSymbols)
		}
	}

	out := baseOutcome(feat)
	out.RevealMap = toGrid(flat, grid.Rows, grid.Cols)
	out.TargetSymbol = target
	return out, nil
}

// FindSymbolWin is the mechanic's win-detection rule: the grid wins when
// the target symbol appears at least requiredHits times.
func FindSymbolWin(grid [][]string, target string, requiredHits int) bool {
	count := 0
	for _, row := range grid {
		for _, s := range row {
			if s == target {
				count++
			}
		}
	}
	return count >= requiredHits
}
