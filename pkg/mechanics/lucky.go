package mechanics

import (
	"fmt"

	"github.com/scratchcraft/rgs/pkg/entities"
	"github.com/scratchcraft/rgs/pkg/features"
	"github.com/scratchcraft/rgs/pkg/rng"
)

// resolveLuckyNumber draws K distinct winning numbers from the combined
// symbol pool. A winning grid places a single match at a random cell; a
// losing grid is filled entirely from symbols outside the winning-number
// set, so it has zero matches by construction.
func resolveLuckyNumber(cfg *entities.GameConfig, src rng.Source, feat features.Result) (*entities.ResolvedOutcome, error) {
	params := cfg.Mechanic.Lucky
	grid := cfg.Mechanic.Grid
	cells := grid.Cells()

	pool := make([]string, 0, len(cfg.LosingSymbols)+len(cfg.Paytable))
	pool = append(pool, cfg.Paytable.WinningSymbols()...)
	pool = append(pool, cfg.LosingSymbols...)

	if params.WinningNumberCount >= len(pool) {
		return nil, fmt.Errorf("winning number count %d exhausts the symbol pool of %d", params.WinningNumberCount, len(pool))
	}

	winningNumbers := rng.PickUnique(src, pool, params.WinningNumberCount)

	excluded := make([]string, 0, len(pool)-len(winningNumbers))
	for _, s := range pool {
		if !contains(winningNumbers, s) {
			excluded = append(excluded, s)
		}
	}

	flat := make([]string, cells)
	for i := range flat {
		flat[i] = rng.Pick(src, excluded)
	}
	if feat.Tier.IsWin() {
		matchCell := src.Range(0, cells-1)
		flat[matchCell] = rng.Pick(src, winningNumbers)
	}

	out := baseOutcome(feat)
	out.RevealMap = toGrid(flat, grid.Rows, grid.Cols)
	out.WinningNumbers = winningNumbers
	return out, nil
}

// LuckyNumberWin is the mechanic's win-detection rule: the grid wins when
// any cell matches a winning number.
func LuckyNumberWin(grid [][]string, winningNumbers []string) bool {
	for _, row := range grid {
		for _, s := range row {
			if contains(winningNumbers, s) {
				return true
			}
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
