package mechanics

import (
	"github.com/scratchcraft/rgs/pkg/entities"
	"github.com/scratchcraft/rgs/pkg/features"
	"github.com/scratchcraft/rgs/pkg/rng"
)

// resolveMatchN builds a match-N scratch grid. A winning grid places
// exactly N copies of the prize symbol; a losing grid goes through a
// repair pass that caps every winning symbol below N. Near-miss losses
// deliberately seed N-1 copies of a tease symbol, which the repair pass
// preserves.
func resolveMatchN(cfg *entities.GameConfig, src rng.Source, feat features.Result) (*entities.ResolvedOutcome, error) {
	params := cfg.Mechanic.Match
	grid := cfg.Mechanic.Grid
	n := params.MatchCount
	cells := grid.Cells()
	winSymbols := cfg.Paytable.WinningSymbols()

	flat := make([]string, cells)

	if feat.Tier.IsWin() {
		for _, pos := range randomPositions(src, cells, n) {
			flat[pos] = feat.Tier.ID
		}
		fillWinningGrid(flat, cfg, src, feat.Tier.ID, n)
	} else {
		if feat.NearMiss && len(winSymbols) > 0 && n > 1 {
			tease := rng.Pick(src, winSymbols)
			for _, pos := range randomPositions(src, cells, n-1) {
				flat[pos] = tease
			}
		}
		fillLosingGrid(flat, cfg, src)
		repairLosingGrid(flat, winSymbols, cfg.LosingSymbols, n, src)
	}

	out := baseOutcome(feat)
	out.RevealMap = toGrid(flat, grid.Rows, grid.Cols)
	return out, nil
}

// fillWinningGrid fills the empty cells of a winning grid from a safe
// pool: losing symbols always, plus other winning symbols capped below
// N-1 occurrences when multi-win mode is on. The prize symbol itself is
// never added, so it stays at exactly N copies.
func fillWinningGrid(flat []string, cfg *entities.GameConfig, src rng.Source, prizeSymbol string, n int) {
	counts := symbolCounts(flat)

	for i, s := range flat {
		if s != "" {
			continue
		}
		pool := make([]string, 0, len(cfg.LosingSymbols)+len(cfg.Paytable))
		pool = append(pool, cfg.LosingSymbols...)
		if cfg.Mechanic.Match.MultiWin {
			for _, w := range cfg.Paytable.WinningSymbols() {
				if w != prizeSymbol && counts[w] < n-1 {
					pool = append(pool, w)
				}
			}
		}
		pick := rng.Pick(src, pool)
		flat[i] = pick
		counts[pick]++
	}
}

// fillLosingGrid fills empty cells from the combined symbol pool. Winning
// symbols may land here; the repair pass afterwards keeps the grid a true
// loss.
func fillLosingGrid(flat []string, cfg *entities.GameConfig, src rng.Source) {
	pool := make([]string, 0, len(cfg.LosingSymbols)+len(cfg.Paytable))
	pool = append(pool, cfg.LosingSymbols...)
	pool = append(pool, cfg.Paytable.WinningSymbols()...)

	for i, s := range flat {
		if s == "" {
			flat[i] = rng.Pick(src, pool)
		}
	}
}

// repairLosingGrid recomputes symbol counts and forcibly replaces excess
// occurrences of any winning symbol that reached N, so the grid remains a
// true loss. Counts of N-1 are left alone: an intentional near-miss tease
// sits at exactly N-1 and must not be "fixed" below it.
func repairLosingGrid(flat []string, winSymbols, losingSymbols []string, n int, src rng.Source) {
	for _, w := range winSymbols {
		counts := symbolCounts(flat)
		if counts[w] < n {
			continue
		}
		excess := counts[w] - (n - 1)
		for i := len(flat) - 1; i >= 0 && excess > 0; i-- {
			if flat[i] == w {
				flat[i] = rng.Pick(src, losingSymbols)
				excess--
			}
		}
	}
}

// MatchNWin is the mechanic's win-detection rule: the grid wins when any
// winning symbol appears at least n times.
func MatchNWin(grid [][]string, winSymbols []string, n int) bool {
	counts := make(map[string]int)
	for _, row := range grid {
		for _, s := range row {
			counts[s]++
		}
	}
	for _, w := range winSymbols {
		if counts[w] >= n {
			return true
		}
	}
	return false
}
