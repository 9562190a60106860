package mechanics

import (
	"math"
	"sort"

	"github.com/scratchcraft/rgs/pkg/entities"
	"github.com/scratchcraft/rgs/pkg/features"
	"github.com/scratchcraft/rgs/pkg/rng"
)

// Coin faces for the coin-flip mechanic.
const (
	CoinHeads = "HEADS"
	CoinTails = "TAILS"
)

// resolvePlinko drops a ball through a binomial path. Each row is one
// left/right draw; the landing bucket is the count of rights, and the
// bucket's configured multiplier against the ticket price is the prize.
// The drawn tier does not apply here: the path itself is the outcome.
func resolvePlinko(cfg *entities.GameConfig, src rng.Source) (*entities.ResolvedOutcome, error) {
	params := cfg.Mechanic.Plinko

	path := make([]int, params.Rows)
	bucket := 0
	for i := range path {
		if src.Next() < 0.5 {
			path[i] = 0
		} else {
			path[i] = 1
			bucket++
		}
	}

	prize := int64(math.Round(float64(cfg.TicketPriceCents) * params.Multipliers[bucket]))

	return &entities.ResolvedOutcome{
		BasePrizeCents:  prize,
		FinalPrizeCents: prize,
		Multiplier:      1,
		IsWin:           prize > 0,
		PlinkoPath:      path,
		PlinkoBucket:    bucket,
		Features:        entities.Features{Multiplier: 1},
	}, nil
}

// resolveMines places mines at unique cell indexes. Win or loss comes from
// the drawn tier; the placement is the reveal the client animates.
func resolveMines(cfg *entities.GameConfig, src rng.Source, feat features.Result) (*entities.ResolvedOutcome, error) {
	params := cfg.Mechanic.Mines

	positions := randomPositions(src, params.Cells, params.MineCount)
	sort.Ints(positions)

	out := baseOutcome(feat)
	out.MinePositions = positions
	return out, nil
}

// resolveCoinFlip resolves a single coin draw. The call is drawn from the
// generator; the landed face agrees with the call exactly when the tier is
// a win, so the reveal can never contradict the resolved outcome.
func resolveCoinFlip(cfg *entities.GameConfig, src rng.Source, feat features.Result) (*entities.ResolvedOutcome, error) {
	faces := []string{CoinHeads, CoinTails}
	call := rng.Pick(src, faces)

	face := call
	if !feat.Tier.IsWin() {
		if call == CoinHeads {
			face = CoinTails
		} else {
			face = CoinHeads
		}
	}

	out := baseOutcome(feat)
	out.CoinCall = call
	out.CoinFace = face
	return out, nil
}
