package mechanics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scratchcraft/rgs/pkg/entities"
	"github.com/scratchcraft/rgs/pkg/features"
	"github.com/scratchcraft/rgs/pkg/rng"
)

func plinkoConfig() *entities.GameConfig {
	return &entities.GameConfig{
		GameID:           "plinko-test",
		TicketPriceCents: 100,
		Paytable:         entities.Paytable{{ID: "any", ValueCents: 0, Weight: 1}},
		Mechanic: entities.MechanicConfig{
			Kind:   entities.MechanicPlinko,
			Plinko: &entities.PlinkoParams{Rows: 4, Multipliers: []float64{10, 2, 0, 2, 10}},
		},
	}
}

func TestPlinkoPathAndBucket(t *testing.T) {
	cfg := plinkoConfig()

	for i := 0; i < 5000; i++ {
		src := rng.NewGeneratorFromString(fmt.Sprintf("plinko-%d", i))
		out, err := resolvePlinko(cfg, src)
		require.NoError(t, err)

		require.Len(t, out.PlinkoPath, 4)
		sum := 0
		for _, step := range out.PlinkoPath {
			require.Contains(t, []int{0, 1}, step)
			sum += step
		}
		assert.Equal(t, sum, out.PlinkoBucket)

		wantPrize := int64(cfg.Mechanic.Plinko.Multipliers[sum] * 100)
		assert.Equal(t, wantPrize, out.FinalPrizeCents)
		assert.Equal(t, wantPrize > 0, out.IsWin)
	}
}

func TestMinesUniquePlacement(t *testing.T) {
	cfg := &entities.GameConfig{
		GameID:           "mines-test",
		TicketPriceCents: 100,
		Paytable: entities.Paytable{
			{ID: "clear", ValueCents: 300, Weight: 40},
			{ID: "boom", ValueCents: 0, Weight: 60},
		},
		Mechanic: entities.MechanicConfig{
			Kind:  entities.MechanicMines,
			Mines: &entities.MinesParams{Cells: 25, MineCount: 5},
		},
	}

	for i := 0; i < 5000; i++ {
		src := rng.NewGeneratorFromString(fmt.Sprintf("mines-%d", i))
		out, err := resolveMines(cfg, src, features.Result{Tier: cfg.Paytable[0], Multiplier: 1})
		require.NoError(t, err)

		require.Len(t, out.MinePositions, 5)
		seen := make(map[int]bool)
		for _, pos := range out.MinePositions {
			require.GreaterOrEqual(t, pos, 0)
			require.Less(t, pos, 25)
			require.False(t, seen[pos], "mine indexes must be unique")
			seen[pos] = true
		}
	}
}

func TestCoinFlipFaceAgreesWithTier(t *testing.T) {
	cfg := &entities.GameConfig{
		GameID:           "coin-test",
		TicketPriceCents: 100,
		Paytable: entities.Paytable{
			{ID: "heads-up", ValueCents: 195, Weight: 50},
			{ID: "lose", ValueCents: 0, Weight: 50},
		},
		Mechanic: entities.MechanicConfig{Kind: entities.MechanicCoinFlip},
	}

	for i := 0; i < 2000; i++ {
		src := rng.NewGeneratorFromString(fmt.Sprintf("coin-%d", i))

		out, err := resolveCoinFlip(cfg, src, features.Result{Tier: cfg.Paytable[0], Multiplier: 1})
		require.NoError(t, err)
		assert.Equal(t, out.CoinCall, out.CoinFace, "a win lands on the called face")

		out, err = resolveCoinFlip(cfg, src, features.Result{Tier: cfg.Paytable[1], Multiplier: 1})
		require.NoError(t, err)
		assert.NotEqual(t, out.CoinCall, out.CoinFace, "a loss lands on the other face")
	}
}

func TestResolveUnknownMechanic(t *testing.T) {
	cfg := &entities.GameConfig{
		GameID:   "bad",
		Paytable: entities.Paytable{{ID: "a", ValueCents: 0, Weight: 1}},
		Mechanic: entities.MechanicConfig{Kind: "ROULETTE"},
	}
	src := rng.NewGeneratorFromString("x")
	_, err := Resolve(cfg, src, features.Result{Tier: cfg.Paytable[0], Multiplier: 1})
	assert.ErrorIs(t, err, entities.ErrUnknownMechanic)
}

func TestResolveSetsPresentationSeed(t *testing.T) {
	cfg := plinkoConfig()
	a, err := Resolve(cfg, rng.NewGeneratorFromString("pres"), features.Result{Tier: cfg.Paytable[0], Multiplier: 1})
	require.NoError(t, err)
	b, err := Resolve(cfg, rng.NewGeneratorFromString("pres"), features.Result{Tier: cfg.Paytable[0], Multiplier: 1})
	require.NoError(t, err)
	assert.Equal(t, a.PresentationSeed, b.PresentationSeed)
}
