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

func findConfig() *entities.GameConfig {
	return &entities.GameConfig{
		GameID:           "find-test",
		TicketPriceCents: 100,
		Paytable: entities.Paytable{
			{ID: "chest", ValueCents: 5000, Weight: 15},
			{ID: "lose", ValueCents: 0, Weight: 85},
		},
		LosingSymbols: []string{"rock", "shell", "crab", "kelp"},
		Mechanic: entities.MechanicConfig{
			Kind: entities.MechanicFindSymbol,
			Grid: entities.GridParams{Rows: 3, Cols: 4},
			Find: &entities.FindParams{RequiredHits: 3},
		},
	}
}

func TestFindSymbolWinningGrid(t *testing.T) {
	cfg := findConfig()
	tier := cfg.Paytable[0]

	for i := 0; i < 2000; i++ {
		src := rng.NewGeneratorFromString(fmt.Sprintf("find-win-%d", i))
		out, err := resolveFindSymbol(cfg, src, features.Result{Tier: tier, Multiplier: 1})
		require.NoError(t, err)

		assert.Equal(t, "chest", out.TargetSymbol)
		assert.Equal(t, 3, countSymbol(out.RevealMap, "chest"))
		assert.True(t, FindSymbolWin(out.RevealMap, out.TargetSymbol, 3))
	}
}

func TestFindSymbolLosingGridSafety(t *testing.T) {
	cfg := findConfig()
	loseTier := cfg.Paytable[1]

	teased := 0
	for i := 0; i < 100_000; i++ {
		src := rng.NewGeneratorFromString(fmt.Sprintf("find-loss-%d", i))
		out, err := resolveFindSymbol(cfg, src, features.Result{Tier: loseTier, Multiplier: 1})
		require.NoError(t, err)

		if FindSymbolWin(out.RevealMap, out.TargetSymbol, 3) {
			t.Fatalf("losing grid %v reaches %d copies of %s", out.RevealMap, 3, out.TargetSymbol)
		}

		// Tease copies are either zero or requiredHits-1, never in between
		n := countSymbol(out.RevealMap, out.TargetSymbol)
		require.Contains(t, []int{0, 2}, n)
		if n == 2 {
			teased++
		}
	}

	// Placement is biased toward the near miss
	assert.Greater(t, teased, 50_000)
}

func TestFindSymbolNearMissForcesTease(t *testing.T) {
	cfg := findConfig()
	loseTier := cfg.Paytable[1]

	for i := 0; i < 2000; i++ {
		src := rng.NewGeneratorFromString(fmt.Sprintf("find-tease-%d", i))
		out, err := resolveFindSymbol(cfg, src, features.Result{Tier: loseTier, Multiplier: 1, NearMiss: true})
		require.NoError(t, err)
		assert.Equal(t, 2, countSymbol(out.RevealMap, out.TargetSymbol))
	}
}
