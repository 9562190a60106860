package gameconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scratchcraft/rgs/pkg/entities"
)

const matchThreeYAML = `gameId: match_3
name: Match Three
ticketPrice: 100
prizes:
  - id: big
    value: 1000
    weight: 5
  - id: small
    value: 200
    weight: 25
  - id: lose
    value: 0
    weight: 70
losingSymbols: [cherry, lemon, bell]
mechanic:
  kind: MATCH_N
  grid:
    rows: 3
    cols: 3
  match:
    matchCount: 3
features:
  multipliers:
    enabled: true
    probability: 0.1
    values: [2, 5]
math:
  mode: PROBABILISTIC
`

const coinFlipYAML = `gameId: coin
name: Coin Flip
ticketPrice: 100
prizes:
  - id: double
    value: 200
    weight: 1
  - id: lose
    value: 0
    weight: 1
mechanic:
  kind: COIN_FLIP
math:
  mode: POOL
`

func writeGame(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeGame(t, dir, "match_3.yaml", matchThreeYAML)
	writeGame(t, dir, "coin.yml", coinFlipYAML)
	writeGame(t, dir, "notes.txt", "not a game")

	loader := NewLoader(dir)
	require.NoError(t, loader.LoadAll())

	assert.ElementsMatch(t, []string{"match_3", "coin"}, loader.GameIDs())

	cfg, err := loader.Get("match_3")
	require.NoError(t, err)
	assert.Equal(t, "Match Three", cfg.Name)
	assert.Equal(t, int64(100), cfg.TicketPriceCents)
	assert.Equal(t, entities.MechanicMatchN, cfg.Mechanic.Kind)
	require.NotNil(t, cfg.Mechanic.Match)
	assert.Equal(t, 3, cfg.Mechanic.Match.MatchCount)
	assert.Equal(t, int64(1000), cfg.Paytable[0].ValueCents)
	assert.True(t, cfg.Features.Multipliers.Enabled)

	coin, err := loader.Get("coin")
	require.NoError(t, err)
	assert.Equal(t, entities.MathModePool, coin.Math.Mode)
}

func TestLoadAllRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeGame(t, dir, "bad.yaml", "gameId: bad\nmechanic:\n  kind: MATCH_N\n")

	loader := NewLoader(dir)
	err := loader.LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestLoadAllRejectsDuplicateGameID(t *testing.T) {
	dir := t.TempDir()
	writeGame(t, dir, "a.yaml", coinFlipYAML)
	writeGame(t, dir, "b.yaml", coinFlipYAML)

	loader := NewLoader(dir)
	err := loader.LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate game id")
}

func TestGetUnknownGame(t *testing.T) {
	loader := NewLoader(t.TempDir())
	require.NoError(t, loader.LoadAll())

	_, err := loader.Get("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGameNotFound)
}
