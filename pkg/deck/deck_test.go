package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scratchcraft/rgs/pkg/entities"
)

func TestBuildExactFrequencies(t *testing.T) {
	pt := entities.Paytable{
		{ID: "A", ValueCents: 1000, Weight: 10},
		{ID: "B", ValueCents: 0, Weight: 90},
	}

	d, err := Build("game-1", pt, "publish-seed")
	require.NoError(t, err)
	require.Len(t, d.Tickets, 100)

	counts := map[string]int{}
	for i := 0; i < 100; i++ {
		ticket, err := Draw(d)
		require.NoError(t, err)
		counts[ticket]++
	}

	// Exactly the configured weights, not approximately
	assert.Equal(t, 10, counts["A"])
	assert.Equal(t, 90, counts["B"])

	// The 101st draw signals pool exhaustion
	_, err = Draw(d)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.True(t, d.Exhausted())
	assert.Zero(t, d.Remaining())
}

func TestBuildShuffleIsSeedDeterministic(t *testing.T) {
	pt := entities.Paytable{
		{ID: "A", ValueCents: 100, Weight: 30},
		{ID: "B", ValueCents: 0, Weight: 70},
	}

	a, err := Build("game-1", pt, "seed-x")
	require.NoError(t, err)
	b, err := Build("game-1", pt, "seed-x")
	require.NoError(t, err)
	assert.Equal(t, a.Tickets, b.Tickets, "same publish seed, same order")

	c, err := Build("game-1", pt, "seed-y")
	require.NoError(t, err)
	assert.NotEqual(t, a.Tickets, c.Tickets, "different publish seed should reorder")
}

func TestBuildShuffles(t *testing.T) {
	pt := entities.Paytable{
		{ID: "A", ValueCents: 100, Weight: 50},
		{ID: "B", ValueCents: 0, Weight: 50},
	}

	d, err := Build("game-1", pt, "mix-seed")
	require.NoError(t, err)

	// Weight expansion alone would put all A tickets first
	assert.NotEqual(t, "A", uniformPrefix(d.Tickets[:50]))
}

func uniformPrefix(tickets []string) string {
	first := tickets[0]
	for _, t := range tickets {
		if t != first {
			return ""
		}
	}
	return first
}

func TestBuildInvalidPaytable(t *testing.T) {
	_, err := Build("game-1", entities.Paytable{}, "seed")
	assert.ErrorIs(t, err, entities.ErrEmptyPaytable)
}

func TestDrawAdvancesCursorMonotonically(t *testing.T) {
	pt := entities.Paytable{{ID: "A", ValueCents: 100, Weight: 5}}
	d, err := Build("game-1", pt, "seed")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.Equal(t, i, d.CurrentIndex)
		_, err := Draw(d)
		require.NoError(t, err)
	}
	assert.Equal(t, 5, d.CurrentIndex)
}
