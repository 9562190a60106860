package round

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scratchcraft/rgs/pkg/deck"
	"github.com/scratchcraft/rgs/pkg/entities"
)

func setupTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testRound(roundID string) *entities.Round {
	return &entities.Round{
		RoundID:     roundID,
		OperatorID:  "op1",
		PlayerID:    "player1",
		GameID:      "match_3",
		Currency:    "USD",
		WagerCents:  100,
		Status:      entities.StatusInitiated,
		Seed:        "seed-abc",
		InitiatedAt: time.Now(),
	}
}

func testRecord(roundID string) *entities.HistoryRecord {
	return &entities.HistoryRecord{
		GameID:     "match_3",
		RoundID:    roundID,
		PlayerID:   "player1",
		OperatorID: "op1",
		BetCents:   100,
		WinCents:   200,
		Currency:   "USD",
		Details:    `{"tierId":"small"}`,
	}
}

func TestRoundLifecycle(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateRound(ctx, testRound("r1")))

	round, err := repo.GetRound(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusInitiated, round.Status)
	assert.Equal(t, "seed-abc", round.Seed)
	assert.Equal(t, int64(100), round.WagerCents)
	assert.Empty(t, round.OutcomeJSON)

	err = repo.CommitRound(ctx, "r1", `{"tierId":"small"}`, "bet-1", "win-1", testRecord("r1"))
	require.NoError(t, err)

	round, err = repo.GetRound(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCommitted, round.Status)
	assert.Equal(t, `{"tierId":"small"}`, round.OutcomeJSON)
	assert.Equal(t, "bet-1", round.BetTxID)
	assert.Equal(t, "win-1", round.WinTxID)
	assert.False(t, round.CommittedAt.IsZero())

	require.NoError(t, repo.CompleteRound(ctx, "r1", 2300))

	round, err = repo.GetRound(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, round.Status)
	assert.Equal(t, int64(2300), round.DurationMs)
	assert.False(t, round.CompletedAt.IsZero())
}

func TestGetRoundNotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetRound(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

func TestCommitRoundGuards(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	err := repo.CommitRound(ctx, "missing", `{}`, "b", "w", testRecord("missing"))
	assert.ErrorIs(t, err, ErrRoundNotFound)

	require.NoError(t, repo.CreateRound(ctx, testRound("r1")))
	require.NoError(t, repo.CommitRound(ctx, "r1", `{}`, "b", "w", testRecord("r1")))

	// The status guard rejects a second commit, and the history append
	// must not happen for the losing attempt
	err = repo.CommitRound(ctx, "r1", `{"other":true}`, "b2", "w2", testRecord("r1"))
	assert.ErrorIs(t, err, ErrRoundConflict)

	round, err := repo.GetRound(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, `{}`, round.OutcomeJSON)
	assert.Equal(t, "b", round.BetTxID)

	history, err := repo.GetHistory(ctx, "match_3", 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestCompleteRoundGuards(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	assert.ErrorIs(t, repo.CompleteRound(ctx, "missing", 100), ErrRoundNotFound)

	require.NoError(t, repo.CreateRound(ctx, testRound("r1")))
	assert.ErrorIs(t, repo.CompleteRound(ctx, "r1", 100), ErrRoundConflict)

	require.NoError(t, repo.CommitRound(ctx, "r1", `{}`, "b", "w", testRecord("r1")))
	require.NoError(t, repo.CompleteRound(ctx, "r1", 100))
	assert.ErrorIs(t, repo.CompleteRound(ctx, "r1", 100), ErrRoundConflict)
}

func TestRollbackRoundGuards(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	assert.ErrorIs(t, repo.RollbackRound(ctx, "missing"), ErrRoundNotFound)

	// INITIATED rolls back
	require.NoError(t, repo.CreateRound(ctx, testRound("r1")))
	require.NoError(t, repo.RollbackRound(ctx, "r1"))

	round, err := repo.GetRound(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusRolledBack, round.Status)
	assert.False(t, round.RolledBackAt.IsZero())

	// ROLLED_BACK does not roll back again
	assert.ErrorIs(t, repo.RollbackRound(ctx, "r1"), ErrRoundConflict)

	// COMMITTED rolls back
	require.NoError(t, repo.CreateRound(ctx, testRound("r2")))
	require.NoError(t, repo.CommitRound(ctx, "r2", `{}`, "b", "w", testRecord("r2")))
	require.NoError(t, repo.RollbackRound(ctx, "r2"))

	// COMPLETED does not
	require.NoError(t, repo.CreateRound(ctx, testRound("r3")))
	require.NoError(t, repo.CommitRound(ctx, "r3", `{}`, "b", "w", testRecord("r3")))
	require.NoError(t, repo.CompleteRound(ctx, "r3", 100))
	assert.ErrorIs(t, repo.RollbackRound(ctx, "r3"), ErrRoundConflict)
}

func TestDeckDrawSequence(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	d := &entities.Deck{
		GameID:  "pool_game",
		Seed:    "publish-seed",
		Tickets: []string{"big", "lose", "small", "lose"},
	}
	require.NoError(t, repo.SaveDeck(ctx, d))

	// Draws consume tickets in stored order
	for _, want := range d.Tickets {
		got, err := repo.DrawTicket(ctx, "pool_game")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := repo.DrawTicket(ctx, "pool_game")
	assert.ErrorIs(t, err, deck.ErrExhausted)

	stored, err := repo.GetDeck(ctx, "pool_game")
	require.NoError(t, err)
	assert.Equal(t, 4, stored.CurrentIndex)
	assert.True(t, stored.Exhausted())
}

func TestSaveDeckReplacesExisting(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	first := &entities.Deck{GameID: "g", Seed: "s1", Tickets: []string{"a", "b"}}
	require.NoError(t, repo.SaveDeck(ctx, first))

	_, err := repo.DrawTicket(ctx, "g")
	require.NoError(t, err)

	// Republishing resets the cursor
	second := &entities.Deck{GameID: "g", Seed: "s2", Tickets: []string{"x", "y", "z"}}
	require.NoError(t, repo.SaveDeck(ctx, second))

	stored, err := repo.GetDeck(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, "s2", stored.Seed)
	assert.Equal(t, 0, stored.CurrentIndex)
	assert.Equal(t, []string{"x", "y", "z"}, stored.Tickets)
}

func TestDrawTicketDeckNotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.DrawTicket(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrDeckNotFound)

	_, err = repo.GetDeck(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrDeckNotFound)
}

func TestGetHistoryOrderAndLimit(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	base := time.Now().Add(-3 * time.Hour)
	for i, roundID := range []string{"r1", "r2", "r3"} {
		require.NoError(t, repo.CreateRound(ctx, testRound(roundID)))
		record := testRecord(roundID)
		record.Timestamp = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.CommitRound(ctx, roundID, `{}`, "b", "w", record))
	}

	history, err := repo.GetHistory(ctx, "match_3", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "r3", history[0].RoundID)
	assert.Equal(t, "r2", history[1].RoundID)

	empty, err := repo.GetHistory(ctx, "other_game", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
