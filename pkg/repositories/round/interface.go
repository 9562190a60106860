package round

import (
	"context"
	"errors"

	"github.com/scratchcraft/rgs/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_round

var (
	// ErrRoundNotFound is returned when no round exists for the id.
	ErrRoundNotFound = errors.New("round not found")

	// ErrRoundConflict is returned when a guarded transition finds the
	// round in a different state than expected. Callers re-read the round
	// and decide whether the operation already happened.
	ErrRoundConflict = errors.New("round state conflict")

	// ErrDeckNotFound is returned when a game has no published deck.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrDeckConflict is returned when a concurrent draw moved the deck
	// cursor first. The draw can be retried safely.
	ErrDeckConflict = errors.New("deck cursor conflict")
)

// Repository defines storage operations for rounds, finite decks and the
// append-only history log. Every state transition is guarded on the
// expected current status so concurrent calls serialize instead of
// double-writing.
type Repository interface {
	// CreateRound persists a new round in state INITIATED.
	CreateRound(ctx context.Context, round *entities.Round) error

	// GetRound retrieves a round by id.
	GetRound(ctx context.Context, roundID string) (*entities.Round, error)

	// CommitRound persists the outcome, transitions INITIATED to COMMITTED
	// and appends the history record inside one transaction. Returns
	// ErrRoundConflict when the round is not INITIATED.
	CommitRound(ctx context.Context, roundID, outcomeJSON, betTxID, winTxID string, record *entities.HistoryRecord) error

	// CompleteRound transitions COMMITTED to COMPLETED and records the
	// round duration. Returns ErrRoundConflict when the round is not
	// COMMITTED.
	CompleteRound(ctx context.Context, roundID string, durationMs int64) error

	// RollbackRound transitions INITIATED or COMMITTED to ROLLED_BACK.
	// Returns ErrRoundConflict for any other state.
	RollbackRound(ctx context.Context, roundID string) error

	// Deck operations (finite-pool math mode)
	SaveDeck(ctx context.Context, deck *entities.Deck) error
	GetDeck(ctx context.Context, gameID string) (*entities.Deck, error)

	// DrawTicket atomically consumes the next ticket of the game's deck.
	// Concurrent draws never observe the same index: the cursor increment
	// is guarded on the expected value and loses return ErrDeckConflict.
	// An empty pool returns deck.ErrExhausted.
	DrawTicket(ctx context.Context, gameID string) (string, error)

	// GetHistory retrieves recent history records for a game. The history
	// table is append-only; nothing ever mutates a record after insert.
	GetHistory(ctx context.Context, gameID string, limit int) ([]*entities.HistoryRecord, error)

	// Close closes any resources used by the repository.
	Close() error
}
