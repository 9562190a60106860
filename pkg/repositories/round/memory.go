package round

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scratchcraft/rgs/pkg/deck"
	"github.com/scratchcraft/rgs/pkg/entities"
)

// MemoryRepository implements Repository interface with in-memory storage.
// All transitions run under one lock, giving the same serialization
// guarantees as the SQLite transactions.
type MemoryRepository struct {
	mu sync.RWMutex
	// Map of roundID to round
	rounds map[string]*entities.Round
	// Map of gameID to deck
	decks map[string]*entities.Deck
	// Map of gameID to append-only history records
	history map[string][]*entities.HistoryRecord
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rounds:  make(map[string]*entities.Round),
		decks:   make(map[string]*entities.Deck),
		history: make(map[string][]*entities.HistoryRecord),
	}
}

// CreateRound persists a new round
func (r *MemoryRepository) CreateRound(ctx context.Context, round *entities.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *round
	r.rounds[round.RoundID] = &stored
	return nil
}

// GetRound retrieves a round by id
func (r *MemoryRepository) GetRound(ctx context.Context, roundID string) (*entities.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	round, exists := r.rounds[roundID]
	if !exists {
		return nil, ErrRoundNotFound
	}
	copied := *round
	return &copied, nil
}

// CommitRound persists the outcome and appends the history record
func (r *MemoryRepository) CommitRound(ctx context.Context, roundID, outcomeJSON, betTxID, winTxID string, record *entities.HistoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	round, exists := r.rounds[roundID]
	if !exists {
		return ErrRoundNotFound
	}
	if !round.CanTransition(entities.StatusCommitted) {
		return ErrRoundConflict
	}

	round.Status = entities.StatusCommitted
	round.OutcomeJSON = outcomeJSON
	round.BetTxID = betTxID
	round.WinTxID = winTxID
	round.CommittedAt = time.Now()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	stored := *record
	r.history[record.GameID] = append(r.history[record.GameID], &stored)

	return nil
}

// CompleteRound transitions COMMITTED to COMPLETED
func (r *MemoryRepository) CompleteRound(ctx context.Context, roundID string, durationMs int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	round, exists := r.rounds[roundID]
	if !exists {
		return ErrRoundNotFound
	}
	if !round.CanTransition(entities.StatusCompleted) {
		return ErrRoundConflict
	}

	round.Status = entities.StatusCompleted
	round.CompletedAt = time.Now()
	round.DurationMs = durationMs
	return nil
}

// RollbackRound transitions INITIATED or COMMITTED to ROLLED_BACK
func (r *MemoryRepository) RollbackRound(ctx context.Context, roundID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	round, exists := r.rounds[roundID]
	if !exists {
		return ErrRoundNotFound
	}
	if !round.CanTransition(entities.StatusRolledBack) {
		return ErrRoundConflict
	}

	round.Status = entities.StatusRolledBack
	round.RolledBackAt = time.Now()
	return nil
}

// SaveDeck stores a published deck for a game
func (r *MemoryRepository) SaveDeck(ctx context.Context, d *entities.Deck) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *d
	stored.Tickets = append([]string(nil), d.Tickets...)
	r.decks[d.GameID] = &stored
	return nil
}

// GetDeck retrieves the deck for a game
func (r *MemoryRepository) GetDeck(ctx context.Context, gameID string) (*entities.Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, exists := r.decks[gameID]
	if !exists {
		return nil, ErrDeckNotFound
	}
	copied := *d
	copied.Tickets = append([]string(nil), d.Tickets...)
	return &copied, nil
}

// DrawTicket atomically consumes the next ticket of the game's deck
func (r *MemoryRepository) DrawTicket(ctx context.Context, gameID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, exists := r.decks[gameID]
	if !exists {
		return "", ErrDeckNotFound
	}
	if d.Exhausted() {
		return "", deck.ErrExhausted
	}

	ticket := d.Tickets[d.CurrentIndex]
	d.CurrentIndex++
	return ticket, nil
}

// GetHistory retrieves recent history records for a game
func (r *MemoryRepository) GetHistory(ctx context.Context, gameID string, limit int) ([]*entities.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.history[gameID]
	if records == nil {
		return []*entities.HistoryRecord{}, nil
	}

	// If we have more records than the limit, return only the most recent ones
	if len(records) > limit {
		return records[len(records)-limit:], nil
	}
	return records, nil
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}
