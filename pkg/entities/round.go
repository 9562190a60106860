package entities

import "time"

// RoundStatus is the lifecycle state of a round.
type RoundStatus string

const (
	StatusInitiated  RoundStatus = "INITIATED"
	StatusCommitted  RoundStatus = "COMMITTED"
	StatusCompleted  RoundStatus = "COMPLETED"
	StatusRolledBack RoundStatus = "ROLLED_BACK"
)

// Round represents one played (or previewed) game instance. The seed is
// fixed at creation and never changes; replaying it reproduces the outcome
// at audit time. OutcomeJSON is written exactly once, at commit.
type Round struct {
	RoundID    string
	OperatorID string
	PlayerID   string
	GameID     string

	Currency   string
	WagerCents int64

	Status      RoundStatus
	Seed        string
	OutcomeJSON string
	BetTxID     string
	WinTxID     string

	InitiatedAt  time.Time
	CommittedAt  time.Time
	CompletedAt  time.Time
	RolledBackAt time.Time
	DurationMs   int64
}

// CanTransition reports whether moving from the round's current status to
// the target status is a legal state-machine transition. COMPLETED is
// terminal; post-completion corrections are handled by compensating
// reversal, not rollback.
func (r *Round) CanTransition(to RoundStatus) bool {
	switch to {
	case StatusCommitted:
		return r.Status == StatusInitiated
	case StatusCompleted:
		return r.Status == StatusCommitted
	case StatusRolledBack:
		return r.Status == StatusInitiated || r.Status == StatusCommitted
	default:
		return false
	}
}

// HistoryRecord is one row of the append-only game history log kept for
// regulatory reporting. Records are only ever inserted, never mutated.
type HistoryRecord struct {
	ID         string
	GameID     string
	RoundID    string
	PlayerID   string
	OperatorID string
	BetCents   int64
	WinCents   int64
	Currency   string
	Timestamp  time.Time
	Details    string // JSON copy of the resolved outcome
}
