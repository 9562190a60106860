// Package round is the transactional round orchestrator: the state
// machine tying tier selection, feature modifiers, mechanic resolution and
// deck consumption together, with idempotent money-movement semantics.
package round

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/scratchcraft/rgs/internal/types"
	"github.com/scratchcraft/rgs/pkg/deck"
	"github.com/scratchcraft/rgs/pkg/entities"
	"github.com/scratchcraft/rgs/pkg/features"
	"github.com/scratchcraft/rgs/pkg/mechanics"
	"github.com/scratchcraft/rgs/pkg/paytable"
	roundRepo "github.com/scratchcraft/rgs/pkg/repositories/round"
	"github.com/scratchcraft/rgs/pkg/rng"
)

var (
	ErrRoundRolledBack   = errors.New("round already rolled back")
	ErrRoundCompleted    = errors.New("round already completed")
	ErrRoundNotCommitted = errors.New("round not committed")
	ErrOperatorMismatch  = errors.New("round belongs to a different operator")
)

// Optimistic deck draws retry briefly when a concurrent round wins the
// cursor first.
const (
	maxDrawRetries = 3
	drawRetryDelay = 10 * time.Millisecond
)

// ConfigSource supplies published game configurations. Implementations
// must return validated configs.
type ConfigSource interface {
	Get(gameID string) (*entities.GameConfig, error)
}

// Service handles round lifecycle business logic
type Service struct {
	repo    roundRepo.Repository
	configs ConfigSource
}

// NewService creates a new round service
func NewService(repo roundRepo.Repository, configs ConfigSource) *Service {
	return &Service{
		repo:    repo,
		configs: configs,
	}
}

// Resolve produces a ResolvedOutcome from a game config and a seed. It is
// a pure computation: no persistence, no clock, no process-wide state.
// Calling it twice with the same config and seed yields identical output.
// A forcedTierID pins the tier (finite-deck mode); empty means weighted
// draw.
func Resolve(cfg *entities.GameConfig, seed, forcedTierID string) (*entities.ResolvedOutcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, types.WrapError(types.ErrConfigInvalid, "game config cannot be resolved", err)
	}

	src := rng.NewGeneratorFromString(seed)

	var (
		tier entities.PrizeTier
		err  error
	)
	if forcedTierID != "" {
		tier, err = paytable.SelectForced(cfg.Paytable, src, forcedTierID)
	} else {
		tier, err = paytable.Select(cfg.Paytable, src)
	}
	if err != nil {
		return nil, types.WrapError(types.ErrConfigInvalid, "tier selection failed", err)
	}

	feat := features.Apply(cfg.Features, cfg.Paytable, tier, src)

	out, err := mechanics.Resolve(cfg, src, feat)
	if err != nil {
		return nil, types.WrapError(types.ErrConfigInvalid, "mechanic resolution failed", err)
	}
	return out, nil
}

// InitRound creates a round in state INITIATED with a fresh seed. No money
// moves yet. Configuration problems reject the request before any row is
// written.
func (s *Service) InitRound(ctx context.Context, operatorID, playerID, gameID, currency string, wagerCents int64) (*entities.Round, error) {
	if _, err := s.configs.Get(gameID); err != nil {
		return nil, types.WrapError(types.ErrConfigInvalid, fmt.Sprintf("game %s cannot be played", gameID), err)
	}

	round := &entities.Round{
		RoundID:     uuid.New().String(),
		OperatorID:  operatorID,
		PlayerID:    playerID,
		GameID:      gameID,
		Currency:    currency,
		WagerCents:  wagerCents,
		Status:      entities.StatusInitiated,
		Seed:        uuid.New().String(),
		InitiatedAt: time.Now(),
	}

	if err := s.repo.CreateRound(ctx, round); err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "error creating round", err)
	}

	log.Printf("[ROUND] Initiated round %s for player %s on game %s (wager %d %s)",
		round.RoundID, playerID, gameID, wagerCents, currency)

	return round, nil
}

// ResolveOutcome resolves an outcome for a game without persisting
// anything. Preview surfaces and audit replays call this directly.
func (s *Service) ResolveOutcome(gameID, seed, forcedTierID string) (*entities.ResolvedOutcome, error) {
	cfg, err := s.configs.Get(gameID)
	if err != nil {
		return nil, types.WrapError(types.ErrConfigInvalid, fmt.Sprintf("unknown game %s", gameID), err)
	}
	return Resolve(cfg, seed, forcedTierID)
}

// CommitRound persists the outcome and transitions the round to
// COMMITTED. It is idempotent: repeated calls for the same round return
// the stored outcome unchanged, without re-computing or re-crediting.
// Commits against a rolled-back round fail with a state conflict.
func (s *Service) CommitRound(ctx context.Context, operatorID, roundID string, outcome *entities.ResolvedOutcome, betTxID, winTxID string) (*entities.ResolvedOutcome, error) {
	round, err := s.getOperatorRound(ctx, operatorID, roundID)
	if err != nil {
		return nil, err
	}

	switch round.Status {
	case entities.StatusCommitted, entities.StatusCompleted:
		// Idempotent: the stored outcome is the outcome
		return storedOutcome(round)
	case entities.StatusRolledBack:
		return nil, types.WrapError(types.ErrRoundRolledBack, fmt.Sprintf("cannot commit round %s", roundID), ErrRoundRolledBack)
	}

	committed := *outcome
	committed.RoundID = roundID

	outcomeJSON, err := json.Marshal(&committed)
	if err != nil {
		return nil, types.WrapError(types.ErrInternalError, "error serializing outcome", err)
	}

	record := &entities.HistoryRecord{
		GameID:     round.GameID,
		RoundID:    roundID,
		PlayerID:   round.PlayerID,
		OperatorID: round.OperatorID,
		BetCents:   round.WagerCents,
		WinCents:   committed.FinalPrizeCents,
		Currency:   round.Currency,
		Details:    string(outcomeJSON),
	}

	err = s.repo.CommitRound(ctx, roundID, string(outcomeJSON), betTxID, winTxID, record)
	if err != nil {
		if errors.Is(err, roundRepo.ErrRoundConflict) {
			// A concurrent commit won; serialize behind it and return
			// whatever it stored
			return s.commitAfterConflict(ctx, operatorID, roundID)
		}
		return nil, types.WrapError(types.ErrDatabaseError, "error committing round", err)
	}

	log.Printf("[ROUND] Committed round %s (tier %s, prize %d)", roundID, committed.TierID, committed.FinalPrizeCents)

	return &committed, nil
}

// commitAfterConflict re-reads a round after a lost commit race
func (s *Service) commitAfterConflict(ctx context.Context, operatorID, roundID string) (*entities.ResolvedOutcome, error) {
	round, err := s.getOperatorRound(ctx, operatorID, roundID)
	if err != nil {
		return nil, err
	}

	switch round.Status {
	case entities.StatusCommitted, entities.StatusCompleted:
		return storedOutcome(round)
	case entities.StatusRolledBack:
		return nil, types.WrapError(types.ErrRoundRolledBack, fmt.Sprintf("cannot commit round %s", roundID), ErrRoundRolledBack)
	default:
		return nil, types.NewEngineError(types.ErrStateConflict, fmt.Sprintf("round %s commit conflicted in state %s", roundID, round.Status))
	}
}

// CompleteRound records that the player finished viewing the round. Only
// committed rounds complete; completion is idempotent.
func (s *Service) CompleteRound(ctx context.Context, operatorID, roundID string, durationMs int64) error {
	round, err := s.getOperatorRound(ctx, operatorID, roundID)
	if err != nil {
		return err
	}

	switch round.Status {
	case entities.StatusCompleted:
		return nil // Idempotent
	case entities.StatusInitiated:
		return types.WrapError(types.ErrStateConflict, fmt.Sprintf("round %s was never committed", roundID), ErrRoundNotCommitted)
	case entities.StatusRolledBack:
		return types.WrapError(types.ErrRoundRolledBack, fmt.Sprintf("cannot complete round %s", roundID), ErrRoundRolledBack)
	}

	if err := s.repo.CompleteRound(ctx, roundID, durationMs); err != nil {
		if errors.Is(err, roundRepo.ErrRoundConflict) {
			// Re-read: a concurrent complete is fine, anything else is not
			current, getErr := s.repo.GetRound(ctx, roundID)
			if getErr == nil && current.Status == entities.StatusCompleted {
				return nil
			}
			return types.WrapError(types.ErrStateConflict, fmt.Sprintf("round %s cannot complete", roundID), err)
		}
		return types.WrapError(types.ErrDatabaseError, "error completing round", err)
	}

	log.Printf("[ROUND] Completed round %s after %dms", roundID, durationMs)
	return nil
}

// RollbackRound marks the round ROLLED_BACK and returns any ledger
// transaction ids previously stored, so the caller can reverse external
// money movement. Rolling back twice is a no-op returning the same ids.
// COMPLETED is terminal: post-completion corrections go through a
// compensating reversal, not rollback.
func (s *Service) RollbackRound(ctx context.Context, operatorID, roundID string) (betTxID, winTxID string, err error) {
	round, err := s.getOperatorRound(ctx, operatorID, roundID)
	if err != nil {
		return "", "", err
	}

	switch round.Status {
	case entities.StatusRolledBack:
		return round.BetTxID, round.WinTxID, nil // Already done
	case entities.StatusCompleted:
		return "", "", types.WrapError(types.ErrStateConflict, fmt.Sprintf("round %s is completed", roundID), ErrRoundCompleted)
	}

	if err := s.repo.RollbackRound(ctx, roundID); err != nil {
		if errors.Is(err, roundRepo.ErrRoundConflict) {
			current, getErr := s.repo.GetRound(ctx, roundID)
			if getErr == nil && current.Status == entities.StatusRolledBack {
				return current.BetTxID, current.WinTxID, nil
			}
			return "", "", types.WrapError(types.ErrStateConflict, fmt.Sprintf("round %s cannot roll back", roundID), err)
		}
		return "", "", types.WrapError(types.ErrDatabaseError, "error rolling back round", err)
	}

	log.Printf("[ROUND] Rolled back round %s (betTx %q, winTx %q)", roundID, round.BetTxID, round.WinTxID)
	return round.BetTxID, round.WinTxID, nil
}

// PlayRound runs the full lifecycle for a live round: initiate, resolve
// (consuming a deck ticket in finite-pool mode) and commit. Resolution is
// computed fully in memory before any persistence, so partial outcomes
// never reach storage.
func (s *Service) PlayRound(ctx context.Context, operatorID, playerID, gameID, currency string, wagerCents int64, betTxID, winTxID string) (*entities.ResolvedOutcome, error) {
	cfg, err := s.configs.Get(gameID)
	if err != nil {
		return nil, types.WrapError(types.ErrConfigInvalid, fmt.Sprintf("game %s cannot be played", gameID), err)
	}

	round, err := s.InitRound(ctx, operatorID, playerID, gameID, currency, wagerCents)
	if err != nil {
		return nil, err
	}

	forcedTierID := ""
	if cfg.Math.Mode == entities.MathModePool {
		forcedTierID, err = s.drawTicket(ctx, gameID)
		if err != nil {
			return nil, err
		}
	}

	outcome, err := Resolve(cfg, round.Seed, forcedTierID)
	if err != nil {
		return nil, err
	}

	return s.CommitRound(ctx, operatorID, round.RoundID, outcome, betTxID, winTxID)
}

// drawTicket consumes the next deck ticket, retrying briefly when a
// concurrent draw wins the cursor. Exhaustion surfaces as its own
// condition: operators must see it and refill, not mistake it for a
// resolution failure.
func (s *Service) drawTicket(ctx context.Context, gameID string) (string, error) {
	var lastErr error
	for i := 0; i < maxDrawRetries; i++ {
		ticket, err := s.repo.DrawTicket(ctx, gameID)
		if err == nil {
			return ticket, nil
		}
		if errors.Is(err, deck.ErrExhausted) {
			return "", types.WrapError(types.ErrDeckExhausted, fmt.Sprintf("deck for game %s is exhausted", gameID), err)
		}
		if errors.Is(err, roundRepo.ErrDeckConflict) {
			lastErr = err
			time.Sleep(drawRetryDelay)
			continue
		}
		if errors.Is(err, roundRepo.ErrDeckNotFound) {
			return "", types.WrapError(types.ErrDeckNotFound, fmt.Sprintf("game %s has no published deck", gameID), err)
		}
		return "", types.WrapError(types.ErrDatabaseError, "error drawing ticket", err)
	}
	return "", types.WrapError(types.ErrDeckConflict, fmt.Sprintf("deck draw for game %s kept conflicting", gameID), lastErr)
}

// PublishDeck builds and stores the finite outcome pool for a game
// running in POOL math mode. The shuffle seed is fixed at publish time.
func (s *Service) PublishDeck(ctx context.Context, gameID string) (*entities.Deck, error) {
	cfg, err := s.configs.Get(gameID)
	if err != nil {
		return nil, types.WrapError(types.ErrConfigInvalid, fmt.Sprintf("unknown game %s", gameID), err)
	}
	if cfg.Math.Mode != entities.MathModePool {
		return nil, types.NewEngineError(types.ErrConfigInvalid, fmt.Sprintf("game %s does not use finite-pool math", gameID))
	}

	d, err := deck.Build(gameID, cfg.Paytable, uuid.New().String())
	if err != nil {
		return nil, types.WrapError(types.ErrConfigInvalid, "error building deck", err)
	}

	if err := s.repo.SaveDeck(ctx, d); err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "error saving deck", err)
	}

	log.Printf("[ROUND] Published deck for game %s (%d tickets)", gameID, len(d.Tickets))
	return d, nil
}

// GetHistory returns recent committed rounds for a game from the
// append-only history log.
func (s *Service) GetHistory(ctx context.Context, gameID string, limit int) ([]*entities.HistoryRecord, error) {
	records, err := s.repo.GetHistory(ctx, gameID, limit)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "error loading history", err)
	}
	return records, nil
}

// getOperatorRound loads a round and checks operator ownership
func (s *Service) getOperatorRound(ctx context.Context, operatorID, roundID string) (*entities.Round, error) {
	round, err := s.repo.GetRound(ctx, roundID)
	if err != nil {
		if errors.Is(err, roundRepo.ErrRoundNotFound) {
			return nil, types.WrapError(types.ErrRoundNotFound, fmt.Sprintf("round %s not found", roundID), err)
		}
		return nil, types.WrapError(types.ErrDatabaseError, "error loading round", err)
	}
	if round.OperatorID != operatorID {
		return nil, types.WrapError(types.ErrRoundNotFound, fmt.Sprintf("round %s not found for operator %s", roundID, operatorID), ErrOperatorMismatch)
	}
	return round, nil
}

// storedOutcome deserializes the outcome persisted at commit time
func storedOutcome(round *entities.Round) (*entities.ResolvedOutcome, error) {
	var outcome entities.ResolvedOutcome
	if err := json.Unmarshal([]byte(round.OutcomeJSON), &outcome); err != nil {
		return nil, types.WrapError(types.ErrInternalError, fmt.Sprintf("error deserializing outcome for round %s", round.RoundID), err)
	}
	return &outcome, nil
}
