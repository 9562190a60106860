package round

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/scratchcraft/rgs/pkg/deck"
	"github.com/scratchcraft/rgs/pkg/entities"
)

// SQLite table schemas
const (
	createRoundsTableSQL = `
	CREATE TABLE IF NOT EXISTS rounds (
		round_id TEXT PRIMARY KEY,
		operator_id TEXT NOT NULL,
		player_id TEXT NOT NULL,
		game_id TEXT NOT NULL,
		currency TEXT NOT NULL,
		wager_cents INTEGER NOT NULL,
		status TEXT NOT NULL,
		seed TEXT NOT NULL,
		outcome_json TEXT,
		bet_tx_id TEXT,
		win_tx_id TEXT,
		initiated_at TIMESTAMP NOT NULL,
		committed_at TIMESTAMP,
		completed_at TIMESTAMP,
		rolled_back_at TIMESTAMP,
		duration_ms INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_rounds_game ON rounds(game_id);
	CREATE INDEX IF NOT EXISTS idx_rounds_player ON rounds(player_id)`

	createDecksTableSQL = `
	CREATE TABLE IF NOT EXISTS decks (
		game_id TEXT PRIMARY KEY,
		seed TEXT NOT NULL,
		tickets TEXT NOT NULL,  -- JSON array of tier ids
		current_index INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createHistoryTableSQL = `
	CREATE TABLE IF NOT EXISTS round_history (
		id TEXT PRIMARY KEY,
		game_id TEXT NOT NULL,
		round_id TEXT NOT NULL,
		player_id TEXT NOT NULL,
		operator_id TEXT NOT NULL,
		bet_cents INTEGER NOT NULL,
		win_cents INTEGER NOT NULL,
		currency TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		details TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_history_game ON round_history(game_id);
	CREATE INDEX IF NOT EXISTS idx_history_round ON round_history(round_id);
	CREATE INDEX IF NOT EXISTS idx_history_timestamp ON round_history(timestamp DESC)`
)

const timestampFormat = "2006-01-02 15:04:05"

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Create tables if they don't exist
	for _, schema := range []string{createRoundsTableSQL, createDecksTableSQL, createHistoryTableSQL} {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("error creating tables: %w", err)
		}
	}

	return &SQLiteRepository{db: db}, nil
}

// CreateRound persists a new round in state INITIATED
func (r *SQLiteRepository) CreateRound(ctx context.Context, round *entities.Round) error {
	query := `
		INSERT INTO rounds (
			round_id, operator_id, player_id, game_id, currency, wager_cents,
			status, seed, initiated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		round.RoundID,
		round.OperatorID,
		round.PlayerID,
		round.GameID,
		round.Currency,
		round.WagerCents,
		round.Status,
		round.Seed,
		round.InitiatedAt.Format(timestampFormat),
	)
	if err != nil {
		return fmt.Errorf("error creating round: %w", err)
	}

	return nil
}

// GetRound retrieves a round by id
func (r *SQLiteRepository) GetRound(ctx context.Context, roundID string) (*entities.Round, error) {
	query := `
		SELECT round_id, operator_id, player_id, game_id, currency, wager_cents,
			status, seed, outcome_json, bet_tx_id, win_tx_id,
			initiated_at, committed_at, completed_at, rolled_back_at, duration_ms
		FROM rounds
		WHERE round_id = ?
	`

	var (
		round       entities.Round
		outcomeJSON sql.NullString
		betTxID     sql.NullString
		winTxID     sql.NullString
		initiatedAt string
		committedAt sql.NullString
		completedAt sql.NullString
		rolledBack  sql.NullString
	)

	err := r.db.QueryRowContext(ctx, query, roundID).Scan(
		&round.RoundID,
		&round.OperatorID,
		&round.PlayerID,
		&round.GameID,
		&round.Currency,
		&round.WagerCents,
		&round.Status,
		&round.Seed,
		&outcomeJSON,
		&betTxID,
		&winTxID,
		&initiatedAt,
		&committedAt,
		&completedAt,
		&rolledBack,
		&round.DurationMs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("error getting round: %w", err)
	}

	round.OutcomeJSON = outcomeJSON.String
	round.BetTxID = betTxID.String
	round.WinTxID = winTxID.String

	if round.InitiatedAt, err = parseTimestamp(initiatedAt); err != nil {
		return nil, err
	}
	if round.CommittedAt, err = parseNullTimestamp(committedAt); err != nil {
		return nil, err
	}
	if round.CompletedAt, err = parseNullTimestamp(completedAt); err != nil {
		return nil, err
	}
	if round.RolledBackAt, err = parseNullTimestamp(rolledBack); err != nil {
		return nil, err
	}

	return &round, nil
}

// CommitRound persists the outcome and appends the history record inside
// one transaction. The status guard serializes concurrent commits: the
// loser updates zero rows and gets ErrRoundConflict instead of
// double-writing.
func (r *SQLiteRepository) CommitRound(ctx context.Context, roundID, outcomeJSON, betTxID, winTxID string, record *entities.HistoryRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting commit transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE rounds
		SET status = ?, outcome_json = ?, bet_tx_id = ?, win_tx_id = ?, committed_at = ?
		WHERE round_id = ? AND status = ?
	`

	result, err := tx.ExecContext(ctx, query,
		entities.StatusCommitted,
		outcomeJSON,
		betTxID,
		winTxID,
		time.Now().Format(timestampFormat),
		roundID,
		entities.StatusInitiated,
	)
	if err != nil {
		return fmt.Errorf("error committing round: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Distinguish a missing round from a state conflict
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM rounds WHERE round_id = ?`, roundID).Scan(&count); err != nil {
			return fmt.Errorf("error checking round existence: %w", err)
		}
		if count == 0 {
			return ErrRoundNotFound
		}
		return ErrRoundConflict
	}

	// Append to the history log in the same transaction: outcome
	// persistence and history append succeed or fail together
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	historyQuery := `
		INSERT INTO round_history (
			id, game_id, round_id, player_id, operator_id,
			bet_cents, win_cents, currency, timestamp, details
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, historyQuery,
		record.ID,
		record.GameID,
		record.RoundID,
		record.PlayerID,
		record.OperatorID,
		record.BetCents,
		record.WinCents,
		record.Currency,
		record.Timestamp.Format(timestampFormat),
		record.Details,
	)
	if err != nil {
		return fmt.Errorf("error appending history record: %w", err)
	}

	return tx.Commit()
}

// CompleteRound transitions COMMITTED to COMPLETED
func (r *SQLiteRepository) CompleteRound(ctx context.Context, roundID string, durationMs int64) error {
	query := `
		UPDATE rounds
		SET status = ?, completed_at = ?, duration_ms = ?
		WHERE round_id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		entities.StatusCompleted,
		time.Now().Format(timestampFormat),
		durationMs,
		roundID,
		entities.StatusCommitted,
	)
	if err != nil {
		return fmt.Errorf("error completing round: %w", err)
	}

	return r.checkGuardedUpdate(ctx, result, roundID)
}

// RollbackRound transitions INITIATED or COMMITTED to ROLLED_BACK
func (r *SQLiteRepository) RollbackRound(ctx context.Context, roundID string) error {
	query := `
		UPDATE rounds
		SET status = ?, rolled_back_at = ?
		WHERE round_id = ? AND status IN (?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entities.StatusRolledBack,
		time.Now().Format(timestampFormat),
		roundID,
		entities.StatusInitiated,
		entities.StatusCommitted,
	)
	if err != nil {
		return fmt.Errorf("error rolling back round: %w", err)
	}

	return r.checkGuardedUpdate(ctx, result, roundID)
}

// checkGuardedUpdate maps a zero-row guarded update to the right sentinel
func (r *SQLiteRepository) checkGuardedUpdate(ctx context.Context, result sql.Result, roundID string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rounds WHERE round_id = ?`, roundID).Scan(&count); err != nil {
		return fmt.Errorf("error checking round existence: %w", err)
	}
	if count == 0 {
		return ErrRoundNotFound
	}
	return ErrRoundConflict
}

// SaveDeck stores a published deck for a game
func (r *SQLiteRepository) SaveDeck(ctx context.Context, d *entities.Deck) error {
	ticketsJSON, err := json.Marshal(d.Tickets)
	if err != nil {
		return fmt.Errorf("error marshaling tickets: %w", err)
	}

	// Use UPSERT syntax for SQLite
	query := `
		INSERT INTO decks (game_id, seed, tickets, current_index, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(game_id)
		DO UPDATE SET seed = ?, tickets = ?, current_index = ?
	`

	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, query,
		d.GameID, d.Seed, ticketsJSON, d.CurrentIndex, createdAt.Format(timestampFormat),
		d.Seed, ticketsJSON, d.CurrentIndex,
	)
	if err != nil {
		return fmt.Errorf("error saving deck: %w", err)
	}

	return nil
}

// GetDeck retrieves the deck for a game
func (r *SQLiteRepository) GetDeck(ctx context.Context, gameID string) (*entities.Deck, error) {
	query := `SELECT game_id, seed, tickets, current_index, created_at FROM decks WHERE game_id = ?`

	var (
		d           entities.Deck
		ticketsJSON []byte
		createdAt   string
	)

	err := r.db.QueryRowContext(ctx, query, gameID).Scan(
		&d.GameID,
		&d.Seed,
		&ticketsJSON,
		&d.CurrentIndex,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeckNotFound
		}
		return nil, fmt.Errorf("error getting deck: %w", err)
	}

	if err := json.Unmarshal(ticketsJSON, &d.Tickets); err != nil {
		return nil, fmt.Errorf("error unmarshaling tickets: %w", err)
	}
	if d.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}

	return &d, nil
}

// DrawTicket atomically consumes the next ticket of the game's deck. The
// cursor increment is guarded on the expected index inside a transaction,
// so two simultaneous rounds can never receive the same ticket.
func (r *SQLiteRepository) DrawTicket(ctx context.Context, gameID string) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("error starting draw transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		ticketsJSON  []byte
		currentIndex int
	)
	err = tx.QueryRowContext(ctx, `SELECT tickets, current_index FROM decks WHERE game_id = ?`, gameID).
		Scan(&ticketsJSON, &currentIndex)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrDeckNotFound
		}
		return "", fmt.Errorf("error reading deck: %w", err)
	}

	var tickets []string
	if err := json.Unmarshal(ticketsJSON, &tickets); err != nil {
		return "", fmt.Errorf("error unmarshaling tickets: %w", err)
	}

	if currentIndex >= len(tickets) {
		return "", deck.ErrExhausted
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE decks SET current_index = ? WHERE game_id = ? AND current_index = ?`,
		currentIndex+1, gameID, currentIndex,
	)
	if err != nil {
		return "", fmt.Errorf("error advancing deck cursor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// A concurrent draw won the cursor
		return "", ErrDeckConflict
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("error committing draw: %w", err)
	}

	return tickets[currentIndex], nil
}

// GetHistory retrieves recent history records for a game
func (r *SQLiteRepository) GetHistory(ctx context.Context, gameID string, limit int) ([]*entities.HistoryRecord, error) {
	query := `
		SELECT id, game_id, round_id, player_id, operator_id,
			bet_cents, win_cents, currency, timestamp, details
		FROM round_history
		WHERE game_id = ?
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying history: %w", err)
	}
	defer rows.Close()

	var records []*entities.HistoryRecord

	for rows.Next() {
		var (
			record    entities.HistoryRecord
			timestamp string
			details   sql.NullString
		)

		err := rows.Scan(
			&record.ID,
			&record.GameID,
			&record.RoundID,
			&record.PlayerID,
			&record.OperatorID,
			&record.BetCents,
			&record.WinCents,
			&record.Currency,
			&timestamp,
			&details,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning history row: %w", err)
		}

		record.Details = details.String
		if record.Timestamp, err = parseTimestamp(timestamp); err != nil {
			return nil, err
		}

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return records, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// parseTimestamp parses a stored timestamp.
// Try parsing with different formats since SQLite might store timestamps
// in different formats.
func parseTimestamp(value string) (time.Time, error) {
	formats := []string{
		timestampFormat,             // SQLite default format
		"2006-01-02T15:04:05Z",      // ISO 8601 format
		"2006-01-02T15:04:05-07:00", // ISO 8601 with timezone
		time.RFC3339,                // Another common format
	}

	var parseErr error
	for _, format := range formats {
		t, err := time.Parse(format, value)
		if err == nil {
			return t, nil
		}
		parseErr = err
	}
	return time.Time{}, fmt.Errorf("error parsing timestamp '%s': %w", value, parseErr)
}

// parseNullTimestamp parses a nullable stored timestamp
func parseNullTimestamp(value sql.NullString) (time.Time, error) {
	if !value.Valid || value.String == "" {
		return time.Time{}, nil
	}
	return parseTimestamp(value.String)
}
