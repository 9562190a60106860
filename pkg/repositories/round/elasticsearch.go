package round

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/scratchcraft/rgs/pkg/entities"
)

// ElasticsearchConfig holds configuration options for the history indexer
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

// DefaultElasticsearchConfig returns a default configuration
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "scratchcraft",
	}
}

// ElasticsearchRepository decorates a base Repository and mirrors every
// committed round's history record into an append-only audit index for
// regulatory reporting. All storage semantics stay with the base
// repository; indexing failures are logged, never allowed to fail a
// commit that the database already accepted.
type ElasticsearchRepository struct {
	Repository

	client      *elasticsearch.Client
	indexPrefix string
}

// esHistoryDoc is the indexed shape of a history record
type esHistoryDoc struct {
	GameID     string    `json:"game_id"`
	RoundID    string    `json:"round_id"`
	PlayerID   string    `json:"player_id"`
	OperatorID string    `json:"operator_id"`
	BetCents   int64     `json:"bet"`
	WinCents   int64     `json:"win"`
	Currency   string    `json:"currency"`
	Timestamp  time.Time `json:"timestamp"`
	Details    string    `json:"details"`
}

// NewElasticsearchRepository creates a history-indexing decorator around
// the given base repository
func NewElasticsearchRepository(baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	if config.IndexPrefix == "" {
		config.IndexPrefix = "scratchcraft"
	}

	repo := &ElasticsearchRepository{
		Repository:  baseRepo,
		client:      client,
		indexPrefix: config.IndexPrefix,
	}

	if err := repo.initIndices(context.Background()); err != nil {
		return nil, fmt.Errorf("error initializing indices: %w", err)
	}

	return repo, nil
}

// initIndices creates the history index if it doesn't exist
func (r *ElasticsearchRepository) initIndices(ctx context.Context) error {
	index := r.historyIndex()

	res, err := r.client.Indices.Exists([]string{index})
	if err != nil {
		return fmt.Errorf("error checking if history index exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != 404 {
		return nil
	}

	mapping := `{
		"mappings": {
			"properties": {
				"game_id": { "type": "keyword" },
				"round_id": { "type": "keyword" },
				"player_id": { "type": "keyword" },
				"operator_id": { "type": "keyword" },
				"bet": { "type": "long" },
				"win": { "type": "long" },
				"currency": { "type": "keyword" },
				"timestamp": { "type": "date" },
				"details": { "type": "text", "index": false }
			}
		}
	}`

	createRes, err := r.client.Indices.Create(index, r.client.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))))
	if err != nil {
		return fmt.Errorf("error creating history index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("error creating history index: %s", createRes.String())
	}

	return nil
}

func (r *ElasticsearchRepository) historyIndex() string {
	return r.indexPrefix + "_rounds"
}

// CommitRound delegates to the base repository and, on success, mirrors
// the history record into the audit index
func (r *ElasticsearchRepository) CommitRound(ctx context.Context, roundID, outcomeJSON, betTxID, winTxID string, record *entities.HistoryRecord) error {
	if err := r.Repository.CommitRound(ctx, roundID, outcomeJSON, betTxID, winTxID, record); err != nil {
		return err
	}

	if err := r.indexHistoryRecord(ctx, record); err != nil {
		// The database commit already happened; the index can be
		// reconciled later from the history table
		log.Printf("[ES_REPO] Error indexing history record for round %s: %v", roundID, err)
	}

	return nil
}

// indexHistoryRecord writes one history record into the audit index
func (r *ElasticsearchRepository) indexHistoryRecord(ctx context.Context, record *entities.HistoryRecord) error {
	doc := esHistoryDoc{
		GameID:     record.GameID,
		RoundID:    record.RoundID,
		PlayerID:   record.PlayerID,
		OperatorID: record.OperatorID,
		BetCents:   record.BetCents,
		WinCents:   record.WinCents,
		Currency:   record.Currency,
		Timestamp:  record.Timestamp,
		Details:    record.Details,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling history document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      r.historyIndex(),
		DocumentID: record.ID,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error indexing history document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing history document: %s", res.String())
	}

	return nil
}
