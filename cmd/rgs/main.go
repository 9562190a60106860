package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/scratchcraft/rgs/internal/config"
	"github.com/scratchcraft/rgs/internal/logging"
	"github.com/scratchcraft/rgs/pkg/entities"
	"github.com/scratchcraft/rgs/pkg/gameconfig"
	"github.com/scratchcraft/rgs/pkg/paytable"
	roundRepo "github.com/scratchcraft/rgs/pkg/repositories/round"
	roundService "github.com/scratchcraft/rgs/pkg/services/round"
)

func main() {
	var (
		playGame    = flag.String("play", "", "play one round of the given game id")
		publishGame = flag.String("publish", "", "publish a fresh deck for the given pool-mode game id")
		historyGame = flag.String("history", "", "print recent history for the given game id")
		statsGame   = flag.String("stats", "", "print paytable statistics for the given game id")
		operatorID  = flag.String("operator", "local", "operator id for rounds")
		playerID    = flag.String("player", "local-player", "player id for rounds")
		wagerCents  = flag.Int64("wager", 100, "wager in cents")
		limit       = flag.Int("limit", 10, "history record limit")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level := logging.INFO
	if cfg.IsDevelopment() {
		level = logging.DEBUG
	}
	logger := logging.NewLogger(level)
	logger.Info("Starting round engine in %s mode", cfg.Environment)

	loader := gameconfig.NewLoader(cfg.GamesDir)
	if err := loader.LoadAll(); err != nil {
		log.Fatalf("Failed to load game configs from %s: %v", cfg.GamesDir, err)
	}
	logger.Info("Loaded %d game configs from %s", len(loader.GameIDs()), cfg.GamesDir)

	var repo roundRepo.Repository
	sqliteRepo, err := roundRepo.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository, falling back to memory: %v", err)
		repo = roundRepo.NewMemoryRepository()
	} else {
		repo = sqliteRepo
		logger.Info("Initialized SQLite repository at %s", cfg.DBPath)
	}

	if cfg.ESEnabled {
		esRepo, err := roundRepo.NewElasticsearchRepository(repo, &roundRepo.ElasticsearchConfig{
			URL:         cfg.ESURL,
			Username:    cfg.ESUsername,
			Password:    cfg.ESPassword,
			IndexPrefix: cfg.ESIndexPrefix,
		})
		if err != nil {
			logger.Error("Failed to initialize Elasticsearch indexing, continuing without it: %v", err)
		} else {
			repo = esRepo
			logger.Info("History indexing enabled at %s", cfg.ESURL)
		}
	}
	defer repo.Close()

	svc := roundService.NewService(repo, loader)
	ctx := context.Background()

	switch {
	case *publishGame != "":
		d, err := svc.PublishDeck(ctx, *publishGame)
		if err != nil {
			log.Fatalf("Failed to publish deck: %v", err)
		}
		fmt.Printf("Published deck for %s: %d tickets, seed %s\n", d.GameID, len(d.Tickets), d.Seed)

	case *playGame != "":
		outcome, err := svc.PlayRound(ctx, *operatorID, *playerID, *playGame, "USD", *wagerCents, "", "")
		if err != nil {
			log.Fatalf("Failed to play round: %v", err)
		}
		printJSON(outcome)

	case *historyGame != "":
		records, err := svc.GetHistory(ctx, *historyGame, *limit)
		if err != nil {
			log.Fatalf("Failed to load history: %v", err)
		}
		for _, r := range records {
			fmt.Printf("%s  round=%s player=%s bet=%d win=%d %s\n",
				r.Timestamp.Format("2006-01-02 15:04:05"), r.RoundID, r.PlayerID, r.BetCents, r.WinCents, r.Currency)
		}

	case *statsGame != "":
		game, err := loader.Get(*statsGame)
		if err != nil {
			log.Fatalf("Unknown game: %v", err)
		}
		stats, err := paytable.ComputeStats(game.Paytable, game.TicketPriceCents)
		if err != nil {
			log.Fatalf("Failed to compute stats: %v", err)
		}
		fmt.Printf("%s: totalWeight=%d rtp=%s hitRate=%s\n",
			game.GameID, stats.TotalWeight, stats.RTP, stats.HitRate)

	default:
		listGames(loader)
	}
}

// listGames prints the loaded game catalog
func listGames(loader *gameconfig.Loader) {
	for _, id := range loader.GameIDs() {
		cfg, err := loader.Get(id)
		if err != nil {
			continue
		}
		fmt.Printf("%-20s %-14s %-14s price=%d tiers=%d\n",
			cfg.GameID, cfg.Mechanic.Kind, cfg.Math.Mode, cfg.TicketPriceCents, len(cfg.Paytable))
	}
}

func printJSON(outcome *entities.ResolvedOutcome) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcome); err != nil {
		log.Fatalf("Failed to print outcome: %v", err)
	}
}
