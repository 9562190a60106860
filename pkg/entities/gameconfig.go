package entities

import (
	"errors"
	"fmt"
)

// MechanicKind identifies a game mechanic. The set is closed: every kind
// carries its own parameter struct on MechanicConfig and the resolver
// switches over it exhaustively.
type MechanicKind string

const (
	MechanicMatchN      MechanicKind = "MATCH_N"
	MechanicLuckyNumber MechanicKind = "LUCKY_NUMBER"
	MechanicFindSymbol  MechanicKind = "FIND_SYMBOL"
	MechanicPlinko      MechanicKind = "PLINKO"
	MechanicMines       MechanicKind = "MINES"
	MechanicCoinFlip    MechanicKind = "COIN_FLIP"
)

// MathMode selects between live weighted RNG and a finite pre-shuffled pool.
type MathMode string

const (
	MathModeProbabilistic MathMode = "PROBABILISTIC"
	MathModePool          MathMode = "POOL"
)

var ErrUnknownMechanic = errors.New("unknown mechanic kind")

// GridParams describes the reveal grid for scratch-style mechanics.
type GridParams struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Cells returns the total number of grid cells.
func (g GridParams) Cells() int {
	return g.Rows * g.Cols
}

// MatchParams configures a match-N mechanic.
type MatchParams struct {
	MatchCount int  `yaml:"matchCount"`
	MultiWin   bool `yaml:"multiWin"`
}

// LuckyParams configures a lucky-number mechanic.
type LuckyParams struct {
	WinningNumberCount int `yaml:"winningNumberCount"`
}

// FindParams configures a find-symbol mechanic.
type FindParams struct {
	RequiredHits int `yaml:"requiredHits"`
}

// PlinkoParams configures an instant plinko drop. Multipliers is indexed by
// landing bucket and must have Rows+1 entries.
type PlinkoParams struct {
	Rows        int       `yaml:"rows"`
	Multipliers []float64 `yaml:"multipliers"`
}

// MinesParams configures an instant mines reveal.
type MinesParams struct {
	Cells     int `yaml:"cells"`
	MineCount int `yaml:"mineCount"`
}

// MechanicConfig is a tagged variant over mechanic kinds. Exactly the
// parameter struct matching Kind must be set.
type MechanicConfig struct {
	Kind   MechanicKind  `yaml:"kind"`
	Grid   GridParams    `yaml:"grid"`
	Match  *MatchParams  `yaml:"match,omitempty"`
	Lucky  *LuckyParams  `yaml:"lucky,omitempty"`
	Find   *FindParams   `yaml:"find,omitempty"`
	Plinko *PlinkoParams `yaml:"plinko,omitempty"`
	Mines  *MinesParams  `yaml:"mines,omitempty"`
}

// MultiplierFeature configures the post-win multiplier trigger.
type MultiplierFeature struct {
	Enabled     bool    `yaml:"enabled"`
	Probability float64 `yaml:"probability"`
	Values      []int64 `yaml:"values"`
}

// SecondChanceFeature configures the loss-upgrade feature.
type SecondChanceFeature struct {
	Enabled     bool    `yaml:"enabled"`
	Probability float64 `yaml:"probability"`
}

// NearMissFeature configures deliberate near-miss shaping of losing grids.
type NearMissFeature struct {
	Enabled     bool    `yaml:"enabled"`
	Probability float64 `yaml:"probability"`
}

// FeatureConfig groups all post-selection modifiers.
type FeatureConfig struct {
	Multipliers  MultiplierFeature   `yaml:"multipliers"`
	SecondChance SecondChanceFeature `yaml:"secondChance"`
	NearMiss     NearMissFeature     `yaml:"nearMiss"`
}

// MathConfig selects the math mode for a game.
type MathConfig struct {
	Mode MathMode `yaml:"mode"`
}

// GameConfig is the full published definition of a game: paytable, mechanic
// parameters, feature flags and math mode. It is immutable at resolution
// time; the engine only ever reads it.
type GameConfig struct {
	GameID           string         `yaml:"gameId"`
	Name             string         `yaml:"name"`
	TicketPriceCents int64          `yaml:"ticketPrice"`
	Paytable         Paytable       `yaml:"prizes"`
	LosingSymbols    []string       `yaml:"losingSymbols"`
	Mechanic         MechanicConfig `yaml:"mechanic"`
	Features         FeatureConfig  `yaml:"features"`
	Math             MathConfig     `yaml:"math"`
}

// Validate fails fast on configurations the engine cannot resolve. A game
// that does not validate never reaches round initiation.
func (c *GameConfig) Validate() error {
	if c.GameID == "" {
		return errors.New("gameId is required")
	}
	if err := c.Paytable.Validate(); err != nil {
		return fmt.Errorf("invalid paytable for game %s: %w", c.GameID, err)
	}
	if c.Math.Mode == "" {
		c.Math.Mode = MathModeProbabilistic
	}
	if c.Math.Mode != MathModeProbabilistic && c.Math.Mode != MathModePool {
		return fmt.Errorf("invalid math mode %q", c.Math.Mode)
	}

	switch c.Mechanic.Kind {
	case MechanicMatchN:
		if c.Mechanic.Match == nil {
			return errors.New("match mechanic requires match params")
		}
		if c.Mechanic.Match.MatchCount < 2 {
			return errors.New("matchCount must be at least 2")
		}
		return c.validateGrid(c.Mechanic.Match.MatchCount)
	case MechanicLuckyNumber:
		if c.Mechanic.Lucky == nil {
			return errors.New("lucky mechanic requires lucky params")
		}
		if c.Mechanic.Lucky.WinningNumberCount < 1 {
			return errors.New("winningNumberCount must be at least 1")
		}
		if err := c.validateGrid(1); err != nil {
			return err
		}
		// At least one symbol must stay outside the winning-number set so
		// losing cells have something to fill from.
		pool := len(c.Paytable.WinningSymbols()) + len(c.LosingSymbols)
		if c.Mechanic.Lucky.WinningNumberCount >= pool {
			return fmt.Errorf("winningNumberCount %d must be below the symbol pool size %d", c.Mechanic.Lucky.WinningNumberCount, pool)
		}
		return nil
	case MechanicFindSymbol:
		if c.Mechanic.Find == nil {
			return errors.New("find mechanic requires find params")
		}
		if c.Mechanic.Find.RequiredHits < 1 {
			return errors.New("requiredHits must be at least 1")
		}
		return c.validateGrid(c.Mechanic.Find.RequiredHits)
	case MechanicPlinko:
		p := c.Mechanic.Plinko
		if p == nil {
			return errors.New("plinko mechanic requires plinko params")
		}
		if p.Rows < 1 {
			return errors.New("plinko rows must be at least 1")
		}
		if len(p.Multipliers) != p.Rows+1 {
			return fmt.Errorf("plinko needs %d bucket multipliers, got %d", p.Rows+1, len(p.Multipliers))
		}
		return nil
	case MechanicMines:
		m := c.Mechanic.Mines
		if m == nil {
			return errors.New("mines mechanic requires mines params")
		}
		if m.Cells < 2 || m.MineCount < 1 || m.MineCount >= m.Cells {
			return errors.New("mines requires 0 < mineCount < cells")
		}
		return nil
	case MechanicCoinFlip:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMechanic, c.Mechanic.Kind)
	}
}

// validateGrid checks the reveal grid is large enough to seed minSeeded
// symbols and that a losing fill pool exists.
func (c *GameConfig) validateGrid(minSeeded int) error {
	if c.Mechanic.Grid.Rows < 1 || c.Mechanic.Grid.Cols < 1 {
		return errors.New("grid rows and cols must be positive")
	}
	if c.Mechanic.Grid.Cells() < minSeeded {
		return fmt.Errorf("grid of %d cells cannot seed %d symbols", c.Mechanic.Grid.Cells(), minSeeded)
	}
	if len(c.LosingSymbols) < 2 {
		return errors.New("grid mechanics require at least two losing symbols")
	}
	return nil
}
