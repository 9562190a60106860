package entities

import "errors"

var (
	ErrEmptyPaytable  = errors.New("paytable has no tiers")
	ErrZeroWeight     = errors.New("paytable total weight must be positive")
	ErrNegativeWeight = errors.New("tier weight cannot be negative")
)

// PrizeTier is one row of a game's paytable: a possible outcome value and
// its relative selection weight.
type PrizeTier struct {
	ID         string `yaml:"id" json:"id"`
	ValueCents int64  `yaml:"value" json:"value"`
	Weight     int64  `yaml:"weight" json:"weight"`
}

// IsWin reports whether this tier pays anything.
func (t PrizeTier) IsWin() bool {
	return t.ValueCents > 0
}

// Paytable is the full set of tiers a game can resolve to.
type Paytable []PrizeTier

// TotalWeight returns the sum of all tier weights.
func (p Paytable) TotalWeight() int64 {
	var total int64
	for _, t := range p {
		total += t.Weight
	}
	return total
}

// Validate checks that the paytable can be resolved against.
func (p Paytable) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPaytable
	}
	for _, t := range p {
		if t.Weight < 0 {
			return ErrNegativeWeight
		}
	}
	if p.TotalWeight() <= 0 {
		return ErrZeroWeight
	}
	return nil
}

// FindTier looks up a tier by id.
func (p Paytable) FindTier(id string) (PrizeTier, bool) {
	for _, t := range p {
		if t.ID == id {
			return t, true
		}
	}
	return PrizeTier{}, false
}

// WinningTiers returns all tiers with a positive payout.
func (p Paytable) WinningTiers() []PrizeTier {
	var tiers []PrizeTier
	for _, t := range p {
		if t.IsWin() {
			tiers = append(tiers, t)
		}
	}
	return tiers
}

// WinningSymbols returns the ids of all winning tiers. Grid mechanics use
// tier ids as their win symbols.
func (p Paytable) WinningSymbols() []string {
	var symbols []string
	for _, t := range p {
		if t.IsWin() {
			symbols = append(symbols, t.ID)
		}
	}
	return symbols
}
