package entities

// Features records which post-selection modifiers fired for a round.
type Features struct {
	Multiplier   int64 `json:"multiplier"`
	SecondChance bool  `json:"secondChance"`
	NearMiss     bool  `json:"isNearMiss"`
}

// ResolvedOutcome is the engine's output for one round: the selected tier,
// the final prize and the mechanic-specific reveal structure. It is a value
// object: produced once per resolution, never mutated afterwards, and
// persisted verbatim into Round.OutcomeJSON.
type ResolvedOutcome struct {
	RoundID         string     `json:"roundId,omitempty"`
	TierID          string     `json:"tierId"`
	BasePrizeCents  int64      `json:"basePrize"`
	FinalPrizeCents int64      `json:"finalPrize"`
	Multiplier      int64      `json:"multiplier"`
	IsWin           bool       `json:"isWin"`
	RevealMap       [][]string `json:"revealMap,omitempty"`
	WinningNumbers  []string   `json:"winningNumbers,omitempty"`
	TargetSymbol    string     `json:"targetSymbol,omitempty"`

	// Instant-game fields. Only the one matching the game's mechanic is set.
	PlinkoPath    []int    `json:"plinkoPath,omitempty"`
	PlinkoBucket  int      `json:"plinkoBucket,omitempty"`
	MinePositions []int    `json:"minePositions,omitempty"`
	CoinCall      string   `json:"coinCall,omitempty"`
	CoinFace      string   `json:"coinFace,omitempty"`

	PresentationSeed int      `json:"presentationSeed"`
	Features         Features `json:"features"`
}
