package entities

import "time"

// Deck is a finite, pre-shuffled pool of outcome tickets consumed
// sequentially instead of live RNG (finite-pool math mode). Each ticket is
// a tier id. CurrentIndex only ever increases; a ticket is consumed at most
// once. Decks are never refilled automatically; exhaustion requires
// operator action.
type Deck struct {
	GameID       string
	Seed         string
	Tickets      []string
	CurrentIndex int
	CreatedAt    time.Time
}

// Remaining returns the number of unconsumed tickets.
func (d *Deck) Remaining() int {
	if d.CurrentIndex >= len(d.Tickets) {
		return 0
	}
	return len(d.Tickets) - d.CurrentIndex
}

// Exhausted reports whether every ticket has been consumed.
func (d *Deck) Exhausted() bool {
	return d.CurrentIndex >= len(d.Tickets)
}
