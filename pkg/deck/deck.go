// Package deck builds and consumes finite outcome pools for games running
// in finite-pool math mode. A deck guarantees exact long-run RTP: its
// empirical tier frequencies equal the configured weights by construction.
package deck

import (
	"errors"
	"time"

	"github.com/scratchcraft/rgs/pkg/entities"
	"github.com/scratchcraft/rgs/pkg/rng"
)

// ErrExhausted signals that every ticket in the pool has been consumed.
// Operators must be able to tell this apart from a generic resolution
// failure, since the remedy is publishing a fresh deck.
var ErrExhausted = errors.New("deck exhausted")

// Build expands each tier's weight into that many repeated tier ids and
// shuffles the pool once with a Fisher-Yates pass seeded from the publish
// seed. The shuffle happens only at publish time, never per round.
func Build(gameID string, pt entities.Paytable, publishSeed string) (*entities.Deck, error) {
	if err := pt.Validate(); err != nil {
		return nil, err
	}

	tickets := make([]string, 0, pt.TotalWeight())
	for _, tier := range pt {
		for i := int64(0); i < tier.Weight; i++ {
			tickets = append(tickets, tier.ID)
		}
	}

	shuffle(tickets, rng.NewGeneratorFromString(publishSeed))

	return &entities.Deck{
		GameID:    gameID,
		Seed:      publishSeed,
		Tickets:   tickets,
		CreatedAt: time.Now(),
	}, nil
}

// shuffle is an in-place Fisher-Yates pass over the ticket pool.
func shuffle(tickets []string, src rng.Source) {
	for i := len(tickets) - 1; i > 0; i-- {
		j := src.Range(0, i)
		tickets[i], tickets[j] = tickets[j], tickets[i]
	}
}

// Draw consumes the next ticket and advances the cursor. The in-memory
// form is used at preview time; live play goes through the store's atomic
// draw so concurrent rounds never consume the same index.
func Draw(d *entities.Deck) (string, error) {
	if d.Exhausted() {
		return "", ErrExhausted
	}
	ticket := d.Tickets[d.CurrentIndex]
	d.CurrentIndex++
	return ticket, nil
}
