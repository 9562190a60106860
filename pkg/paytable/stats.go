package paytable

import (
	"github.com/shopspring/decimal"

	"github.com/scratchcraft/rgs/pkg/entities"
)

// Stats summarizes the math of a paytable for a fixed ticket price. The
// editor's math panel and publish-time checks read these numbers.
type Stats struct {
	TotalWeight int64
	// RTP is the expected fraction of wagered amount paid back.
	RTP decimal.Decimal
	// HitRate is the probability that a round wins anything.
	HitRate decimal.Decimal
}

// ComputeStats calculates RTP and hit rate for a paytable at the given
// ticket price. Arithmetic is exact; nothing here touches float64.
func ComputeStats(pt entities.Paytable, ticketPriceCents int64) (Stats, error) {
	if err := pt.Validate(); err != nil {
		return Stats{}, err
	}

	total := pt.TotalWeight()
	totalDec := decimal.NewFromInt(total)

	expectedReturn := decimal.Zero
	winWeight := decimal.Zero
	for _, tier := range pt {
		w := decimal.NewFromInt(tier.Weight)
		expectedReturn = expectedReturn.Add(w.Mul(decimal.NewFromInt(tier.ValueCents)))
		if tier.IsWin() {
			winWeight = winWeight.Add(w)
		}
	}

	stats := Stats{
		TotalWeight: total,
		HitRate:     winWeight.DivRound(totalDec, 8),
	}
	if ticketPriceCents > 0 {
		wagered := totalDec.Mul(decimal.NewFromInt(ticketPriceCents))
		stats.RTP = expectedReturn.DivRound(wagered, 8)
	}
	return stats, nil
}
