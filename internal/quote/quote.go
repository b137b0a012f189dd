package quote

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the normalized shape returned by all backends.
// Prices are decimals so derived currency math stays exact.
type Quote struct {
	Symbol     string          `json:"symbol"`
	Price      decimal.Decimal `json:"price"`
	PrevClose  decimal.Decimal `json:"prev_close"`
	Currency   string          `json:"currency"`
	Source     string          `json:"source"`
	ReceivedAt time.Time       `json:"received_at"`
}

// ChangePercent returns the move from the previous close in percent.
// Zero when no previous close is known.
func (q Quote) ChangePercent() decimal.Decimal {
	if q.PrevClose.IsZero() {
		return decimal.Zero
	}
	return q.Price.Sub(q.PrevClose).Div(q.PrevClose).Mul(decimal.NewFromInt(100))
}

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, symbols []string) ([]Quote, error)
}
