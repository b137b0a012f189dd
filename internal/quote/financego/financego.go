package financego

import (
	"context"
	"fmt"
	"time"

	fquote "github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"

	"goldintel/internal/quote"
)

type Config struct {
	Name string // display name, default: FinanceGo
}

// Fetcher is a backend over piquette/finance-go's quote listing.
// The library drives its own HTTP client, so the context only gates
// whether a fetch starts at all.
type Fetcher struct {
	cfg Config
}

func New(cfg Config) *Fetcher {
	if cfg.Name == "" {
		cfg.Name = "FinanceGo"
	}
	return &Fetcher{cfg: cfg}
}

func (f *Fetcher) Name() string { return f.cfg.Name }

func (f *Fetcher) Fetch(ctx context.Context, symbols []string) ([]quote.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bySym := make(map[string]quote.Quote, len(symbols))
	iter := fquote.List(symbols)
	for iter.Next() {
		q := iter.Quote()
		if q == nil {
			continue
		}
		ts := time.Now().UTC()
		if q.RegularMarketTime > 0 {
			ts = time.Unix(int64(q.RegularMarketTime), 0).UTC()
		}
		bySym[q.Symbol] = quote.Quote{
			Symbol:     q.Symbol,
			Price:      decimal.NewFromFloat(q.RegularMarketPrice),
			PrevClose:  decimal.NewFromFloat(q.RegularMarketPreviousClose),
			Currency:   q.CurrencyID,
			Source:     f.cfg.Name + ":quote",
			ReceivedAt: ts,
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	// Preserve request order; symbols the service did not echo back are
	// simply absent, the caller decides whether that is fatal.
	out := make([]quote.Quote, 0, len(bySym))
	for _, sym := range symbols {
		if q, ok := bySym[sym]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}
