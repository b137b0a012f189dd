package yahoo

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"goldintel/internal/quote"
)

type Config struct {
	Name     string // display name, default: Yahoo
	Range    string // chart range, default: 5d
	Interval string // bar interval, default: 1d
}

// Fetcher resolves symbols through the chart API. The latest non-null
// close is the price; the close before it is the previous close.
type Fetcher struct {
	cfg    Config
	client *ChartClient
}

func New(cfg Config, client *ChartClient) *Fetcher {
	if cfg.Name == "" {
		cfg.Name = "Yahoo"
	}
	if cfg.Range == "" {
		cfg.Range = "5d"
	}
	if cfg.Interval == "" {
		cfg.Interval = "1d"
	}
	return &Fetcher{cfg: cfg, client: client}
}

func (f *Fetcher) Name() string { return f.cfg.Name }

func (f *Fetcher) Fetch(ctx context.Context, symbols []string) ([]quote.Quote, error) {
	out := make([]quote.Quote, len(symbols))
	g, ctx := errgroup.WithContext(ctx)
	for i, sym := range symbols {
		g.Go(func() error {
			ch, err := f.client.GetChart(ctx, sym, f.cfg.Range, f.cfg.Interval)
			if err != nil {
				return fmt.Errorf("%s: %w", sym, err)
			}
			q, err := f.toQuote(sym, ch)
			if err != nil {
				return err
			}
			out[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *Fetcher) toQuote(sym string, ch Chart) (quote.Quote, error) {
	price := ch.MarketPrice
	prev := price
	if n := len(ch.Closes); n > 0 {
		price = ch.Closes[n-1]
		prev = price
		if n >= 2 {
			prev = ch.Closes[n-2]
		}
	}
	if !price.IsPositive() {
		return quote.Quote{}, fmt.Errorf("%s: no usable close in chart", sym)
	}
	ts := ch.MarketTime
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return quote.Quote{
		Symbol:     sym,
		Price:      price,
		PrevClose:  prev,
		Currency:   ch.Currency,
		Source:     f.cfg.Name + ":chart",
		ReceivedAt: ts,
	}, nil
}
