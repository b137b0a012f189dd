package market

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"goldintel/internal/quote"
)

// gramsPerTroyOunce converts USD/oz futures pricing to per-gram pricing.
var gramsPerTroyOunce = decimal.RequireFromString("31.1035")

var (
	one      = decimal.NewFromInt(1)
	minusOne = decimal.NewFromInt(-1)
)

// Symbols names the three instruments that feed the page.
type Symbols struct {
	Gold   string // gold futures, USD per troy ounce
	FX     string // local currency per USD
	Equity string // the tracked listed company
}

func DefaultSymbols() Symbols {
	return Symbols{Gold: "GC=F", FX: "USDCNY=X", Equity: "6181.HK"}
}

// Snapshot is one run's view of the market.
type Snapshot struct {
	Gold   quote.Quote
	FX     quote.Quote
	Equity quote.Quote
	// GoldPerGram is the derived local-currency-per-gram estimate.
	GoldPerGram decimal.Decimal
}

// Collect fetches all three quotes and derives the per-gram price.
// A missing or non-positive quote fails the whole run; there is no
// partial snapshot.
func Collect(ctx context.Context, f quote.Fetcher, syms Symbols) (Snapshot, error) {
	qs, err := f.Fetch(ctx, []string{syms.Gold, syms.FX, syms.Equity})
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch quotes: %w", err)
	}
	bySym := make(map[string]quote.Quote, len(qs))
	for _, q := range qs {
		bySym[q.Symbol] = q
	}

	var snap Snapshot
	for _, want := range []struct {
		sym string
		dst *quote.Quote
	}{
		{syms.Gold, &snap.Gold},
		{syms.FX, &snap.FX},
		{syms.Equity, &snap.Equity},
	} {
		q, ok := bySym[want.sym]
		if !ok {
			return Snapshot{}, fmt.Errorf("quote for %s missing from %s response", want.sym, f.Name())
		}
		if !q.Price.IsPositive() {
			return Snapshot{}, fmt.Errorf("quote for %s has non-positive price %s", want.sym, q.Price)
		}
		*want.dst = q
	}

	snap.GoldPerGram = PerGram(snap.Gold.Price, snap.FX.Price)
	return snap, nil
}

// PerGram converts a USD-per-troy-ounce price into local currency per gram.
func PerGram(usdPerOunce, localPerUSD decimal.Decimal) decimal.Decimal {
	return usdPerOunce.Mul(localPerUSD).Div(gramsPerTroyOunce)
}

// GoldNote is the dashboard wording for the recent gold move.
func GoldNote(changePct decimal.Decimal) string {
	switch {
	case changePct.GreaterThanOrEqual(one):
		return "本周持续上涨"
	case changePct.GreaterThanOrEqual(decimal.Zero):
		return "小幅上涨"
	case changePct.GreaterThanOrEqual(minusOne):
		return "小幅回调"
	default:
		return "明显回调"
	}
}

// TrendColor maps a change percent to the template's color token.
func TrendColor(changePct decimal.Decimal) string {
	if changePct.IsNegative() {
		return "red"
	}
	return "green"
}
