package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// Chart is the decoded daily-close series for one symbol.
type Chart struct {
	Symbol      string
	Currency    string
	MarketPrice decimal.Decimal
	MarketTime  time.Time
	// Closes holds the non-null daily closes, oldest first.
	Closes []decimal.Decimal
}

// GetChart retrieves the close series for symbol over rng (e.g. "5d")
// at the given bar interval (e.g. "1d").
func (c *ChartClient) GetChart(ctx context.Context, symbol, rng, interval string, opts ...ChartClientOption) (Chart, error) {
	var override = &ChartClient{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		header:     c.header.Clone(),
	}
	for _, opt := range opts {
		opt(override)
	}

	query := url.Values{}
	query.Set("range", rng)
	query.Set("interval", interval)

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", override.baseURL, url.PathEscape(symbol), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return Chart{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header = override.header

	res, err := override.httpClient.Do(req)
	if err != nil {
		return Chart{}, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusNotFound:
		return Chart{}, fmt.Errorf("unknown symbol %q", symbol)

	case http.StatusTooManyRequests:
		return Chart{}, fmt.Errorf("rate limited")

	default:
		return Chart{}, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	var body chartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return Chart{}, fmt.Errorf("decoding chart response: %w", err)
	}
	if body.Chart.Error != nil {
		return Chart{}, fmt.Errorf("chart error: %s: %s", body.Chart.Error.Code, body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 {
		return Chart{}, fmt.Errorf("no chart data for %q", symbol)
	}

	r := body.Chart.Result[0]
	out := Chart{
		Symbol:      r.Meta.Symbol,
		Currency:    r.Meta.Currency,
		MarketPrice: decimal.NewFromFloat(r.Meta.RegularMarketPrice),
	}
	if r.Meta.RegularMarketTime > 0 {
		out.MarketTime = time.Unix(r.Meta.RegularMarketTime, 0).UTC()
	}
	if len(r.Indicators.Quote) > 0 {
		for _, v := range r.Indicators.Quote[0].Close {
			if v == nil {
				continue
			}
			out.Closes = append(out.Closes, decimal.NewFromFloat(*v))
		}
	}
	return out, nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}
