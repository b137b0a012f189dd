package yahoo_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yahoo "goldintel/internal/quote/yahoo"
)

func chartJSON(symbol, currency string, closes ...string) string {
	list := ""
	for i, c := range closes {
		if i > 0 {
			list += ","
		}
		list += c
	}
	return fmt.Sprintf(`{"chart":{"result":[{"meta":{"currency":%q,"symbol":%q,"regularMarketPrice":%s,"regularMarketTime":1767052800},"indicators":{"quote":[{"close":[%s]}]}}],"error":null}}`,
		currency, symbol, closes[len(closes)-1], list)
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	// Arrange: one chart payload per symbol.
	payloads := map[string]string{
		"/v8/finance/chart/GC=F":     chartJSON("GC=F", "USD", "2640.0", "2650.0"),
		"/v8/finance/chart/USDCNY=X": chartJSON("USDCNY=X", "CNY", "7.14", "7.15"),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := payloads[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	client, err := yahoo.NewChartClient(yahoo.WithBaseURL(srv.URL))
	require.NoError(t, err)
	f := yahoo.New(yahoo.Config{}, client)

	// Act
	quotes, err := f.Fetch(t.Context(), []string{"GC=F", "USDCNY=X"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	// Assert: request order is preserved and closes map to price/prev.
	assert.Equal(t, "GC=F", quotes[0].Symbol)
	assert.Equal(t, "2650", quotes[0].Price.String())
	assert.Equal(t, "2640", quotes[0].PrevClose.String())
	assert.Equal(t, "USD", quotes[0].Currency)
	assert.Equal(t, "Yahoo:chart", quotes[0].Source)

	assert.Equal(t, "USDCNY=X", quotes[1].Symbol)
	assert.Equal(t, "7.15", quotes[1].Price.String())
	assert.Equal(t, "7.14", quotes[1].PrevClose.String())
}

func TestFetcher_Fetch_UnknownSymbolFailsWhole(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := yahoo.NewChartClient(yahoo.WithBaseURL(srv.URL))
	require.NoError(t, err)
	f := yahoo.New(yahoo.Config{}, client)

	_, err = f.Fetch(t.Context(), []string{"GC=F"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GC=F")
}

func TestFetcher_Name(t *testing.T) {
	t.Parallel()

	client, err := yahoo.NewChartClient()
	require.NoError(t, err)

	assert.Equal(t, "Yahoo", yahoo.New(yahoo.Config{}, client).Name())
	assert.Equal(t, "Chart", yahoo.New(yahoo.Config{Name: "Chart"}, client).Name())
}
