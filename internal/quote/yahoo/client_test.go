package yahoo_test

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	yahoo "goldintel/internal/quote/yahoo"
)

const chartPayload = `{
  "chart": {
    "result": [
      {
        "meta": {
          "currency": "USD",
          "symbol": "GC=F",
          "regularMarketPrice": 2652.3,
          "regularMarketTime": 1767052800
        },
        "indicators": {
          "quote": [
            {"close": [2601.1, null, 2640.0, 2650.0]}
          ]
        }
      }
    ],
    "error": null
  }
}`

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestNewChartClient(t *testing.T) {
	t.Parallel()

	// Assert: construction never fails with defaults.
	client, err := yahoo.NewChartClient()
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestGetChart_DecodesSeries(t *testing.T) {
	t.Parallel()

	// Arrange: a mock http client returning a canned chart payload.
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.True(t, strings.Contains(req.URL.Path, "/v8/finance/chart/"))
			require.Equal(t, "5d", req.URL.Query().Get("range"))
			return response(http.StatusOK, chartPayload), nil
		}).
		Times(1)

	client, err := yahoo.NewChartClient(yahoo.WithHTTPClient(httpClient))
	require.NoError(t, err)

	// Act: fetch one chart.
	ch, err := client.GetChart(t.Context(), "GC=F", "5d", "1d")
	require.NoError(t, err)

	// Assert: nulls are dropped, order preserved, meta decoded.
	require.Equal(t, "GC=F", ch.Symbol)
	require.Equal(t, "USD", ch.Currency)
	require.Len(t, ch.Closes, 3)
	require.Equal(t, "2650", ch.Closes[2].String())
	require.Equal(t, "2652.3", ch.MarketPrice.String())
	require.False(t, ch.MarketTime.IsZero())
}

func TestGetChart_ChartError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(response(http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`), nil).
		Times(1)

	client, err := yahoo.NewChartClient(yahoo.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.GetChart(t.Context(), "NOPE", "5d", "1d")
	require.Error(t, err)
	require.Contains(t, err.Error(), "No data found")
}

func TestGetChart_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(response(http.StatusInternalServerError, "boom"), nil).
		Times(1)

	client, err := yahoo.NewChartClient(yahoo.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.GetChart(t.Context(), "GC=F", "5d", "1d")
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
}

func TestWithBaseURL(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "example.test", req.URL.Host)
			return response(http.StatusOK, chartPayload), nil
		}).
		Times(1)

	client, err := yahoo.NewChartClient(
		yahoo.WithBaseURL("https://example.test"),
		yahoo.WithHTTPClient(httpClient),
	)
	require.NoError(t, err)

	_, err = client.GetChart(t.Context(), "GC=F", "5d", "1d")
	require.NoError(t, err)
}
