package yahoo

import (
	"net/http"
)

const baseURL = "https://query1.finance.yahoo.com"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChartClient is a client for the Yahoo Finance v8 chart API.
type ChartClient struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// ChartClientOption is a configuration option for the chart client.
type ChartClientOption func(*ChartClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ChartClientOption {
	return func(c *ChartClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ChartClientOption {
	return func(c *ChartClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ChartClientOption {
	return func(c *ChartClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewChartClient creates a new chart API client.
func NewChartClient(options ...ChartClientOption) (*ChartClient, error) {
	var chartClient = &ChartClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, option := range options {
		option(chartClient)
	}
	return chartClient, nil
}
