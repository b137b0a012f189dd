package eastmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"goldintel/internal/feed"
	"goldintel/internal/httpx"
)

type Config struct {
	Name     string // display name, default: Eastmoney
	Endpoint string
	// Code is the market-qualified security code, e.g. "128.6181".
	Code     string
	PageSize int
	Headers  map[string]string
}

// Source pulls the security's news list from the Eastmoney web API.
type Source struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Source {
	if cfg.Name == "" {
		cfg.Name = "Eastmoney"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://np-listapi.eastmoney.com/comm/web/getListInfo"
	}
	if cfg.Code == "" {
		cfg.Code = "128.6181"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return &Source{cfg: cfg, client: hc}
}

func (s *Source) Name() string { return s.cfg.Name }

func (s *Source) Fetch(ctx context.Context) ([]feed.Item, error) {
	query := url.Values{}
	query.Set("client", "web")
	query.Set("type", "1")
	query.Set("mTypeAndCode", s.cfg.Code)
	query.Set("pageSize", fmt.Sprintf("%d", s.cfg.PageSize))
	query.Set("pageIndex", "1")

	u := s.cfg.Endpoint + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", httpx.BrowserUserAgent)
	req.Header.Set("Referer", "https://quote.eastmoney.com/")
	for k, v := range s.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
		return nil, fmt.Errorf("GET %s -> %d: %s", s.cfg.Endpoint, resp.StatusCode, string(b))
	}

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	items := make([]feed.Item, 0, len(api.Data.List))
	for _, art := range api.Data.List {
		title := strings.TrimSpace(art.Title)
		if title == "" {
			continue
		}
		source := strings.TrimSpace(art.MediaName)
		if source == "" {
			source = "东方财富"
		}
		items = append(items, feed.Item{
			Title:       title,
			Source:      source,
			Link:        art.URL,
			PublishedAt: parsePublishTime(art.PublishTime, art.CTime),
			Category:    feed.Classify(title),
		})
	}
	return items, nil
}

type apiResponse struct {
	Data struct {
		List []article `json:"list"`
	} `json:"data"`
}

type article struct {
	Title       string `json:"title"`
	MediaName   string `json:"mediaName"`
	URL         string `json:"url"`
	PublishTime string `json:"publishTime"`
	CTime       string `json:"ctime"`
}

// parsePublishTime reads "2026-01-26T10:35:11" or "2026-01-26 10:35:11"
// as CST wall-clock time. Unparseable input yields the zero time.
func parsePublishTime(publishTime, ctime string) time.Time {
	raw := publishTime
	if raw == "" {
		raw = ctime
	}
	raw = strings.ReplaceAll(raw, "T", " ")
	if idx := strings.IndexByte(raw, '+'); idx >= 0 {
		raw = raw[:idx]
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", strings.TrimSpace(raw), feed.CST)
	if err != nil {
		return time.Time{}
	}
	return t
}
