package sina

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"goldintel/internal/feed"
	"goldintel/internal/httpx"
)

type Config struct {
	Name     string // display name, default: SinaFinance
	Endpoint string
	Query    string
	MaxItems int
}

// Source scrapes the Sina news search result page. The page is
// server-rendered, so one GET and a selector walk are enough.
type Source struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Source {
	if cfg.Name == "" {
		cfg.Name = "SinaFinance"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://search.sina.com.cn/"
	}
	if cfg.Query == "" {
		cfg.Query = "老铺黄金"
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 10
	}
	return &Source{cfg: cfg, client: hc}
}

func (s *Source) Name() string { return s.cfg.Name }

func (s *Source) Fetch(ctx context.Context) ([]feed.Item, error) {
	query := url.Values{}
	query.Set("q", s.cfg.Query)
	query.Set("range", "all")
	query.Set("c", "news")
	query.Set("sort", "time")
	query.Set("num", fmt.Sprintf("%d", s.cfg.MaxItems))

	u := s.cfg.Endpoint + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", httpx.BrowserUserAgent)

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
		return nil, fmt.Errorf("GET %s -> %d: %s", s.cfg.Endpoint, resp.StatusCode, string(b))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse result page: %w", err)
	}

	var items []feed.Item
	doc.Find(".box-result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(items) >= s.cfg.MaxItems {
			return false
		}
		a := sel.Find("h2 a").First()
		if a.Length() == 0 {
			a = sel.Find("a").First()
		}
		title := strings.TrimSpace(a.Text())
		if title == "" {
			return true
		}
		link, _ := a.Attr("href")
		items = append(items, feed.Item{
			Title:       title,
			Source:      "新浪财经",
			Link:        link,
			PublishedAt: parseStamp(sel.Find(".fgray_time").First().Text()),
			Category:    feed.Classify(title),
		})
		return true
	})
	return items, nil
}

var stampPattern = regexp.MustCompile(`\d{4}年\d{1,2}月\d{1,2}日\s*\d{1,2}:\d{2}`)

// parseStamp reads the result list's "2026年01月25日 10:30" stamps as CST
// wall-clock time. The element usually prefixes the stamp with the outlet
// name, so the date is located by pattern. Unparseable input yields the
// zero time.
func parseStamp(raw string) time.Time {
	m := stampPattern.FindString(raw)
	if m == "" {
		return time.Time{}
	}
	m = strings.Join(strings.Fields(m), "")
	t, err := time.ParseInLocation("2006年1月2日15:04", m, feed.CST)
	if err != nil {
		return time.Time{}
	}
	return t
}
