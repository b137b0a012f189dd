package sogou

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"goldintel/internal/feed"
	"goldintel/internal/httpx"
)

type Config struct {
	Name       string // display name, default: SogouWeixin
	Keyword    string
	MaxItems   int
	Headless   bool
	NavTimeout time.Duration
}

// Source scrapes the Sogou Weixin article index for the keyword using a
// headless browser. The index is server-rendered, so one navigation and a
// DOM extraction are enough; no login flow is required.
type Source struct {
	cfg Config
}

func New(cfg Config) *Source {
	if cfg.Name == "" {
		cfg.Name = "SogouWeixin"
	}
	if cfg.Keyword == "" {
		cfg.Keyword = "老铺黄金"
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 10
	}
	if cfg.NavTimeout <= 0 {
		cfg.NavTimeout = 25 * time.Second
	}
	return &Source{cfg: cfg}
}

func (s *Source) Name() string { return s.cfg.Name }

func (s *Source) Fetch(ctx context.Context) ([]feed.Item, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("lang", "zh-CN"),
		chromedp.NoSandbox,
		chromedp.UserAgent(httpx.BrowserUserAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()
	tabCtx, cancelNav := context.WithTimeout(tabCtx, s.cfg.NavTimeout)
	defer cancelNav()

	searchURL := fmt.Sprintf("https://weixin.sogou.com/weixin?type=2&query=%s&ie=utf8",
		url.QueryEscape(s.cfg.Keyword))

	var raw []rawArticle
	err := chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.Navigate(searchURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(extractJS, &raw),
	)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", searchURL, err)
	}
	return s.toItems(raw, time.Now()), nil
}

type rawArticle struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Preview string `json:"preview"`
	Account string `json:"account"`
	Date    string `json:"date"`
}

// extractJS pulls the rendered result list out of the index page.
const extractJS = `Array.from(document.querySelectorAll('.news-box .news-list li')).map(li => {
	const a = li.querySelector('h3 a');
	const preview = li.querySelector('p.txt-info');
	const account = li.querySelector('.account');
	const time = li.querySelector('span.s-p');
	return {
		title: a ? a.innerText.trim() : '',
		link: a ? a.href : '',
		preview: preview ? preview.innerText.trim() : '',
		account: account ? account.innerText.trim() : '',
		date: time ? time.innerText.trim() : '',
	};
})`

func (s *Source) toItems(raw []rawArticle, now time.Time) []feed.Item {
	items := make([]feed.Item, 0, len(raw))
	for _, art := range raw {
		if len(items) >= s.cfg.MaxItems {
			break
		}
		title := strings.TrimSpace(art.Title)
		if title == "" {
			continue
		}
		account := art.Account
		if account == "" {
			account = "微信公众号"
		}
		items = append(items, feed.Item{
			Title:       title,
			Preview:     feed.Summarize(art.Preview, 50),
			Source:      account,
			Link:        art.Link,
			Platform:    "weixin",
			PublishedAt: parseDate(art.Date, now),
			Category:    feed.Classify(title + " " + art.Preview),
		})
	}
	return items
}

// parseDate reads the index's "2026-01-25" stamps; anything else (the
// index also emits relative script snippets there) yields the zero time.
func parseDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if len(raw) < 10 {
		return time.Time{}
	}
	t, err := time.ParseInLocation("2006-01-02", raw[:10], feed.CST)
	if err != nil || t.After(now) {
		return time.Time{}
	}
	return t
}
