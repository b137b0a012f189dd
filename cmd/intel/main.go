package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"goldintel/internal/config"
	"goldintel/internal/feed"
	"goldintel/internal/feed/eastmoney"
	"goldintel/internal/feed/sina"
	"goldintel/internal/httpx"
	"goldintel/internal/market"
	"goldintel/internal/page"
	"goldintel/internal/quote"
	"goldintel/internal/quote/financego"
	"goldintel/internal/quote/ratelimit"
	"goldintel/internal/quote/retry"
	"goldintel/internal/quote/yahoo"
	"goldintel/internal/social/sogou"
)

func main() {
	var configPath string
	var templatePath string
	var outPath string
	var runTimeout int

	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	flag.StringVar(&templatePath, "template", "", "template path override")
	flag.StringVar(&outPath, "out", "", "output path override")
	flag.IntVar(&runTimeout, "run-timeout", 90, "whole-run deadline in seconds")
	flag.Parse()

	// .env is optional, a missing file is the normal case in CI
	_ = godotenv.Load()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if templatePath != "" {
		cfg.Output.TemplatePath = templatePath
	}
	if outPath != "" {
		cfg.Output.Path = outPath
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(runTimeout)*time.Second)
	defer cancel()

	httpClient := httpx.New(time.Duration(cfg.Market.RequestTimeoutSec) * time.Second)
	fetcher, err := buildFetcher(cfg.Market, httpClient)
	if err != nil {
		log.WithError(err).Fatal("build market backend")
	}

	syms := market.Symbols{Gold: cfg.Market.GoldSymbol, FX: cfg.Market.FXSymbol, Equity: cfg.Market.EquitySymbol}
	snap, err := market.Collect(ctx, fetcher, syms)
	if err != nil {
		log.WithError(err).Fatal("collect market data")
	}
	log.WithFields(logrus.Fields{
		"gold_usd_oz":  snap.Gold.Price.StringFixed(2),
		"gold_cny_g":   snap.GoldPerGram.StringFixed(2),
		"usd_cny":      snap.FX.Price.StringFixed(4),
		"equity":       snap.Equity.Price.StringFixed(2),
		"equity_chg":   snap.Equity.ChangePercent().StringFixed(2),
		"quote_source": snap.Gold.Source,
	}).Info("market snapshot")

	news, social := collectFeeds(ctx, cfg, httpClient, log)

	tpl, err := os.ReadFile(cfg.Output.TemplatePath)
	if err != nil {
		log.WithError(err).Fatal("read template")
	}

	now := time.Now()
	repl := page.Replacements(snap, news, social, int32(cfg.Market.Precision), now)
	rendered, err := page.Render(string(tpl), repl)
	if err != nil {
		log.WithError(err).Fatal("render page")
	}
	if err := page.WriteAtomic(cfg.Output.Path, []byte(rendered)); err != nil {
		log.WithError(err).Fatal("write page")
	}
	log.WithFields(logrus.Fields{"path": cfg.Output.Path, "bytes": len(rendered)}).Info("page written")
}

func buildFetcher(mc config.Market, hc *httpx.Client) (quote.Fetcher, error) {
	var f quote.Fetcher
	switch mc.Backend {
	case "", "yahoo":
		opts := []yahoo.ChartClientOption{yahoo.WithHTTPClient(hc.HTTP)}
		if mc.Endpoint != "" {
			opts = append(opts, yahoo.WithBaseURL(mc.Endpoint))
		}
		client, err := yahoo.NewChartClient(opts...)
		if err != nil {
			return nil, err
		}
		f = yahoo.New(yahoo.Config{Range: mc.Range, Interval: mc.Interval}, client)
	case "financego":
		f = financego.New(financego.Config{})
	default:
		return nil, fmt.Errorf("unknown market backend %q", mc.Backend)
	}
	if mc.MinRequestIntervalSec > 0 {
		f = &ratelimit.MinInterval{F: f, Interval: time.Duration(mc.MinRequestIntervalSec) * time.Second}
	}
	if mc.RetryAttempts > 1 {
		f = &retry.Fetcher{F: f, Attempts: mc.RetryAttempts, Delay: time.Duration(mc.RetryDelaySec) * time.Second}
	}
	return f, nil
}

// collectFeeds runs the enabled feed sources concurrently. Feed failures
// are logged and tolerated; the page degrades to its empty-state markup.
func collectFeeds(ctx context.Context, cfg config.Config, hc *httpx.Client, log *logrus.Logger) (news, social []feed.Item) {
	var sources []feed.Source
	if cfg.News.Enabled {
		sources = append(sources, eastmoney.New(eastmoney.Config{
			Endpoint: cfg.News.Endpoint,
			Code:     cfg.News.Code,
			PageSize: cfg.News.PageSize,
		}, hc))
		if cfg.News.SinaEnabled {
			sources = append(sources, sina.New(sina.Config{
				Endpoint: cfg.News.SinaEndpoint,
				Query:    cfg.News.SinaQuery,
				MaxItems: cfg.News.PageSize,
			}, hc))
		}
	}
	if cfg.Social.Enabled {
		sources = append(sources, sogou.New(sogou.Config{
			Keyword:    cfg.Social.Keyword,
			MaxItems:   cfg.Social.MaxItems,
			Headless:   cfg.Social.Headless,
			NavTimeout: time.Duration(cfg.Social.NavTimeoutSec) * time.Second,
		}))
	}
	if len(sources) == 0 {
		return nil, nil
	}

	type result struct {
		name  string
		items []feed.Item
		err   error
	}
	ch := make(chan result, len(sources))
	for _, s := range sources {
		go func() {
			items, err := s.Fetch(ctx)
			ch <- result{name: s.Name(), items: items, err: err}
		}()
	}

	var newsRaw, socialRaw [][]feed.Item
	for range sources {
		r := <-ch
		if r.err != nil {
			log.WithError(r.err).Warnf("%s feed failed", r.name)
			continue
		}
		log.Infof("%s: %d items", r.name, len(r.items))
		if len(r.items) > 0 && r.items[0].Platform != "" {
			socialRaw = append(socialRaw, r.items)
		} else {
			newsRaw = append(newsRaw, r.items)
		}
	}
	return feed.MergeDedupe(newsRaw...), feed.MergeDedupe(socialRaw...)
}
