// Command fetch resolves a symbol list against one market backend and
// prints the quotes as JSON. It exists for poking at backends without
// rendering anything.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"goldintel/internal/config"
	"goldintel/internal/httpx"
	"goldintel/internal/quote"
	"goldintel/internal/quote/financego"
	"goldintel/internal/quote/yahoo"
)

func main() {
	var symbolsCSV string
	var backend string
	var timeout int
	var configPath string

	flag.StringVar(&symbolsCSV, "symbols", getenv("SYMBOLS", "GC=F,USDCNY=X,6181.HK"), "comma-separated symbols")
	flag.StringVar(&backend, "backend", getenv("MARKET_BACKEND", "yahoo"), "market backend (yahoo|financego)")
	flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT_SEC", 15), "request timeout seconds")
	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if backend != "" {
		cfg.Market.Backend = backend
	}
	if timeout != 0 {
		cfg.Market.RequestTimeoutSec = timeout
	}

	symbols := splitCSV(symbolsCSV)
	if len(symbols) == 0 {
		log.Fatal("no symbols provided")
	}

	httpClient := httpx.New(time.Duration(cfg.Market.RequestTimeoutSec) * time.Second)

	var f quote.Fetcher
	switch cfg.Market.Backend {
	case "yahoo":
		opts := []yahoo.ChartClientOption{yahoo.WithHTTPClient(httpClient.HTTP)}
		if cfg.Market.Endpoint != "" {
			opts = append(opts, yahoo.WithBaseURL(cfg.Market.Endpoint))
		}
		client, err := yahoo.NewChartClient(opts...)
		if err != nil {
			log.Fatalf("yahoo client: %v", err)
		}
		f = yahoo.New(yahoo.Config{Range: cfg.Market.Range, Interval: cfg.Market.Interval}, client)
	case "financego":
		f = financego.New(financego.Config{})
	default:
		log.Fatalf("unknown backend %q", cfg.Market.Backend)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Market.RequestTimeoutSec)*time.Second)
	defer cancel()

	qs, err := f.Fetch(ctx, symbols)
	if err != nil {
		log.Fatalf("%s: %v", f.Name(), err)
	}
	if len(qs) == 0 {
		log.Fatal("no quotes received")
	}

	out := struct {
		Quotes []quote.Quote `json:"quotes"`
	}{Quotes: qs}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var x int
		_, _ = fmt.Sscanf(v, "%d", &x)
		if x != 0 {
			return x
		}
	}
	return def
}
