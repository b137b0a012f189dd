package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type Market struct {
	Backend               string `json:"backend"` // "yahoo" or "financego"
	Endpoint              string `json:"endpoint"`
	GoldSymbol            string `json:"gold_symbol"`
	FXSymbol              string `json:"fx_symbol"`
	EquitySymbol          string `json:"equity_symbol"`
	Range                 string `json:"range"`
	Interval              string `json:"interval"`
	RequestTimeoutSec     int    `json:"request_timeout_sec"`
	RetryAttempts         int    `json:"retry_attempts"`
	RetryDelaySec         int    `json:"retry_delay_sec"`
	MinRequestIntervalSec int    `json:"min_request_interval_sec"`
	Precision             int    `json:"precision"`
}

type News struct {
	Enabled      bool   `json:"enabled"`
	Endpoint     string `json:"endpoint"`
	Code         string `json:"code"`
	PageSize     int    `json:"page_size"`
	SinaEnabled  bool   `json:"sina_enabled"`
	SinaEndpoint string `json:"sina_endpoint"`
	SinaQuery    string `json:"sina_query"`
}

type Social struct {
	Enabled       bool   `json:"enabled"`
	Keyword       string `json:"keyword"`
	MaxItems      int    `json:"max_items"`
	Headless      bool   `json:"headless"`
	NavTimeoutSec int    `json:"nav_timeout_sec"`
}

type Output struct {
	TemplatePath string `json:"template_path"`
	Path         string `json:"path"`
}

type Config struct {
	Market Market `json:"market"`
	News   News   `json:"news"`
	Social Social `json:"social"`
	Output Output `json:"output"`
}

func Default() Config {
	return Config{
		Market: Market{
			Backend:           "yahoo",
			GoldSymbol:        "GC=F",
			FXSymbol:          "USDCNY=X",
			EquitySymbol:      "6181.HK",
			Range:             "5d",
			Interval:          "1d",
			RequestTimeoutSec: 10,
			RetryAttempts:     2,
			RetryDelaySec:     2,
			Precision:         2,
		},
		News: News{
			Enabled:     true,
			Code:        "128.6181",
			PageSize:    10,
			SinaEnabled: true,
			SinaQuery:   "老铺黄金",
		},
		Social: Social{
			Enabled:       false,
			Keyword:       "老铺黄金",
			MaxItems:      10,
			Headless:      true,
			NavTimeoutSec: 25,
		},
		Output: Output{
			TemplatePath: "web/intel.html",
			Path:         "index.html",
		},
	}
}

// Load reads JSON config from path. An empty path means defaults, with a
// config.json in the working directory picked up when present; an explicit
// path must exist. Environment variables override select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MARKET_BACKEND"); v != "" {
		cfg.Market.Backend = v
	}
	if v := os.Getenv("MARKET_ENDPOINT"); v != "" {
		cfg.Market.Endpoint = v
	}
	if v := os.Getenv("GOLD_SYMBOL"); v != "" {
		cfg.Market.GoldSymbol = v
	}
	if v := os.Getenv("FX_SYMBOL"); v != "" {
		cfg.Market.FXSymbol = v
	}
	if v := os.Getenv("EQUITY_SYMBOL"); v != "" {
		cfg.Market.EquitySymbol = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Market.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("RETRY_ATTEMPTS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Market.RetryAttempts = x
		}
	}
	if v := os.Getenv("MIN_REQUEST_INTERVAL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Market.MinRequestIntervalSec = x
		}
	}
	if v := os.Getenv("PRECISION"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Market.Precision = x
		}
	}
	if v := os.Getenv("NEWS_ENABLED"); v != "" {
		cfg.News.Enabled = parseBool(v, cfg.News.Enabled)
	}
	if v := os.Getenv("NEWS_ENDPOINT"); v != "" {
		cfg.News.Endpoint = v
	}
	if v := os.Getenv("NEWS_CODE"); v != "" {
		cfg.News.Code = v
	}
	if v := os.Getenv("NEWS_SINA_ENABLED"); v != "" {
		cfg.News.SinaEnabled = parseBool(v, cfg.News.SinaEnabled)
	}
	if v := os.Getenv("NEWS_SINA_ENDPOINT"); v != "" {
		cfg.News.SinaEndpoint = v
	}
	if v := os.Getenv("NEWS_SINA_QUERY"); v != "" {
		cfg.News.SinaQuery = v
	}
	if v := os.Getenv("SOCIAL_ENABLED"); v != "" {
		cfg.Social.Enabled = parseBool(v, cfg.Social.Enabled)
	}
	if v := os.Getenv("SOCIAL_KEYWORD"); v != "" {
		cfg.Social.Keyword = v
	}
	if v := os.Getenv("SOCIAL_HEADLESS"); v != "" {
		cfg.Social.Headless = parseBool(v, cfg.Social.Headless)
	}
	if v := os.Getenv("TEMPLATE_PATH"); v != "" {
		cfg.Output.TemplatePath = v
	}
	if v := os.Getenv("OUTPUT_PATH"); v != "" {
		cfg.Output.Path = v
	}
}

func parseBool(v string, def bool) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y":
		return true
	case "0", "false", "no", "n":
		return false
	}
	return def
}
