// Package page builds the rendered intel page: token values from the
// market snapshot and feeds, strict template substitution, and the atomic
// write of the output artifact.
package page

import (
	"time"

	"goldintel/internal/feed"
	"goldintel/internal/market"
)

// Replacements builds the full token map for the intel template.
// precision applies to the derived per-gram value only; the other fields
// keep the dashboard's fixed display formats.
func Replacements(snap market.Snapshot, news, social []feed.Item, precision int32, now time.Time) map[string]string {
	goldChange := snap.Gold.ChangePercent()
	equityChange := snap.Equity.ChangePercent()
	cst := now.In(feed.CST)
	return map[string]string{
		"GOLD_SPOT":          "$" + market.FormatComma(snap.Gold.Price, 0),
		"GOLD_NOTE":          market.GoldNote(goldChange),
		"GOLD_CNY":           market.FormatComma(snap.GoldPerGram, precision),
		"USD_CNY":            snap.FX.Price.StringFixed(4),
		"HK_PRICE":           market.FormatComma(snap.Equity.Price, 1),
		"HK_CHANGE":          market.FormatSigned(equityChange, 2),
		"HK_COLOR":           market.TrendColor(equityChange),
		"UPDATE_DATE":        cst.Format("2006-01-02"),
		"UPDATE_TIME":        cst.Format("15:04"),
		"ALERT_BAR_TEXT":     BuildAlertBar(news, now),
		"PRICE_ALERT_CARD":   BuildPriceAlertCard(news, goldChange, now),
		"PROMO_ALERT_BLOCK":  BuildPromoBlock(news, now),
		"SOCIAL_TAB_CONTENT": BuildSocialTab(social, now),
	}
}
