package page

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"goldintel/internal/feed"
)

var two = decimal.NewFromInt(2)

var tagMarkup = map[feed.Category]string{
	feed.CategoryAdjust:  `<span class="news-tag news-tag-adjust">⚡ 调价</span>`,
	feed.CategoryPromo:   `<span class="news-tag news-tag-promo">🎁 促销</span>`,
	feed.CategoryFinance: `<span class="news-tag news-tag-finance">📊 财务</span>`,
	feed.CategoryGeneral: `<span class="news-tag news-tag-general">📰 资讯</span>`,
}

var platformLabel = map[string]string{
	"xhs":    "📕 小红书",
	"weibo":  "🔵 微博",
	"weixin": "💚 微信",
}

func esc(s string) string { return html.EscapeString(s) }

func clipRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// BuildAlertBar is the one-line ticker at the top of the page: the latest
// price-adjustment item wins, then promos, then plain news, then a
// freshness stamp.
func BuildAlertBar(news []feed.Item, now time.Time) string {
	if adj := feed.ByCategory(news, feed.CategoryAdjust); len(adj) > 0 {
		return fmt.Sprintf("⚡ %s · 点击「价格情报」查看详情", esc(clipRunes(adj[0].Title, 30)))
	}
	if promo := feed.ByCategory(news, feed.CategoryPromo); len(promo) > 0 {
		return fmt.Sprintf("🎁 %s · 点击「门店促销」查看详情", esc(clipRunes(promo[0].Title, 30)))
	}
	if len(news) > 0 {
		return fmt.Sprintf("📰 最新：%s", esc(clipRunes(news[0].Title, 28)))
	}
	return fmt.Sprintf("金价数据已更新 · %s CST", now.In(feed.CST).Format("2006-01-02 15:04"))
}

// BuildPriceAlertCard renders the price-intelligence card: up to three
// adjustment items, or a gold-move note when the market moved at least 2%
// with no adjustment news, or nothing.
func BuildPriceAlertCard(news []feed.Item, goldChangePct decimal.Decimal, now time.Time) string {
	adj := feed.ByCategory(news, feed.CategoryAdjust)
	if len(adj) > 0 {
		if len(adj) > 3 {
			adj = adj[:3]
		}
		rows := make([]string, 0, len(adj))
		for _, n := range adj {
			rows = append(rows, fmt.Sprintf(
				`<strong>⚡ %s</strong><br><span class="alert-meta">来源：%s · %s</span>`,
				linkOrText(n), esc(n.Source), publishStamp(n)))
		}
		return `<div class="alert-card">` + strings.Join(rows, "<br><br>") + `</div>`
	}

	if goldChangePct.Abs().GreaterThanOrEqual(two) {
		dir, hint := "下跌", "暂无调价信号。"
		if goldChangePct.IsPositive() {
			dir, hint = "上涨", "关注是否触发品牌调价。"
		}
		return fmt.Sprintf(
			`<div class="alert-card"><strong>📊 金价动态</strong><br>金价今日%s %s%%，%s<br><span class="alert-meta">自动监测 · %s CST</span></div>`,
			dir, goldChangePct.Abs().StringFixed(1), hint, now.In(feed.CST).Format("2006-01-02 15:04"))
	}
	return ""
}

// BuildPromoBlock renders the promo tab: adjustment and promo highlight
// cards followed by the general feed list, or an empty-state notice.
func BuildPromoBlock(news []feed.Item, now time.Time) string {
	var cards []string
	if c := highlightCard(feed.ByCategory(news, feed.CategoryAdjust), "adjust", "⚡ 调价动态"); c != "" {
		cards = append(cards, c)
	}
	if c := highlightCard(feed.ByCategory(news, feed.CategoryPromo), "promo", "🎁 促销动态"); c != "" {
		cards = append(cards, c)
	}

	var others []feed.Item
	for _, n := range news {
		if n.Category == feed.CategoryFinance || n.Category == feed.CategoryGeneral {
			others = append(others, n)
		}
	}
	if len(others) > 8 {
		others = others[:8]
	}
	if len(others) > 0 {
		var rows strings.Builder
		for _, n := range others {
			rows.WriteString(fmt.Sprintf(
				`<div class="news-item"><div class="news-item-head"><div class="news-item-title">%s%s</div><div class="news-item-meta">%s</div></div><div class="news-item-source">%s</div></div>`,
				tagMarkup[n.Category], linkOrText(n), publishStamp(n), esc(n.Source)))
		}
		cards = append(cards, fmt.Sprintf(
			`<div class="news-feed"><div class="news-feed-title">📡 自动追踪 · 最新资讯 <span class="news-feed-stamp">%s 更新</span></div>%s</div>`,
			now.In(feed.CST).Format("01-02 15:04"), rows.String()))
	}

	if len(cards) == 0 {
		return `<div class="news-empty">暂未获取到最新资讯，请稍后刷新</div>`
	}
	return strings.Join(cards, "\n")
}

func highlightCard(items []feed.Item, kind, label string) string {
	if len(items) == 0 {
		return ""
	}
	if len(items) > 2 {
		items = items[:2]
	}
	rows := make([]string, 0, len(items))
	for _, n := range items {
		rows = append(rows, fmt.Sprintf(
			`%s<br><span class="card-meta">来源：%s · %s</span>`,
			linkOrText(n), esc(n.Source), publishStamp(n)))
	}
	return fmt.Sprintf(`<div class="highlight-card highlight-%s"><strong>%s</strong><br>%s</div>`,
		kind, label, strings.Join(rows, "<br><br>"))
}

// BuildSocialTab renders the social tab from scraped posts, or an
// empty-state notice when nothing was collected.
func BuildSocialTab(items []feed.Item, now time.Time) string {
	if len(items) == 0 {
		return `<div class="social-empty">暂未抓取到社媒内容<br><span class="social-empty-hint">可能原因：网络超时 / 平台访问限制</span></div>`
	}

	var parts []string
	for _, item := range items {
		label, ok := platformLabel[item.Platform]
		if !ok {
			label = "📰"
		}
		title := linkOrText(item)
		var preview string
		if item.Preview != "" {
			preview = fmt.Sprintf(`<div class="sp-preview">%s</div>`, esc(item.Preview))
		}
		stats := fmt.Sprintf(`<span class="sp-source">%s</span>`, esc(item.Source))
		if item.Likes != "" {
			stats = "❤️ " + esc(item.Likes)
			if feed.ParseCount(item.Likes) >= 10000 {
				stats += ` <span class="sp-hot">🔥 热门</span>`
			}
		}
		parts = append(parts, fmt.Sprintf(
			`<div class="social-post" data-platform="%s"><div class="sp-header"><span class="sp-platform">%s</span><span class="sp-time">%s</span></div><span class="sp-title">%s</span>%s<div class="sp-footer">%s</div></div>`,
			esc(item.Platform), label, feed.RelTime(now, item.PublishedAt), title, preview, stats))
	}

	header := fmt.Sprintf(
		`<div class="social-header">共 %d 条 · %s 更新 · 来源：微信公众号等</div>`,
		len(items), now.In(feed.CST).Format("01-02 15:04"))
	return header + "\n" + strings.Join(parts, "\n")
}

func linkOrText(n feed.Item) string {
	if n.Link == "" {
		return esc(n.Title)
	}
	return fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`, esc(n.Link), esc(n.Title))
}

func publishStamp(n feed.Item) string {
	if n.PublishedAt.IsZero() {
		return "—"
	}
	return n.PublishedAt.In(feed.CST).Format("01-02 15:04")
}
