package feed

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"
)

// CST is the display timezone for publish times and update stamps.
var CST = time.FixedZone("CST", 8*60*60)

// Category buckets feed items for the page's alert and tab markup.
type Category string

const (
	CategoryAdjust  Category = "adjust"
	CategoryPromo   Category = "promo"
	CategoryFinance Category = "finance"
	CategoryGeneral Category = "general"
)

var (
	keywordsAdjust  = []string{"调价", "涨价", "提价", "降价", "价格调整", "上调", "下调"}
	keywordsPromo   = []string{"促销", "大促", "优惠", "折扣", "满减", "活动", "专场", "限时", "秒杀"}
	keywordsFinance = []string{"财报", "业绩", "营收", "利润", "IPO", "股东", "股权", "分红", "回购", "评级"}
)

// Item is one news or social entry feeding the page.
type Item struct {
	Title       string
	Preview     string
	Source      string
	Link        string
	Platform    string    // "" for news; "weixin", "weibo", "xhs" for social
	PublishedAt time.Time // zero when the source did not expose one
	Likes       string    // raw like count text, may be empty
	Category    Category
}

// Source produces feed items from one upstream.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Item, error)
}

// Classify buckets text by the first matching keyword set.
func Classify(text string) Category {
	t := strings.ToLower(text)
	for _, kw := range keywordsAdjust {
		if strings.Contains(t, kw) {
			return CategoryAdjust
		}
	}
	for _, kw := range keywordsPromo {
		if strings.Contains(t, kw) {
			return CategoryPromo
		}
	}
	for _, kw := range keywordsFinance {
		if strings.Contains(t, kw) {
			return CategoryFinance
		}
	}
	return CategoryGeneral
}

// dedupeKeyLen is how many title runes identify a duplicate across sources.
const dedupeKeyLen = 20

// MergeDedupe merges multiple sources, drops items whose title prefix was
// already seen, and orders the result newest first. Items without a publish
// time sort last, keeping their arrival order.
func MergeDedupe(sources ...[]Item) []Item {
	seen := make(map[string]struct{})
	var merged []Item
	for _, src := range sources {
		for _, item := range src {
			key := titleKey(item.Title)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, item)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		ti, tj := merged[i].PublishedAt, merged[j].PublishedAt
		if ti.IsZero() || tj.IsZero() {
			return !ti.IsZero() && tj.IsZero()
		}
		return ti.After(tj)
	})
	return merged
}

func titleKey(title string) string {
	r := []rune(title)
	if len(r) > dedupeKeyLen {
		r = r[:dedupeKeyLen]
	}
	return string(r)
}

// ByCategory filters items to one category.
func ByCategory(items []Item, c Category) []Item {
	var out []Item
	for _, item := range items {
		if item.Category == c {
			out = append(out, item)
		}
	}
	return out
}

// RelTime renders t relative to now, the way the page displays post ages.
func RelTime(now, t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	minutes := int(now.Sub(t).Minutes())
	switch {
	case minutes < 1:
		return "刚刚"
	case minutes < 60:
		return strconv.Itoa(minutes) + "分钟前"
	case minutes < 24*60:
		return strconv.Itoa(minutes/60) + "小时前"
	case minutes < 7*24*60:
		return strconv.Itoa(minutes/(24*60)) + "天前"
	default:
		return t.In(CST).Format("01-02")
	}
}
