package feed

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want Category
	}{
		{"老铺黄金年内二次提价", CategoryAdjust},
		{"SKP 专场满减活动来了", CategoryPromo},
		{"上半年业绩大涨，营收翻倍", CategoryFinance},
		{"排队盛况空前", CategoryGeneral},
		// adjust beats promo when both match
		{"调价前最后一波优惠", CategoryAdjust},
	}
	for _, c := range cases {
		if got := Classify(c.text); got != c.want {
			t.Fatalf("Classify(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestMergeDedupe_DropsSameTitlePrefix(t *testing.T) {
	long := "老铺黄金涨近9%，SKP活动排队热度高涨，高端中式古法黄金仍持续破圈"
	a := []Item{{Title: long, Source: "源一"}}
	b := []Item{{Title: long + "（转载）", Source: "源二"}, {Title: "另一条", Source: "源二"}}

	out := MergeDedupe(a, b)
	if len(out) != 2 {
		t.Fatalf("want 2 items, got %d: %+v", len(out), out)
	}
	if out[0].Source != "源一" && out[1].Source != "源一" {
		t.Fatalf("first occurrence should win: %+v", out)
	}
}

func TestMergeDedupe_NewestFirstZeroTimesLast(t *testing.T) {
	t1 := time.Date(2026, 8, 29, 10, 0, 0, 0, CST)
	t2 := t1.Add(3 * time.Hour)
	out := MergeDedupe([]Item{
		{Title: "旧", PublishedAt: t1},
		{Title: "未知时间"},
		{Title: "新", PublishedAt: t2},
	})
	if out[0].Title != "新" || out[1].Title != "旧" || out[2].Title != "未知时间" {
		t.Fatalf("unexpected order: %+v", out)
	}
}

func TestRelTime(t *testing.T) {
	now := time.Date(2026, 8, 30, 18, 0, 0, 0, CST)
	cases := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "—"},
		{now.Add(-30 * time.Second), "刚刚"},
		{now.Add(-5 * time.Minute), "5分钟前"},
		{now.Add(-3 * time.Hour), "3小时前"},
		{now.Add(-50 * time.Hour), "2天前"},
		{now.AddDate(0, 0, -20), "08-10"},
	}
	for _, c := range cases {
		if got := RelTime(now, c.t); got != c.want {
			t.Fatalf("RelTime(%v) = %q, want %q", c.t, got, c.want)
		}
	}
}

func TestByCategory(t *testing.T) {
	items := []Item{
		{Title: "a", Category: CategoryAdjust},
		{Title: "b", Category: CategoryPromo},
		{Title: "c", Category: CategoryAdjust},
	}
	adj := ByCategory(items, CategoryAdjust)
	if len(adj) != 2 || adj[0].Title != "a" || adj[1].Title != "c" {
		t.Fatalf("unexpected filter result: %+v", adj)
	}
}
