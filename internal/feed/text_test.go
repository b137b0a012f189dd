package feed

import "testing"

func TestSummarize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"empty", "", 50, ""},
		{"short passes through", "工费与克价对比", 50, "工费与克价对比"},
		{"strips date prefix", "2025年3月2日 - 老铺黄金门店实探", 50, "老铺黄金门店实探"},
		{"strips ago prefix", "6天前 - 调价消息汇总", 50, "调价消息汇总"},
		{"strips source suffix", "老铺黄金排队盛况_品牌_市场", 50, "老铺黄金排队盛况"},
		{"strips trailing ellipsis", "正文内容……", 50, "正文内容"},
		{"cuts at punctuation", "第一句话说完了。第二句话还在继续说个不停", 12, "第一句话说完了。"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Summarize(c.in, c.max); got != c.want {
				t.Fatalf("Summarize(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
			}
		})
	}
}

func TestSummarize_HardCutWithoutPunctuation(t *testing.T) {
	in := "没有任何标点可以断开的超长标题文本继续延伸"
	got := Summarize(in, 8)
	want := "没有任何标点可以…"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"475", 475},
		{"2,475", 2475},
		{"8.9万", 89000},
		{"2.9万", 29000},
		{"不是数字", 0},
	}
	for _, c := range cases {
		if got := ParseCount(c.in); got != c.want {
			t.Fatalf("ParseCount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
