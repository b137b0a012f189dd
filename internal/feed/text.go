package feed

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reDatePrefix   = regexp.MustCompile(`^\d{4}年\d+月\d+日\s*[-·]\s*`)
	reAgoPrefix    = regexp.MustCompile(`^\d+\s*[天小时分钟月年]+前\s*[-·]\s*`)
	reSourceSuffix = regexp.MustCompile(`([_|][^_|。！？，\n]+)+$`)
	reDashSuffix   = regexp.MustCompile(`\s*[-–—]\s*[\p{Han}a-zA-Z]{2,10}$`)
	reEllipsis     = regexp.MustCompile(`\.{3,}$|…+$`)
)

// summary truncation prefers these boundaries, strongest first.
var cutPunctuation = []string{"。", "！", "？", "；", "，", "、", ",", "."}

// Summarize trims search-result noise (date prefixes, source suffixes,
// trailing ellipses) from text and cuts it to at most maxRunes, preferring
// to break at punctuation.
func Summarize(text string, maxRunes int) string {
	text = strings.TrimSpace(text)
	text = reDatePrefix.ReplaceAllString(text, "")
	text = reAgoPrefix.ReplaceAllString(text, "")
	text = reSourceSuffix.ReplaceAllString(text, "")
	text = reDashSuffix.ReplaceAllString(text, "")
	text = reEllipsis.ReplaceAllString(text, "")
	text = strings.Trim(text, "_|… \t")
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	head := string(runes[:maxRunes])
	for _, punct := range cutPunctuation {
		idx := strings.LastIndex(head, punct)
		if idx < 0 {
			continue
		}
		// reject cuts so early they lose most of the summary
		if len([]rune(head[:idx])) > maxRunes/3 {
			return head[:idx+len(punct)]
		}
	}
	return head + "…"
}

// ParseCount converts like-count text such as "8.9万" or "475" to an
// integer for popularity sorting. Unparseable input counts as zero.
func ParseCount(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	if cut, ok := strings.CutSuffix(s, "万"); ok {
		f, err := strconv.ParseFloat(cut, 64)
		if err != nil {
			return 0
		}
		return int(math.Round(f * 10000))
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
