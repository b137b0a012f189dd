package page

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\{\{[A-Z_]+\}\}`)

// Render substitutes every {{TOKEN}} occurrence in tpl with its value.
// Only markers present in the template itself are substituted, so marker
// text inside a value passes through inert. Every supplied token must be
// present in the template, and the template may not carry a marker with
// no value; either mismatch aborts the render so a half-filled page can
// never be published.
func Render(tpl string, values map[string]string) (string, error) {
	used := make(map[string]bool, len(values))
	var b strings.Builder
	last := 0
	for _, loc := range tokenPattern.FindAllStringIndex(tpl, -1) {
		name := tpl[loc[0]+2 : loc[1]-2]
		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("template: unsubstituted token {{%s}}", name)
		}
		b.WriteString(tpl[last:loc[0]])
		b.WriteString(v)
		used[name] = true
		last = loc[1]
	}
	b.WriteString(tpl[last:])

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !used[k] {
			return "", fmt.Errorf("template: token {{%s}} not found", k)
		}
	}
	return b.String(), nil
}
