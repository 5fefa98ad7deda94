package vanilla

import "strings"

func sliderPartID(base, part string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}
	return base + "-" + part
}

// sanitizeClassList collapses whitespace and drops duplicate tokens. An empty
// result falls back to def.
func sanitizeClassList(value, def string) string {
	tokens := strings.Fields(value)
	if len(tokens) == 0 {
		return def
	}
	keep := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "source": {}, "wbr": {},
}

func isVoid(tag string) bool {
	_, ok := voidElements[strings.ToLower(tag)]
	return ok
}
