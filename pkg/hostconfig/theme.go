package hostconfig

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme token keys read by FromTokens.
const (
	TokenCSSClassPrefix        = "cssClassPrefix"
	TokenSupportsInteractivity = "supportsInteractivity"
	TokenMinAutoplayDelay      = "carousel.minAutoplayDelay"
)

// FromTokens overlays recognised theme tokens on base. Unknown tokens are
// ignored; malformed values return an error naming the token.
func FromTokens(base HostConfig, tokens map[string]string) (HostConfig, error) {
	cfg := base
	if raw, ok := tokens[TokenCSSClassPrefix]; ok {
		cfg.CSSClassPrefix = strings.TrimSpace(raw)
	}
	if raw, ok := tokens[TokenSupportsInteractivity]; ok {
		flag, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return HostConfig{}, fmt.Errorf("hostconfig: token %q: %w", TokenSupportsInteractivity, err)
		}
		cfg.SupportsInteractivity = flag
	}
	if raw, ok := tokens[TokenMinAutoplayDelay]; ok {
		trimmed := strings.TrimSuffix(strings.TrimSpace(raw), "ms")
		delay, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(delay) {
			return HostConfig{}, fmt.Errorf("hostconfig: token %q: invalid delay %q", TokenMinAutoplayDelay, raw)
		}
		cfg.Carousel.MinAutoplayDelay = delay
	}
	return cfg.Normalize(), nil
}

// FromTheme resolves a theme selection and derives a host configuration from
// its manifest tokens, letting variant tokens override the base set.
func FromTheme(selector theme.ThemeSelector, name, variant string) (HostConfig, error) {
	if selector == nil {
		return HostConfig{}, fmt.Errorf("hostconfig: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return HostConfig{}, fmt.Errorf("hostconfig: select theme %q: %w", name, err)
	}
	return FromSelection(Default(), selection)
}

// FromSelection overlays the tokens of a resolved selection on base.
func FromSelection(base HostConfig, selection *theme.Selection) (HostConfig, error) {
	if selection == nil || selection.Manifest == nil {
		return base.Normalize(), nil
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if selection.Variant != "" {
		if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
			for key, value := range v.Tokens {
				tokens[key] = value
			}
		}
	}
	return FromTokens(base, tokens)
}
