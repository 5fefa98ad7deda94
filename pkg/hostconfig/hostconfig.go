// Package hostconfig carries the host supplied settings elements consult while
// parsing and rendering: the carousel autoplay floor, the CSS class prefix and
// interactivity support. Settings load from JSON or YAML files, or derive from
// a go-theme selection.
package hostconfig

import (
	"math"
	"strings"
)

// DefaultMinAutoplayDelay is the carousel autoplay floor in milliseconds.
const DefaultMinAutoplayDelay = 5000

// DefaultCSSClassPrefix prefixes generated class names.
const DefaultCSSClassPrefix = "ac-"

// CarouselConfig groups carousel specific settings.
type CarouselConfig struct {
	MinAutoplayDelay float64 `json:"minAutoplayDelay" yaml:"minAutoplayDelay"`
}

// HostConfig is the host configuration consulted by card elements.
type HostConfig struct {
	CSSClassPrefix        string         `json:"cssClassPrefix" yaml:"cssClassPrefix"`
	SupportsInteractivity bool           `json:"supportsInteractivity" yaml:"supportsInteractivity"`
	Carousel              CarouselConfig `json:"carousel" yaml:"carousel"`
}

// Default returns the built-in host configuration.
func Default() HostConfig {
	return HostConfig{
		CSSClassPrefix:        DefaultCSSClassPrefix,
		SupportsInteractivity: true,
		Carousel: CarouselConfig{
			MinAutoplayDelay: DefaultMinAutoplayDelay,
		},
	}
}

// Normalize repairs values that would break invariants elsewhere. A negative
// or non-finite autoplay floor becomes 0 so clamping always converges.
func (h HostConfig) Normalize() HostConfig {
	floor := h.Carousel.MinAutoplayDelay
	if math.IsNaN(floor) || math.IsInf(floor, 0) || floor < 0 {
		h.Carousel.MinAutoplayDelay = 0
	}
	h.CSSClassPrefix = strings.TrimSpace(h.CSSClassPrefix)
	return h
}

// MinAutoplayDelay returns the normalised carousel floor.
func (h HostConfig) MinAutoplayDelay() float64 {
	return h.Normalize().Carousel.MinAutoplayDelay
}

// ClassNames prefixes each non-blank name with the configured prefix.
func (h HostConfig) ClassNames(names ...string) []string {
	prefix := strings.TrimSpace(h.CSSClassPrefix)
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, prefix+name)
	}
	return out
}

// MakeCSSClassName joins ClassNames with spaces.
func (h HostConfig) MakeCSSClassName(names ...string) string {
	return strings.Join(h.ClassNames(names...), " ")
}
