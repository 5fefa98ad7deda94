// Package slider defines the contract for the interactive slider widget a
// carousel mounts onto its materialized artifact. The widget owns its own
// interaction state (swipe, pagination, keyboard); this package only carries
// the construction inputs.
package slider

import (
	"errors"

	"github.com/goliatone/go-cardgen/pkg/visual"
)

// ErrNoContainer is returned when Mount is called without a container node.
var ErrNoContainer = errors.New("slider: container is required")

// Autoplay enables automatic advancing. Delay is in milliseconds.
type Autoplay struct {
	Delay float64 `json:"delay"`
}

// Options configure a widget instance.
type Options struct {
	Loop     bool      `json:"loop"`
	Keyboard bool      `json:"keyboard"`
	A11y     bool      `json:"a11y"`
	Autoplay *Autoplay `json:"autoplay,omitempty"`
}

// DefaultOptions mirrors the behaviour carousels ship with: looping,
// keyboard navigation and accessibility enabled, no autoplay.
func DefaultOptions() Options {
	return Options{
		Loop:     true,
		Keyboard: true,
		A11y:     true,
	}
}

// Adornments are the navigation handles placed next to the slides.
type Adornments struct {
	Prev       *visual.Node
	Next       *visual.Node
	Pagination *visual.Node
}

// Widget attaches slider behaviour to a container artifact.
type Widget interface {
	Mount(container *visual.Node, adornments Adornments, opts Options) error
}

// WidgetFunc adapts a function into a Widget.
type WidgetFunc func(container *visual.Node, adornments Adornments, opts Options) error

// Mount calls the underlying function.
func (fn WidgetFunc) Mount(container *visual.Node, adornments Adornments, opts Options) error {
	return fn(container, adornments, opts)
}

// Mounted records one Mount call.
type Mounted struct {
	Container  *visual.Node
	Adornments Adornments
	Options    Options
}

// Recorder is a Widget that remembers every mount. Useful for previews and
// tests that need to assert what a carousel asked of its widget.
type Recorder struct {
	mounts []Mounted
}

// Mount records the call.
func (r *Recorder) Mount(container *visual.Node, adornments Adornments, opts Options) error {
	if container == nil {
		return ErrNoContainer
	}
	r.mounts = append(r.mounts, Mounted{Container: container, Adornments: adornments, Options: opts})
	return nil
}

// Mounts returns the recorded calls in order.
func (r *Recorder) Mounts() []Mounted {
	return append([]Mounted(nil), r.mounts...)
}

// Last returns the most recent mount.
func (r *Recorder) Last() (Mounted, bool) {
	if len(r.mounts) == 0 {
		return Mounted{}, false
	}
	return r.mounts[len(r.mounts)-1], true
}

// Reset forgets recorded mounts.
func (r *Recorder) Reset() {
	r.mounts = nil
}
