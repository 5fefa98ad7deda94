package tui

import "io"

// OutputFormat controls how the rendered card is serialized.
type OutputFormat string

const (
	// OutputFormatText emits a human-friendly plain text transcript.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON emits the slide transcript as application/json.
	OutputFormatJSON OutputFormat = "json"
)

// Theme captures optional prefixes the renderer applies when printing. Keep
// minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	SlidePrefix string
	ImagePrefix string
	Indent      string
}

func defaultTheme() Theme {
	return Theme{
		SlidePrefix: "--- ",
		ImagePrefix: "[image",
		Indent:      "  ",
	}
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the pager.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints slides.
func WithOutput(out io.Writer) Option {
	return func(r *Renderer) {
		r.out = out
	}
}

// WithInteractive pages through each carousel with the prompt driver before
// returning the transcript.
func WithInteractive(enabled bool) Option {
	return func(r *Renderer) {
		r.interactive = enabled
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes. Empty fields keep defaults.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		if theme.SlidePrefix != "" {
			r.theme.SlidePrefix = theme.SlidePrefix
		}
		if theme.ImagePrefix != "" {
			r.theme.ImagePrefix = theme.ImagePrefix
		}
		if theme.Indent != "" {
			r.theme.Indent = theme.Indent
		}
	}
}
