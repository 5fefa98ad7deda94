package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-cardgen/pkg/cards"
	"github.com/goliatone/go-cardgen/pkg/render"
	rendertemplate "github.com/goliatone/go-cardgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-cardgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-cardgen/pkg/renderers/vanilla/components"
)

const (
	documentTemplate = "templates/card.tmpl"
	fragmentTemplate = "templates/fragment.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	idgen            func() string
	policy           *bluemonday.Policy
	chrome           ChromeClasses
	fragment         bool
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry overrides the per element type asset registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithIDGenerator sets the id source for sliders whose carousel has no id.
func WithIDGenerator(fn func() string) Option {
	return func(cfg *config) {
		cfg.idgen = fn
	}
}

// WithSanitizer replaces the policy applied to document supplied markup.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithChromeClasses overrides the document chrome classes.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.chrome = classes
	}
}

// WithFragment renders only the card markup without the document shell.
func WithFragment(enabled bool) Option {
	return func(cfg *config) {
		cfg.fragment = enabled
	}
}

// WithInlineStyles toggles embedding the default stylesheet.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	components   *components.Registry
	idgen        func() string
	policy       *bluemonday.Policy
	chrome       ChromeClasses
	fragment     bool
	inlineStyles bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		inlineStyles: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry(runtimeScript())
	}
	if cfg.policy == nil {
		cfg.policy = bluemonday.UGCPolicy()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		components:   cfg.components,
		idgen:        cfg.idgen,
		policy:       cfg.policy,
		chrome:       cfg.chrome,
		fragment:     cfg.fragment,
		inlineStyles: cfg.inlineStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render materializes root with a Swiper widget and writes the result through
// the document template.
func (r *Renderer) Render(ctx context.Context, root cards.Element, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	widget := NewWidget(r.idgen)
	node := cards.Render(root, options.RenderContext(widget))
	body := writeHTML(node, r.policy)

	name := documentTemplate
	if r.fragment {
		name = fragmentTemplate
	}
	result, err := r.templates.Render(name, r.templateData(root, node != nil, body, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) templateData(root cards.Element, rendered bool, body string, options render.RenderOptions) map[string]any {
	var types []string
	if rendered {
		types = cards.RenderedTypes(root)
	}
	stylesheets, scripts := r.components.Assets(types)
	if stylesheets == nil {
		stylesheets = []string{}
	}

	scriptData := make([]map[string]any, 0, len(scripts))
	for _, script := range scripts {
		scriptData = append(scriptData, map[string]any{
			"src":    script.Src,
			"inline": script.Inline,
			"defer":  script.Defer,
		})
	}

	title := options.Title
	if title == "" {
		title = "Card"
	}
	stylesheet := ""
	if r.inlineStyles {
		stylesheet = defaultStylesheet()
	}

	return map[string]any{
		"title":       title,
		"body":        body,
		"stylesheets": stylesheets,
		"stylesheet":  stylesheet,
		"scripts":     scriptData,
		"classes":     r.chrome.resolve(),
	}
}
