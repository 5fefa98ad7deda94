package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	internalLoader "github.com/goliatone/go-cardgen/internal/loader"
	"github.com/goliatone/go-cardgen/pkg/cards"
	"github.com/goliatone/go-cardgen/pkg/hostconfig"
	"github.com/goliatone/go-cardgen/pkg/registry"
	"github.com/goliatone/go-cardgen/pkg/render"
	"github.com/goliatone/go-cardgen/pkg/renderers/vanilla"
	"github.com/goliatone/go-cardgen/pkg/schema"
	"github.com/goliatone/go-cardgen/pkg/version"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTypeRegistry parses documents against reg instead of the process-wide
// element registry.
func WithTypeRegistry(reg *registry.Registry[cards.Element]) Option {
	return func(o *Orchestrator) {
		o.types = reg
	}
}

// WithHostConfig sets the base host configuration. Theme tokens, when a
// selector is configured, are applied on top.
func WithHostConfig(cfg hostconfig.HostConfig) Option {
	return func(o *Orchestrator) {
		o.hostConfig = cfg.Normalize()
	}
}

// WithThemeSelector derives host configuration from a go-theme selection.
// name and variant are the defaults used when a request names no theme.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeName = name
		o.themeVariant = variant
	}
}

// WithTargetVersion pins the schema version documents are parsed against.
func WithTargetVersion(v version.Version) Option {
	return func(o *Orchestrator) {
		o.targetVersion = v
	}
}

// WithSchemaTransformer registers a Transformer that mutates the parsed
// element tree before rendering.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithFailOnEvents makes Generate fail when parsing or transforming recorded
// any validation event. The partial response is still returned by Run.
func WithFailOnEvents(enabled bool) Option {
	return func(o *Orchestrator) {
		o.failOnEvents = enabled
	}
}

// WithLogger sets the logger used for parse and render diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the full pipeline from card document to rendered
// output. It applies sensible defaults (file/HTTP loader, vanilla renderer,
// default host configuration) while remaining open to dependency injection.
type Orchestrator struct {
	loader          schema.Loader
	registry        *render.Registry
	defaultRenderer string
	types           *registry.Registry[cards.Element]
	hostConfig      hostconfig.HostConfig
	themeSelector   theme.ThemeSelector
	themeName       string
	themeVariant    string
	targetVersion   version.Version
	transformer     Transformer
	failOnEvents    bool
	logger          *slog.Logger
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		hostConfig:      hostconfig.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a card document.
type Request struct {
	// Source identifies where the document lives. Optional when Document is
	// supplied.
	Source schema.Source

	// Document allows callers to bypass the loader when they already hold the
	// payload.
	Document *schema.Document

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant override the selector defaults.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request instructions such as design mode and
	// the render policy. Design mode also applies to parsing.
	RenderOptions render.RenderOptions
}

// Response is the outcome of a pipeline run.
type Response struct {
	Output      []byte
	ContentType string
	Renderer    string
	Root        cards.Element
	Events      cards.Events
	Version     version.Version
	HostConfig  hostconfig.HostConfig
}

// Generate executes the pipeline and returns the rendered bytes (HTML for the
// default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	resp, err := o.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Output, nil
}

// Run executes the loader → parser → transformer → renderer sequence. When
// WithFailOnEvents is set and parsing or transforming recorded events, the
// partial response is returned alongside the error. Response.Events holds
// every event recorded up to the point Run returned.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Response, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	hostCfg, err := o.resolveHostConfig(req)
	if err != nil {
		return nil, err
	}

	events := cards.NewEventLog()
	parseOpts := append(o.parseOptions(hostCfg, req.RenderOptions.DesignMode), cards.WithEventLog(events))
	result, err := cards.Parse(doc.Raw(), parseOpts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse document %s: %w", doc.Location(), err)
	}

	resp := &Response{
		Root:       result.Root,
		Events:     result.Events,
		Version:    result.Version,
		HostConfig: hostCfg,
	}

	// Transformers and renderers record into the same log as the parser.
	if err := o.applyTransformer(ctx, result.Root); err != nil {
		resp.Events = events.Events()
		return resp, err
	}
	resp.Events = events.Events()
	if o.failOnEvents && len(resp.Events) > 0 {
		return resp, fmt.Errorf("orchestrator: document %s: %w", doc.Location(), resp.Events)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return resp, err
	}

	options := req.RenderOptions
	if options.Logger == nil {
		options.Logger = o.logger
	}
	output, err := renderer.Render(ctx, result.Root, options)
	resp.Events = events.Events()
	if err != nil {
		return resp, fmt.Errorf("orchestrator: render output: %w", err)
	}

	resp.Output = output
	resp.ContentType = renderer.ContentType()
	resp.Renderer = renderer.Name()
	return resp, nil
}

func (o *Orchestrator) parseOptions(hostCfg hostconfig.HostConfig, designMode bool) []cards.ParseOption {
	opts := []cards.ParseOption{
		cards.WithHostConfig(hostCfg),
		cards.WithLogger(o.logger),
		cards.WithDesignMode(designMode),
	}
	if o.types != nil {
		opts = append(opts, cards.WithRegistry(o.types))
	}
	if !o.targetVersion.IsZero() {
		opts = append(opts, cards.WithTargetVersion(o.targetVersion))
	}
	return opts
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) resolveHostConfig(req Request) (hostconfig.HostConfig, error) {
	if o.themeSelector == nil {
		return o.hostConfig, nil
	}
	name, variant := o.themeName, o.themeVariant
	if req.ThemeName != "" {
		name = req.ThemeName
	}
	if req.ThemeVariant != "" {
		variant = req.ThemeVariant
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return hostconfig.HostConfig{}, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	cfg, err := hostconfig.FromSelection(o.hostConfig, selection)
	if err != nil {
		return hostconfig.HostConfig{}, fmt.Errorf("orchestrator: theme host config: %w", err)
	}
	return cfg, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, root cards.Element) error {
	if o.transformer == nil || root == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, root); err != nil {
		return fmt.Errorf("orchestrator: transform card: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.loader == nil {
		o.loader = internalLoader.New(schema.NewLoaderOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
