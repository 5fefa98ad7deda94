package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/goliatone/go-cardgen"
	"github.com/goliatone/go-cardgen/pkg/hostconfig"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/render"
	"github.com/goliatone/go-cardgen/pkg/renderers/tui"
	"github.com/goliatone/go-cardgen/pkg/renderers/vanilla"
	"github.com/goliatone/go-cardgen/pkg/schema"
	"github.com/goliatone/go-cardgen/pkg/version"
)

func main() {
	source := flag.String("source", "-", "card document path, URL, or - for stdin")
	renderer := flag.String("renderer", "vanilla", "renderer to use (vanilla, tui)")
	output := flag.String("output", "", "output file (stdout if empty)")
	hostConfig := flag.String("host-config", "", "host configuration file (JSON or YAML)")
	preset := flag.String("preset", "", "JSON preset applied to elements by id")
	design := flag.Bool("design", false, "render in design mode (no autoplay, hidden elements shown)")
	targetVersion := flag.String("target-version", "", "pin the schema version documents are parsed against")
	fragment := flag.Bool("fragment", false, "vanilla: emit card markup without the document shell")
	title := flag.String("title", "", "document title")
	format := flag.String("format", "text", "tui: output format (text, json)")
	interactive := flag.Bool("interactive", false, "tui: page through carousels interactively")
	failOnEvents := flag.Bool("fail-on-events", false, "exit non-zero when the document has validation events")
	timeout := flag.Duration("timeout", 10*time.Second, "timeout for URL sources")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src, err := schema.ParseLocation(*source)
	if err != nil {
		fatal(logger, "invalid source", err)
	}

	registry := render.NewRegistry()
	htmlRenderer, err := vanilla.New(vanilla.WithFragment(*fragment))
	if err != nil {
		fatal(logger, "configure vanilla renderer", err)
	}
	registry.MustRegister(htmlRenderer)
	termRenderer, err := tui.New(
		tui.WithInteractive(*interactive),
		tui.WithOutputFormat(tui.OutputFormat(*format)),
		tui.WithOutput(os.Stderr),
	)
	if err != nil {
		fatal(logger, "configure tui renderer", err)
	}
	registry.MustRegister(termRenderer)

	loader := cardgen.NewLoader(
		schema.WithStdin(os.Stdin),
		schema.WithHTTPFallback(*timeout),
	)

	options := []orchestrator.Option{
		orchestrator.WithLoader(loader),
		orchestrator.WithRegistry(registry),
		orchestrator.WithLogger(logger),
		orchestrator.WithFailOnEvents(*failOnEvents),
	}
	if *hostConfig != "" {
		cfg, err := hostconfig.LoadFile(*hostConfig)
		if err != nil {
			fatal(logger, "load host config", err)
		}
		options = append(options, orchestrator.WithHostConfig(cfg))
	}
	if *targetVersion != "" {
		v, err := version.Parse(*targetVersion)
		if err != nil {
			fatal(logger, "invalid target version", err)
		}
		options = append(options, orchestrator.WithTargetVersion(v))
	}
	if *preset != "" {
		transformer, err := orchestrator.NewJSONPresetTransformerFromFS(os.DirFS("."), *preset)
		if err != nil {
			fatal(logger, "load preset", err)
		}
		options = append(options, orchestrator.WithSchemaTransformer(transformer))
	}

	gen := orchestrator.New(options...)
	resp, err := gen.Run(ctx, orchestrator.Request{
		Source:   src,
		Renderer: *renderer,
		RenderOptions: render.RenderOptions{
			DesignMode: *design,
			Title:      *title,
		},
	})
	if err != nil {
		fatal(logger, "generate card", err)
	}
	logger.Debug("card rendered",
		slog.String("renderer", resp.Renderer),
		slog.String("version", resp.Version.String()),
		slog.Int("events", len(resp.Events)),
	)

	if *output != "" {
		if err := os.WriteFile(*output, resp.Output, 0o644); err != nil {
			fatal(logger, "write output", err)
		}
		logger.Info("card written", slog.String("path", *output))
		return
	}
	if _, err := os.Stdout.Write(resp.Output); err != nil {
		fatal(logger, "write output", err)
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	fmt.Fprintln(os.Stderr, "cardgen:", err)
	os.Exit(1)
}
