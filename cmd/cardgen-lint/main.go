package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-cardgen"
	"github.com/goliatone/go-cardgen/pkg/cards"
	"github.com/goliatone/go-cardgen/pkg/hostconfig"
	"github.com/goliatone/go-cardgen/pkg/schema"
	"github.com/goliatone/go-cardgen/pkg/version"
)

type violation struct {
	file     string
	location string
	kind     string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] paths...\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nReport validation events (unknown or disallowed types, clamped timers, version gaps) in card documents.\n\n"); err != nil {
			panic(err)
		}
		flag.PrintDefaults()
	}
	targetVersion := flag.String("target-version", "", "pin the schema version documents are checked against")
	hostConfig := flag.String("host-config", "", "host configuration file (JSON or YAML)")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts := []cards.ParseOption{
		cards.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	if *targetVersion != "" {
		v, err := version.Parse(*targetVersion)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid target version: %v\n", err)
			os.Exit(2)
		}
		opts = append(opts, cards.WithTargetVersion(v))
	}
	if *hostConfig != "" {
		cfg, err := hostconfig.LoadFile(*hostConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load host config: %v\n", err)
			os.Exit(2)
		}
		opts = append(opts, cards.WithHostConfig(cfg))
	}

	ctx := context.Background()
	loader := cardgen.NewLoader(schema.WithStdin(os.Stdin))

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, loader, path, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.SliceStable(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s: %s\n", v.file, v.location, v.kind, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(ctx context.Context, loader schema.Loader, path string, opts []cards.ParseOption) ([]violation, error) {
	src, err := schema.ParseLocation(path)
	if err != nil {
		return nil, err
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	res, err := cards.Parse(doc.Raw(), opts...)
	if res == nil {
		return nil, err
	}

	result := make([]violation, 0, len(res.Events))
	for _, ev := range res.Events {
		location := ev.Path
		if location == "" {
			location = "/"
		}
		result = append(result, violation{
			file:     path,
			location: location,
			kind:     ev.Kind.String(),
			message:  ev.Message,
		})
	}
	return result, nil
}
