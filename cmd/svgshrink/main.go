package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/pipeline"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var (
		configPath = flag.String("config", "", "path to a JSON configuration file (default preset if omitted)")
		preset     = flag.String("preset", "", "preset bundle to start from: default, safe, or none (ignored if -config is set)")
		strict     = flag.Bool("strict", false, "parse with the strict XML decoder instead of the permissive HTML-derived one")
		output     = flag.String("o", "", "output path (stdout if omitted)")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath, *preset)
	if err != nil {
		logger.Error("loading configuration", "error", err)
		os.Exit(1)
	}

	mode := pipeline.ParsePermissive
	if *strict {
		mode = pipeline.ParseStrict
	}

	var in io.Reader = os.Stdin
	args := flag.Args()
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			logger.Error("opening input", "path", args[0], "error", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	result, err := pipeline.Run(in, mode, cfg, dom.DefaultWriteOptions())
	if err != nil {
		logger.Error("running pipeline", "error", err)
		os.Exit(1)
	}
	for _, w := range result.Warnings {
		logger.Warn(w.Error())
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			logger.Error("creating output", "path", *output, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if _, err := out.Write(result.Output); err != nil {
		logger.Error("writing output", "error", err)
		os.Exit(1)
	}
}

func loadConfig(configPath, preset string) (*pipeline.Config, error) {
	switch {
	case configPath != "":
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		return pipeline.ParseConfig(data)
	case preset != "":
		return pipeline.Preset(preset)
	default:
		return pipeline.DefaultConfig(), nil
	}
}
