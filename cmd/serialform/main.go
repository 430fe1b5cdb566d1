package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/dgallion1/serialform/internal/config"
	"github.com/dgallion1/serialform/internal/docerr"
	"github.com/dgallion1/serialform/internal/logfields"
	"github.com/dgallion1/serialform/internal/pipeline"
	"github.com/dgallion1/serialform/internal/render"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Render struct {
		Output string `short:"o" help:"Output directory (overrides output_dir)"`
		Format string `short:"f" help:"Output format: html or docx (overrides output_format)"`
	} `cmd:"" help:"Render the serialized-form page"`

	Check struct{} `cmd:"" help:"Load configuration, documentation set and messages without rendering"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("serialform"),
		kong.Description("Builds the serialized-form page of a documentation set."))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", logfields.Error(err))
		os.Exit(docerr.ExitCode(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch kctx.Command() {
	case "render":
		path, err := runRender(ctx, cfg, CLI.Render.Output, CLI.Render.Format, logger)
		if err != nil {
			slog.Error("Render failed", logfields.Error(err))
			os.Exit(docerr.ExitCode(err))
		}
		slog.Info("Page written", logfields.Path(path))
	case "check":
		if err := runCheck(cfg, os.Stdout, logger); err != nil {
			slog.Error("Check failed", logfields.Error(err))
			os.Exit(docerr.ExitCode(err))
		}
	}
}

// runRender renders the page once and returns the written file's path.
func runRender(ctx context.Context, cfg config.Config, outputDir, format string, log *slog.Logger) (string, error) {
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if format != "" {
		cfg.OutputFormat = format
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	f, err := render.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return "", docerr.ConfigInvalid("output_format", err.Error())
	}

	gen, err := pipeline.Prepare(cfg, pipeline.WithLogger(log))
	if err != nil {
		return "", err
	}
	pr := &render.FilePrinter{
		Dir:    cfg.OutputDir,
		Format: f,
		HTML:   render.HTMLOptions{Stylesheet: cfg.Stylesheet},
	}
	if err := gen.Run(ctx, pr, string(f)); err != nil {
		return "", err
	}
	return pr.Path, nil
}

// runCheck loads everything a render needs and prints a summary.
func runCheck(cfg config.Config, out io.Writer, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	gen, err := pipeline.Prepare(cfg, pipeline.WithLogger(log))
	if err != nil {
		return err
	}

	set := gen.Set()
	classes := set.Classes()
	visible := 0
	for _, c := range classes {
		if gen.Writer().IsVisibleClass(c) {
			visible++
		}
	}
	fmt.Fprintf(out, "packages: %d\n", len(set.Packages))
	fmt.Fprintf(out, "classes:  %d\n", len(classes))
	fmt.Fprintf(out, "included: %d\n", len(set.IncludedTypes()))
	fmt.Fprintf(out, "visible:  %d\n", visible)
	fmt.Fprintf(out, "language: %s\n", cfg.Language)
	return nil
}
