package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ironsheep/stripe-orient/internal/config"
	"github.com/ironsheep/stripe-orient/internal/detection"
	"github.com/ironsheep/stripe-orient/internal/httpapi"
	"github.com/ironsheep/stripe-orient/internal/imaging"
	"github.com/ironsheep/stripe-orient/internal/logging"
	"github.com/ironsheep/stripe-orient/internal/report"
	"github.com/ironsheep/stripe-orient/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes
const (
	exitOK        = 0
	exitError     = 1
	exitNoPattern = 2
	exitAmbiguous = 3
	exitUsage     = 64
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	configPath, args, err := splitConfigFlag(args)
	if err != nil {
		fmt.Fprintf(stderr, "stripe-orient: %v\n", err)
		return exitUsage
	}

	cmd := "mcp"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "--version", "-v", "version":
		fmt.Fprintf(stdout, "stripe-orient %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return exitOK
	case "--help", "-h", "help":
		printUsage(stdout)
		return exitOK
	case "mcp", "serve", "rotate", "scan":
	default:
		fmt.Fprintf(stderr, "stripe-orient: unknown command %q\n\n", cmd)
		printUsage(stderr)
		return exitUsage
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "stripe-orient: %v\n", err)
		return exitError
	}

	// stdout is reserved for the MCP protocol and command output
	logger := logging.New(cfg.LogLevel, stderr, cfg.ConsoleLogs())
	logger.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Str("command", cmd).
		Msg("starting")

	switch cmd {
	case "mcp":
		srv := server.New(cfg, logger, Version)
		if err := srv.Serve(context.Background(), stdin, stdout); err != nil {
			logger.Error().Err(err).Msg("server error")
			return exitError
		}
		return exitOK

	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := httpapi.ListenAndServe(ctx, cfg.HTTP.Addr, httpapi.New(cfg, logger), logger); err != nil {
			logger.Error().Err(err).Msg("server error")
			return exitError
		}
		return exitOK

	case "rotate":
		if len(args) != 2 {
			fmt.Fprintln(stderr, "usage: stripe-orient rotate <input> <output>")
			return exitUsage
		}
		return runRotate(context.Background(), cfg, logger, args[0], args[1])

	default: // scan
		if len(args) != 1 {
			fmt.Fprintln(stderr, "usage: stripe-orient scan <image>")
			return exitUsage
		}
		return runScan(context.Background(), cfg, logger, args[0], stdout)
	}
}

// splitConfigFlag pulls a leading --config option off args.
func splitConfigFlag(args []string) (string, []string, error) {
	var path string
	for len(args) > 0 {
		arg := args[0]
		switch {
		case arg == "--config" || arg == "-config":
			if len(args) < 2 {
				return "", nil, errors.New("--config requires a file path")
			}
			path, args = args[1], args[2:]
		case strings.HasPrefix(arg, "--config="):
			path, args = strings.TrimPrefix(arg, "--config="), args[1:]
		default:
			return path, args, nil
		}
	}
	return path, args, nil
}

func loadImage(cfg *config.Config, path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, err
	}
	if err := imaging.CheckSize(img, cfg.Limits.MaxPixels); err != nil {
		return nil, err
	}
	return img, nil
}

func runRotate(ctx context.Context, cfg *config.Config, logger zerolog.Logger, in, out string) int {
	img, err := loadImage(cfg, in)
	if err != nil {
		logger.Error().Err(err).Str("path", in).Msg("cannot read image")
		return exitError
	}

	normalize := detection.NormalizeContext
	if !cfg.Scan.Parallel {
		normalize = detection.NormalizeSequential
	}

	rotated, m, err := normalize(ctx, img)
	switch {
	case errors.Is(err, detection.ErrNoPattern):
		logger.Warn().Str("path", in).Msg("no marker pattern found")
		return exitNoPattern
	case errors.Is(err, detection.ErrAmbiguousPattern):
		logger.Warn().Err(err).Str("path", in).Msg("image has conflicting markers")
		return exitAmbiguous
	case err != nil:
		logger.Error().Err(err).Msg("normalize failed")
		return exitError
	}

	if err := imaging.Save(rotated, out); err != nil {
		logger.Error().Err(err).Str("path", out).Msg("cannot write image")
		return exitError
	}

	logger.Info().
		Str("input", in).
		Str("output", out).
		Stringer("marker", m).
		Int("rotation", m.Rotation()).
		Msg("image normalized")
	return exitOK
}

func runScan(ctx context.Context, cfg *config.Config, logger zerolog.Logger, path string, stdout io.Writer) int {
	img, err := loadImage(cfg, path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("cannot read image")
		return exitError
	}

	markers, err := detection.FindMarkers(ctx, img, cfg.Scan.Parallel)
	if err != nil {
		logger.Error().Err(err).Msg("scan failed")
		return exitError
	}

	if err := report.NewScan(path, img.Bounds(), markers).WriteYAML(stdout); err != nil {
		logger.Error().Err(err).Msg("cannot write report")
		return exitError
	}
	return exitOK
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "stripe-orient - find the red/white stripe marker in an image and turn the image upright")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: stripe-orient [--config <file>] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  mcp                      MCP server over stdin/stdout (default)")
	fmt.Fprintln(w, "  serve                    HTTP server with POST /rotate")
	fmt.Fprintln(w, "  rotate <input> <output>  Write the upright image (exit 2: no marker, 3: ambiguous)")
	fmt.Fprintln(w, "  scan <image>             Print the markers found as YAML")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --config <file>  YAML, JSON or TOML config file")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  STRIPE_ORIENT_LOG_LEVEL=debug          Log level (debug, info, warn, error)")
	fmt.Fprintln(w, "  STRIPE_ORIENT_LOG_FORMAT=json          Log format (console, json)")
	fmt.Fprintln(w, "  STRIPE_ORIENT_HTTP_ADDR=:8080          HTTP listen address")
	fmt.Fprintln(w, "  STRIPE_ORIENT_HTTP_MAX_UPLOAD_BYTES=N  Largest accepted upload")
	fmt.Fprintln(w, "  STRIPE_ORIENT_MAX_PIXELS=N             Largest accepted image, 0 for no limit")
	fmt.Fprintln(w, "  STRIPE_ORIENT_SCAN_PARALLEL=false      Run the row and column scans sequentially")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs go to stderr; stdout carries the MCP protocol or command output.")
}
