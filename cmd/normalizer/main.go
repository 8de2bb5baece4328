// Command instance-normalizer merges cloud instance pricing exports into one
// CSV sorted by monthly on-demand cost.
//
// Usage:
//
//	instance-normalizer --data-dir data --output all_instances.csv
//	instance-normalizer --config normalizer.yaml --summary
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/zgpcy/instance-normalizer/internal/clock"
	"github.com/zgpcy/instance-normalizer/internal/collector"
	"github.com/zgpcy/instance-normalizer/internal/config"
	"github.com/zgpcy/instance-normalizer/internal/logger"
	"github.com/zgpcy/instance-normalizer/internal/normalizer"
	"github.com/zgpcy/instance-normalizer/internal/provider"
	"github.com/zgpcy/instance-normalizer/internal/summary"
	"github.com/zgpcy/instance-normalizer/internal/version"
)

// flag name for each provider's input path
var sourceFlags = map[string]provider.ProviderType{
	"aws":          provider.ProviderAWS,
	"azure":        provider.ProviderAzure,
	"gcp":          provider.ProviderGCP,
	"digitalocean": provider.ProviderDigitalOcean,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "instance-normalizer",
		Usage:     "Normalize AWS, Azure, GCP and Digital Ocean instance pricing exports into one CSV",
		Version:   version.String(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file (defaults are used when empty)",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Directory that relative input and output paths are resolved against",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output CSV path",
			},
			&cli.StringFlag{
				Name:  "aws",
				Usage: "AWS export path",
			},
			&cli.StringFlag{
				Name:  "azure",
				Usage: "Azure export path",
			},
			&cli.StringFlag{
				Name:  "gcp",
				Usage: "GCP export path",
			},
			&cli.StringFlag{
				Name:  "digitalocean",
				Usage: "Digital Ocean export path",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (text, json)",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write run metrics to this file in Prometheus text format",
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "Print a per-provider summary table to stdout",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			log := logger.NewWithFormat(cfg.LogLevel, cfg.LogFormat, stderr).
				WithFields("run_id", uuid.NewString())
			return run(c.Context, cfg, log, stdout)
		},
	}
}

// loadConfig reads the config file (or defaults) and applies flag overrides
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	for name, p := range sourceFlags {
		if c.IsSet(name) {
			cfg.SetSourcePath(p, c.String(name))
		}
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.IsSet("metrics-file") {
		cfg.MetricsFile = c.String("metrics-file")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.Bool("summary")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, stdout io.Writer) error {
	log.Info("Instance normalizer starting",
		"version", version.Version,
		"data_dir", cfg.DataDir,
		"output", cfg.OutputPath())

	metrics := collector.New(clock.RealClock{})
	start := metrics.Now()

	written, err := normalize(ctx, cfg, log, metrics, stdout)
	if err != nil {
		metrics.ObserveFailure(start)
	} else {
		metrics.ObserveSuccess(start, written)
	}

	if path := cfg.MetricsPath(); path != "" {
		if werr := metrics.WriteTextfile(path); werr != nil {
			log.Error("Failed to write metrics file", "path", path, "error", werr)
			if err == nil {
				err = werr
			}
		}
	}

	if err != nil {
		log.Error("Normalization failed", "error", err)
		if errors.Is(err, normalizer.ErrNoRecords) {
			return cli.Exit("no instance records survived filtering", 2)
		}
		return err
	}

	log.Info("Normalization complete", "records", written, "output", cfg.OutputPath())
	return nil
}

func normalize(ctx context.Context, cfg *config.Config, log *logger.Logger, metrics *collector.Metrics, stdout io.Writer) (int, error) {
	inputs, err := cfg.Inputs()
	if err != nil {
		return 0, err
	}

	n := normalizer.New(log, metrics)
	result, err := n.Run(ctx, inputs)
	if err != nil {
		return 0, err
	}

	if err := n.Write(cfg.OutputPath(), result.Records); err != nil {
		return 0, err
	}

	if cfg.Summary {
		if err := summary.Write(stdout, result.Stats); err != nil {
			return 0, fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return len(result.Records), nil
}
