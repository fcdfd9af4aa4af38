package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"spaceship-core/internal/config"
	"spaceship-core/internal/logging"
	"spaceship-core/internal/scenario"
	"spaceship-core/internal/telemetry"
)

//go:embed demo.yaml
var demoScenario []byte

func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain returns the process exit code so deferred log flushing runs before exit
func realMain(args []string) int {
	fs := flag.NewFlagSet("simcore", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML tunables overlaid on the defaults")
	scenarioPath := fs.String("scenario", "", "Scenario YAML (default: built-in demo wave)")
	frames := fs.Int("frames", 0, "Frames per run (default: the scenario's)")
	seeds := fs.Int("seeds", 1, "Number of runs, seeded scenario seed + 0..n-1")
	outDir := fs.String("out", "", "Directory for per-run telemetry CSV (disabled if empty)")
	trace := fs.Bool("trace", false, "Also write a msgpack frame trace per run into -out")
	logLevel := fs.String("log-level", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if err := run(logger, *configPath, *scenarioPath, *frames, *seeds, *outDir, *trace); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(logger *zap.Logger, configPath, scenarioPath string, frames, seeds int, outDir string, trace bool) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	var sc *scenario.Scenario
	var err error
	if scenarioPath != "" {
		sc, err = scenario.Load(scenarioPath, cfg)
	} else {
		sc, err = scenario.Parse(demoScenario, cfg)
	}
	if err != nil {
		return err
	}
	if frames <= 0 {
		frames = sc.Frames
	}
	if seeds < 1 {
		seeds = 1
	}
	if trace && outDir == "" {
		return errors.New("-trace needs -out")
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}
		if err := cfg.WriteYAML(filepath.Join(outDir, "config.yaml")); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < seeds; i++ {
		runSC := *sc
		runSC.Seed = sc.Seed + uint64(i)
		g.Go(func() error {
			return runOne(ctx, logger, cfg, &runSC, frames, outDir, trace)
		})
	}
	return g.Wait()
}

func runOne(ctx context.Context, logger *zap.Logger, cfg *config.Config, sc *scenario.Scenario,
	frames int, outDir string, trace bool) (err error) {
	runID := uuid.NewString()
	log := logger.With(zap.String("run", runID), zap.Uint64("seed", sc.Seed))

	var opts scenario.Options
	opts.Logger = log
	if outDir != "" {
		base := filepath.Join(outDir, fmt.Sprintf("seed-%d", sc.Seed))
		if opts.Telemetry, err = telemetry.Create(base + ".csv"); err != nil {
			return err
		}
		defer closeInto(&err, opts.Telemetry.Close)
		if trace {
			if opts.Trace, err = scenario.CreateTrace(base + ".msgpack"); err != nil {
				return err
			}
			defer closeInto(&err, opts.Trace.Close)
		}
	}

	log.Info("run starting", zap.Int("frames", frames), zap.Int("enemies", len(sc.Enemies)))
	sum, err := scenario.NewHost(sc, cfg, opts).Run(ctx, frames)
	log.Info("run finished",
		zap.Int("frames", sum.Frames),
		zap.Float64("mean_speed", sum.MeanSpeed),
		zap.Float64("mean_speed_stddev", sum.MeanSpeedStdDev),
		zap.Float64("peak_speed", sum.PeakSpeed),
		zap.Int("enemy_hits", sum.EnemyHits),
		zap.Float64("ship_damage", sum.ShipDamage),
		zap.String("digest", sum.FinalDigest),
	)
	return errors.Wrapf(err, "seed %d", sc.Seed)
}

func closeInto(dst *error, closeFn func() error) {
	if err := closeFn(); err != nil && *dst == nil {
		*dst = err
	}
}
