package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/okian/vgsales/internal/adapters/console"
	"github.com/okian/vgsales/internal/adapters/dataset"
	"github.com/okian/vgsales/internal/adapters/plot"
	"github.com/okian/vgsales/internal/adapters/report"
	app "github.com/okian/vgsales/internal/app"
	"github.com/okian/vgsales/internal/config"
	"github.com/okian/vgsales/internal/domain/masking"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/pkg/logger"
	"github.com/okian/vgsales/pkg/metrics"
)

// Process exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run performs one analysis and returns the process exit code.
func run(ctx context.Context, stdout, stderr io.Writer) int {
	// Initialize logging
	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		fmt.Fprintln(stderr, "failed to initialize logging: "+err.Error())
		return exitConfig
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config: "+err.Error())
		return exitConfig
	}

	// Fresh registry per run, labelled with the input file.
	metrics.Init(metrics.WithConstLabels(map[string]string{"dataset": filepath.Base(cfg.DataPath)}))

	if cfg.LogFormat == "json" {
		_ = logger.Init(logger.WithWriter(stderr), logger.WithFormat("json"))
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	regions := make([]model.Region, 0, len(cfg.Regions))
	for _, name := range cfg.Regions {
		r, err := model.ParseRegion(name)
		if err != nil {
			fmt.Fprintln(stderr, "invalid region: "+err.Error())
			return exitConfig
		}
		regions = append(regions, r)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error(ctx, "failed to create output directory", logger.String("dir", cfg.OutputDir), logger.Error(err))
		return exitFailed
	}

	svc := app.New(newOptions(cfg, regions, log)...)
	sum, runErr := svc.Run(ctx)

	if cfg.Summary && len(sum.Regions) > 0 {
		console.PrintSummary(stdout, sum)
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error(ctx, "failed to write metrics", logger.String("path", cfg.MetricsFile), logger.Error(err))
		}
	}

	if runErr != nil {
		log.Error(ctx, "analysis failed", logger.Error(runErr))
		return exitFailed
	}
	return exitOK
}

// newOptions maps configuration onto service options.
func newOptions(cfg *config.Config, regions []model.Region, log logger.Logger) []app.Option {
	opts := []app.Option{
		app.WithLogger(log),
		app.WithDataPath(cfg.DataPath),
		app.WithLoader(dataset.NewLoader(dataset.WithHeader(cfg.HasHeader))),
		app.WithMasker(masking.New(
			masking.WithMinReviewCount(cfg.MinReviewCount),
			masking.WithUserScoreScale(cfg.UserScoreScale),
			masking.WithOutlierSigma(cfg.OutlierSigma),
			masking.WithSampleStdDev(cfg.SampleStdDev),
			masking.WithYearRange(cfg.YearMin, cfg.YearMax),
		)),
		app.WithReportWriter(report.NewWriter(filepath.Join(cfg.OutputDir, cfg.ResultsFile))),
		app.WithRenderer(plot.NewRenderer(
			plot.WithDir(cfg.OutputDir),
			plot.WithFormat(cfg.PlotFormat),
			plot.WithSize(cfg.PlotWidthIn, cfg.PlotHeightIn),
		)),
		app.WithRegions(regions...),
		app.WithCriticalT(cfg.TCritical),
		app.WithFailFast(cfg.FailFast),
		app.WithHistograms(cfg.Histograms),
	}
	if cfg.WorkbookFile != "" {
		opts = append(opts, app.WithWorkbook(filepath.Join(cfg.OutputDir, cfg.WorkbookFile)))
	}
	return opts
}
