// Package service runs the review-score vs sales analysis: the table is
// loaded once, review scores are masked once, and every configured region
// is then masked, regressed, reported and plotted in order.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/vgsales/internal/adapters/dataset"
	"github.com/okian/vgsales/internal/adapters/plot"
	"github.com/okian/vgsales/internal/adapters/report"
	"github.com/okian/vgsales/internal/adapters/workbook"
	"github.com/okian/vgsales/internal/domain/masking"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/regression"
	"github.com/okian/vgsales/pkg/logger"
	"github.com/okian/vgsales/pkg/metrics"
)

// Regression outcomes as recorded in metrics.
const (
	OutcomeReject       = "reject"
	OutcomeAccept       = "accept"
	OutcomeInsufficient = "insufficient_data"
	OutcomeDegenerate   = "degenerate"
	OutcomeError        = "error"
)

// MaskCounts reports how many rows each series kept after masking.
type MaskCounts struct {
	Critic int
	User   int
	Sales  int
	Pairs  int
}

// RegionOutcome is the result of one region's pipeline. Err is nil when
// the block and plot were written.
type RegionOutcome struct {
	Region    model.Region
	Result    regression.Result
	Band      masking.Band
	Counts    MaskCounts
	Plot      string
	Histogram string
	Duration  time.Duration
	Err       error
}

// Outcome returns the metric label for the region's result.
func (o RegionOutcome) Outcome() string {
	switch {
	case o.Err == nil && o.Result.Verdict.Significant():
		return OutcomeReject
	case o.Err == nil:
		return OutcomeAccept
	case errors.Is(o.Err, regression.ErrInsufficientData):
		return OutcomeInsufficient
	case errors.Is(o.Err, regression.ErrDegenerateFit):
		return OutcomeDegenerate
	default:
		return OutcomeError
	}
}

// Summary describes a finished run.
type Summary struct {
	RunID    string
	Rows     int
	Results  string
	Workbook string
	Regions  []RegionOutcome
	Duration time.Duration
}

// Failed returns the regions that did not produce a result.
func (s Summary) Failed() []RegionOutcome {
	var out []RegionOutcome
	for _, r := range s.Regions {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Service runs the analysis pipeline.
type Service struct {
	mu sync.Mutex

	// Components
	loader *dataset.Loader
	masker *masking.Masker
	report *report.Writer
	plots  *plot.Renderer

	// Configuration
	dataPath     string
	regions      []model.Region
	criticalT    float64
	failFast     bool
	histograms   bool
	workbookPath string

	// Logging
	logger logger.Logger
}

// New constructs a Service with the default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		loader:    dataset.NewLoader(),
		masker:    masking.New(),
		report:    report.NewWriter("results.txt"),
		plots:     plot.NewRenderer(),
		dataPath:  "Video_Game_Sales_as_of_Jan_2017.csv",
		regions:   model.Regions(),
		criticalT: regression.DefaultCriticalT,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes one full analysis. A load or report-truncate failure is
// returned immediately. Region failures are isolated unless fail-fast is
// set; either way Run returns ErrRegionFailed when any region failed, along
// with the Summary of everything that was attempted.
func (s *Service) Run(ctx context.Context) (sum Summary, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.logger == nil {
		s.logger = logger.Get()
	}

	start := time.Now()
	sum = Summary{
		RunID:   uuid.NewString(),
		Results: s.report.Path(),
	}
	log := s.logger.With(logger.String("run_id", sum.RunID))
	defer func() {
		sum.Duration = time.Since(start)
		metrics.RecordRun(float64(sum.Duration.Milliseconds()), time.Now().Unix())
	}()

	log.Info(ctx, "starting analysis",
		logger.String("data", s.dataPath),
		logger.Int("regions", len(s.regions)),
		logger.Bool("failFast", s.failFast),
	)

	table, err := s.load(ctx, log)
	if err != nil {
		return sum, err
	}
	sum.Rows = table.Len()

	scores, err := s.masker.ReviewScores(ctx, table)
	if err != nil {
		return sum, fmt.Errorf("mask review scores: %w", err)
	}
	metrics.UpdateRowsMasked("critic", "review_confidence", table.Len()-scores.Critic.ValidCount())
	metrics.UpdateRowsMasked("user", "review_confidence", table.Len()-scores.User.ValidCount())
	log.Debug(ctx, "review scores masked",
		logger.Int("critic", scores.Critic.ValidCount()),
		logger.Int("user", scores.User.ValidCount()),
	)

	if err := s.report.Truncate(ctx); err != nil {
		metrics.RecordArtifactError("report")
		return sum, err
	}

	for _, region := range s.regions {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		out := s.runRegion(ctx, log, table, scores, region)
		sum.Regions = append(sum.Regions, out)
		if out.Err != nil && s.failFast {
			log.Warn(ctx, "stopping at first failed region", logger.String("region", region.Identifier()))
			break
		}
	}

	if s.workbookPath != "" {
		if err := s.exportWorkbook(ctx, sum.Regions); err != nil {
			metrics.RecordArtifactError("workbook")
			return sum, err
		}
		metrics.RecordArtifact("workbook")
		sum.Workbook = s.workbookPath
	}

	if failed := sum.Failed(); len(failed) > 0 {
		return sum, fmt.Errorf("%w: %d of %d regions: %w",
			ErrRegionFailed, len(failed), len(sum.Regions), failed[0].Err)
	}

	log.Info(ctx, "analysis finished",
		logger.Int("regions", len(sum.Regions)),
		logger.Duration("duration", time.Since(start)),
	)
	return sum, nil
}

func (s *Service) load(ctx context.Context, log logger.Logger) (*model.Table, error) {
	start := time.Now()
	table, err := s.loader.Load(ctx, s.dataPath)
	metrics.RecordLoadLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordLoadFailure()
		log.Error(ctx, "failed to load data", logger.String("path", s.dataPath), logger.Error(err))
		return nil, err
	}
	metrics.RecordRowsLoaded(table.Len())
	log.Info(ctx, "data loaded",
		logger.Int("rows", table.Len()),
		logger.Duration("took", time.Since(start)),
	)
	return table, nil
}

// runRegion masks, regresses, plots and reports one region. The results
// block is appended last and only when every plot was written, so failed
// regions never leave a block. A plot may remain when a later step fails.
func (s *Service) runRegion(
	ctx context.Context,
	log logger.Logger,
	table *model.Table,
	scores masking.Scores,
	region model.Region,
) (out RegionOutcome) {
	start := time.Now()
	id := region.Identifier()
	log = log.With(logger.String("region", id))
	out.Region = region

	defer func() {
		out.Duration = time.Since(start)
		metrics.RecordRegionLatency(id, float64(out.Duration.Milliseconds()))
		metrics.RecordRegression(id, out.Outcome())
	}()

	sales, err := s.masker.Sales(ctx, table, region)
	if err != nil {
		out.Err = err
		log.Error(ctx, "failed to mask sales", logger.Error(err))
		return out
	}
	out.Band = sales.Band
	out.Counts = MaskCounts{
		Critic: scores.Critic.ValidCount(),
		User:   scores.User.ValidCount(),
		Sales:  sales.Values.ValidCount(),
	}
	metrics.UpdateRowsMasked(id, "outlier", table.Len()-out.Counts.Sales)
	metrics.UpdateSalesStdDev(id, sales.Band.StdDev)

	res, err := regression.Fit(scores.Critic, sales.Values, regression.WithCriticalT(s.criticalT))
	out.Result = res
	out.Counts.Pairs = res.N
	metrics.UpdateValidPairs(id, res.N)
	if err != nil {
		out.Err = err
		log.Error(ctx, "regression failed", logger.Int("pairs", res.N), logger.Error(err))
		return out
	}
	metrics.UpdateFit(id, res.Slope, res.TScore)
	log.Info(ctx, "regression fitted",
		logger.Int("pairs", res.N),
		logger.Float64("slope", res.Slope),
		logger.Float64("tStat", res.TScore),
		logger.String("verdict", string(res.Verdict)),
	)

	// The block is written only after every plot succeeds.
	out.Plot, err = s.plots.Scatter(ctx, plot.ScatterInput{
		Region: region,
		Critic: scores.Critic,
		User:   scores.User,
		Sales:  sales.Values,
		Fit:    res,
	})
	if err != nil {
		metrics.RecordArtifactError("plot")
		out.Err = err
		log.Error(ctx, "failed to render plot", logger.Error(err))
		return out
	}
	metrics.RecordArtifact("plot")
	log.Debug(ctx, "plot written", logger.String("path", out.Plot))

	if s.histograms {
		out.Histogram, err = s.plots.Histogram(ctx, region, sales.Values)
		if err != nil {
			metrics.RecordArtifactError("histogram")
			out.Err = err
			log.Error(ctx, "failed to render histogram", logger.Error(err))
			return out
		}
		metrics.RecordArtifact("histogram")
	}

	if err := s.report.Append(ctx, region, res); err != nil {
		metrics.RecordArtifactError("report")
		out.Err = err
		log.Error(ctx, "failed to write results block", logger.Error(err))
		return out
	}
	metrics.RecordArtifact("report")

	return out
}

func (s *Service) exportWorkbook(ctx context.Context, outcomes []RegionOutcome) error {
	rows := make([]workbook.Row, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, workbook.Row{Region: o.Region, Result: o.Result, Err: o.Err})
	}
	return workbook.Export(ctx, s.workbookPath, rows)
}
