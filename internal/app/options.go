package service

import (
	"github.com/okian/vgsales/internal/adapters/dataset"
	"github.com/okian/vgsales/internal/adapters/plot"
	"github.com/okian/vgsales/internal/adapters/report"
	"github.com/okian/vgsales/internal/domain/masking"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataPath sets the input CSV.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithLoader sets the dataset loader.
func WithLoader(l *dataset.Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithMasker sets the masker.
func WithMasker(m *masking.Masker) Option {
	return func(s *Service) {
		if m != nil {
			s.masker = m
		}
	}
}

// WithReportWriter sets the results file writer.
func WithReportWriter(w *report.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.report = w
		}
	}
}

// WithRenderer sets the plot renderer.
func WithRenderer(r *plot.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.plots = r
		}
	}
}

// WithRegions sets the regions to process, in report order.
func WithRegions(regions ...model.Region) Option {
	return func(s *Service) {
		if len(regions) > 0 {
			s.regions = append([]model.Region(nil), regions...)
		}
	}
}

// WithCriticalT sets the t threshold for rejecting the null hypothesis.
func WithCriticalT(t float64) Option {
	return func(s *Service) {
		if t > 0 {
			s.criticalT = t
		}
	}
}

// WithFailFast stops the run at the first failing region.
func WithFailFast(enabled bool) Option {
	return func(s *Service) {
		s.failFast = enabled
	}
}

// WithHistograms enables per-region sales histograms.
func WithHistograms(enabled bool) Option {
	return func(s *Service) {
		s.histograms = enabled
	}
}

// WithWorkbook enables an XLSX export of the results at path.
func WithWorkbook(path string) Option {
	return func(s *Service) {
		s.workbookPath = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
