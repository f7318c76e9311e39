// Package dataset loads the fixed-schema sales CSV into a model.Table.
package dataset

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/okian/vgsales/internal/domain/model"
)

// Loader reads the sales CSV. Column names are supplied programmatically;
// numeric cells that are empty or unparsable load as NaN.
type Loader struct {
	hasHeader bool
	nanValues []string
}

// NewLoader creates a Loader for header-less files.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		nanValues: []string{"NA", "NaN", "<nil>"},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load is a convenience wrapper around NewLoader(opts...).Load.
func Load(ctx context.Context, path string, opts ...Option) (*model.Table, error) {
	return NewLoader(opts...).Load(ctx, path)
}

// Load opens path and reads it into a table.
func (l *Loader) Load(ctx context.Context, path string) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataFormat, err)
	}
	defer f.Close()

	t, err := l.Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV from r.
func (l *Loader) Read(ctx context.Context, r io.Reader) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(l.hasHeader),
		dataframe.Names(model.Columns()...),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(numericTypes()),
		dataframe.NaNValues(l.nanValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataFormat, df.Err)
	}
	if got, want := df.Ncol(), len(model.Columns()); got != want {
		return nil, fmt.Errorf("%w: %d columns, want %d", ErrDataFormat, got, want)
	}

	return &model.Table{
		Name:      df.Col(model.ColName).Records(),
		Platform:  df.Col(model.ColPlatform).Records(),
		Year:      df.Col(model.ColYear).Float(),
		Genre:     df.Col(model.ColGenre).Records(),
		Publisher: df.Col(model.ColPublisher).Records(),

		NASales:     df.Col(model.ColNASales).Float(),
		EUSales:     df.Col(model.ColEUSales).Float(),
		JPSales:     df.Col(model.ColJPSales).Float(),
		OtherSales:  df.Col(model.ColOtherSales).Float(),
		GlobalSales: df.Col(model.ColGlobalSales).Float(),

		CriticScore: df.Col(model.ColCriticScore).Float(),
		CriticCount: df.Col(model.ColCriticCount).Float(),
		UserScore:   df.Col(model.ColUserScore).Float(),
		UserCount:   df.Col(model.ColUserCount).Float(),

		Rating: df.Col(model.ColRating).Records(),
	}, nil
}

func numericTypes() map[string]series.Type {
	return map[string]series.Type{
		model.ColYear:        series.Float,
		model.ColNASales:     series.Float,
		model.ColEUSales:     series.Float,
		model.ColJPSales:     series.Float,
		model.ColOtherSales:  series.Float,
		model.ColGlobalSales: series.Float,
		model.ColCriticScore: series.Float,
		model.ColCriticCount: series.Float,
		model.ColUserScore:   series.Float,
		model.ColUserCount:   series.Float,
	}
}
