package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "VGSALES_"
	envFileVar = envPrefix + "CONFIG"
)

var knownRegions = map[string]bool{ //nolint:gochecknoglobals // static lookup table
	"Global": true, "NA": true, "EU": true, "JP": true, "Other": true,
}

var knownPlotFormats = map[string]bool{ //nolint:gochecknoglobals // formats supported by plot.Save
	"png": true, "svg": true, "pdf": true, "jpg": true, "jpeg": true,
	"tif": true, "tiff": true, "eps": true,
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if VGSALES_CONFIG is set
//  3. env (prefix VGSALES_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envFileVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// VGSALES_RESULTS_FILE -> results_file. Comma separated regions become a list.
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))
		if key == "config" {
			return "", nil
		}
		if key == "regions" {
			parts := strings.Split(value, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return key, out
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.DataPath) == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.ResultsFile) == "":
		return fmt.Errorf("%w: results_file must not be empty", ErrInvalidConfig)
	case c.MinReviewCount < 0:
		return fmt.Errorf("%w: min_review_count must be >= 0", ErrInvalidConfig)
	case c.OutlierSigma <= 0:
		return fmt.Errorf("%w: outlier_sigma must be > 0", ErrInvalidConfig)
	case c.UserScoreScale <= 0:
		return fmt.Errorf("%w: user_score_scale must be > 0", ErrInvalidConfig)
	case c.PlotWidthIn <= 0 || c.PlotHeightIn <= 0:
		return fmt.Errorf("%w: plot size must be positive", ErrInvalidConfig)
	case !knownPlotFormats[strings.ToLower(c.PlotFormat)]:
		return fmt.Errorf("%w: unsupported plot_format %q", ErrInvalidConfig, c.PlotFormat)
	case c.YearMin != 0 && c.YearMax != 0 && c.YearMin > c.YearMax:
		return fmt.Errorf("%w: year_min %d exceeds year_max %d", ErrInvalidConfig, c.YearMin, c.YearMax)
	case len(c.Regions) == 0:
		return fmt.Errorf("%w: regions must not be empty", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Regions))
	for _, r := range c.Regions {
		if !knownRegions[r] {
			return fmt.Errorf("%w: unknown region %q", ErrInvalidConfig, r)
		}
		if seen[r] {
			return fmt.Errorf("%w: region %q listed twice", ErrInvalidConfig, r)
		}
		seen[r] = true
	}
	return nil
}
