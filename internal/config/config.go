// Package config loads the configuration of the regrid command
// from defaults, a YAML file, REGRID_ environment variables
// and command line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/powerbi"
	"github.com/domonda/go-regrid/tablevisual"
)

const (
	// EnvPrefix is the prefix of environment variables.
	// A double underscore separates nested keys,
	// for example REGRID_GRID__ROW_FORM sets grid.row_form.
	EnvPrefix = "REGRID_"

	DefaultAddr   = ":8080"
	DefaultFormat = "html"
	DefaultWidth  = 800
	DefaultHeight = 600
)

// DefaultFiles are looked up in the working directory
// if no config file is passed to Load.
var DefaultFiles = []string{"regrid.yaml", "regrid.yml"}

// Formats lists the valid output formats.
var Formats = []string{"html", "json", "csv", "text", "markdown"}

// SQLDrivers lists the database/sql driver names
// the command links in.
var SQLDrivers = []string{"sqlite", "postgres"}

// flagKeys maps flag names to config keys
// where the name is not the key with dashes as underscores.
var flagKeys = map[string]string{
	"sort":            "grid.sort",
	"fixed-header":    "grid.fixed_header",
	"camel-case-keys": "grid.camel_case_keys",
	"row-form":        "grid.row_form",
	"render-mode":     "grid.render_mode",
	"date-layout":     "grid.date_layout",
	"height-padding":  "grid.height_padding",
}

type Config struct {
	LogLevel  string     `koanf:"log_level"`
	Addr      string     `koanf:"addr"`
	Format    string     `koanf:"format"`
	Width     float64    `koanf:"width"`
	Height    float64    `koanf:"height"`
	SQLDriver string     `koanf:"sql_driver"`
	SQLDSN    string     `koanf:"sql_dsn"`
	Grid      GridConfig `koanf:"grid"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// GridConfig mirrors tablevisual.GridSettings.
type GridConfig struct {
	Sort          bool    `koanf:"sort"`
	FixedHeader   bool    `koanf:"fixed_header"`
	CamelCaseKeys bool    `koanf:"camel_case_keys"`
	RowForm       string  `koanf:"row_form"`
	RenderMode    string  `koanf:"render_mode"`
	DateLayout    string  `koanf:"date_layout"`
	HeightPadding float64 `koanf:"height_padding"`
}

func defaults() map[string]any {
	grid := tablevisual.DefaultSettings().Grid
	return map[string]any{
		"log_level":            zerolog.InfoLevel.String(),
		"addr":                 DefaultAddr,
		"format":               DefaultFormat,
		"width":                DefaultWidth,
		"height":               DefaultHeight,
		"sql_driver":           SQLDrivers[0],
		"sql_dsn":              "",
		"grid.sort":            grid.Sort,
		"grid.fixed_header":    grid.FixedHeader,
		"grid.camel_case_keys": grid.CamelCaseKeys,
		"grid.row_form":        grid.RowForm,
		"grid.render_mode":     string(grid.RenderMode),
		"grid.date_layout":     grid.DateLayout,
		"grid.height_padding":  grid.HeightPadding,
	}
}

// Load returns the validated configuration.
// If configFile is empty, then the first existing of DefaultFiles is used.
// Only flags that were changed override other sources,
// flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configFile == "" {
		for _, name := range DefaultFiles {
			if _, err := os.Stat(name); err == nil {
				configFile = name
				break
			}
		}
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		err = k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = configFile
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate returns all invalid values joined as one error.
func (c *Config) Validate() error {
	var errs []error
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log_level: %w", err))
	}
	if !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("invalid format %q, expected one of %s", c.Format, strings.Join(Formats, ", ")))
	}
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("negative viewport %gx%g", c.Width, c.Height))
	}
	if c.SQLDriver != "" && !slices.Contains(SQLDrivers, c.SQLDriver) {
		errs = append(errs, fmt.Errorf("invalid sql_driver %q, expected one of %s", c.SQLDriver, strings.Join(SQLDrivers, ", ")))
	}
	if _, ok := regrid.ParseRowForm(c.Grid.RowForm); !ok {
		errs = append(errs, fmt.Errorf("invalid grid.row_form %q", c.Grid.RowForm))
	}
	if !tablevisual.RenderMode(c.Grid.RenderMode).Valid() {
		errs = append(errs, fmt.Errorf("invalid grid.render_mode %q", c.Grid.RenderMode))
	}
	if c.Grid.HeightPadding < 0 {
		errs = append(errs, fmt.Errorf("negative grid.height_padding %g", c.Grid.HeightPadding))
	}
	return errors.Join(errs...)
}

// Level returns the parsed LogLevel or zerolog.InfoLevel.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Viewport returns Width and Height as viewport.
func (c *Config) Viewport() powerbi.Viewport {
	return powerbi.Viewport{Width: c.Width, Height: c.Height}
}

// Objects returns the grid configuration as "grid"
// property pane object for data views.
func (c *Config) Objects() powerbi.Objects {
	return powerbi.Objects{
		"grid": {
			"sort":          c.Grid.Sort,
			"fixedHeader":   c.Grid.FixedHeader,
			"camelCaseKeys": c.Grid.CamelCaseKeys,
			"rowForm":       c.Grid.RowForm,
			"renderMode":    c.Grid.RenderMode,
			"dateLayout":    c.Grid.DateLayout,
			"heightPadding": c.Grid.HeightPadding,
		},
	}
}
