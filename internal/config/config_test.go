package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/powerbi"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("format", "", "")
	flags.Float64("width", 0, "")
	flags.Bool("sort", false, "")
	flags.String("row-form", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, "", cfg.File)
	require.Equal(t, DefaultAddr, cfg.Addr)
	require.Equal(t, DefaultFormat, cfg.Format)
	require.Equal(t, powerbi.Viewport{Width: DefaultWidth, Height: DefaultHeight}, cfg.Viewport())
	require.Equal(t, zerolog.InfoLevel, cfg.Level())
	require.Equal(t, "sqlite", cfg.SQLDriver)
	require.Equal(t, GridConfig{
		Sort:          true,
		FixedHeader:   true,
		CamelCaseKeys: true,
		RowForm:       "objects",
		RenderMode:    "recreate",
		DateLayout:    regrid.DefaultDateLayout,
		HeightPadding: 8,
	}, cfg.Grid)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfigFile(t, `
format: csv
width: 1024
log_level: debug
grid:
  sort: false
  row_form: arrays
  height_padding: 20
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, path, cfg.File)
	require.Equal(t, "csv", cfg.Format)
	require.Equal(t, 1024.0, cfg.Width)
	require.Equal(t, zerolog.DebugLevel, cfg.Level())
	require.False(t, cfg.Grid.Sort)
	require.Equal(t, "arrays", cfg.Grid.RowForm)
	require.Equal(t, 20.0, cfg.Grid.HeightPadding)
	require.True(t, cfg.Grid.FixedHeader, "default kept")

	t.Setenv("REGRID_FORMAT", "json")
	t.Setenv("REGRID_GRID__ROW_FORM", "objects")
	cfg, err = Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Format, "env overrides file")
	require.Equal(t, "objects", cfg.Grid.RowForm)

	cfg, err = Load(path, testFlags(t, "--format", "text", "--sort", "--row-form", "arrays"))
	require.NoError(t, err)
	require.Equal(t, "text", cfg.Format, "flag overrides env")
	require.True(t, cfg.Grid.Sort)
	require.Equal(t, "arrays", cfg.Grid.RowForm)
	require.Equal(t, 1024.0, cfg.Width, "unchanged flag ignored")
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "regrid.yml"), []byte("addr: :9090\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, "regrid.yml", cfg.File)
	require.Equal(t, ":9090", cfg.Addr)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)

	_, err = Load(writeConfigFile(t, "format: [\n"), nil)
	require.Error(t, err)

	_, err = Load(writeConfigFile(t, "format: pdf\ngrid:\n  row_form: columns\n  render_mode: repaint\n"), nil)
	require.ErrorContains(t, err, `invalid format "pdf"`)
	require.ErrorContains(t, err, `invalid grid.row_form "columns"`)
	require.ErrorContains(t, err, `invalid grid.render_mode "repaint"`)

	_, err = Load(writeConfigFile(t, "log_level: loud\n"), nil)
	require.ErrorContains(t, err, "invalid log_level")
}

func TestConfig_Objects(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("", testFlags(t, "--row-form", "arrays"))
	require.NoError(t, err)

	dataView := &powerbi.DataView{Metadata: powerbi.DataViewMetadata{Objects: cfg.Objects()}}
	require.Equal(t, "arrays", dataView.Metadata.Objects["grid"]["rowForm"])
	require.Equal(t, true, dataView.Metadata.Objects["grid"]["sort"])
}
