package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/csvtable"
	"github.com/domonda/go-regrid/dom"
	"github.com/domonda/go-regrid/exceltable"
	"github.com/domonda/go-regrid/gridhtml"
	"github.com/domonda/go-regrid/internal/config"
	"github.com/domonda/go-regrid/powerbi"
	"github.com/domonda/go-regrid/sqltable"
	"github.com/domonda/go-regrid/tablevisual"
)

// InputTable is the table name input files
// are queried as with --sql-query.
const InputTable = "data"

type renderFlags struct {
	input      string
	output     string
	sqlQuery   string
	sortBy     string
	descending bool
	search     string
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a data file or SQL query result as grid",
		Long: `Render a data file or SQL query result as grid.

The input is a JSON VisualUpdateOptions or DataView document,
a CSV file with detected encoding and separator,
or the first sheet of an Excel workbook.
With --sql-query and an input file the file is queried
as table "` + InputTable + `", without input file the query
is executed with --sql-driver and --sql-dsn.`,
		Example: `  regrid render --input members.csv --format text
  regrid render --input dataview.json --output grid.html --width 1024 --height 768
  regrid render --sql-driver postgres --sql-dsn "$DATABASE_URL" --sql-query "SELECT name, joined FROM members"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out bytes.Buffer
			if err := runRender(cmd.Context(), a.cfg, &a.log, f, &out); err != nil {
				return err
			}
			if f.output != "" {
				return fs.File(f.output).WriteAll(out.Bytes())
			}
			_, err := cmd.OutOrStdout().Write(out.Bytes())
			return err
		},
	}

	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input file (.json, .csv, .tsv, .txt, .xlsx, .xlsm)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&f.sqlQuery, "sql-query", "", "SQL query for the input file or database")
	cmd.Flags().StringVar(&f.sortBy, "sort-by", "", "column name or key to sort by")
	cmd.Flags().BoolVar(&f.descending, "descending", false, "sort descending")
	cmd.Flags().StringVar(&f.search, "search", "", "only render rows containing the text")
	cmd.Flags().String("sql-driver", "", "database/sql driver ("+strings.Join(config.SQLDrivers, "|")+")")
	cmd.Flags().String("sql-dsn", "", "database connection string")
	cmd.Flags().StringP("format", "f", "", "output format ("+strings.Join(config.Formats, "|")+")")
	cmd.Flags().Float64("width", 0, "viewport width in pixels")
	cmd.Flags().Float64("height", 0, "viewport height in pixels")
	cmd.Flags().Bool("sort", true, "make columns sortable")
	cmd.Flags().Bool("fixed-header", true, "keep the header row visible when scrolling")
	cmd.Flags().Bool("camel-case-keys", true, "camel-case the keys of row objects")
	cmd.Flags().String("row-form", "", "shape rows as objects or arrays")
	cmd.Flags().String("date-layout", "", "Go time layout of date columns")
	cmd.Flags().Float64("height-padding", 0, "pixels subtracted from the viewport height")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// runRender loads the input, updates a table visual with it
// and writes the result in cfg.Format to w.
func runRender(ctx context.Context, cfg *config.Config, log *zerolog.Logger, f renderFlags, w io.Writer) error {
	options, err := loadUpdateOptions(ctx, cfg, f)
	if err != nil {
		return err
	}

	visual, err := tablevisual.New(powerbi.ConstructorOptions{Element: dom.NewElement("body"), Logger: log})
	if err != nil {
		return err
	}
	if err = visual.Update(ctx, options); err != nil {
		return err
	}

	grid := visual.Grid()
	if f.search != "" {
		gridConfig := grid.Config()
		gridConfig.Search = f.search
		if err = grid.UpdateConfig(gridConfig).ForceRender(); err != nil {
			return err
		}
	}
	if f.sortBy != "" {
		col := slices.IndexFunc(grid.Config().Columns, func(c gridhtml.Column) bool {
			return c.Name == f.sortBy || c.Key() == f.sortBy
		})
		if col < 0 {
			return fmt.Errorf("no column %q to sort by", f.sortBy)
		}
		dir := gridhtml.Ascending
		if f.descending {
			dir = gridhtml.Descending
		}
		if err = grid.SortBy(col, dir); err != nil {
			return err
		}
	}

	switch cfg.Format {
	case "html":
		return visual.Target().Render(w)
	case "json":
		if f.search != "" || f.sortBy != "" {
			view, err := gridView(ctx, grid)
			if err != nil {
				return err
			}
			return writeJSON(w, view.Rows)
		}
		return writeJSON(w, visual.Data())
	case "csv":
		view, err := gridView(ctx, grid)
		if err != nil {
			return err
		}
		return csvtable.NewWriter().
			WithHeaderRow(true).
			WithDelimiter(',').
			WithNewLine("\n").
			WriteRows(w, view.Cols, view.Rows)
	case "text", "markdown":
		view, err := gridView(ctx, grid)
		if err != nil {
			return err
		}
		return writeTable(w, view, cfg.Format == "markdown")
	}
	return fmt.Errorf("unsupported format %q", cfg.Format)
}

// gridView returns the rows of grid in display order
// with the column names as titles.
func gridView(ctx context.Context, grid *gridhtml.Grid) (*regrid.StringsView, error) {
	rows, err := grid.Rows(ctx)
	if err != nil {
		return nil, err
	}
	columns := grid.Config().Columns
	names := make([]string, len(columns))
	for i := range columns {
		names[i] = columns[i].Name
	}
	return regrid.NewStringsView("", rows, names...), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, view *regrid.StringsView, markdown bool) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	header := make(table.Row, len(view.Cols))
	for i, col := range view.Cols {
		header[i] = col
	}
	t.AppendHeader(header)
	for _, strs := range view.Rows {
		row := make(table.Row, len(strs))
		for i, s := range strs {
			row[i] = s
		}
		t.AppendRow(row)
	}
	var rendered string
	if markdown {
		rendered = t.RenderMarkdown()
	} else {
		rendered = t.Render()
	}
	_, err := io.WriteString(w, rendered+"\n")
	return err
}

func loadUpdateOptions(ctx context.Context, cfg *config.Config, f renderFlags) (*powerbi.VisualUpdateOptions, error) {
	var (
		options    *powerbi.VisualUpdateOptions
		categories []regrid.Category
	)
	switch {
	case f.input != "":
		file := fs.File(f.input)
		data, err := file.ReadAll()
		if err != nil {
			return nil, err
		}
		switch ext := strings.ToLower(file.Ext()); ext {
		case ".json":
			options, err = powerbi.DecodeUpdateOptions(bytes.NewReader(data), cfg.Viewport())
			if err != nil {
				return nil, err
			}
			categories = options.FirstDataView().Categories()
		case ".csv", ".tsv", ".txt":
			categories, _, err = csvtable.ReadCategories(data, nil)
		case ".xlsx", ".xlsm", ".xltx", ".xltm":
			categories, err = exceltable.ReadCategories(bytes.NewReader(data), "", false)
		default:
			return nil, fmt.Errorf("unsupported input file type %q", ext)
		}
		if err != nil {
			return nil, fmt.Errorf("can't read %s: %w", f.input, err)
		}
		if f.sqlQuery != "" {
			db := sqltable.NewViewDB(InputTable, regrid.NewCategoriesView(file.Name(), categories))
			defer db.Close()
			categories, err = sqltable.QueryCategories(ctx, db, f.sqlQuery)
			if err != nil {
				return nil, err
			}
		}

	case f.sqlQuery != "":
		if cfg.SQLDriver == "" {
			return nil, errors.New("missing --sql-driver")
		}
		db, err := sql.Open(cfg.SQLDriver, cfg.SQLDSN)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		categories, err = sqltable.QueryCategories(ctx, db, f.sqlQuery)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.New("either --input or --sql-query is required")
	}

	if options == nil || f.sqlQuery != "" {
		options = &powerbi.VisualUpdateOptions{
			Viewport: cfg.Viewport(),
			Type:     powerbi.UpdateTypeAll,
			DataViews: []*powerbi.DataView{{
				Categorical: &powerbi.Categorical{Categories: categories},
			}},
		}
	}
	dataView := options.FirstDataView()
	if dataView != nil {
		if dataView.Metadata.Objects == nil {
			dataView.Metadata.Objects = make(powerbi.Objects)
		}
		if _, ok := dataView.Metadata.Objects["grid"]; !ok {
			dataView.Metadata.Objects["grid"] = cfg.Objects()["grid"]
		}
	}
	return options, nil
}
