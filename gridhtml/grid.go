// Package gridhtml renders shaped rows as a sortable HTML grid
// into a dom.Element container.
//
// A Grid is configured with a Config holding the columns,
// the row data and the size of the grid. Rendering writes
// a wrapper element with the table markup into the container,
// replacing any grid previously rendered into it.
//
// Example usage:
//
//	grid := gridhtml.New(gridhtml.Config{
//	    Columns: []gridhtml.Column{{Name: "Name"}, {Name: "Order Date"}},
//	    Data:    rows, // []regrid.RowObject with keys "name" and "orderDate"
//	    Width:   "640px",
//	    Height:  "472px",
//	    Sort:    true,
//	})
//	err := grid.Render(container)
package gridhtml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"slices"
	"strings"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/dom"
)

// ContainerClass is the class of the element
// a Grid appends to its container.
const ContainerClass = "regrid-container"

// NotFoundText is shown in place of rows if there are none.
const NotFoundText = "No matching records found"

var (
	// ErrNotRendered is returned by ForceRender
	// if the grid was never rendered into a container.
	ErrNotRendered = errors.New("grid was not rendered into a container")

	// ErrNotSortable is returned by SortBy for columns
	// that can't be sorted.
	ErrNotSortable = errors.New("column is not sortable")

	// ErrNilContainer is returned by Render for a nil container.
	ErrNilContainer = errors.New("nil container")
)

// Column describes a grid column.
type Column struct {
	// Name is shown in the header cell.
	Name string
	// ID selects the value of RowObject data,
	// empty means regrid.Camelize(Name).
	ID string
	// Sort overrides Config.Sort for the column if not nil.
	Sort *bool
}

// Key returns the ID of the column or the camel-cased Name.
func (c *Column) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return regrid.Camelize(c.Name)
}

// Columns returns columns with the passed names.
func Columns(names ...string) []Column {
	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i].Name = name
	}
	return columns
}

// Config configures a Grid.
type Config struct {
	Columns []Column

	// Data holds the rows of the grid as one of
	// []regrid.RowObject, []map[string]string, [][]string
	// or a regrid.View.
	// Object rows are read by column key,
	// array rows and views by column index.
	Data any

	// Formatter formats the cells of regrid.View data.
	// Cells it doesn't support are formatted with fmt.Sprint.
	Formatter regrid.CellFormatter

	// Width and Height are CSS lengths of the grid wrapper,
	// empty values leave the dimension unset.
	Width  string
	Height string

	// FixedHeader keeps the header row visible
	// while the rows scroll inside the wrapper.
	FixedHeader bool

	// Sort enables sorting for all columns.
	Sort bool

	// DateLayout is used to compare date cells when sorting,
	// empty means regrid.DefaultDateLayout.
	DateLayout string

	// ClassName is added to the class of the wrapper element.
	ClassName string

	// Search filters the rows to those with a cell
	// containing the string case-insensitive.
	Search string
}

func (c *Config) sortable(col int) bool {
	if col < 0 || col >= len(c.Columns) {
		return false
	}
	if s := c.Columns[col].Sort; s != nil {
		return *s
	}
	return c.Sort
}

func (c *Config) wrapperStyle() template.CSS {
	var props []string
	if c.Width != "" {
		props = append(props, "width: "+c.Width)
	}
	if c.Height != "" {
		props = append(props, "height: "+c.Height)
	}
	props = append(props, "overflow: auto")
	return template.CSS(strings.Join(props, "; ")) //#nosec G203
}

// Grid renders its Config as HTML into a container element.
// A Grid is not safe for concurrent use.
type Grid struct {
	config    Config
	container *dom.Element
	wrapper   *dom.Element
	sortCol   int
	sortDir   Direction
}

// New returns a Grid for config without rendering it.
//
// The grid starts unsorted with the rows in data order.
// Call Render to write it into a container element,
// or WriteHTML to get the markup without a container.
// The config can be replaced later with UpdateConfig.
//
// Example:
//
//	grid := gridhtml.New(gridhtml.Config{
//	    Columns:     gridhtml.Columns("Name", "Joined"),
//	    Data:        rows, // []regrid.RowObject from Shaper.ShapeObjects
//	    Height:      "292px",
//	    FixedHeader: true,
//	    Sort:        true,
//	})
//	if err := grid.Render(container); err != nil {
//	    return err
//	}
func New(config Config) *Grid {
	return &Grid{config: config, sortCol: -1}
}

// Config returns the current configuration.
func (g *Grid) Config() Config {
	return g.config
}

// UpdateConfig replaces the configuration.
// The grid is not re-rendered, call ForceRender for that.
// A sort state for a column that no longer exists is reset.
func (g *Grid) UpdateConfig(config Config) *Grid {
	g.config = config
	if g.sortCol >= len(config.Columns) {
		g.sortCol, g.sortDir = -1, Unsorted
	}
	return g
}

// Container returns the element the grid was rendered into or nil.
func (g *Grid) Container() *dom.Element {
	return g.container
}

// Render renders the grid into container
// replacing any grid previously rendered into it.
func (g *Grid) Render(container *dom.Element) error {
	if container == nil {
		return ErrNilContainer
	}
	var buf bytes.Buffer
	if err := g.WriteHTML(context.Background(), &buf); err != nil {
		return err
	}
	if g.wrapper != nil && g.container != nil {
		g.container.RemoveChild(g.wrapper)
	}
	removeGrids(container)

	g.wrapper = dom.NewElement("div")
	g.wrapper.SetAttribute("class", ContainerClass)
	g.wrapper.SetInnerHTML(template.HTML(buf.String())) //#nosec G203
	container.AppendChild(g.wrapper)
	g.container = container
	return nil
}

// ForceRender renders the grid again into the container
// of the last Render call.
func (g *Grid) ForceRender() error {
	if g.container == nil {
		return ErrNotRendered
	}
	return g.Render(g.container)
}

// Destroy removes the rendered grid from its container.
// The grid can be rendered again afterwards.
func (g *Grid) Destroy() {
	if g.container != nil && g.wrapper != nil {
		g.container.RemoveChild(g.wrapper)
	}
	g.container = nil
	g.wrapper = nil
}

// SortBy sets the sort column and direction
// and re-renders the grid if it was rendered.
// Unsorted restores the data order.
func (g *Grid) SortBy(col int, dir Direction) error {
	if !g.config.sortable(col) {
		return fmt.Errorf("%w: %d", ErrNotSortable, col)
	}
	g.sortCol, g.sortDir = col, dir
	if dir == Unsorted {
		g.sortCol = -1
	}
	if g.container == nil {
		return nil
	}
	return g.ForceRender()
}

// SortState returns the sort column and direction,
// the column is -1 if the grid is unsorted.
func (g *Grid) SortState() (col int, dir Direction) {
	return g.sortCol, g.sortDir
}

// Rows returns the formatted rows in display order,
// filtered by Config.Search and sorted by the sort state.
func (g *Grid) Rows(ctx context.Context) ([][]string, error) {
	view, err := g.dataView()
	if err != nil {
		return nil, err
	}
	rows, err := regrid.FormatViewAsStrings(ctx, view, g.config.Formatter, false)
	if err != nil {
		return nil, err
	}
	rows = filterRows(rows, g.config.Search)
	if g.sortCol >= 0 {
		sortRows(rows, g.sortCol, g.sortDir, g.config.DateLayout)
	}
	return rows, nil
}

// WriteHTML writes the grid markup to w
// without rendering it into a container.
func (g *Grid) WriteHTML(ctx context.Context, w io.Writer) error {
	rows, err := g.Rows(ctx)
	if err != nil {
		return err
	}
	templData := &TemplateContext{
		ClassName:    g.config.ClassName,
		WrapperStyle: g.config.wrapperStyle(),
		FixedHeader:  g.config.FixedHeader,
		Headers:      make([]HeaderContext, len(g.config.Columns)),
		Rows:         rows,
		NumColumns:   max(len(g.config.Columns), 1),
		NotFound:     NotFoundText,
	}
	for col := range g.config.Columns {
		column := &g.config.Columns[col]
		header := HeaderContext{
			Name:     column.Name,
			ID:       column.Key(),
			Sortable: g.config.sortable(col),
			AriaSort: Unsorted.String(),
		}
		if col == g.sortCol {
			header.AriaSort = g.sortDir.String()
		}
		templData.Sort = templData.Sort || header.Sortable
		templData.Headers[col] = header
	}
	return GridTemplate.Execute(w, templData)
}

// dataView returns Config.Data as a regrid.View
// with the configured columns.
func (g *Grid) dataView() (regrid.View, error) {
	names := make([]string, len(g.config.Columns))
	keys := make([]string, len(g.config.Columns))
	for i := range g.config.Columns {
		names[i] = g.config.Columns[i].Name
		keys[i] = g.config.Columns[i].Key()
	}
	switch data := g.config.Data.(type) {
	case nil:
		return &regrid.StringsView{Cols: names}, nil
	case []regrid.RowObject:
		return &regrid.ObjectsView{Cols: names, Keys: keys, Rows: data}, nil
	case []map[string]string:
		rows := make([]regrid.RowObject, len(data))
		for i, row := range data {
			rows[i] = row
		}
		return &regrid.ObjectsView{Cols: names, Keys: keys, Rows: rows}, nil
	case [][]string:
		return &regrid.StringsView{Cols: names, Rows: data}, nil
	case regrid.View:
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported grid data type %T", data)
	}
}

// removeGrids removes all grid wrappers from the children of container.
func removeGrids(container *dom.Element) {
	for _, child := range slices.Clone(container.Children()) {
		if class, _ := child.Attribute("class"); class == ContainerClass {
			container.RemoveChild(child)
		}
	}
}
