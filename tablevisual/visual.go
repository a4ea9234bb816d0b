// Package tablevisual implements a table visual that renders
// the categories of a host's data view as a sortable grid.
//
// On every update the categories are reshaped into rows,
// dateTime columns formatted as day/month/year dates,
// and rendered with gridhtml into a container sized to the viewport.
package tablevisual

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/dom"
	"github.com/domonda/go-regrid/gridhtml"
	"github.com/domonda/go-regrid/powerbi"
)

// ContainerID is the id of the element
// the visual appends to its target element.
const ContainerID = "tableContainer"

var _ powerbi.Visual = new(Visual)

// Visual is the table visual.
// Its methods must not be called concurrently.
type Visual struct {
	target    *dom.Element
	container *dom.Element
	log       zerolog.Logger
	settings  *Settings
	grid      *gridhtml.Grid
	data      any
}

// New returns a Visual rendering into a new
// div#tableContainer element appended to options.Element.
func New(options powerbi.ConstructorOptions) (*Visual, error) {
	if options.Element == nil {
		return nil, errors.New("tablevisual: constructor options without element")
	}
	log := zerolog.Nop()
	if options.Logger != nil {
		log = options.Logger.With().Str("visual", "table").Logger()
	}

	container := dom.NewElement("div")
	container.SetAttribute("id", ContainerID)
	options.Element.AppendChild(container)

	log.Debug().Msg("visual constructed")
	return &Visual{
		target:    options.Element,
		container: container,
		log:       log,
	}, nil
}

// Constructor implements powerbi.VisualConstructor.
func Constructor(options powerbi.ConstructorOptions) (powerbi.Visual, error) {
	v, err := New(options)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Update re-renders the table for the first data view
// of options sized to the viewport.
// A missing data view or missing categories render an empty table.
// Invalid settings are logged and replaced with their defaults.
// Only a canceled ctx results in an error.
func (v *Visual) Update(ctx context.Context, options *powerbi.VisualUpdateOptions) error {
	if options == nil {
		options = new(powerbi.VisualUpdateOptions)
	}
	viewport := options.Viewport
	v.container.SetStyle("width", px(viewport.Width))
	v.container.SetStyle("height", px(viewport.Height))

	dataView := options.FirstDataView()
	settings, err := ParseSettings(dataView)
	if err != nil {
		v.log.Warn().Err(err).Msg("invalid settings replaced with defaults")
	}
	v.settings = settings

	categories := dataView.Categories()
	if len(categories) == 0 {
		v.log.Warn().Msg("no categories to render, rendering empty table")
	}
	for i := range categories {
		if categories[i].Source.ColumnType() == regrid.ColumnTypeUnknown {
			v.log.Warn().
				Str("column", categories[i].Source.DisplayName).
				Msg("column without type flag formatted as text")
		}
	}

	shaper := settings.Grid.Shaper()
	switch settings.RowForm() {
	case regrid.RowFormArrays:
		v.data, err = shaper.ShapeArrays(ctx, categories)
	default:
		v.data, err = shaper.ShapeObjects(ctx, categories)
	}
	if err != nil {
		return err
	}

	names := regrid.CategoryDisplayNames(categories)
	keys := shaper.ColumnKeys(categories)
	columns := make([]gridhtml.Column, len(categories))
	for i := range columns {
		columns[i] = gridhtml.Column{Name: names[i], ID: keys[i]}
	}
	config := gridhtml.Config{
		Columns:     columns,
		Data:        v.data,
		Width:       px(viewport.Width),
		Height:      px(max(viewport.Height-settings.Grid.HeightPadding, 0)),
		FixedHeader: settings.Grid.FixedHeader,
		Sort:        settings.Grid.Sort,
		DateLayout:  settings.Grid.DateLayout,
	}
	if err = v.render(config, settings.Grid.RenderMode); err != nil {
		return err
	}

	v.log.Debug().
		Float64("width", viewport.Width).
		Float64("height", viewport.Height).
		Int("columns", len(categories)).
		Int("rows", regrid.NumCategoryRows(categories)).
		Str("renderMode", string(settings.Grid.RenderMode)).
		Msg("visual updated")
	return nil
}

func (v *Visual) render(config gridhtml.Config, mode RenderMode) error {
	switch mode {
	case RenderModeUpdateConfig:
		if v.grid != nil && v.grid.Container() == v.container {
			return v.grid.UpdateConfig(config).ForceRender()
		}
	case RenderModeDestroy:
		if v.grid != nil {
			v.grid.Destroy()
		}
		v.container.Clear()
	}
	v.grid = gridhtml.New(config)
	return v.grid.Render(v.container)
}

// EnumerateObjectInstances returns the current settings,
// or the defaults before the first update,
// of the requested property pane object.
func (v *Visual) EnumerateObjectInstances(options *powerbi.EnumerateVisualObjectInstancesOptions) []powerbi.VisualObjectInstance {
	settings := v.settings
	if settings == nil {
		settings = DefaultSettings()
	}
	if options == nil {
		return []powerbi.VisualObjectInstance{}
	}
	return settings.EnumerateObjectInstances(options.ObjectName)
}

// Target returns the element passed to the constructor.
func (v *Visual) Target() *dom.Element { return v.target }

// Container returns the div#tableContainer element.
func (v *Visual) Container() *dom.Element { return v.container }

// Grid returns the grid of the last update or nil.
func (v *Visual) Grid() *gridhtml.Grid { return v.grid }

// Data returns the shaped rows of the last update,
// either []regrid.RowObject or [][]string.
func (v *Visual) Data() any { return v.data }

// Settings returns the settings of the last update
// or the defaults before the first update.
func (v *Visual) Settings() Settings {
	if v.settings == nil {
		return *DefaultSettings()
	}
	return *v.settings
}

func px(f float64) string {
	return regrid.JSString(f) + "px"
}
