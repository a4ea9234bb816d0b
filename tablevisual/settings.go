package tablevisual

import (
	"errors"
	"fmt"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/powerbi"
)

// DefaultHeightPadding is subtracted from the viewport height
// for the height of the grid.
const DefaultHeightPadding = 8

// settingsNaming maps settings struct fields to property names,
// untagged fields use their camel-cased name.
var settingsNaming = &regrid.StructFieldNaming{Tag: "pbi", Ignore: "-", Untagged: regrid.Camelize}

// RenderMode selects how a grid is rendered on repeated updates.
type RenderMode string

const (
	// RenderModeRecreate renders a new grid on every update
	// replacing the previous grid in the container.
	RenderModeRecreate RenderMode = "recreate"
	// RenderModeUpdateConfig keeps one grid and updates its
	// configuration before rendering it again.
	RenderModeUpdateConfig RenderMode = "updateConfig"
	// RenderModeDestroy destroys the previous grid and clears
	// the container before rendering a new grid.
	RenderModeDestroy RenderMode = "destroy"
)

// Valid returns if m is one of the defined render modes.
func (m RenderMode) Valid() bool {
	switch m {
	case RenderModeRecreate, RenderModeUpdateConfig, RenderModeDestroy:
		return true
	}
	return false
}

// DataPointSettings is the "dataPoint" object of the property pane.
type DataPointSettings struct {
	DefaultColor      string
	ShowAllDataPoints bool
	Fill              string
	FillRule          string
	FontSize          float64
}

// GridSettings is the "grid" object of the property pane.
type GridSettings struct {
	Sort          bool
	FixedHeader   bool
	CamelCaseKeys bool
	RowForm       string
	RenderMode    RenderMode
	DateLayout    string
	HeightPadding float64
}

// Shaper returns a regrid.Shaper for the settings.
func (g *GridSettings) Shaper() regrid.Shaper {
	s := regrid.Shaper{DateLayout: g.DateLayout}
	if !g.CamelCaseKeys {
		s.KeyNaming = regrid.KeyNamingRaw
	}
	return s
}

// Settings holds all property pane objects of the visual.
type Settings struct {
	DataPoint DataPointSettings
	Grid      GridSettings
}

// DefaultSettings returns the settings used
// for objects and properties a data view doesn't set.
func DefaultSettings() *Settings {
	return &Settings{
		DataPoint: DataPointSettings{
			ShowAllDataPoints: true,
			FontSize:          12,
		},
		Grid: GridSettings{
			Sort:          true,
			FixedHeader:   true,
			CamelCaseKeys: true,
			RowForm:       regrid.RowFormObjects.String(),
			RenderMode:    RenderModeRecreate,
			DateLayout:    regrid.DefaultDateLayout,
			HeightPadding: DefaultHeightPadding,
		},
	}
}

// ParseSettings returns the settings of the metadata objects
// of dataView applied over DefaultSettings.
// Properties with invalid values keep their default
// and are reported in the returned error
// together with the usable settings.
func ParseSettings(dataView *powerbi.DataView) (*Settings, error) {
	s := DefaultSettings()
	if dataView == nil {
		return s, nil
	}
	var errs []error
	for name, properties := range dataView.Metadata.Objects {
		object := s.object(name)
		if object == nil {
			continue
		}
		err := settingsNaming.AssignStructFields(object, unwrapFills(properties))
		if err != nil {
			errs = append(errs, fmt.Errorf("object %q: %w", name, err))
		}
	}
	if !s.Grid.RenderMode.Valid() {
		errs = append(errs, fmt.Errorf("invalid render mode %q", s.Grid.RenderMode))
		s.Grid.RenderMode = RenderModeRecreate
	}
	if _, ok := regrid.ParseRowForm(s.Grid.RowForm); !ok {
		errs = append(errs, fmt.Errorf("invalid row form %q", s.Grid.RowForm))
		s.Grid.RowForm = regrid.RowFormObjects.String()
	}
	if s.Grid.DateLayout == "" {
		s.Grid.DateLayout = regrid.DefaultDateLayout
	}
	if s.Grid.HeightPadding < 0 {
		s.Grid.HeightPadding = 0
	}
	return s, errors.Join(errs...)
}

// RowForm returns the parsed Grid.RowForm.
func (s *Settings) RowForm() regrid.RowForm {
	f, _ := regrid.ParseRowForm(s.Grid.RowForm)
	return f
}

// EnumerateObjectInstances returns the properties of the object
// with the passed name or an empty slice for unknown objects.
func (s *Settings) EnumerateObjectInstances(objectName string) []powerbi.VisualObjectInstance {
	object := s.object(objectName)
	if object == nil {
		return []powerbi.VisualObjectInstance{}
	}
	return []powerbi.VisualObjectInstance{{
		ObjectName: objectName,
		Selector:   nil,
		Properties: settingsNaming.StructFieldMap(object),
	}}
}

func (s *Settings) object(name string) any {
	switch name {
	case "dataPoint":
		return &s.DataPoint
	case "grid":
		return &s.Grid
	}
	return nil
}

// unwrapFills replaces fill values of the form
// {"solid": {"color": "#aabbcc"}} with their color.
func unwrapFills(properties map[string]any) map[string]any {
	unwrapped := make(map[string]any, len(properties))
	for name, value := range properties {
		if fill, ok := value.(map[string]any); ok {
			if solid, ok := fill["solid"].(map[string]any); ok {
				value = solid["color"]
			}
		}
		unwrapped[name] = value
	}
	return unwrapped
}
