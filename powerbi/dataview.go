// Package powerbi defines the host contract of a visual:
// the data views and viewport passed on every update,
// the property pane enumeration and the Visual interface
// driven by the host through construction, updates and enumeration.
//
// The types decode from the JSON documents a host serializes,
// unknown members are ignored.
package powerbi

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/domonda/go-regrid"
)

// Viewport is the size of the visual in pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Objects maps object names to their property values
// as configured in the host's property pane.
type Objects map[string]map[string]any

// DataViewMetadata holds the column descriptions
// and the property pane objects of a data view.
type DataViewMetadata struct {
	Columns []regrid.ColumnSource `json:"columns,omitempty"`
	Objects Objects               `json:"objects,omitempty"`
}

// Categorical is the column oriented representation
// of the fields bound to the visual.
type Categorical struct {
	Categories []regrid.Category `json:"categories"`
}

// DataView is one view of the data bound to the visual.
type DataView struct {
	Metadata    DataViewMetadata `json:"metadata"`
	Categorical *Categorical     `json:"categorical,omitempty"`
}

// Categories returns the categories of the data view
// or nil if the data view or its categorical section is nil.
func (dv *DataView) Categories() []regrid.Category {
	if dv == nil || dv.Categorical == nil {
		return nil
	}
	return dv.Categorical.Categories
}

// UpdateType flags the reason of an update.
type UpdateType int

const (
	UpdateTypeData      UpdateType = 2
	UpdateTypeResize    UpdateType = 4
	UpdateTypeViewMode  UpdateType = 8
	UpdateTypeStyle     UpdateType = 16
	UpdateTypeResizeEnd UpdateType = 32
	UpdateTypeAll       UpdateType = 62
)

// VisualUpdateOptions is passed to Visual.Update
// whenever data or the viewport changes.
type VisualUpdateOptions struct {
	Viewport  Viewport    `json:"viewport"`
	DataViews []*DataView `json:"dataViews"`
	Type      UpdateType  `json:"type,omitempty"`
}

// FirstDataView returns the first data view or nil.
func (o *VisualUpdateOptions) FirstDataView() *DataView {
	if o == nil || len(o.DataViews) == 0 {
		return nil
	}
	return o.DataViews[0]
}

// DecodeUpdateOptions reads a JSON document that is either
// a VisualUpdateOptions object with a "dataViews" member
// or a bare DataView object.
// A bare DataView gets the passed default viewport.
func DecodeUpdateOptions(r io.Reader, viewport Viewport) (*VisualUpdateOptions, error) {
	var doc struct {
		VisualUpdateOptions
		DataView
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("can't decode update options: %w", err)
	}
	options := doc.VisualUpdateOptions
	if options.DataViews == nil && doc.Categorical != nil {
		dataView := doc.DataView
		options.DataViews = []*DataView{&dataView}
	}
	if options.Viewport == (Viewport{}) {
		options.Viewport = viewport
	}
	normalizeNumbers(options.DataViews)
	return &options, nil
}

// normalizeNumbers converts json.Number values to float64
// or to int64 if the number has no fraction
// so that values format like they were written.
func normalizeNumbers(dataViews []*DataView) {
	for _, dv := range dataViews {
		for _, cat := range dv.Categories() {
			for i, v := range cat.Values {
				num, ok := v.(json.Number)
				if !ok {
					continue
				}
				if n, err := num.Int64(); err == nil {
					cat.Values[i] = n
				} else if f, err := num.Float64(); err == nil {
					cat.Values[i] = f
				} else {
					cat.Values[i] = num.String()
				}
			}
		}
	}
}
