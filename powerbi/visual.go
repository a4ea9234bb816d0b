package powerbi

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/domonda/go-regrid/dom"
)

// ConstructorOptions are passed once when the host constructs a visual.
type ConstructorOptions struct {
	// Element is the container the visual renders into.
	Element *dom.Element
	// Logger receives the visual's log output,
	// nil discards everything.
	Logger *zerolog.Logger
}

// EnumerateVisualObjectInstancesOptions names the object
// the host's property pane requests the properties of.
type EnumerateVisualObjectInstancesOptions struct {
	ObjectName string `json:"objectName"`
}

// VisualObjectInstance is one object shown in the property pane.
type VisualObjectInstance struct {
	ObjectName  string         `json:"objectName"`
	DisplayName string         `json:"displayName,omitempty"`
	Selector    any            `json:"selector"`
	Properties  map[string]any `json:"properties"`
}

// Visual is the lifecycle contract between a host and a visual.
// The host calls the methods of one visual
// from a single goroutine at a time.
type Visual interface {
	// Update re-renders the visual for new data or viewport dimensions.
	Update(ctx context.Context, options *VisualUpdateOptions) error

	// EnumerateObjectInstances returns the current
	// or default settings for the requested object.
	EnumerateObjectInstances(options *EnumerateVisualObjectInstancesOptions) []VisualObjectInstance
}

// VisualConstructor constructs a Visual for a host.
type VisualConstructor func(options ConstructorOptions) (Visual, error)
