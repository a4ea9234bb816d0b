// Package dom provides a minimal element tree
// that stands in for the DOM container a host passes to a visual.
// Visuals create and attach child elements, size them with styles
// and render grid markup into them as inner HTML.
package dom

import (
	"fmt"
	"html/template"
	"io"
	"maps"
	"slices"
	"strings"
)

// Element is a node of the element tree.
// The zero value is not usable, use NewElement.
type Element struct {
	Tag        string
	attributes map[string]string
	style      map[string]string
	children   []*Element
	parent     *Element
	innerHTML  template.HTML
}

// NewElement returns a new element with the passed tag name.
func NewElement(tag string) *Element {
	return &Element{
		Tag:        tag,
		attributes: make(map[string]string),
		style:      make(map[string]string),
	}
}

// ID returns the id attribute.
func (e *Element) ID() string {
	return e.attributes["id"]
}

// SetAttribute sets the attribute name to value.
func (e *Element) SetAttribute(name, value string) {
	e.attributes[name] = value
}

// Attribute returns the value of the attribute name.
func (e *Element) Attribute(name string) (string, bool) {
	value, ok := e.attributes[name]
	return value, ok
}

// SetStyle sets the inline style property to value,
// an empty value removes the property.
func (e *Element) SetStyle(property, value string) {
	if value == "" {
		delete(e.style, property)
		return
	}
	e.style[property] = value
}

// Style returns the inline style property value.
func (e *Element) Style(property string) string {
	return e.style[property]
}

// AppendChild appends child to the children of e
// after removing it from a previous parent.
func (e *Element) AppendChild(child *Element) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// RemoveChild removes child from the children of e.
// It returns false if child was not a child of e.
func (e *Element) RemoveChild(child *Element) bool {
	i := slices.Index(e.children, child)
	if i < 0 {
		return false
	}
	e.children = slices.Delete(e.children, i, i+1)
	child.parent = nil
	return true
}

// Children returns the child elements.
func (e *Element) Children() []*Element {
	return e.children
}

// Parent returns the parent element or nil.
func (e *Element) Parent() *Element {
	return e.parent
}

// FindByID returns the first element in the tree rooted at e
// with the passed id or nil.
func (e *Element) FindByID(id string) *Element {
	if e.ID() == id {
		return e
	}
	for _, child := range e.children {
		if found := child.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// SetInnerHTML sets markup that is rendered
// after the child elements of e.
func (e *Element) SetInnerHTML(html template.HTML) {
	e.innerHTML = html
}

// InnerHTML returns the markup set with SetInnerHTML.
func (e *Element) InnerHTML() template.HTML {
	return e.innerHTML
}

// Clear removes all children and the inner HTML.
func (e *Element) Clear() {
	for _, child := range e.children {
		child.parent = nil
	}
	e.children = nil
	e.innerHTML = ""
}

// Render writes the element tree rooted at e as HTML to w.
// Attributes and style properties are written sorted by name.
func (e *Element) Render(w io.Writer) error {
	var b strings.Builder
	e.render(&b)
	_, err := io.WriteString(w, b.String())
	return err
}

// String returns the rendered HTML of the element tree.
func (e *Element) String() string {
	var b strings.Builder
	e.render(&b)
	return b.String()
}

func (e *Element) render(b *strings.Builder) {
	fmt.Fprintf(b, "<%s", e.Tag)
	for _, name := range slices.Sorted(maps.Keys(e.attributes)) {
		fmt.Fprintf(b, ` %s="%s"`, name, template.HTMLEscapeString(e.attributes[name]))
	}
	if len(e.style) > 0 {
		props := make([]string, 0, len(e.style))
		for _, name := range slices.Sorted(maps.Keys(e.style)) {
			props = append(props, name+": "+e.style[name])
		}
		fmt.Fprintf(b, ` style="%s"`, template.HTMLEscapeString(strings.Join(props, "; ")))
	}
	b.WriteByte('>')
	for _, child := range e.children {
		child.render(b)
	}
	b.WriteString(string(e.innerHTML))
	fmt.Fprintf(b, "</%s>", e.Tag)
}
