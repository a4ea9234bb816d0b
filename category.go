package regrid

// ColumnSource describes a column bound to the visual.
type ColumnSource struct {
	DisplayName string          `json:"displayName"`
	QueryName   string          `json:"queryName,omitempty"`
	Type        TypeDescriptor  `json:"type"`
	Roles       map[string]bool `json:"roles,omitempty"`
}

// ColumnType returns the ColumnType decided by the source's type descriptor.
func (s *ColumnSource) ColumnType() ColumnType {
	return s.Type.ColumnType()
}

// Category is one bound column with its source description
// and the raw values of all rows.
// Values of all categories of a data view are aligned by row index.
type Category struct {
	Source ColumnSource `json:"source"`
	Values []any        `json:"values"`
}

// NewCategory returns a Category with a type descriptor
// that has only the flag of colType set.
func NewCategory(displayName string, colType ColumnType, values ...any) Category {
	return Category{
		Source: ColumnSource{
			DisplayName: displayName,
			Type:        TypeDescriptorOf(colType),
		},
		Values: values,
	}
}

// NumCategoryRows returns the number of rows of categories
// which is the number of values of the first category.
// Zero is returned for no categories.
func NumCategoryRows(categories []Category) int {
	if len(categories) == 0 {
		return 0
	}
	return len(categories[0].Values)
}

// CategoryDisplayNames returns the display names of the category sources.
func CategoryDisplayNames(categories []Category) []string {
	names := make([]string, len(categories))
	for i := range categories {
		names[i] = categories[i].Source.DisplayName
	}
	return names
}
