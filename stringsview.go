package regrid

var (
	_ View = new(StringsView)
	_ View = new(HeaderView)
	_ View = new(ObjectsView)
)

// StringsView is a View of formatted string rows
// as returned by Shaper.ShapeArrays.
//
// Rows may be shorter than Cols,
// missing cells are returned as empty strings.
type StringsView struct {
	Tit  string
	Cols []string
	Rows [][]string
}

// NewStringsView returns a StringsView for rows.
// If no cols are passed, then the first row
// is used as column titles and removed from the rows.
func NewStringsView(title string, rows [][]string, cols ...string) *StringsView {
	if len(cols) == 0 && len(rows) > 0 {
		cols = rows[0]
		rows = rows[1:]
	}
	return &StringsView{Tit: title, Cols: cols, Rows: rows}
}

func (view *StringsView) Title() string     { return view.Tit }
func (view *StringsView) Columns() []string { return view.Cols }
func (view *StringsView) NumRows() int      { return len(view.Rows) }

func (view *StringsView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= len(view.Rows) || col >= len(view.Cols) {
		return nil
	}
	if col >= len(view.Rows[row]) {
		return ""
	}
	return view.Rows[row][col]
}

// ObjectsView is a View of RowObjects as returned by Shaper.ShapeObjects.
// Keys selects the object key for every column,
// Cols holds the column titles shown for the keys.
type ObjectsView struct {
	Tit  string
	Cols []string
	Keys []string
	Rows []RowObject
}

// NewObjectsView returns an ObjectsView where column titles and keys
// are taken from the passed keys.
func NewObjectsView(title string, rows []RowObject, keys ...string) *ObjectsView {
	return &ObjectsView{Tit: title, Cols: keys, Keys: keys, Rows: rows}
}

func (view *ObjectsView) Title() string     { return view.Tit }
func (view *ObjectsView) Columns() []string { return view.Cols }
func (view *ObjectsView) NumRows() int      { return len(view.Rows) }

func (view *ObjectsView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= len(view.Rows) || col >= len(view.Keys) {
		return nil
	}
	return view.Rows[row][view.Keys[col]]
}

// HeaderView is a View with a single row made of its column titles.
type HeaderView struct {
	Tit  string
	Cols []string
}

// NewHeaderViewFrom returns a HeaderView
// with the title and columns of source.
func NewHeaderViewFrom(source View) *HeaderView {
	return &HeaderView{Tit: source.Title(), Cols: source.Columns()}
}

func (view *HeaderView) Title() string     { return view.Tit }
func (view *HeaderView) Columns() []string { return view.Cols }
func (view *HeaderView) NumRows() int      { return 1 }

func (view *HeaderView) Cell(row, col int) any {
	if row != 0 || col < 0 || col >= len(view.Cols) {
		return nil
	}
	return view.Cols[col]
}
