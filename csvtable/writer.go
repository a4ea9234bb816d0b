package csvtable

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"reflect"
	"strings"

	"github.com/domonda/go-types/charset"
	"github.com/mattn/go-runewidth"

	"github.com/domonda/go-regrid"
)

// Encoder encodes UTF-8 text into another charset.
// charset.Encoding implements it.
type Encoder interface {
	Encode(utf8Str []byte) (encodedStr []byte, err error)
}

// Padding aligns fields to the display width of their column.
type Padding int

const (
	NoPadding Padding = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Writer writes views, categories or already formatted rows as CSV.
// All With* methods return a modified copy.
type Writer struct {
	columnFormatters map[int]regrid.CellFormatter
	typeFormatter    *regrid.ReflectTypeCellFormatter
	padding          Padding
	headerRow        bool
	quoteAllFields   bool
	quoteEmptyFields bool
	nilValue         string
	delimiter        rune
	newLine          string
	encoder          Encoder
}

// NewWriter returns a Writer for semicolon separated,
// CRLF terminated UTF-8 CSV without header row.
func NewWriter() *Writer {
	return &Writer{delimiter: ';', newLine: "\r\n"}
}

// NewWriterWithFormat returns a Writer for the separator,
// newline and encoding of format, for example
// the Format detected when reading a file.
func NewWriterWithFormat(format *Format) (*Writer, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	w := NewWriter().
		WithDelimiter(rune(format.Separator[0])).
		WithNewLine(format.Newline)
	if format.Encoding != "UTF-8" {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		w = w.WithEncoder(enc)
	}
	return w, nil
}

// WriteView formats all cells of view and writes them to dest.
//
// Cells are formatted by the column formatter of their column,
// then by the type formatters. Unsupported cells are printed
// with fmt.Sprint after dereferencing pointers,
// null-like values are written as the nil value.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view regrid.View) error {
	var header []string
	if w.headerRow {
		header = view.Columns()
	}
	rows := make([][]string, view.NumRows())
	for row := range rows {
		rows[row] = make([]string, len(view.Columns()))
		for col := range rows[row] {
			str, raw, err := w.formatCell(ctx, view, row, col)
			if err != nil {
				return err
			}
			rows[row][col] = w.field(str, raw)
		}
	}
	return w.write(dest, header, rows)
}

// WriteCategories shapes categories as arrays with shaper,
// so values are formatted like the cells of a rendered grid,
// and writes them with the display names as header row
// if the writer has a header row.
// A nil shaper formats like the zero value Shaper.
func (w *Writer) WriteCategories(ctx context.Context, dest io.Writer, categories []regrid.Category, shaper *regrid.Shaper) error {
	if shaper == nil {
		shaper = new(regrid.Shaper)
	}
	rows, err := shaper.ShapeArrays(ctx, categories)
	if err != nil {
		return err
	}
	return w.WriteRows(dest, regrid.CategoryDisplayNames(categories), rows)
}

// WriteRows writes already formatted rows to dest.
// The header is only written if the writer has a header row.
// Rows shorter than the header are filled with empty fields.
func (w *Writer) WriteRows(dest io.Writer, header []string, rows [][]string) error {
	if !w.headerRow {
		header = nil
	}
	escaped := make([][]string, len(rows))
	for i, row := range rows {
		escaped[i] = make([]string, max(len(row), len(header)))
		for col := range escaped[i] {
			var str string
			if col < len(row) {
				str = row[col]
			}
			escaped[i][col] = w.field(str, false)
		}
	}
	return w.write(dest, header, escaped)
}

// write writes the header fields escaped
// and the rows as passed.
func (w *Writer) write(dest io.Writer, header []string, rows [][]string) error {
	if header != nil {
		fields := make([]string, len(header))
		for col, title := range header {
			fields[col] = w.field(title, false)
		}
		rows = append([][]string{fields}, rows...)
	}
	var widths []int
	if w.padding != NoPadding {
		widths = regrid.StringColumnWidths(rows, -1)
	}
	var line bytes.Buffer
	for _, row := range rows {
		line.Reset()
		for col, field := range row {
			if col > 0 {
				line.WriteRune(w.delimiter)
			}
			if widths != nil {
				field = pad(field, widths[col], w.padding)
			}
			line.WriteString(field)
		}
		line.WriteString(w.newLine)
		out := line.Bytes()
		if w.encoder != nil {
			var err error
			if out, err = w.encoder.Encode(out); err != nil {
				return err
			}
		}
		if _, err := dest.Write(out); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) formatCell(ctx context.Context, view regrid.View, row, col int) (str string, raw bool, err error) {
	if err = ctx.Err(); err != nil {
		return "", false, err
	}
	if colFormatter, ok := w.columnFormatters[col]; ok {
		str, raw, err = colFormatter.FormatCell(ctx, view, row, col)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	str, raw, err = w.typeFormatter.FormatCell(ctx, view, row, col)
	if !errors.Is(err, errors.ErrUnsupported) {
		return str, raw, err
	}
	v := regrid.AsReflectCellView(view).ReflectCell(row, col)
	if regrid.IsNullLike(v) {
		return w.nilValue, false, nil
	}
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return fmt.Sprint(v.Interface()), false, nil
}

// field returns str quoted and escaped as needed
// unless it is raw CSV.
func (w *Writer) field(str string, raw bool) string {
	if raw {
		return str
	}
	// \n alone is valid within quotes
	str = strings.ReplaceAll(str, "\r", "")
	switch {
	case w.quoteAllFields || strings.ContainsRune(str, w.delimiter) || strings.ContainsAny(str, "\n\""):
		return `"` + EscapeQuotes(str) + `"`
	case w.quoteEmptyFields && str == "":
		return `""`
	}
	return str
}

func pad(str string, width int, padding Padding) string {
	n := width - runewidth.StringWidth(str)
	if n <= 0 {
		return str
	}
	switch padding {
	case AlignLeft:
		return str + strings.Repeat(" ", n)
	case AlignRight:
		return strings.Repeat(" ", n) + str
	case AlignCenter:
		return strings.Repeat(" ", n/2) + str + strings.Repeat(" ", (n+1)/2)
	}
	return str
}

func (w *Writer) clone() *Writer {
	c := *w
	return &c
}

func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

// WithColumnFormatter returns a new writer with formatter
// registered for the column with index col.
// A nil formatter removes a registered column formatter.
func (w *Writer) WithColumnFormatter(col int, formatter regrid.CellFormatter) *Writer {
	mod := w.clone()
	mod.columnFormatters = maps.Clone(w.columnFormatters)
	if formatter == nil {
		delete(mod.columnFormatters, col)
		return mod
	}
	if mod.columnFormatters == nil {
		mod.columnFormatters = make(map[int]regrid.CellFormatter)
	}
	mod.columnFormatters[col] = formatter
	return mod
}

func (w *Writer) WithTypeFormatters(formatter *regrid.ReflectTypeCellFormatter) *Writer {
	mod := w.clone()
	mod.typeFormatter = formatter
	return mod
}

func (w *Writer) WithTypeFormatter(typ reflect.Type, fmt regrid.CellFormatter) *Writer {
	mod := w.clone()
	mod.typeFormatter = w.typeFormatter.WithTypeFormatter(typ, fmt)
	return mod
}

func (w *Writer) WithKindFormatter(kind reflect.Kind, fmt regrid.CellFormatter) *Writer {
	mod := w.clone()
	mod.typeFormatter = w.typeFormatter.WithKindFormatter(kind, fmt)
	return mod
}

func (w *Writer) WithPadding(padding Padding) *Writer {
	mod := w.clone()
	mod.padding = padding
	return mod
}

func (w *Writer) WithQuoteAllFields(quoteAllFields bool) *Writer {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer {
	mod := w.clone()
	mod.quoteEmptyFields = quoteEmptyFields
	return mod
}

func (w *Writer) WithNilValue(nilValue string) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

func (w *Writer) WithDelimiter(delimiter rune) *Writer {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer) WithNewLine(newLine string) *Writer {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

// WithEncoder returns a new writer encoding every written row
// with encoder, nil writes UTF-8.
func (w *Writer) WithEncoder(encoder Encoder) *Writer {
	mod := w.clone()
	mod.encoder = encoder
	return mod
}

func (w *Writer) Delimiter() rune  { return w.delimiter }
func (w *Writer) NewLine() string  { return w.newLine }
func (w *Writer) NilValue() string { return w.nilValue }
