package regrid

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// CellFormatter is an interface for formatting view cells as strings.
type CellFormatter interface {
	// FormatCell formats the view cell at row and col as string
	// or returns a wrapped errors.ErrUnsupported error if
	// it doesn't support formatting the value of the cell.
	// The raw result indicates if the returned string
	// is in the raw format of the output (like HTML) and can be
	// used as is or if it has to be escaped.
	FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error)
}

// CellFormatterFunc implements CellFormatter for a function.
type CellFormatterFunc func(ctx context.Context, view View, row, col int) (str string, raw bool, err error)

func (f CellFormatterFunc) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return f(ctx, view, row, col)
}

// SprintCellFormatter formats any cell with fmt.Sprint
// and returns the result as raw if the underlying bool is true.
type SprintCellFormatter bool

func (rawResult SprintCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return fmt.Sprint(view.Cell(row, col)), bool(rawResult), nil
}

// PrintfCellFormatter implements CellFormatter by calling
// fmt.Sprintf with this type's string value as format.
type PrintfCellFormatter string

func (format PrintfCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return fmt.Sprintf(string(format), view.Cell(row, col)), false, nil
}

// LayoutFormatter formats time.Time cells using
// the underlying string as layout for time.Time.Format.
// Other cell types are not supported.
type LayoutFormatter string

func (layout LayoutFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	switch t := view.Cell(row, col).(type) {
	case time.Time:
		return t.Format(string(layout)), false, nil
	case *time.Time:
		if t != nil {
			return t.Format(string(layout)), false, nil
		}
	}
	return "", false, errors.ErrUnsupported
}

// JSStringCellFormatter formats cells the way
// a JavaScript host converts values with toString():
// numbers without trailing zeros, nil as "undefined".
type JSStringCellFormatter struct{}

func (JSStringCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return JSString(view.Cell(row, col)), false, nil
}

// CellFormatterChain tries its formatters in order
// and returns the first result that is not errors.ErrUnsupported.
type CellFormatterChain []CellFormatter

func (chain CellFormatterChain) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	for _, f := range chain {
		if f == nil {
			continue
		}
		str, raw, err = f.FormatCell(ctx, view, row, col)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	return "", false, errors.ErrUnsupported
}

// TryFormattersOrSprint returns a CellFormatter that tries
// the passed formatters and falls back to fmt.Sprint of the
// cell value, or an empty string for null-like values,
// if none of them supports the cell.
func TryFormattersOrSprint(formatters ...CellFormatter) CellFormatter {
	return CellFormatterFunc(func(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
		if err = ctx.Err(); err != nil {
			return "", false, err
		}
		str, raw, err = CellFormatterChain(formatters).FormatCell(ctx, view, row, col)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
		v := DerefView(view).ReflectCell(row, col)
		if IsNullLike(v) {
			return "", false, nil
		}
		return fmt.Sprint(v.Interface()), false, nil
	})
}
