package regrid

import (
	"context"
	"errors"
	"maps"
	"reflect"
	"slices"
)

var _ CellFormatter = new(ReflectTypeCellFormatter)

// InterfaceFormatter formats values implementing Interface.
type InterfaceFormatter struct {
	Interface reflect.Type
	Formatter CellFormatter
}

// ReflectTypeCellFormatter selects a CellFormatter
// by the Go type of a cell value.
// Candidates are tried in the order exact type,
// implemented interfaces in registration order, kind.
// If none of them formats a non-nil pointer value,
// the candidates of the pointed to type are tried
// with the dereferenced value.
// Default is used for nil cells and if no candidate
// formatted the value.
//
// A candidate returning errors.ErrUnsupported passes on
// to the next one. If no formatter is left,
// errors.ErrUnsupported is returned.
//
// The With* methods return modified copies,
// a nil *ReflectTypeCellFormatter is valid
// and supports no value.
type ReflectTypeCellFormatter struct {
	Types      map[reflect.Type]CellFormatter
	Interfaces []InterfaceFormatter
	Kinds      map[reflect.Kind]CellFormatter
	Default    CellFormatter
}

func NewReflectTypeCellFormatter() *ReflectTypeCellFormatter {
	return new(ReflectTypeCellFormatter)
}

func (f *ReflectTypeCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	if f == nil {
		return "", false, errors.ErrUnsupported
	}
	if err = ctx.Err(); err != nil {
		return "", false, err
	}
	val := AsReflectCellView(view).ReflectCell(row, col)
	if val.IsValid() {
		str, raw, err = tryFormatters(ctx, f.candidates(val.Type()), view, row, col)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
		if val.Kind() == reflect.Pointer && !val.IsNil() {
			str, raw, err = tryFormatters(ctx, f.candidates(val.Type().Elem()), DerefView(view), row, col)
			if !errors.Is(err, errors.ErrUnsupported) {
				return str, raw, err
			}
		}
	}
	if f.Default == nil {
		return "", false, errors.ErrUnsupported
	}
	return f.Default.FormatCell(ctx, view, row, col)
}

// candidates returns the formatters for typ in matching order.
func (f *ReflectTypeCellFormatter) candidates(typ reflect.Type) (formatters []CellFormatter) {
	if typeFmt, ok := f.Types[typ]; ok {
		formatters = append(formatters, typeFmt)
	}
	for _, i := range f.Interfaces {
		if typ.Implements(i.Interface) {
			formatters = append(formatters, i.Formatter)
		}
	}
	if kindFmt, ok := f.Kinds[typ.Kind()]; ok {
		formatters = append(formatters, kindFmt)
	}
	return formatters
}

func tryFormatters(ctx context.Context, formatters []CellFormatter, view View, row, col int) (str string, raw bool, err error) {
	for _, formatter := range formatters {
		str, raw, err = formatter.FormatCell(ctx, view, row, col)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	return "", false, errors.ErrUnsupported
}

func (f *ReflectTypeCellFormatter) WithTypeFormatter(typ reflect.Type, fmt CellFormatter) *ReflectTypeCellFormatter {
	mod := f.clone()
	if mod.Types == nil {
		mod.Types = make(map[reflect.Type]CellFormatter)
	}
	mod.Types[typ] = fmt
	return mod
}

// WithInterfaceTypeFormatter panics if typ is not an interface type.
// Registering an interface again replaces its formatter
// keeping the original matching position.
func (f *ReflectTypeCellFormatter) WithInterfaceTypeFormatter(typ reflect.Type, fmt CellFormatter) *ReflectTypeCellFormatter {
	if typ.Kind() != reflect.Interface {
		panic("WithInterfaceTypeFormatter called with non interface type " + typ.String())
	}
	mod := f.clone()
	i := slices.IndexFunc(mod.Interfaces, func(i InterfaceFormatter) bool { return i.Interface == typ })
	if i >= 0 {
		mod.Interfaces[i].Formatter = fmt
	} else {
		mod.Interfaces = append(mod.Interfaces, InterfaceFormatter{Interface: typ, Formatter: fmt})
	}
	return mod
}

func (f *ReflectTypeCellFormatter) WithKindFormatter(kind reflect.Kind, fmt CellFormatter) *ReflectTypeCellFormatter {
	mod := f.clone()
	if mod.Kinds == nil {
		mod.Kinds = make(map[reflect.Kind]CellFormatter)
	}
	mod.Kinds[kind] = fmt
	return mod
}

func (f *ReflectTypeCellFormatter) WithDefaultFormatter(fmt CellFormatter) *ReflectTypeCellFormatter {
	mod := f.clone()
	mod.Default = fmt
	return mod
}

func (f *ReflectTypeCellFormatter) clone() *ReflectTypeCellFormatter {
	if f == nil {
		return new(ReflectTypeCellFormatter)
	}
	return &ReflectTypeCellFormatter{
		Types:      maps.Clone(f.Types),
		Interfaces: slices.Clone(f.Interfaces),
		Kinds:      maps.Clone(f.Kinds),
		Default:    f.Default,
	}
}
