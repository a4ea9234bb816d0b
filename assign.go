package regrid

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

var (
	typeOfTime        = reflect.TypeOf(time.Time{})
	typeOfEmptyStruct = reflect.TypeOf(struct{}{})
)

// SmartAssign assigns src to dst converting between
// the loosely typed values of decoded JSON documents
// and the typed fields of Go structs.
//
// Conversions are tried in this order:
//
//  1. Null-like sources (nil pointers, IsNull() == true,
//     struct{}) assign the zero value.
//  2. Sources convertible with reflect.Value.Convert,
//     except integers to strings.
//  3. encoding.TextMarshaler and fmt.Stringer sources
//     are converted via their string representation.
//  4. Strings to time.Time using ParseDate in UTC.
//  5. Non-nil pointers are dereferenced.
//  6. Bools to numbers (0 or 1) and strings ("true" or "false").
//  7. Numbers to bools (non-zero is true) and strings to bools
//     using strconv.ParseBool.
//  8. Strings to numbers using strconv.
//  9. Any value to a string using JSString.
//  10. A new value is allocated for pointer destinations.
//
// A wrapped errors.ErrUnsupported is returned
// if no conversion is possible.
func SmartAssign(dst, src reflect.Value) (err error) {
	if !dst.IsValid() {
		return fmt.Errorf("dst value is invalid")
	}
	if !dst.CanSet() {
		return fmt.Errorf("cannot set dst value")
	}
	if !src.IsValid() {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	var (
		srcType = src.Type()
		srcKind = srcType.Kind()
		dstType = dst.Type()
		dstKind = dstType.Kind()
	)

	if nullable, ok := src.Interface().(interface{ IsNull() bool }); ok && nullable.IsNull() {
		dst.Set(reflect.Zero(dstType))
		return nil
	}
	if srcKind == reflect.Pointer && src.IsNil() || srcType == typeOfEmptyStruct {
		dst.Set(reflect.Zero(dstType))
		return nil
	}
	if srcKind == reflect.Interface {
		return SmartAssign(dst, src.Elem())
	}

	if srcType.ConvertibleTo(dstType) && !(dstKind == reflect.String && isIntegerKind(srcKind)) {
		// Converting a slice to a longer array panics
		if srcKind == reflect.Slice && dstKind == reflect.Array && dst.Len() > src.Len() {
			return fmt.Errorf("cannot convert slice of length %d to array with length %d", src.Len(), dst.Len())
		}
		dst.Set(src.Convert(dstType))
		return nil
	}

	if m, ok := src.Interface().(encoding.TextMarshaler); ok && srcKind != reflect.String {
		txt, err := m.MarshalText()
		if err != nil {
			return err
		}
		err = SmartAssign(dst, reflect.ValueOf(string(txt)))
		if !errors.Is(err, errors.ErrUnsupported) {
			return err
		}
	}
	if m, ok := src.Interface().(fmt.Stringer); ok && srcKind != reflect.String {
		err = SmartAssign(dst, reflect.ValueOf(m.String()))
		if !errors.Is(err, errors.ErrUnsupported) {
			return err
		}
	}

	if srcKind == reflect.String && dstType == typeOfTime {
		if t, err := ParseDate(src.String(), time.UTC); err == nil {
			dst.Set(reflect.ValueOf(t))
			return nil
		}
	}

	if srcKind == reflect.Pointer {
		err := SmartAssign(dst, src.Elem())
		if !errors.Is(err, errors.ErrUnsupported) {
			return err
		}
	}

	if srcKind == reflect.Bool {
		var n int64
		if src.Bool() {
			n = 1
		}
		switch {
		case isIntegerKind(dstKind) && dstKind < reflect.Uint:
			dst.SetInt(n)
			return nil
		case isIntegerKind(dstKind):
			dst.SetUint(uint64(n))
			return nil
		case dstKind == reflect.Float32 || dstKind == reflect.Float64:
			dst.SetFloat(float64(n))
			return nil
		case dstKind == reflect.String:
			dst.SetString(strconv.FormatBool(src.Bool()))
			return nil
		}
	}

	switch dstKind {
	case reflect.Bool:
		switch {
		case isIntegerKind(srcKind) && srcKind < reflect.Uint:
			dst.SetBool(src.Int() != 0)
			return nil
		case isIntegerKind(srcKind):
			dst.SetBool(src.Uint() != 0)
			return nil
		case srcKind == reflect.Float32 || srcKind == reflect.Float64:
			dst.SetBool(src.Float() != 0)
			return nil
		case srcKind == reflect.String:
			if b, err := strconv.ParseBool(src.String()); err == nil {
				dst.SetBool(b)
				return nil
			}
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if srcKind == reflect.String {
			if i, e := strconv.ParseInt(src.String(), 10, 64); e == nil {
				dst.SetInt(i)
				return nil
			}
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if srcKind == reflect.String {
			if i, e := strconv.ParseUint(src.String(), 10, 64); e == nil {
				dst.SetUint(i)
				return nil
			}
		}

	case reflect.Float32, reflect.Float64:
		if srcKind == reflect.String {
			if f, e := strconv.ParseFloat(src.String(), 64); e == nil {
				dst.SetFloat(f)
				return nil
			}
		}

	case reflect.String:
		dst.SetString(JSString(src.Interface()))
		return nil

	case reflect.Pointer:
		newDest := reflect.New(dstType.Elem())
		err = SmartAssign(newDest.Elem(), src)
		if err == nil {
			dst.Set(newDest)
			return nil
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			return err
		}
	}

	return fmt.Errorf("%w: assigning %s %#v to %s", errors.ErrUnsupported, srcType, src, dstType)
}

func isIntegerKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Uintptr
}
