package regrid

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// IsNullLike returns true if the passed reflect.Value
// is not valid, nil (of a type that can be nil),
// or is of type struct{}.
func IsNullLike(val reflect.Value) bool {
	if !val.IsValid() {
		return true
	}
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return val.IsNil()
	case reflect.Struct:
		if t := val.Type(); t.NumField() == 0 && t.NumMethod() == 0 {
			return true
		}
	}
	return false
}

// UndefinedText is returned by JSString for nil values.
const UndefinedText = "undefined"

// JSString returns the string representation of a value
// the way JavaScript's toString() renders it:
// numbers use the shortest representation with exponent notation
// only for very large or very small magnitudes,
// time.Time uses the JavaScript Date string layout,
// nil returns UndefinedText.
func JSString(value any) string {
	switch v := value.(type) {
	case nil:
		return UndefinedText
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return jsNumberString(v)
	case float32:
		return jsNumberString(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case time.Time:
		return v.Format(JSDateLayout)
	case fmt.Stringer:
		return v.String()
	}
	val := reflect.ValueOf(value)
	if IsNullLike(val) {
		return UndefinedText
	}
	if val.Kind() == reflect.Pointer {
		return JSString(val.Elem().Interface())
	}
	switch {
	case val.CanInt():
		return strconv.FormatInt(val.Int(), 10)
	case val.CanUint():
		return strconv.FormatUint(val.Uint(), 10)
	case val.CanFloat():
		return jsNumberString(val.Float())
	}
	return fmt.Sprint(value)
}

func jsNumberString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		// JavaScript writes exponents without padding: 1e-7, 1e+21
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
