package regrid

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSmartAssign(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name string
		dst  any // pointer to the destination
		src  any
		want any
	}{
		{name: "string to string", dst: new(string), src: "x", want: "x"},
		{name: "json.Number to float", dst: new(float64), src: json.Number("12.5"), want: 12.5},
		{name: "json.Number to int", dst: new(int), src: json.Number("8"), want: 8},
		{name: "json.Number to string", dst: new(string), src: json.Number("8"), want: "8"},
		{name: "float to int", dst: new(int), src: 8.0, want: 8},
		{name: "int64 to string", dst: new(string), src: int64(42), want: "42"},
		{name: "float to string", dst: new(string), src: 1.5, want: "1.5"},
		{name: "bool to string", dst: new(string), src: true, want: "true"},
		{name: "bool to int", dst: new(int), src: true, want: 1},
		{name: "string to bool", dst: new(bool), src: "true", want: true},
		{name: "number to bool", dst: new(bool), src: 0.0, want: false},
		{name: "string to uint", dst: new(uint), src: "7", want: uint(7)},
		{name: "nil to string", dst: new(string), src: nil, want: ""},
		{name: "nil pointer to int", dst: new(int), src: (*int)(nil), want: 0},
		{name: "pointer to value", dst: new(string), src: str("p"), want: "p"},
		{name: "value to pointer", dst: new(*string), src: "p", want: str("p")},
		{name: "string to time", dst: new(time.Time), src: "2023-01-05", want: time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)},
		{name: "stringer to string", dst: new(string), src: ColumnTypeDateTime, want: "dateTime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := reflect.ValueOf(tt.dst).Elem()
			err := SmartAssign(dst, reflect.ValueOf(tt.src))
			require.NoError(t, err)
			require.Equal(t, tt.want, dst.Interface())
		})
	}
}

func TestSmartAssign_Unsupported(t *testing.T) {
	var b bool
	err := SmartAssign(reflect.ValueOf(&b).Elem(), reflect.ValueOf("maybe"))
	require.True(t, errors.Is(err, errors.ErrUnsupported), "error: %v", err)

	var n int
	err = SmartAssign(reflect.ValueOf(&n).Elem(), reflect.ValueOf(map[string]any{"solid": nil}))
	require.ErrorIs(t, err, errors.ErrUnsupported)

	err = SmartAssign(reflect.ValueOf(n), reflect.ValueOf(1))
	require.Error(t, err, "not settable")
}
