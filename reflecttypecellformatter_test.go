package regrid

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReflectTypeCellFormatter_FormatCell(t *testing.T) {
	var (
		stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
		day          = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		float        = 2.25
		formatter    = NewReflectTypeCellFormatter().
				WithTypeFormatter(reflect.TypeOf(time.Time{}), LayoutFormatter(time.DateOnly)).
				WithInterfaceTypeFormatter(stringerType, PrintfCellFormatter("<%s>")).
				WithKindFormatter(reflect.Float64, PrintfCellFormatter("%.1f"))
	)
	tests := []struct {
		name    string
		view    View
		wantStr string
		wantErr error
	}{
		{name: "type", view: SingleCellView("", "", day), wantStr: "2024-03-15"},
		{name: "pointer to kind", view: SingleCellView("", "", &float), wantStr: "2.2"},
		{name: "interface", view: SingleCellView("", "", time.Second), wantStr: "<1s>"},
		{name: "kind", view: SingleCellView("", "", 2.25), wantStr: "2.2"},
		{name: "unsupported", view: SingleCellView("", "", "text"), wantErr: errors.ErrUnsupported},
		{name: "nil", view: SingleCellView("", "", any(nil)), wantErr: errors.ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			str, _, err := formatter.FormatCell(context.Background(), tt.view, 0, 0)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantStr, str)
		})
	}

	withDefault := formatter.WithDefaultFormatter(SprintCellFormatter(true))
	str, raw, err := withDefault.FormatCell(context.Background(), SingleCellView("", "", "text"), 0, 0)
	require.NoError(t, err)
	require.True(t, raw)
	require.Equal(t, "text", str)

	// The original is not modified by With* methods
	require.Nil(t, formatter.Default)

	var nilFormatter *ReflectTypeCellFormatter
	_, _, err = nilFormatter.FormatCell(context.Background(), SingleCellView("", "", 1), 0, 0)
	require.ErrorIs(t, err, errors.ErrUnsupported)
}

func TestReflectTypeCellFormatter_InterfaceOrder(t *testing.T) {
	var (
		stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
		errorType    = reflect.TypeOf((*error)(nil)).Elem()
		view         = SingleCellView("", "", any(errors.New("failed")))
	)
	formatter := NewReflectTypeCellFormatter().
		WithInterfaceTypeFormatter(errorType, PrintfCellFormatter("error: %s")).
		WithInterfaceTypeFormatter(stringerType, PrintfCellFormatter("stringer: %s"))
	str, _, err := formatter.FormatCell(context.Background(), view, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "error: failed", str)

	// Replacing keeps the position
	formatter = formatter.WithInterfaceTypeFormatter(errorType, CellFormatterFunc(
		func(context.Context, View, int, int) (string, bool, error) {
			return "", false, errors.ErrUnsupported
		},
	))
	require.Len(t, formatter.Interfaces, 2)
	str, _, err = formatter.FormatCell(context.Background(), view, 0, 0)
	require.ErrorIs(t, err, errors.ErrUnsupported, "*errors.errorString is no fmt.Stringer")
	require.Empty(t, str)

	require.Panics(t, func() {
		formatter.WithInterfaceTypeFormatter(reflect.TypeOf(0), SprintCellFormatter(false))
	})
}
