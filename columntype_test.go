package regrid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeDescriptor_ColumnType(t *testing.T) {
	tests := []struct {
		name string
		desc TypeDescriptor
		want ColumnType
	}{
		{name: "nil", desc: nil, want: ColumnTypeUnknown},
		{name: "empty", desc: TypeDescriptor{}, want: ColumnTypeUnknown},
		{name: "all false", desc: TypeDescriptor{"text": false, "numeric": false}, want: ColumnTypeUnknown},
		{name: "text", desc: TypeDescriptor{"text": true}, want: ColumnTypeText},
		{name: "dateTime", desc: TypeDescriptor{"dateTime": true}, want: ColumnTypeDateTime},
		{name: "integer and numeric", desc: TypeDescriptor{"numeric": true, "integer": true}, want: ColumnTypeInteger},
		{name: "dateTime wins", desc: TypeDescriptor{"text": true, "dateTime": true}, want: ColumnTypeDateTime},
		{name: "unknown flag", desc: TypeDescriptor{"geography": true}, want: ColumnTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.desc.ColumnType())
		})
	}
}

func TestTypeDescriptor_UnmarshalJSON(t *testing.T) {
	var source ColumnSource
	err := json.Unmarshal([]byte(`{
		"displayName": "Order Date",
		"type": {"underlyingType": 519, "category": null, "dateTime": true, "text": false, "temporal": {}}
	}`), &source)
	require.NoError(t, err)
	require.Equal(t, "Order Date", source.DisplayName)
	require.Equal(t, TypeDescriptor{"dateTime": true, "text": false}, source.Type)
	require.Equal(t, ColumnTypeDateTime, source.ColumnType())
}

func TestParseColumnType(t *testing.T) {
	for _, typ := range []ColumnType{
		ColumnTypeText,
		ColumnTypeNumeric,
		ColumnTypeInteger,
		ColumnTypeBool,
		ColumnTypeDateTime,
		ColumnTypeDuration,
		ColumnTypeBinary,
	} {
		require.Equal(t, typ, ParseColumnType(typ.String()), typ.String())
		require.Equal(t, typ, TypeDescriptorOf(typ).ColumnType(), typ.String())
	}
	require.Equal(t, ColumnTypeDateTime, ParseColumnType("DATETIME"))
	require.Equal(t, ColumnTypeUnknown, ParseColumnType("nope"))
	require.Equal(t, "unknown", ColumnTypeUnknown.String())
	require.Empty(t, TypeDescriptorOf(ColumnTypeUnknown))
}
