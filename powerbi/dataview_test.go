package powerbi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/domonda/go-regrid"
)

func TestDecodeUpdateOptions(t *testing.T) {
	t.Run("update options", func(t *testing.T) {
		options, err := DecodeUpdateOptions(strings.NewReader(`{
			"viewport": {"width": 640, "height": 480},
			"type": 2,
			"dataViews": [{
				"metadata": {"objects": {"grid": {"sort": false}}},
				"categorical": {"categories": [
					{"source": {"displayName": "Name", "type": {"text": true}}, "values": ["Alice", "Bob"]},
					{"source": {"displayName": "Age", "type": {"numeric": true, "integer": true}}, "values": [31, 45.5]}
				]}
			}]
		}`), Viewport{Width: 1, Height: 1})
		require.NoError(t, err)
		require.Equal(t, Viewport{Width: 640, Height: 480}, options.Viewport)
		require.Equal(t, UpdateTypeData, options.Type)

		dv := options.FirstDataView()
		require.NotNil(t, dv)
		categories := dv.Categories()
		require.Len(t, categories, 2)
		require.Equal(t, regrid.ColumnTypeText, categories[0].Source.ColumnType())
		require.Equal(t, regrid.ColumnTypeInteger, categories[1].Source.ColumnType())
		require.Equal(t, []any{int64(31), 45.5}, categories[1].Values)
		require.Equal(t, false, dv.Metadata.Objects["grid"]["sort"])
	})

	t.Run("bare data view", func(t *testing.T) {
		options, err := DecodeUpdateOptions(strings.NewReader(`{
			"categorical": {"categories": [
				{"source": {"displayName": "Joined", "type": {"dateTime": true}}, "values": ["2023-01-05"]}
			]}
		}`), Viewport{Width: 800, Height: 600})
		require.NoError(t, err)
		require.Equal(t, Viewport{Width: 800, Height: 600}, options.Viewport)
		require.Len(t, options.DataViews, 1)
		require.Equal(t, "Joined", options.DataViews[0].Categories()[0].Source.DisplayName)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := DecodeUpdateOptions(strings.NewReader(`{`), Viewport{})
		require.Error(t, err)
	})
}

func TestDataView_Categories(t *testing.T) {
	var nilView *DataView
	require.Nil(t, nilView.Categories())
	require.Nil(t, (&DataView{}).Categories())

	var nilOptions *VisualUpdateOptions
	require.Nil(t, nilOptions.FirstDataView())
	require.Nil(t, (&VisualUpdateOptions{}).FirstDataView())
}
