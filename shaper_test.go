package regrid

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
)

func TestShaper_ShapeObjects(t *testing.T) {
	tests := []struct {
		name       string
		shaper     Shaper
		categories []Category
		want       []RowObject
	}{
		{
			name:       "nil categories",
			categories: nil,
			want:       []RowObject{},
		},
		{
			name: "zero rows",
			categories: []Category{
				NewCategory("Name", ColumnTypeText),
			},
			want: []RowObject{},
		},
		{
			name: "text and dateTime",
			categories: []Category{
				NewCategory("Name", ColumnTypeText, "Alice", "Bob"),
				NewCategory("Joined", ColumnTypeDateTime, "2023-01-05", "2023-02-10"),
			},
			want: []RowObject{
				{"name": "Alice", "joined": "05/01/2023"},
				{"name": "Bob", "joined": "10/02/2023"},
			},
		},
		{
			name:   "raw keys",
			shaper: Shaper{KeyNaming: KeyNamingRaw},
			categories: []Category{
				NewCategory("Order Date", ColumnTypeDateTime, "2023-12-31"),
				NewCategory("Amount", ColumnTypeNumeric, 42.0),
			},
			want: []RowObject{
				{"Order Date": "31/12/2023", "Amount": "42"},
			},
		},
		{
			name: "unknown type formatted as text",
			categories: []Category{
				{Source: ColumnSource{DisplayName: "first-name"}, Values: []any{"Ann", 7.5}},
			},
			want: []RowObject{
				{"firstName": "Ann"},
				{"firstName": "7.5"},
			},
		},
		{
			name: "invalid date and missing value",
			categories: []Category{
				NewCategory("When", ColumnTypeDateTime, "not a date", nil),
				NewCategory("What", ColumnTypeText, "x"),
			},
			want: []RowObject{
				{"when": InvalidDateText, "what": "x"},
				{"when": InvalidDateText, "what": UndefinedText},
			},
		},
		{
			name:   "custom date layout",
			shaper: Shaper{DateLayout: time.DateOnly},
			categories: []Category{
				NewCategory("Day", ColumnTypeDateTime, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)),
			},
			want: []RowObject{
				{"day": "2024-03-15"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.shaper.ShapeObjects(context.Background(), tt.categories)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestShaper_ShapeArrays(t *testing.T) {
	categories := []Category{
		NewCategory("Name", ColumnTypeText, "Alice", "Bob"),
		NewCategory("Joined", ColumnTypeDateTime, "2023-01-05", "2023-02-10"),
		NewCategory("Age", ColumnTypeInteger, 31.0, 45.0),
	}
	got, err := ShapeArrays(context.Background(), categories)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Alice", "05/01/2023", "31"},
		{"Bob", "10/02/2023", "45"},
	}, got)
	require.Len(t, got, NumCategoryRows(categories))

	got, err = ShapeArrays(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestShaper_Location(t *testing.T) {
	vienna, err := time.LoadLocation("Europe/Vienna")
	require.NoError(t, err)

	s := Shaper{Location: vienna}
	categories := []Category{
		// Zoned value late on the 31st UTC is already the 1st in Vienna
		NewCategory("At", ColumnTypeDateTime, "2023-12-31T23:30:00Z", "2023-12-31T23:30:00"),
	}
	got, err := s.ShapeArrays(context.Background(), categories)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"01/01/2024"}, {"31/12/2023"}}, got)
}

func TestShaper_Formatter(t *testing.T) {
	s := Shaper{
		Formatter: NewReflectTypeCellFormatter().
			WithKindFormatter(reflect.Float64, PrintfCellFormatter("%.2f")),
	}
	got, err := s.ShapeObjects(context.Background(), []Category{
		NewCategory("Price", ColumnTypeNumeric, 9.5),
		NewCategory("Label", ColumnTypeText, "cheap"),
	})
	require.NoError(t, err)
	require.Equal(t, []RowObject{{"price": "9.50", "label": "cheap"}}, got)
}

func TestShaper_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ShapeObjects(ctx, []Category{NewCategory("A", ColumnTypeText, "x")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestShaper_ColumnKeys(t *testing.T) {
	categories := []Category{
		NewCategory("Order Date", ColumnTypeDateTime),
		NewCategory("first-name", ColumnTypeText),
	}
	var camel Shaper
	require.Equal(t, []string{"orderDate", "firstName"}, camel.ColumnKeys(categories))
	raw := Shaper{KeyNaming: KeyNamingRaw}
	require.Equal(t, []string{"Order Date", "first-name"}, raw.ColumnKeys(categories))
}

func ExampleShapeObjects() {
	categories := []Category{
		NewCategory("Name", ColumnTypeText, "Alice", "Bob"),
		NewCategory("Joined", ColumnTypeDateTime, "2023-01-05T00:00:00Z", "2023-02-10T00:00:00Z"),
	}
	rows, err := ShapeObjects(context.Background(), categories)
	if err != nil {
		panic(err)
	}
	for _, row := range rows {
		fmt.Println(row["name"], row["joined"])
	}

	// Output:
	// Alice 05/01/2023
	// Bob 10/02/2023
}

func TestShapeArrays_ZonedDates(t *testing.T) {
	categories := []Category{
		NewCategory("Joined", ColumnTypeDateTime,
			"Thu Jan 05 2023 00:00:00 GMT+0100 (Central European Standard Time)",
			"2023-01-05T00:30:00+02:00",
			"2023-01-05",
		),
	}
	got, err := ShapeArrays(context.Background(), categories)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"05/01/2023"}, {"05/01/2023"}, {"05/01/2023"}}, got)
}
