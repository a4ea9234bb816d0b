package csvtable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/domonda/go-regrid"
)

func TestParseDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		csv         string
		wantRows    [][]string
		wantSep     string
		wantNewline string
	}{
		{
			name:        "semicolon CRLF",
			csv:         "Name;Age\r\nJohn;30\r\nJane;25",
			wantRows:    [][]string{{"Name", "Age"}, {"John", "30"}, {"Jane", "25"}},
			wantSep:     ";",
			wantNewline: "\r\n",
		},
		{
			name:        "comma LF with quotes",
			csv:         "Name,Quote\n\"Doe, John\",\"He said \"\"Hi\"\"\"\n",
			wantRows:    [][]string{{"Name", "Quote"}, {"Doe, John", `He said "Hi"`}},
			wantSep:     ",",
			wantNewline: "\n",
		},
		{
			name:        "tabs",
			csv:         "A\tB\n1\t2",
			wantRows:    [][]string{{"A", "B"}, {"1", "2"}},
			wantSep:     "\t",
			wantNewline: "\n",
		},
		{
			name:        "sep header line",
			csv:         "sep=|\nA|B;C\n1|2",
			wantRows:    [][]string{{"A", "B;C"}, {"1", "2"}},
			wantSep:     "|",
			wantNewline: "\n",
		},
		{
			name:        "multi-line field",
			csv:         "Name,Address\r\n\"John\",\"Main St\r\nApt 4B\"\r\n",
			wantRows:    [][]string{{"Name", "Address"}, {"John", "Main St\nApt 4B"}},
			wantSep:     ",",
			wantNewline: "\r\n",
		},
		{
			name:        "empty lines skipped",
			csv:         "A,B\n\n1,2\n\n",
			wantRows:    [][]string{{"A", "B"}, {"1", "2"}},
			wantSep:     ",",
			wantNewline: "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, format, err := ParseDetectFormat([]byte(tt.csv), nil)
			require.NoError(t, err)
			require.Equal(t, tt.wantRows, rows)
			require.Equal(t, tt.wantSep, format.Separator)
			require.Equal(t, tt.wantNewline, format.Newline)
			require.NotEmpty(t, format.Encoding)
		})
	}
}

func TestParseWithFormat(t *testing.T) {
	rows, err := ParseWithFormat([]byte("\xEF\xBB\xBFsep=;\r\nA;B\r\n1;2\r\n"), NewFormat(";"))
	require.NoError(t, err)
	require.Equal(t, [][]string{{"A", "B"}, {"1", "2"}}, rows)

	_, err = ParseWithFormat([]byte("sep=,\r\nA,B"), NewFormat(";"))
	require.Error(t, err, "separator header mismatch")

	_, err = ParseWithFormat([]byte("A;B"), &Format{Separator: ";"})
	require.Error(t, err, "invalid format")
}

func TestParseSepHeaderLine(t *testing.T) {
	require.Equal(t, ",", parseSepHeaderLine([]byte("sep=,")))
	require.Equal(t, ";", parseSepHeaderLine([]byte("SEP=;")))
	require.Equal(t, "\t", parseSepHeaderLine([]byte("\"sep=\t\"")))
	require.Equal(t, "", parseSepHeaderLine([]byte("Name,Age")))
}

func TestInferColumnType(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   regrid.ColumnType
	}{
		{name: "integers", values: []string{"1", " 42 ", "", "-7"}, want: regrid.ColumnTypeInteger},
		{name: "years are integers", values: []string{"2023", "1999"}, want: regrid.ColumnTypeInteger},
		{name: "numbers", values: []string{"1", "2.5"}, want: regrid.ColumnTypeNumeric},
		{name: "bools", values: []string{"true", "FALSE"}, want: regrid.ColumnTypeBool},
		{name: "dates", values: []string{"2023-01-05", "2023-02-10T08:00:00Z"}, want: regrid.ColumnTypeDateTime},
		{name: "text", values: []string{"2023-01-05", "soon"}, want: regrid.ColumnTypeText},
		{name: "all empty", values: []string{"", " "}, want: regrid.ColumnTypeText},
		{name: "no values", values: nil, want: regrid.ColumnTypeText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, InferColumnType(tt.values))
		})
	}
}

func TestReadCategories(t *testing.T) {
	categories, format, err := ReadCategories([]byte(""+
		"Name;Joined;Score\r\n"+
		"Alice;2023-01-05;1.5\r\n"+
		";;\r\n"+
		"Bob;2023-02-10\r\n",
	), nil)
	require.NoError(t, err)
	require.Equal(t, ";", format.Separator)
	require.Equal(t,
		[]regrid.Category{
			regrid.NewCategory("Name", regrid.ColumnTypeText, "Alice", "Bob"),
			regrid.NewCategory("Joined", regrid.ColumnTypeDateTime, "2023-01-05", "2023-02-10"),
			regrid.NewCategory("Score", regrid.ColumnTypeNumeric, "1.5", ""),
		},
		categories,
	)

	rows, err := regrid.ShapeObjects(t.Context(), categories)
	require.NoError(t, err)
	require.Equal(t, []regrid.RowObject{
		{"name": "Alice", "joined": "05/01/2023", "score": "1.5"},
		{"name": "Bob", "joined": "10/02/2023", "score": ""},
	}, rows)

	_, _, err = ReadCategories([]byte("\r\n\r\n"), nil)
	require.ErrorIs(t, err, ErrNoHeaderRow)
}
