package main

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const membersCSV = "Name;Joined;Score\r\nAlice;2023-01-05;42\r\nBob;2023-02-10;7\r\n"

const membersJSON = `[
	{"name": "Alice", "joined": "05/01/2023", "score": "42"},
	{"name": "Bob", "joined": "10/02/2023", "score": "7"}
]`

// execute runs the command line in a temporary working directory
// containing the passed files.
func execute(t *testing.T, files map[string]string, args ...string) (stdout string, err error) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	t.Chdir(dir)

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestRender_CSV(t *testing.T) {
	files := map[string]string{"members.csv": membersCSV}

	out, err := execute(t, files, "render", "--input", "members.csv", "--format", "json")
	require.NoError(t, err)
	require.JSONEq(t, membersJSON, out)

	out, err = execute(t, files, "render", "-i", "members.csv", "-f", "csv", "--sort-by", "Score")
	require.NoError(t, err)
	require.Equal(t, "Name,Joined,Score\nBob,10/02/2023,7\nAlice,05/01/2023,42\n", out, "numeric sort")

	out, err = execute(t, files, "render", "-i", "members.csv", "-f", "csv", "--sort-by", "joined", "--descending")
	require.NoError(t, err)
	require.Equal(t, "Name,Joined,Score\nBob,10/02/2023,7\nAlice,05/01/2023,42\n", out)

	out, err = execute(t, files, "render", "-i", "members.csv", "-f", "json", "--search", "BOB")
	require.NoError(t, err)
	require.JSONEq(t, `[["Bob", "10/02/2023", "7"]]`, out)

	out, err = execute(t, files, "render", "-i", "members.csv", "-f", "json", "--row-form", "arrays", "--camel-case-keys=false")
	require.NoError(t, err)
	require.JSONEq(t, `[["Alice", "05/01/2023", "42"], ["Bob", "10/02/2023", "7"]]`, out)

	out, err = execute(t, files, "render", "-i", "members.csv", "-f", "markdown")
	require.NoError(t, err)
	require.Contains(t, out, "| Alice | 05/01/2023 | 42 |")

	out, err = execute(t, files, "render", "-i", "members.csv", "-f", "text")
	require.NoError(t, err)
	require.Contains(t, out, "Alice")
	require.Contains(t, out, "┌")

	_, err = execute(t, files, "render", "-i", "members.csv", "--sort-by", "Missing")
	require.ErrorContains(t, err, `no column "Missing"`)
}

func TestRender_HTML(t *testing.T) {
	files := map[string]string{"members.csv": membersCSV}

	out, err := execute(t, files, "render", "--input", "members.csv", "--width", "400", "--height", "300")
	require.NoError(t, err)
	require.Contains(t, out, `<div id="tableContainer" style="height: 300px; width: 400px">`)
	require.Contains(t, out, `width: 400px; height: 292px; overflow: auto`)
	require.Contains(t, out, `<th data-column="name"`)
	require.Contains(t, out, `<td>Alice</td><td>05/01/2023</td><td>42</td>`)

	_, err = execute(t, files, "render", "--input", "members.csv", "--output", "grid.html")
	require.NoError(t, err)
	html, err := os.ReadFile("grid.html")
	require.NoError(t, err)
	require.Contains(t, string(html), `<td>Bob</td>`)
}

func TestRender_JSONInput(t *testing.T) {
	files := map[string]string{"dataview.json": `{
		"categorical": {"categories": [
			{"source": {"displayName": "Order Date", "type": {"dateTime": true}}, "values": ["2024-03-01T10:00:00Z"]},
			{"source": {"displayName": "Amount", "type": {"numeric": true}}, "values": [1.5]}
		]},
		"metadata": {"objects": {"grid": {"camelCaseKeys": false}}}
	}`}

	out, err := execute(t, files, "render", "-i", "dataview.json", "-f", "json")
	require.NoError(t, err)
	require.JSONEq(t, `[{"Order Date": "01/03/2024", "Amount": "1.5"}]`, out)
}

func TestRender_ExcelInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "members.xlsx")
	f := excelize.NewFile()
	for axis, value := range map[string]any{
		"A1": "Name", "B1": "Score",
		"A2": "Alice", "B2": 42,
		"A3": "Bob", "B3": 7,
	} {
		require.NoError(t, f.SetCellValue("Sheet1", axis, value))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out, err := execute(t, nil, "render", "-i", path, "-f", "csv", "--sort-by", "score")
	require.NoError(t, err)
	require.Equal(t, "Name,Score\nBob,7\nAlice,42\n", out)
}

func TestRender_SQL(t *testing.T) {
	files := map[string]string{"members.csv": membersCSV}
	out, err := execute(t, files, "render", "-i", "members.csv", "-f", "csv", "--sql-query", "SELECT Score, Name FROM data")
	require.NoError(t, err)
	require.Equal(t, "Score,Name\n42,Alice\n7,Bob\n", out)

	dbFile := filepath.Join(t.TempDir(), "members.db")
	db, err := sql.Open("sqlite", dbFile)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE members (name TEXT, joined DATE, score INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO members VALUES ('Alice', '2023-01-05', 42), ('Bob', '2023-02-10', 7)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err = execute(t, nil, "render", "-f", "json",
		"--sql-driver", "sqlite",
		"--sql-dsn", dbFile,
		"--sql-query", "SELECT name, joined, score FROM members ORDER BY name",
	)
	require.NoError(t, err)
	require.JSONEq(t, membersJSON, out)

	_, err = execute(t, nil, "render", "--sql-driver", "mysql", "--sql-query", "SELECT 1")
	require.ErrorContains(t, err, `invalid sql_driver "mysql"`)
}

func TestRender_Errors(t *testing.T) {
	_, err := execute(t, nil, "render")
	require.ErrorContains(t, err, "either --input or --sql-query is required")

	_, err = execute(t, map[string]string{"data.pdf": "%PDF"}, "render", "-i", "data.pdf")
	require.ErrorContains(t, err, `unsupported input file type ".pdf"`)

	_, err = execute(t, nil, "render", "-i", "missing.csv")
	require.Error(t, err)

	_, err = execute(t, map[string]string{"members.csv": membersCSV}, "render", "-i", "members.csv", "-f", "pdf")
	require.ErrorContains(t, err, `invalid format "pdf"`)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	require.Regexp(t, `^regrid \S+\n$`, out)
}
