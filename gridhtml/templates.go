package gridhtml

import "html/template"

// GridTemplate renders a grid as HTML.
// It is executed with a *TemplateContext.
var GridTemplate = template.Must(template.New("grid").Parse(`` +
	`<div class="regrid-wrapper{{if .ClassName}} {{.ClassName}}{{end}}" style="{{.WrapperStyle}}">` +
	`<table class="regrid-table">` +
	`<thead><tr>` +
	`{{range .Headers}}` +
	`<th data-column="{{.ID}}"{{if .Sortable}} data-sortable="true" aria-sort="{{.AriaSort}}"{{end}}{{if $.FixedHeader}} style="position: sticky; top: 0"{{end}}>{{.Name}}</th>` +
	`{{end}}` +
	`</tr></thead>` +
	`<tbody>` +
	`{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{else}}` +
	`<tr><td class="regrid-notfound" colspan="{{.NumColumns}}">{{.NotFound}}</td></tr>` +
	`{{end}}` +
	`</tbody>` +
	`</table>` +
	`{{if .Sort}}<script>` + sortScript + `</script>{{end}}` +
	`</div>`,
))

// sortScript sorts the rows of the preceding table
// in the browser when a sortable header is clicked.
// Numbers compare numerically, day/month/year dates chronologically.
const sortScript = `(function (table) {
  function key(s) {
    var t = s.trim();
    if (t !== "" && !isNaN(Number(t))) return Number(t);
    var p = t.split("/");
    if (p.length === 3 && p[2].length === 4) return new Date(+p[2], +p[1] - 1, +p[0]).getTime();
    return s;
  }
  table.querySelectorAll("th[data-sortable]").forEach(function (th) {
    th.addEventListener("click", function () {
      var col = th.cellIndex, asc = th.getAttribute("aria-sort") !== "ascending";
      table.querySelectorAll("th[data-sortable]").forEach(function (h) { h.setAttribute("aria-sort", "none"); });
      th.setAttribute("aria-sort", asc ? "ascending" : "descending");
      var body = table.tBodies[0], rows = Array.prototype.slice.call(body.rows);
      rows.sort(function (a, b) {
        var x = key(a.cells[col].textContent), y = key(b.cells[col].textContent);
        var c = typeof x === typeof y ? (x < y ? -1 : x > y ? 1 : 0) : String(x).localeCompare(String(y));
        return asc ? c : -c;
      });
      rows.forEach(function (r) { body.appendChild(r); });
    });
  });
})(document.currentScript.previousElementSibling);`

// TemplateContext is the data GridTemplate is executed with.
type TemplateContext struct {
	ClassName    string
	WrapperStyle template.CSS
	FixedHeader  bool
	Sort         bool
	Headers      []HeaderContext
	Rows         [][]string
	NumColumns   int
	NotFound     string
}

// HeaderContext describes one header cell.
type HeaderContext struct {
	Name     string
	ID       string
	Sortable bool
	AriaSort string
}
