package gridhtml

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/domonda/go-regrid"
)

// Direction is the sort direction of a column.
type Direction int

const (
	// Unsorted keeps the rows in data order.
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	}
	return "none"
}

// ParseDirection parses "asc", "ascending", "desc" or "descending".
// Anything else returns Unsorted.
func ParseDirection(s string) Direction {
	switch strings.ToLower(s) {
	case "asc", "ascending":
		return Ascending
	case "desc", "descending":
		return Descending
	}
	return Unsorted
}

// Cell classes in sort order.
const (
	numberCell = iota
	dateCell
	textCell
)

// CompareCells compares two formatted cell values.
// Numbers sort before dates in dateLayout and dates before other text.
// Two numbers compare numerically, two dates chronologically
// and two texts lexically, which keeps the order transitive
// for columns mixing the classes.
// An empty dateLayout means regrid.DefaultDateLayout.
func CompareCells(a, b, dateLayout string) int {
	if dateLayout == "" {
		dateLayout = regrid.DefaultDateLayout
	}
	classA, numA, dateA := classifyCell(a, dateLayout)
	classB, numB, dateB := classifyCell(b, dateLayout)
	if c := cmp.Compare(classA, classB); c != 0 {
		return c
	}
	switch classA {
	case numberCell:
		return cmp.Compare(numA, numB)
	case dateCell:
		return dateA.Compare(dateB)
	}
	return strings.Compare(a, b)
}

func classifyCell(cell, dateLayout string) (class int, num float64, date time.Time) {
	if f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
		return numberCell, f, time.Time{}
	}
	if t, err := time.Parse(dateLayout, cell); err == nil {
		return dateCell, 0, t
	}
	return textCell, 0, time.Time{}
}

// sortRows sorts rows stable by the cells at col.
func sortRows(rows [][]string, col int, dir Direction, dateLayout string) {
	if dir == Unsorted {
		return
	}
	slices.SortStableFunc(rows, func(a, b []string) int {
		c := CompareCells(cellAt(a, col), cellAt(b, col), dateLayout)
		if dir == Descending {
			return -c
		}
		return c
	})
}

// filterRows returns the rows that contain search
// case-insensitive in any cell.
func filterRows(rows [][]string, search string) [][]string {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return rows
	}
	filtered := make([][]string, 0, len(rows))
	for _, row := range rows {
		if slices.ContainsFunc(row, func(cell string) bool {
			return strings.Contains(strings.ToLower(cell), search)
		}) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
