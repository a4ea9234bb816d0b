package regrid

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultDateLayout renders dates in day/month/year order
	// like the en-GB locale, for example "31/12/2023".
	DefaultDateLayout = "02/01/2006"

	// InvalidDateText is the formatted text of
	// values that can't be interpreted as date.
	InvalidDateText = "Invalid Date"

	// JSDateLayout is the layout of JavaScript's Date.toString()
	// without the trailing parenthesized time zone name.
	JSDateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700"
)

// Custom layouts not included in the time package.
const (
	layoutDateTimeMinute   = "2006-01-02 15:04"
	layoutBrowserLocalTime = "2006-01-02T15:04"
	layoutLocalDateTime    = "2006-01-02T15:04:05.999999999"
	layoutTimeString       = "2006-01-02 15:04:05.999999999 -0700 MST"
	layoutSlashDateUS      = "01/02/2006"
	layoutYearMonth        = "2006-01"
	layoutYear             = "2006"
)

// dateOnlyLayouts are interpreted as UTC dates
// like ECMAScript does for ISO date-only forms.
var dateOnlyLayouts = map[string]bool{
	time.DateOnly:   true,
	layoutYearMonth: true,
	layoutYear:      true,
}

// DateLayouts is the list of time layouts tried in order by ParseDate.
// Layouts without zone information are parsed in the passed location,
// except the ISO date-only forms which are always UTC.
var DateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	layoutLocalDateTime,
	layoutBrowserLocalTime,
	JSDateLayout,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RubyDate,
	time.UnixDate,
	time.ANSIC,
	layoutTimeString,
	time.DateTime,
	layoutDateTimeMinute,
	time.DateOnly,
	layoutYearMonth,
	layoutYear,
	layoutSlashDateUS,
}

// ParseDate interprets value as a point in time.
// time.Time values are returned unchanged,
// other values are parsed from their JSString representation
// using DateLayouts where loc is used for layouts without zone.
// A nil loc means UTC.
func ParseDate(value any, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v != nil {
			return *v, nil
		}
		return time.Time{}, fmt.Errorf("cannot parse %#v as date", value)
	case nil:
		return time.Time{}, fmt.Errorf("cannot parse %#v as date", value)
	}
	str := strings.TrimSpace(JSString(value))
	// Date.toString() appends the zone name like " (Central European Standard Time)"
	if i := strings.LastIndex(str, " ("); i > 0 && strings.HasSuffix(str, ")") {
		str = str[:i]
	}
	for _, layout := range DateLayouts {
		parseLoc := loc
		if dateOnlyLayouts[layout] {
			parseLoc = time.UTC
		}
		t, err := time.ParseInLocation(layout, str, parseLoc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as date", str)
}

// FormatDate formats value as date with layout in loc
// or returns InvalidDateText if value can't be parsed as date.
// An empty layout means DefaultDateLayout.
//
// A nil loc keeps the wall clock of values with their own zone,
// so "Thu Jan 05 2023 00:00:00 GMT+0100" formats as "05/01/2023".
// Values without zone are then interpreted as UTC.
func FormatDate(value any, layout string, loc *time.Location) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	t, err := ParseDate(value, loc)
	if err != nil {
		return InvalidDateText
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}

// DateCellFormatter formats any cell value as date
// using FormatDate. It never returns an error,
// unparseable values are formatted as InvalidDateText.
type DateCellFormatter struct {
	Layout   string
	Location *time.Location
}

func (f DateCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return FormatDate(view.Cell(row, col), f.Layout, f.Location), false, nil
}
