package regrid

import (
	"encoding/json"
	"strings"
)

// ColumnType is the display type of a category column
// decided once from its TypeDescriptor.
type ColumnType int

const (
	ColumnTypeUnknown ColumnType = iota
	ColumnTypeText
	ColumnTypeNumeric
	ColumnTypeInteger
	ColumnTypeBool
	ColumnTypeDateTime
	ColumnTypeDuration
	ColumnTypeBinary
)

// columnTypeFlags lists the type descriptor flags
// in the order they are checked by TypeDescriptor.ColumnType.
// Hosts set both "integer" and "numeric" for whole numbers,
// so the more specific flag comes first.
var columnTypeFlags = []struct {
	flag string
	typ  ColumnType
}{
	{"dateTime", ColumnTypeDateTime},
	{"duration", ColumnTypeDuration},
	{"integer", ColumnTypeInteger},
	{"numeric", ColumnTypeNumeric},
	{"bool", ColumnTypeBool},
	{"text", ColumnTypeText},
	{"binary", ColumnTypeBinary},
}

// ParseColumnType returns the ColumnType for a type descriptor flag name
// like "dateTime" or "text". Matching is case insensitive.
func ParseColumnType(flag string) ColumnType {
	for _, f := range columnTypeFlags {
		if strings.EqualFold(f.flag, flag) {
			return f.typ
		}
	}
	return ColumnTypeUnknown
}

// Flag returns the type descriptor flag name of the ColumnType
// or an empty string for ColumnTypeUnknown.
func (t ColumnType) Flag() string {
	for _, f := range columnTypeFlags {
		if f.typ == t {
			return f.flag
		}
	}
	return ""
}

// String implements the fmt.Stringer interface.
func (t ColumnType) String() string {
	if flag := t.Flag(); flag != "" {
		return flag
	}
	return "unknown"
}

// IsDate returns true for ColumnTypeDateTime.
func (t ColumnType) IsDate() bool {
	return t == ColumnTypeDateTime
}

// TypeDescriptor maps type flag names to booleans
// where normally exactly one flag is true,
// for example {"dateTime": true}.
type TypeDescriptor map[string]bool

// TypeDescriptorOf returns a TypeDescriptor with only
// the flag of the passed ColumnType set.
func TypeDescriptorOf(t ColumnType) TypeDescriptor {
	if t == ColumnTypeUnknown {
		return TypeDescriptor{}
	}
	return TypeDescriptor{t.Flag(): true}
}

// ColumnType returns the ColumnType of the first true flag
// in the fixed priority order dateTime, duration, integer,
// numeric, bool, text, binary.
// ColumnTypeUnknown is returned if no known flag is true.
func (d TypeDescriptor) ColumnType() ColumnType {
	for _, f := range columnTypeFlags {
		if d[f.flag] {
			return f.typ
		}
	}
	return ColumnTypeUnknown
}

// UnmarshalJSON implements json.Unmarshaler.
// Members that are not booleans are ignored
// because host descriptors also carry nested objects
// and numeric underlying type codes.
func (d *TypeDescriptor) UnmarshalJSON(data []byte) error {
	var members map[string]any
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	desc := make(TypeDescriptor, len(members))
	for name, value := range members {
		if b, ok := value.(bool); ok {
			desc[name] = b
		}
	}
	*d = desc
	return nil
}
