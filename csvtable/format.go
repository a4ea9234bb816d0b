// Package csvtable reads CSV data into categories
// with automatic detection of encoding, separator and line endings
// and infers a column type for every column.
// It also writes views as CSV.
package csvtable

import (
	"errors"
	"fmt"
	"strings"
)

// Format describes the encoding and structural format of CSV data.
type Format struct {
	// Encoding is a name known to the go-types charset package
	// like "UTF-8", "UTF-16LE", "ISO 8859-1", "Windows 1252" or "Macintosh".
	Encoding string `json:"encoding"`

	// Separator is the single character field delimiter.
	Separator string `json:"separator"`

	// Newline is one of "\n", "\r\n" or "\n\r".
	Newline string `json:"newline"`
}

// NewFormat returns a UTF-8 Format with CRLF line endings
// and the passed separator.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\r\n",
	}
}

// Validate returns an error if the format is nil or incomplete.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> csvtable.Format")
	case f.Encoding == "":
		return errors.New("missing csvtable.Format.Encoding")
	case f.Separator == "":
		return errors.New("missing csvtable.Format.Separator")
	case len(f.Separator) > 1:
		return fmt.Errorf("invalid csvtable.Format.Separator: %q", f.Separator)
	case f.Newline == "":
		return errors.New("missing csvtable.Format.Newline")
	case f.Newline != "\n" && f.Newline != "\n\r" && f.Newline != "\r\n":
		return fmt.Errorf("invalid csvtable.Format.Newline: %q", f.Newline)
	}
	return nil
}

// FormatDetectionConfig configures the encoding detection.
type FormatDetectionConfig struct {
	// Encodings are tried in order.
	Encodings []string `json:"encodings"`

	// EncodingTests are strings with characters that have
	// different byte representations in the tried encodings.
	EncodingTests []string `json:"encodingTests"`
}

// NewDefaultFormatDetectionConfig returns a FormatDetectionConfig
// for European and Cyrillic CSV files.
func NewDefaultFormatDetectionConfig() *FormatDetectionConfig {
	return &FormatDetectionConfig{
		Encodings: []string{
			"UTF-8",
			"UTF-16LE",
			"ISO 8859-1",
			"Windows 1252", // like ANSI
			"Macintosh",
		},
		EncodingTests: []string{
			"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "§", "€",
			"д", "Д", "ъ", "Ъ", "б", "Б", "л", "Л", "и", "И", "ж",
		},
	}
}

// EscapeQuotes doubles all double quote characters.
func EscapeQuotes(val string) string {
	return strings.ReplaceAll(val, `"`, `""`)
}
