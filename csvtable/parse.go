package csvtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/domonda/go-types/charset"
)

// ParseDetectFormat parses CSV data detecting its encoding,
// line endings and separator.
//
// The encoding is the first of config.Encodings that decodes
// the config.EncodingTests characters, UTF-8 if none does.
// CRLF line endings are used if the data contains any, else LF.
// A first line like "sep=;" declares the separator and is removed,
// else the most frequent of comma, semicolon and tab is used
// with comma winning ties.
//
// If config is nil, then NewDefaultFormatDetectionConfig is used.
func ParseDetectFormat(data []byte, config *FormatDetectionConfig) (rows [][]string, format *Format, err error) {
	if config == nil {
		config = NewDefaultFormatDetectionConfig()
	}
	format, data, err = detectFormat(data, config)
	if err != nil {
		return nil, nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, format, nil
	}
	rows, err = readRows(data, format)
	return rows, format, err
}

// ParseWithFormat parses CSV data in the passed format.
// A first line like "sep=;" must match format.Separator
// and is removed.
func ParseWithFormat(data []byte, format *Format) (rows [][]string, err error) {
	if err = format.Validate(); err != nil {
		return nil, err
	}
	if format.Encoding == "UTF-8" {
		data = charset.TrimBOM(data, charset.BOMUTF8)
	} else {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		data, err = enc.Decode(data)
		if err != nil {
			return nil, err
		}
	}
	data = sanitizeUTF8(data)

	firstLine, rest := cutLine(data, format.Newline)
	if headerSep := parseSepHeaderLine(firstLine); headerSep != "" {
		if headerSep != format.Separator {
			return nil, fmt.Errorf("separator '%s' in header line is different from format.Separator '%s'", headerSep, format.Separator)
		}
		data = rest
	}
	return readRows(data, format)
}

// detectFormat detects the format of data
// and returns data decoded to UTF-8
// without a separator header line.
func detectFormat(data []byte, config *FormatDetectionConfig) (format *Format, decoded []byte, err error) {
	if config == nil {
		return nil, nil, errors.New("FormatDetectionConfig must not be nil")
	}
	format = new(Format)

	var encodings []charset.Encoding
	for _, name := range config.Encodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return nil, nil, err
		}
		encodings = append(encodings, enc)
	}
	data, format.Encoding, err = charset.AutoDecode(data, encodings, config.EncodingTests)
	if err != nil {
		return nil, nil, err
	}
	if format.Encoding == "" {
		format.Encoding = "UTF-8"
	}
	data = sanitizeUTF8(data)

	if bytes.Contains(data, []byte{'\r', '\n'}) {
		format.Newline = "\r\n"
	} else {
		format.Newline = "\n"
	}

	firstLine, rest := cutLine(data, format.Newline)
	if format.Separator = parseSepHeaderLine(firstLine); format.Separator != "" {
		return format, rest, nil
	}

	var (
		commas     = bytes.Count(data, []byte{','})
		semicolons = bytes.Count(data, []byte{';'})
		tabs       = bytes.Count(data, []byte{'\t'})
	)
	switch {
	case semicolons > commas && semicolons > tabs:
		format.Separator = ";"
	case tabs > commas && tabs > semicolons:
		format.Separator = "\t"
	default:
		format.Separator = ","
	}
	return format, data, nil
}

// readRows parses UTF-8 CSV data using RFC 4180 quoting
// with quotes tolerated inside unquoted fields.
// Rows may have different numbers of fields
// and empty lines are skipped.
func readRows(data []byte, format *Format) (rows [][]string, err error) {
	if format.Newline == "\n\r" {
		data = bytes.ReplaceAll(data, []byte("\n\r"), []byte("\n"))
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = rune(format.Separator[0])
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("can't parse CSV: %w", err)
		}
		rows = append(rows, row)
	}
}

func cutLine(data []byte, newline string) (line, rest []byte) {
	line, rest, found := bytes.Cut(data, []byte(newline))
	if !found {
		return data, nil
	}
	return line, rest
}

// parseSepHeaderLine returns the separator of a line
// like "sep=;" or "SEP=;", optionally enclosed in quotes,
// or an empty string for other lines.
func parseSepHeaderLine(line []byte) (sep string) {
	line = bytes.TrimRight(line, "\r\n")
	if len(line) < 5 {
		return ""
	}
	if line[0] == '"' && line[len(line)-1] == '"' {
		line = line[1 : len(line)-1]
	}
	if len(line) != 5 {
		return ""
	}
	if !bytes.HasPrefix(line, []byte("sep=")) && !bytes.HasPrefix(line, []byte("SEP=")) {
		return ""
	}
	return string(line[4:5])
}

// sanitizeUTF8 replaces the replacement character
// and no-break spaces with spaces.
func sanitizeUTF8(str []byte) []byte {
	return bytes.Map(
		func(r rune) rune {
			switch r {
			case '\uFFFD', '\u00a0':
				return ' '
			default:
				return r
			}
		},
		str,
	)
}
