// Package csvparse parses uploaded record sheets into header-keyed rows.
//
// The dialect is deliberately narrow: comma separated, double-quote
// delimited fields with doubled quotes as escapes. encoding/csv is not
// used because upload sheets exported from spreadsheet tools routinely
// carry stray quotes and uneven whitespace that the stricter reader
// rejects wholesale; here a single bad line must not poison the batch.
package csvparse

import (
	"fmt"
	"strings"
)

// Row maps a header name to the field value of one data line.
// Empty and whitespace-only fields are normalized to nil.
type Row map[string]*string

// Record is one data line of the sheet. Err is set when the line could
// not be mapped against the header (field count mismatch); Row is nil
// in that case.
type Record struct {
	Row Row
	Err error
}

// Parse splits text into header-keyed records. The first line is the
// header. Fewer than two lines yields no records. Lines whose field
// count differs from the header are emitted with Err set rather than
// dropped, so callers can report them per row.
func Parse(text string) []Record {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil
	}

	header := splitFields(lines[0])
	for i, h := range header {
		header[i] = cleanField(h)
	}

	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitFields(line)
		if len(fields) != len(header) {
			records = append(records, Record{
				Err: fmt.Errorf("expected %d columns, got %d", len(header), len(fields)),
			})
			continue
		}

		row := make(Row, len(header))
		for i, name := range header {
			value := cleanField(fields[i])
			if value == "" {
				row[name] = nil
			} else {
				v := value
				row[name] = &v
			}
		}
		records = append(records, Record{Row: row})
	}

	return records
}

// Get returns the trimmed value for key, or "" when the field is
// absent or was normalized to nil.
func (r Row) Get(key string) string {
	if v, ok := r[key]; ok && v != nil {
		return *v
	}
	return ""
}

// Has reports whether key holds a non-empty value.
func (r Row) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitFields tokenizes one line. A double quote toggles the in-quotes
// state unless immediately followed by another double quote, which is
// an escaped literal quote. Commas separate fields only outside quotes.
func splitFields(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	fields = append(fields, current.String())
	return fields
}

// cleanField trims surrounding whitespace and strips one residual
// leading/trailing quote left over from sloppy exports.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.TrimSpace(s)
}
