package export

import (
	"bytes"
	"strings"

	"jobexport/internal/domain"
)

// Header is the fixed column order of every export.
var Header = []string{"Title", "Company", "Location", "Posted", "Notes", "Link"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EscapeField applies minimal RFC 4180 quoting: nil becomes "", values with a
// quote, comma or newline are quoted with inner quotes doubled, the rest pass
// through untouched.
func EscapeField(v *string) string {
	if v == nil {
		return `""`
	}
	s := *v
	if strings.ContainsAny(s, "\",\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// Row renders one record as a CSV line without the terminator.
func Row(r domain.JobRecord) string {
	notes := r.Notes
	fields := []string{
		EscapeField(r.Title),
		EscapeField(r.Company),
		EscapeField(r.Location),
		EscapeField(r.Posted),
		EscapeField(&notes),
		EscapeField(r.Link),
	}
	return strings.Join(fields, ",")
}

// Marshal renders the header line and one line per record, each ending in \n.
func Marshal(records []domain.JobRecord, bom bool) []byte {
	var buf bytes.Buffer
	if bom {
		buf.Write(utf8BOM)
	}
	buf.WriteString(strings.Join(Header, ","))
	buf.WriteByte('\n')
	for _, r := range records {
		buf.WriteString(Row(r))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
