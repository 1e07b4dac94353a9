package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"jobexport/internal/domain"
)

// PrintTable writes a human-readable summary of the extracted jobs, one row
// per record, for eyeballing before the CSV is saved.
func PrintTable(w io.Writer, records []domain.JobRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTITLE\tCOMPANY\tLOCATION\tPOSTED\tNOTES\tLINK")
	for i, r := range records {
		notes := r.Notes
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", i+1,
			cell(r.Title), cell(r.Company), cell(r.Location), cell(r.Posted), cell(&notes), cell(r.Link))
	}
	return tw.Flush()
}

// cell keeps a row on one line: embedded newlines and tabs would break the
// column alignment.
func cell(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return strings.Join(strings.Fields(*v), " ")
}
