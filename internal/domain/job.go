package domain

// JobRecord is one listing card pulled off a search-results page.
// Nil pointers mean the card had no matching sub-element.
type JobRecord struct {
	Title    *string
	Company  *string
	Location *string
	Posted   *string
	Notes    string // comma-joined footer labels + insight
	Link     *string
}

// Keep reports whether the record carries both a title and a company.
// Empty strings count as missing.
func (r JobRecord) Keep() bool {
	return r.Title != nil && *r.Title != "" &&
		r.Company != nil && *r.Company != ""
}

// Page is a rendered DOM snapshot and the URL it was loaded from.
type Page struct {
	HTML string
	URL  string
}
