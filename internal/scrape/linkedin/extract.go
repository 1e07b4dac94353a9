package linkedin

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobexport/internal/config"
	"jobexport/internal/domain"
	"jobexport/internal/scrape/util"
)

// Extractor pulls a JobRecord out of one search-results card.
type Extractor struct {
	Sel     config.Selectors
	Phrases []string // connection phrases that disqualify an insight
	Base    *url.URL // nil leaves relative links unresolved
}

func NewExtractor(cfg config.Config, base *url.URL) Extractor {
	return Extractor{
		Sel:     cfg.Selectors,
		Phrases: cfg.Filters.ConnectionPhrases,
		Base:    base,
	}
}

// Text returns the cleaned text of the first element under card matching
// selector, or nil when nothing matches. An empty match is "" rather than nil.
func Text(card *goquery.Selection, selector string) *string {
	if selector == "" {
		return nil
	}
	el := card.Find(selector).First()
	if el.Length() == 0 {
		return nil
	}
	t := util.CleanText(el.Text())
	return &t
}

// Link returns the absolute href of the first anchor under card matching
// selector, or nil when there is no anchor or no usable href.
func Link(card *goquery.Selection, selector string, base *url.URL) *string {
	if selector == "" {
		return nil
	}
	a := card.Find(selector).First()
	if a.Length() == 0 {
		return nil
	}
	href, ok := a.Attr("href")
	if !ok {
		return nil
	}
	abs, ok := util.ResolveURL(base, href)
	if !ok {
		return nil
	}
	return &abs
}

func (e Extractor) Record(card *goquery.Selection) domain.JobRecord {
	r := domain.JobRecord{
		Title:    Text(card, e.Sel.Title),
		Company:  Text(card, e.Sel.Company),
		Location: Text(card, e.Sel.Location),
		Posted:   Text(card, e.Sel.Posted),
		Link:     Link(card, e.Sel.Link, e.Base),
	}
	r.Notes = strings.Join(e.notes(card, r.Posted), ", ")
	return r
}

// notes gathers footer labels (minus the posted date, which already has a
// column) and the insight line unless it is a "N connections work here" blurb.
func (e Extractor) notes(card *goquery.Selection, posted *string) []string {
	var out []string

	if e.Sel.FooterItem != "" {
		card.Find(e.Sel.FooterItem).Each(func(_ int, item *goquery.Selection) {
			raw := strings.TrimSpace(item.Text())
			if raw == "" {
				return
			}
			// compared before collapsing, same as the posted column was captured
			if posted != nil && raw == *posted {
				return
			}
			out = append(out, util.CleanText(raw))
		})
	}

	if insight := Text(card, e.Sel.Insight); insight != nil && *insight != "" {
		if !util.ContainsAny(*insight, e.Phrases) {
			out = append(out, *insight)
		}
	}

	return out
}
