package linkedin

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobexport/internal/config"
	"jobexport/internal/domain"
	"jobexport/internal/scrape/util"
)

// Collect runs the extractor over every listing card in DOM order and keeps
// the cards that have both a title and a company. No dedupe.
func Collect(doc *goquery.Document, listing string, e Extractor) []domain.JobRecord {
	jobs := make([]domain.JobRecord, 0)
	doc.Find(listing).Each(func(_ int, card *goquery.Selection) {
		r := e.Record(card)
		if !r.Keep() {
			return
		}
		jobs = append(jobs, r)
	})
	return jobs
}

// Extract parses page.HTML and collects its job cards.
// The only error is an unparseable document.
func Extract(page domain.Page, cfg config.Config) ([]domain.JobRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}

	base := documentBase(doc, page.URL, cfg.Page.BaseURL)
	return Collect(doc, cfg.Selectors.Listing, NewExtractor(cfg, base)), nil
}

// documentBase picks the URL relative hrefs resolve against: the page URL,
// else the configured fallback, then adjusted by a <base href> if present.
func documentBase(doc *goquery.Document, pageURL, fallback string) *url.URL {
	base := util.ParseBase(pageURL)
	if base == nil {
		base = util.ParseBase(fallback)
	}

	if href, ok := doc.Find("head base[href]").First().Attr("href"); ok {
		if abs, ok := util.ResolveURL(base, href); ok {
			if b := util.ParseBase(abs); b != nil {
				return b
			}
		}
	}
	return base
}
