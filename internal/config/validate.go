package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/andybalholm/cascadia"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" || seen[x] {
				continue
			}
			seen[x] = true
			ys = append(ys, x)
		}
		return ys
	}

	// phrases are case-sensitive substrings, so dedupe without folding
	out.Filters.ConnectionPhrases = trimList(out.Filters.ConnectionPhrases)
	out.Export.Filename = strings.TrimSpace(out.Export.Filename)
	out.Page.BaseURL = strings.TrimSpace(out.Page.BaseURL)
	origins := make([]string, 0, len(out.App.AllowedOrigins))
	for _, o := range out.App.AllowedOrigins {
		origins = append(origins, strings.TrimSuffix(strings.TrimSpace(o), "/"))
	}
	out.App.AllowedOrigins = trimList(origins)

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	// an origin is scheme://host[:port] exactly as the browser sends it
	if len(out.App.AllowedOrigins) == 0 {
		res.addWarn("app.allowed_origins is empty; browser pages cannot reach the server")
	}
	for _, o := range out.App.AllowedOrigins {
		u, err := url.Parse(o)
		if err != nil || u.Scheme == "" || u.Host == "" || u.Path != "" || u.RawQuery != "" {
			res.addErr("app.allowed_origins entry %q must be scheme://host", o)
		}
	}

	sels := []struct {
		name     string
		value    string
		required bool
	}{
		{"selectors.listing", out.Selectors.Listing, true},
		{"selectors.title", out.Selectors.Title, true},
		{"selectors.company", out.Selectors.Company, true},
		{"selectors.location", out.Selectors.Location, false},
		{"selectors.posted", out.Selectors.Posted, false},
		{"selectors.link", out.Selectors.Link, false},
		{"selectors.footer_item", out.Selectors.FooterItem, false},
		{"selectors.insight", out.Selectors.Insight, false},
	}
	for _, s := range sels {
		if strings.TrimSpace(s.value) == "" {
			if s.required {
				res.addErr("%s is required", s.name)
			} else {
				res.addWarn("%s is empty; that column will always be blank", s.name)
			}
			continue
		}
		if _, err := cascadia.Compile(s.value); err != nil {
			res.addErr("%s is not a valid CSS selector: %v", s.name, err)
		}
	}

	if out.Export.Filename == "" {
		res.addErr("export.filename is required")
	} else if strings.ContainsAny(out.Export.Filename, `/\`) {
		res.addErr("export.filename must be a bare file name, got %q", out.Export.Filename)
	} else if !strings.HasSuffix(strings.ToLower(out.Export.Filename), ".csv") {
		res.addWarn("export.filename %q does not end in .csv", out.Export.Filename)
	}

	if out.Page.BaseURL != "" {
		u, err := url.Parse(out.Page.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("page.base_url must be an absolute URL, got %q", out.Page.BaseURL)
		}
	} else {
		res.addWarn("page.base_url is empty; relative job links will be left unresolved")
	}

	if len(out.Filters.ConnectionPhrases) == 0 {
		res.addWarn("filters.connection_phrases is empty; connection insights will end up in notes")
	}

	if out.Browser.TimeoutSeconds <= 0 {
		res.addErr("browser.timeout_seconds must be > 0")
	}

	if strings.TrimSpace(out.Merge.OutputFile) == "" {
		res.addErr("merge.output_file is required")
	}

	return out, res
}
