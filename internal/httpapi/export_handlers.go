package httpapi

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"jobexport/internal/config"
	"jobexport/internal/domain"
	"jobexport/internal/events"
	"jobexport/internal/export"
	"jobexport/internal/scrape/linkedin"
)

// MaxPageBytes caps the posted DOM snapshot.
const MaxPageBytes = 20 << 20

type ExportHandler struct {
	CfgVal *atomic.Value // config.Config
	Status *atomic.Value // httpapi.ExportStatus
	Hub    *events.Hub
}

// Export takes the page HTML as the request body and answers with the CSV as
// an attachment. ?url= is the address the page was captured from.
func (h ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxPageBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			WriteError(w, r, CodePageTooLarge, "page exceeds 20 MiB")
			return
		}
		WriteError(w, r, CodeBadBody, err.Error())
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		WriteError(w, r, CodeEmptyBody, "request body must be the page html")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	page := domain.Page{HTML: string(body), URL: strings.TrimSpace(r.URL.Query().Get("url"))}

	jobs, err := linkedin.Extract(page, cfg)
	if err != nil {
		h.record(page.URL, 0, err)
		h.publish(r, events.TypeExportError, map[string]string{"url": page.URL, "error": err.Error()})
		WriteError(w, r, CodeParseFailed, err.Error())
		return
	}
	log.Printf("[export] request_id=%s found jobs=%d url=%s", RequestIDFrom(r.Context()), len(jobs), page.URL)
	h.record(page.URL, len(jobs), nil)

	w.Header().Set("X-Job-Count", strconv.Itoa(len(jobs)))
	d := export.NewDownload(cfg.Export.Filename, export.Marshal(jobs, cfg.Export.BOM))
	export.ResponseTrigger{W: w}.Deliver(r.Context(), d)
	h.publish(r, events.TypeExportDone, events.ExportDone{URL: page.URL, Jobs: len(jobs), Filename: d.Filename})
}

func (h ExportHandler) publish(r *http.Request, typ string, data any) {
	if h.Hub == nil {
		return
	}
	h.Hub.Publish(events.Encode(RequestIDFrom(r.Context()), typ, data))
}

func (h ExportHandler) StatusGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Status.Load().(ExportStatus))
}

func (h ExportHandler) record(pageURL string, n int, err error) {
	for {
		old := h.Status.Load()
		next := old.(ExportStatus)
		next.LastRunAt = time.Now().Format(time.RFC3339)
		next.LastURL = pageURL
		next.LastJobs = n
		next.LastError = ""
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.Exports++
		}
		if h.Status.CompareAndSwap(old, next) {
			return
		}
	}
}
