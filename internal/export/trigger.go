package export

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
)

const ContentType = "text/csv; charset=utf-8"

// Download is a finished export waiting to be saved somewhere.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

func NewDownload(filename string, body []byte) Download {
	return Download{Filename: filename, ContentType: ContentType, Body: body}
}

// Trigger hands a download to whatever saves it. Delivery is fire-and-forget:
// failures are logged by the implementation and never reach the caller.
type Trigger interface {
	Deliver(ctx context.Context, d Download)
}

// FileTrigger saves downloads into Dir.
type FileTrigger struct {
	Dir string
}

func (t FileTrigger) Deliver(ctx context.Context, d Download) {
	path := filepath.Join(t.Dir, d.Filename)
	if err := SaveFile(ctx, path, d.Body); err != nil {
		log.Printf("[export] save failed file=%s err=%v", path, err)
		return
	}
	log.Printf("[export] saved file=%s bytes=%d", path, len(d.Body))
}

// ResponseTrigger streams downloads to an HTTP client as an attachment,
// which the browser turns into a save-file prompt.
type ResponseTrigger struct {
	W http.ResponseWriter
}

func (t ResponseTrigger) Deliver(_ context.Context, d Download) {
	h := t.W.Header()
	h.Set("Content-Type", d.ContentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Filename))
	h.Set("Content-Length", strconv.Itoa(len(d.Body)))
	h.Set("Cache-Control", "no-store")
	t.W.WriteHeader(http.StatusOK)
	if _, err := t.W.Write(d.Body); err != nil {
		log.Printf("[export] response write failed file=%s err=%v", d.Filename, err)
	}
}
