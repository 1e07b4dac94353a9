package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

type Middleware func(http.Handler) http.Handler

func Chain(h http.Handler, m ...Middleware) http.Handler {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}

// crossOriginPaths are the routes a page in an allowed origin may call.
// Everything else, config included, is for the local CLI and curl only.
var crossOriginPaths = []string{"/health", "/export", "/export/status", "/events"}

// Cors admits browser requests from the allowed origins (the LinkedIn tab the
// bookmarklet runs in) to the export routes. A request carrying any other
// Origin, or an allowed Origin on a non-export route, is refused before it
// reaches a handler. Requests without an Origin header pass untouched.
func Cors(allowed func() []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			if !slices.Contains(allowed(), origin) {
				log.Printf("[http] refused origin=%q method=%s path=%s", origin, r.Method, r.URL.Path)
				WriteError(w, r, CodeOriginForbidden, "origin not allowed")
				return
			}
			if !slices.Contains(crossOriginPaths, r.URL.Path) {
				WriteError(w, r, CodeOriginForbidden, r.URL.Path+" is not available to browser pages")
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			h.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			h.Set("Access-Control-Expose-Headers", "Content-Disposition, X-Job-Count, X-Request-ID")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// RequestID tags the request with the caller's X-Request-ID, or a fresh one,
// and echoes it back so a bookmarklet can quote it in bug reports.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" || len(id) > 64 {
			var b [8]byte
			_, _ = rand.Read(b[:])
			id = hex.EncodeToString(b[:])
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("level=error msg=\"panic\" request_id=%s method=%s path=%s err=%v",
					RequestIDFrom(r.Context()), r.Method, r.URL.Path, rec)
				WriteError(w, r, CodeInternal, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// logWriter records what the handler answered so AccessLog can report it.
type logWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (lw *logWriter) WriteHeader(code int) {
	if lw.status == 0 {
		lw.status = code
	}
	lw.ResponseWriter.WriteHeader(code)
}

func (lw *logWriter) Write(b []byte) (int, error) {
	if lw.status == 0 {
		lw.status = http.StatusOK
	}
	n, err := lw.ResponseWriter.Write(b)
	lw.bytes += n
	return n, err
}

// Flush keeps /events streaming through the wrapper.
func (lw *logWriter) Flush() {
	if f, ok := lw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// AccessLog writes one line per request. Exports also carry the job count
// and the page they came from, so a run can be traced without the CSV.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &logWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		line := fmt.Sprintf("level=info msg=\"http\" request_id=%s method=%s path=%s status=%d bytes=%d dur_ms=%d",
			RequestIDFrom(r.Context()), r.Method, r.URL.Path, lw.status, lw.bytes, time.Since(start).Milliseconds())
		if n := lw.Header().Get("X-Job-Count"); n != "" {
			line += fmt.Sprintf(" jobs=%s page=%q", n, r.URL.Query().Get("url"))
		}
		if o := r.Header.Get("Origin"); o != "" {
			line += fmt.Sprintf(" origin=%q", o)
		}
		log.Print(line)
	})
}
