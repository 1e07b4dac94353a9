package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"jobexport/internal/domain"
)

// Stdin is the path that makes FileSource read standard input.
const Stdin = "-"

// FileSource reads a page saved from the browser ("Save page as", or a
// document.documentElement.outerHTML dump). URL is the address it was
// saved from and may be empty.
type FileSource struct {
	Path string
	URL  string

	stdin io.Reader
}

func NewFileSource(path, pageURL string) *FileSource {
	return &FileSource{Path: path, URL: pageURL, stdin: os.Stdin}
}

func (s *FileSource) Name() string {
	if s.Path == Stdin {
		return "stdin"
	}
	return "file"
}

func (s *FileSource) Load(_ context.Context) (domain.Page, error) {
	var (
		b   []byte
		err error
	)
	if s.Path == Stdin {
		r := s.stdin
		if r == nil {
			r = os.Stdin
		}
		b, err = io.ReadAll(r)
	} else {
		b, err = os.ReadFile(s.Path)
	}
	if err != nil {
		return domain.Page{}, fmt.Errorf("read page %s: %w", s.Path, err)
	}
	return domain.Page{HTML: string(b), URL: s.URL}, nil
}
