package merge

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"jobexport/internal/export"
)

var ErrNoInputs = errors.New("no csv files found")

// LinkColumn is the column duplicates are detected on.
const LinkColumn = "Link"

type Options struct {
	Dir        string
	OutputFile string // relative to Dir unless absolute
}

type Summary struct {
	Files      int
	TotalRows  int
	Duplicates int
	Final      int
	OutputPath string
}

type table struct {
	header []string
	rows   [][]string
}

// Run merges every *.csv in opts.Dir into one file, dropping rows whose Link
// was already seen in an earlier row. Files are taken in name order.
func Run(ctx context.Context, opts Options) (Summary, error) {
	out := opts.OutputFile
	if !filepath.IsAbs(out) {
		out = filepath.Join(opts.Dir, out)
	}

	files, err := inputs(opts.Dir, out)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		return Summary{}, fmt.Errorf("%w in %s", ErrNoInputs, opts.Dir)
	}
	log.Printf("[merge] found files=%d dir=%s", len(files), opts.Dir)

	tables := make([]table, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := readFile(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", filepath.Base(f), err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	header, rows := concat(tables)
	sum := Summary{Files: len(files), TotalRows: len(rows), OutputPath: out}
	log.Printf("[merge] total rows=%d", sum.TotalRows)

	if col := indexOf(header, LinkColumn); col >= 0 {
		var dropped int
		rows, dropped = dedupe(rows, col)
		sum.Duplicates = dropped
		log.Printf("[merge] removed duplicates=%d", dropped)
	} else {
		log.Printf("[merge] warn: %q column not found, duplicates kept", LinkColumn)
	}
	sum.Final = len(rows)

	data, err := encode(header, rows)
	if err != nil {
		return Summary{}, err
	}
	if err := export.SaveFile(ctx, out, data); err != nil {
		return Summary{}, fmt.Errorf("save merged file: %w", err)
	}
	log.Printf("[merge] saved file=%s rows=%d", out, sum.Final)
	return sum, nil
}

func inputs(dir, output string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	outAbs, _ := filepath.Abs(output)
	files := matches[:0]
	for _, m := range matches {
		if abs, _ := filepath.Abs(m); abs == outAbs {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

func readFile(path string) (table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table{}, err
	}
	defer f.Close()

	// strips a leading UTF-8 BOM, which spreadsheet exports commonly carry
	r := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return table{}, errors.New("empty file")
	}
	if err != nil {
		return table{}, err
	}
	rows, err := r.ReadAll()
	if err != nil {
		return table{}, err
	}
	return table{header: header, rows: rows}, nil
}

// concat stacks tables under the union of their headers, in first-seen
// column order. Cells a file does not have are left empty.
func concat(tables []table) ([]string, [][]string) {
	var header []string
	pos := map[string]int{}
	for _, t := range tables {
		for _, h := range t.header {
			if _, ok := pos[h]; !ok {
				pos[h] = len(header)
				header = append(header, h)
			}
		}
	}

	var rows [][]string
	for _, t := range tables {
		for _, src := range t.rows {
			row := make([]string, len(header))
			for i, v := range src {
				if i < len(t.header) {
					row[pos[t.header[i]]] = v
				}
			}
			rows = append(rows, row)
		}
	}
	return header, rows
}

// dedupe keeps the first row for each non-empty link. Rows without a link
// are never treated as duplicates of each other.
func dedupe(rows [][]string, col int) ([][]string, int) {
	seen := map[string]struct{}{}
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		link := row[col]
		if link != "" {
			if _, dup := seen[link]; dup {
				continue
			}
			seen[link] = struct{}{}
		}
		kept = append(kept, row)
	}
	return kept, len(rows) - len(kept)
}

func encode(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("encode merged csv: %w", err)
	}
	return buf.Bytes(), nil
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return -1
}
