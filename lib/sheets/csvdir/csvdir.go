// Package csvdir implements a sheets.Store over a directory of CSV files,
// one file per account, named "<account>.csv" with a header row.
package csvdir

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hallfarms/books/lib/common/compare"
	"github.com/hallfarms/books/lib/common/dict"
	"github.com/hallfarms/books/lib/ledger"
	"github.com/hallfarms/books/lib/sheets"
	"github.com/natefinch/atomic"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"
)

// fetchConcurrency caps concurrent file reads, mirroring the rate limit the
// hosted sheet API imposes.
const fetchConcurrency = 4

// Client reads and writes account sheets in a directory.
type Client struct {
	Dir string
	// Latin1 decodes the files as ISO 8859-1, the encoding some bank
	// export tools still produce. Writes are always UTF-8.
	Latin1 bool

	// Row counts are cached per account; writers invalidate explicitly.
	mu        sync.Mutex
	rowCounts map[string]int
}

// New creates a client for the given directory.
func New(dir string) *Client {
	return &Client{Dir: dir, rowCounts: make(map[string]int)}
}

// FetchAccounts implements sheets.Store.
func (c *Client) FetchAccounts(ctx context.Context) ([]*ledger.RawAccount, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".csv") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	res := make([]*ledger.RawAccount, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			acct, err := c.readAccount(name)
			if err != nil {
				return err
			}
			res[i] = acct
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	for _, a := range res {
		c.rowCounts[a.Name] = len(a.Rows)
	}
	c.mu.Unlock()
	return res, nil
}

func (c *Client) readAccount(filename string) (*ledger.RawAccount, error) {
	header, records, err := c.readFile(filename)
	if err != nil {
		return nil, err
	}
	acct := &ledger.RawAccount{
		Name:     strings.TrimSuffix(filename, ".csv"),
		Filename: filename,
		Header:   header,
	}
	for _, rec := range records {
		row := make(ledger.Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		acct.Rows = append(acct.Rows, row)
	}
	return acct, nil
}

func (c *Client) readFile(filename string) ([]string, [][]string, error) {
	f, err := os.Open(filepath.Join(c.Dir, filename))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	var in io.Reader = f
	if c.Latin1 {
		in = charmap.ISO8859_1.NewDecoder().Reader(in)
	}
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%s has no header row", filename)
	}
	return all[0], all[1:], nil
}

// PutRow implements sheets.Store.
func (c *Client) PutRow(ctx context.Context, acct string, lineno int, row ledger.Row) error {
	return c.BatchUpsertRows(ctx, acct, []sheets.RowUpdate{{Lineno: lineno, Row: row}}, nil, sheets.Update)
}

// BatchUpsertRows implements sheets.Store.
func (c *Client) BatchUpsertRows(_ context.Context, acct string, updates []sheets.RowUpdate, header []string, mode sheets.UpsertMode) error {
	filename := acct + ".csv"
	fileHeader, records, err := c.readFile(filename)
	if err != nil {
		return err
	}
	if len(header) == 0 {
		header = fileHeader
	}
	// Sheet lineno 2 is records[0].
	idx := func(lineno int) int { return lineno - 2 }

	switch mode {
	case sheets.Update:
		for _, u := range updates {
			i := idx(u.Lineno)
			for i >= len(records) {
				records = append(records, make([]string, len(header)))
			}
			records[i] = recordOf(header, u.Row)
		}
	case sheets.Insert:
		// Insert bottom-up so earlier insertions do not shift later ones.
		// Updates sharing a lineno become one consecutive block, in input
		// order.
		byLine := make(map[int][][]string)
		for _, u := range updates {
			byLine[u.Lineno] = append(byLine[u.Lineno], recordOf(header, u.Row))
		}
		linenos := dict.SortedKeys(byLine, compare.Desc(compare.Ordered[int]))
		for _, lineno := range linenos {
			i := idx(lineno)
			if i > len(records) {
				i = len(records)
			}
			if i < 0 {
				i = 0
			}
			records = append(records[:i], append(byLine[lineno], records[i:]...)...)
		}
	default:
		return fmt.Errorf("unknown upsert mode %d", mode)
	}
	if err := c.writeFile(filename, header, records); err != nil {
		return err
	}
	c.Invalidate(acct)
	return nil
}

func (c *Client) writeFile(filename string, header []string, records [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return atomic.WriteFile(filepath.Join(c.Dir, filename), &buf)
}

func recordOf(header []string, row ledger.Row) []string {
	rec := make([]string, len(header))
	for i, col := range header {
		rec[i] = row[col]
	}
	return rec
}

// RowCount returns the cached number of data rows of an account, reading the
// file on a cache miss.
func (c *Client) RowCount(acct string) (int, error) {
	c.mu.Lock()
	n, ok := c.rowCounts[acct]
	c.mu.Unlock()
	if ok {
		return n, nil
	}
	_, records, err := c.readFile(acct + ".csv")
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	c.rowCounts[acct] = len(records)
	c.mu.Unlock()
	return len(records), nil
}

// Invalidate drops the cached row count for the account, or all cached
// counts when acct is empty.
func (c *Client) Invalidate(acct string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if acct == "" {
		c.rowCounts = make(map[string]int)
		return
	}
	delete(c.rowCounts, acct)
}
