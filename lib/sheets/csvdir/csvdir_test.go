package csvdir

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hallfarms/books/lib/ledger"
	"github.com/hallfarms/books/lib/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSheet(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFetchAccounts(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "checking.csv",
		"date,description,amount\n2020-01-01,opening,\n2020-02-01,seed,-250\n")
	writeSheet(t, dir, "cattle.csv",
		"date,category,qty\n2020-01-01,START,10\n")
	writeSheet(t, dir, "notes.txt", "not a sheet")

	c := New(dir)
	accts, err := c.FetchAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accts, 2)

	// Directory order is alphabetical.
	assert.Equal(t, "cattle", accts[0].Name)
	assert.Equal(t, "checking", accts[1].Name)
	assert.Equal(t, []string{"date", "description", "amount"}, accts[1].Header)
	require.Len(t, accts[1].Rows, 2)
	assert.Equal(t, "-250", accts[1].Rows[1]["amount"])

	n, err := c.RowCount("checking")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPutRow(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "checking.csv",
		"date,description,amount\n2020-01-01,opening,\n2020-02-01,seed,-250\n")

	c := New(dir)
	err := c.PutRow(context.Background(), "checking", 3,
		ledger.Row{"date": "2020-02-01", "description": "seed", "amount": "-275"})
	require.NoError(t, err)

	_, records, err := c.readFile("checking.csv")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"2020-02-01", "seed", "-275"}, records[1])
}

func TestBatchUpsertInsertShiftsRows(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "cattle.csv",
		"date,category,qty\n2020-01-01,START,10\n2020-01-05,purchase-cattle,5\n")

	c := New(dir)
	// Two rows inserted at lineno 3 become lines 3 and 4 in input order;
	// the old line 3 moves to line 5.
	updates := []sheets.RowUpdate{
		{Lineno: 3, Row: ledger.Row{"date": "2020-01-02", "category": "inventory-cattle-dailygain"}},
		{Lineno: 3, Row: ledger.Row{"date": "2020-01-03", "category": "inventory-cattle-dead", "qty": "-1"}},
		{Lineno: 4, Row: ledger.Row{"date": "2020-01-06", "category": "inventory-cattle-dailygain"}},
	}
	err := c.BatchUpsertRows(context.Background(), "cattle", updates, nil, sheets.Insert)
	require.NoError(t, err)

	_, records, err := c.readFile("cattle.csv")
	require.NoError(t, err)
	var dates []string
	for _, rec := range records {
		dates = append(dates, rec[0])
	}
	want := []string{"2020-01-01", "2020-01-02", "2020-01-03", "2020-01-05", "2020-01-06"}
	assert.Equal(t, want, dates)
}

func TestBatchUpsertInsertPastEnd(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "cattle.csv", "date,category,qty\n2020-01-01,START,10\n")

	c := New(dir)
	err := c.BatchUpsertRows(context.Background(), "cattle",
		[]sheets.RowUpdate{{Lineno: 99, Row: ledger.Row{"date": "2020-02-01", "category": "purchase-cattle", "qty": "3"}}},
		nil, sheets.Insert)
	require.NoError(t, err)

	_, records, err := c.readFile("cattle.csv")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2020-02-01", records[1][0])
}

func TestRowCountCacheInvalidation(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "cattle.csv", "date,category,qty\n2020-01-01,START,10\n")

	c := New(dir)
	n, err := c.RowCount("cattle")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	err = c.BatchUpsertRows(context.Background(), "cattle",
		[]sheets.RowUpdate{{Lineno: 3, Row: ledger.Row{"date": "2020-01-02", "category": "purchase-cattle"}}},
		nil, sheets.Insert)
	require.NoError(t, err)

	// The write invalidated the cached count.
	n, err = c.RowCount("cattle")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
