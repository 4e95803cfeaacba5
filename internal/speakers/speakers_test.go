package speakers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const directoryJSON = `{
  "Mr. SMITH of Texas": {"bioguideid": "S000583", "state": "TX", "party": "R"},
  "Ms. JONES": {"bioguideid": "J000001"},
  "The SPEAKER": {"bioguideid": ""}
}`

func TestMap_Lookup(t *testing.T) {
	m, err := DecodeJSON(strings.NewReader(directoryJSON))
	require.NoError(t, err)

	l, ok := m.Lookup("Mr. SMITH of Texas")
	require.True(t, ok)
	assert.Equal(t, "S000583", l.BioguideID)
	assert.Equal(t, "TX", l.State)

	_, ok = m.Lookup("Mr. SMITH")
	assert.False(t, ok, "lookup is exact")

	_, ok = m.Lookup("The SPEAKER")
	assert.False(t, ok, "entries without a bioguide id are treated as absent")

	_, ok = Empty.Lookup("Ms. JONES")
	assert.False(t, ok)
}

func TestDecodeJSON_Invalid(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`["not", "a", "map"]`))
	assert.Error(t, err)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speakers.json")
	require.NoError(t, os.WriteFile(path, []byte(directoryJSON), 0o644))

	m, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Len(t, m, 3)

	_, err = LoadJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMerge_LaterWins(t *testing.T) {
	a := Map{"Ms. JONES": {BioguideID: "OLD"}, "Mr. ADAMS": {BioguideID: "A000001"}}
	b := Map{"Ms. JONES": {BioguideID: "NEW"}}

	m := Merge(a, b)
	assert.Equal(t, "NEW", m["Ms. JONES"].BioguideID)
	assert.Equal(t, "A000001", m["Mr. ADAMS"].BioguideID)
	assert.Equal(t, "OLD", a["Ms. JONES"].BioguideID, "inputs are not modified")
	assert.Empty(t, Merge())
}

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	path := filepath.Join(t.TempDir(), "speakers.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Speaker Label", "Full Name", "Bioguide ID", "State", "Party", "Chamber"},
		{"Mr. SMITH of Texas", "Lamar Smith", "S000583", "TX", "R", "House"},
		{"Ms. JONES", "Jane Jones", "", "OH", "D", "House"},
		{"", "Nobody", "N000001", "", "", ""},
		{"Mrs. BLACK", "Diane Black", "B001273", "TN", "R", "House"},
	})

	m, err := LoadXLSX(path)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, Legislator{
		BioguideID: "S000583",
		Name:       "Lamar Smith",
		State:      "TX",
		Party:      "R",
		Chamber:    "House",
	}, m["Mr. SMITH of Texas"])
	assert.NotContains(t, m, "Ms. JONES")
}

func TestLoadXLSX_LabelFallsBackToName(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Name", "bioguide"},
		{"Ms. JONES", "J000001"},
	})
	m, err := LoadXLSX(path)
	require.NoError(t, err)
	l, ok := m.Lookup("Ms. JONES")
	require.True(t, ok)
	assert.Equal(t, "J000001", l.BioguideID)
}

func TestLoadXLSX_Errors(t *testing.T) {
	t.Run("no bioguide column", func(t *testing.T) {
		path := writeWorkbook(t, [][]any{{"Speaker", "State"}, {"Ms. JONES", "OH"}})
		_, err := LoadXLSX(path)
		assert.ErrorIs(t, err, ErrNoBioguideColumn)
	})
	t.Run("header only", func(t *testing.T) {
		path := writeWorkbook(t, [][]any{{"Speaker", "Bioguide"}})
		_, err := LoadXLSX(path)
		assert.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"))
		assert.Error(t, err)
	})
}

func TestFetch(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, directoryJSON)
	}))
	defer srv.Close()

	m, err := Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "5xx is retried")
	assert.Equal(t, "J000001", m["Ms. JONES"].BioguideID)
}

func TestFetch_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_BadBodyIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, "<html>")
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
