package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantMin     *float64
		wantMax     *float64
		wantLoc     *string
		wantChanges bool
	}{
		{name: "no flags"},
		{name: "min only", args: []string{"-min", "3.5"}, wantMin: ptr(3.5), wantChanges: true},
		{name: "min and max", args: []string{"-min", "2", "-max", "6"}, wantMin: ptr(2.0), wantMax: ptr(6.0), wantChanges: true},
		{name: "empty location clears", args: []string{"-location", ""}, wantLoc: ptr(""), wantChanges: true},
		{name: "verbose only", args: []string{"-v"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args, &bytes.Buffer{})
			require.NoError(t, err)

			assert.Equal(t, tt.wantMin, opts.update.MagnitudeMin)
			assert.Equal(t, tt.wantMax, opts.update.MagnitudeMax)
			assert.Equal(t, tt.wantLoc, opts.update.LocationText)
			assert.Equal(t, tt.wantChanges, opts.changesFilters())
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	_, err := parseFlags([]string{"-min", "big"}, &bytes.Buffer{})
	require.Error(t, err)

	_, err = parseFlags([]string{"extra"}, &bytes.Buffer{})
	require.Error(t, err)
}

const feed = `{"type":"FeatureCollection","features":[
	{"id":"nc1","properties":{"mag":4.2,"place":"San Francisco, CA","time":1714144200000},"geometry":{"coordinates":[-122.4,37.8,10]}},
	{"id":"ak2","properties":{"mag":1.1,"place":"Alaska","time":1714144300000},"geometry":{"coordinates":[-150,61,5]}}
]}`

func TestRun_SavesFlagsAndPrintsFilteredList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()

	dir := t.TempDir()
	t.Setenv("FEED_URL", srv.URL)
	t.Setenv("PREFS_BACKEND", "file")
	t.Setenv("PREFS_DIR", dir)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-min", "3"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Earthquakes: 1 of 2")
	assert.Contains(t, stdout.String(), "San Francisco, CA")
	assert.NotContains(t, stdout.String(), "Alaska")

	saved, err := os.ReadFile(filepath.Join(dir, "earthquake-filters.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"magnitudeMin":3,"magnitudeMax":10,"locationText":""}`, string(saved))
}

func TestRun_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	t.Setenv("FEED_URL", srv.URL)
	t.Setenv("PREFS_BACKEND", "file")
	t.Setenv("PREFS_DIR", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Failed to fetch earthquake data")
	assert.Empty(t, stdout.String())
}

func ptr[T any](v T) *T { return &v }
