package sources

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/climate-data-explorer/internal/climate"
)

const csvBody = "Years,Month,Country,Temperature,Monthly_variation,Anomaly\n1951,1,Japan,3.1,0.4,-0.2\n"

var fastBackoff = BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvBody), 0o600))

	src := NewFileSource(path)
	rc, err := src.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, csvBody, string(b))
	assert.Equal(t, "file:"+path, src.Name())

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.csv")).Open(context.Background())
	assert.ErrorContains(t, err, "data file not found")
}

func TestHTTPSourceRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, csvBody)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.Client(), srv.URL).WithBackoff(fastBackoff)
	rc, err := src.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, csvBody, string(b))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHTTPSourceDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.Client(), srv.URL).WithBackoff(fastBackoff).Open(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errUnexpected)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPSourceRequiresURL(t *testing.T) {
	_, err := NewHTTPSource(http.DefaultClient, "").Open(context.Background())
	assert.Error(t, err)
}

func TestSourcesImplementSource(t *testing.T) {
	var _ climate.Source = NewFileSource("x")
	var _ climate.Source = NewHTTPSource(http.DefaultClient, "http://example.invalid")
}
