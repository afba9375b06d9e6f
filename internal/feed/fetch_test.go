package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetcher_SetsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"))
	}))
	defer srv.Close()

	f := NewFetcher(discardLogger(), 0, "")

	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.NotEmpty(t, body)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestFetcher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(discardLogger(), time.Second, "")

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, srv.URL, nerr.URL)
}

func TestFetcher_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := NewFetcher(discardLogger(), time.Second, "")

	_, err := f.Fetch(context.Background(), url)
	require.Error(t, err)

	var nerr *NetworkError
	assert.ErrorAs(t, err, &nerr)
}
