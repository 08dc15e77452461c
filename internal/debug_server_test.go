package internal

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func TestDebugServer_Renders_Prefix(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	req.NoError(db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte("profile:alice"), []byte("a")); err != nil {
			return err
		}
		return txn.Set([]byte("typing:alice:bob"), []byte("b"))
	}))

	stats := func() map[string]any { return map[string]any{"goroutines": 42} }
	srv := NewDebugServer(slog.Default(), db, 0, "/inspect", nil, stats)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inspect?prefix=profile:", nil))

	req.Equal(http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	req.NoError(err)
	req.Contains(string(body), "profile:alice")
	req.NotContains(string(body), "typing:alice:bob")
	req.Contains(string(body), "goroutines")
	req.Contains(string(body), "42")
}

func TestDebugServer_Limit_And_Stats(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	req.NoError(db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{"msg:1", "msg:2", "msg:3"} {
			if err := txn.Set([]byte(key), []byte("x")); err != nil {
				return err
			}
		}
		return nil
	}))
	srv := NewDebugServer(slog.Default(), db, 0, "/inspect", nil, func() map[string]any {
		return map[string]any{"active_subscriptions": 2}
	})

	// Given a limit of two rows
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inspect?limit=2", nil))
	body := rec.Body.String()
	req.Contains(body, "msg:1")
	req.Contains(body, "msg:2")
	req.NotContains(body, "msg:3")

	// And stats as JSON
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	req.Equal("application/json", rec.Header().Get("Content-Type"))
	req.JSONEq(`{"active_subscriptions":2}`, rec.Body.String())
}
