package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestParsePort(t *testing.T) {
	cases := []struct {
		arg     string
		want    int
		warning bool
	}{
		{"", 8080, false},
		{"9000", 9000, false},
		{" 3003 ", 3003, false},
		{"abc", 8080, true},
		{"0", 8080, true},
		{"70000", 8080, true},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.arg), func(t *testing.T) {
			var w bytes.Buffer
			assert.Equal(t, tc.want, ParsePort(tc.arg, &w))
			if tc.warning {
				assert.Equal(t, "Invalid port number. Using default port 8080.\n", w.String())
			} else {
				assert.Empty(t, w.String())
			}
		})
	}
}

func TestLocalAddress(t *testing.T) {
	t.Run("unresolvable target falls back to loopback", func(t *testing.T) {
		assert.Equal(t, "127.0.0.1", localAddressVia("not a host"))
	})

	t.Run("loopback route", func(t *testing.T) {
		assert.Equal(t, "127.0.0.1", localAddressVia("127.0.0.1:9"))
	})

	t.Run("result is an ip", func(t *testing.T) {
		assert.NotNil(t, net.ParseIP(ResolveLocalAddress()))
	})
}

func TestHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>calc</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lifeforce_prices.json"), []byte(`{"league":"Settlers"}`), 0o644))

	srv := httptest.NewServer(New(dir, 0, io.Discard).Handler())
	defer srv.Close()

	t.Run("index", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "<h1>calc</h1>", string(body))
	})

	t.Run("json mime type", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/lifeforce_prices.json")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	})

	t.Run("missing file", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/nope.js")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServeAndShutdown(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port

	out := &syncBuffer{}
	s := New(dir, 0, out)
	s.localAddr = func() string { return "192.168.1.20" }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/app.js", port))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "console.log(1)", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	banner := out.String()
	assert.Contains(t, banner, fmt.Sprintf("  http://localhost:%d\n", port))
	assert.Contains(t, banner, fmt.Sprintf("  http://127.0.0.1:%d\n", port))
	assert.Contains(t, banner, fmt.Sprintf("  http://192.168.1.20:%d\n", port))
	assert.Contains(t, banner, "Server stopped.")
}

func TestListenAndServeBindFailure(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	s := New(t.TempDir(), ln.Addr().(*net.TCPAddr).Port, io.Discard)
	err = s.ListenAndServe(context.Background())
	assert.ErrorContains(t, err, "listen on port")
}
