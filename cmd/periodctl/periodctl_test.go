package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-periods/modules/periods/infrastructure/remote"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPositionsList(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"success":true,"data":[{"_id":"p1","name":"Lektor"},{"_id":"p2","name":"Asisten"}]}`)
	}))
	defer srv.Close()

	out, err := run(t, "--api-url", srv.URL, "--token", "abc", "positions", "list")
	require.NoError(t, err)
	require.Equal(t, "Bearer abc", auth)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.JSONEq(t, `{"_id":"p1","name":"Lektor"}`, lines[0])
}

func TestPeriodsGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/timelines/t1", r.URL.Path)
		_, _ = io.WriteString(w, `{"data":{"title":"A","type":"STAFF","startDate":"2024-01-01","endDate":"2024-01-31","positions":[]}}`)
	}))
	defer srv.Close()

	out, err := run(t, "--api-url", srv.URL, "periods", "get", "t1")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"t1","title":"A","type":"STAFF","startDate":"2024-01-01","endDate":"2024-01-31","positions":[]}`, strings.TrimSpace(out))
}

func TestPeriodsList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":[{"_id":"t1","title":"A","type":"STAFF"},{"_id":"t2","title":"B","type":"DOSEN"}]}`)
	}))
	defer srv.Close()

	out, err := run(t, "--api-url", srv.URL, "periods", "list")
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestGetRequiresID(t *testing.T) {
	_, err := run(t, "--api-url", "http://localhost", "periods", "get")
	require.Error(t, err)
}

func TestExitCode(t *testing.T) {
	require.Equal(t, exitRejected, exitCode(fmt.Errorf("wrap: %w", &remote.APIError{StatusCode: 400})))
	require.Equal(t, exitTransport, exitCode(fmt.Errorf("%w: refused", remote.ErrTransport)))
	require.Equal(t, exitFailure, exitCode(fmt.Errorf("boom")))
}

func TestInvalidURL(t *testing.T) {
	_, err := run(t, "--api-url", "ftp://example.com", "positions", "list")
	require.Error(t, err)
}
