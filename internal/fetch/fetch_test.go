// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nuclide-engine/internal/httputil"
	"github.com/pdiddy/nuclide-engine/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

const sampleWS36 = "# A Z beta2 beta4 beta6 Esh Dres Eexp Eth Mexp Mth\n132 50 0.0 0.0 0.0 -4.1 0.0 -1102.85 -1102.91 -76.55 -76.49\n"

func tableServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		switch r.URL.Path {
		case "/ws36.txt":
			w.Write([]byte(sampleWS36))
		case "/busy.txt":
			if atomic.LoadInt32(calls) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte("ok\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestTable_DownloadsAndSkips(t *testing.T) {
	var calls int32
	ts := tableServer(t, &calls)
	cfg := types.FetchConfig{RawDir: filepath.Join(t.TempDir(), "raw")}
	var buf bytes.Buffer

	entry, skipped, err := Table(context.Background(), ts.Client(), "WS3.6.txt", ts.URL+"/ws36.txt", cfg, &buf)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, int64(len(sampleWS36)), entry.Bytes)

	data, err := os.ReadFile(filepath.Join(cfg.RawDir, "WS3.6.txt"))
	require.NoError(t, err)
	assert.Equal(t, sampleWS36, string(data))

	_, skipped, err = Table(context.Background(), ts.Client(), "WS3.6.txt", ts.URL+"/ws36.txt", cfg, &buf)
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Contains(t, buf.String(), "skipped: WS3.6.txt")
}

func TestTable_HTTPErrorLeavesNoFile(t *testing.T) {
	var calls int32
	ts := tableServer(t, &calls)
	cfg := types.FetchConfig{RawDir: t.TempDir()}

	_, _, err := Table(context.Background(), ts.Client(), "absent.txt", ts.URL+"/absent", cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")

	entries, err := os.ReadDir(cfg.RawDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial or temp files remain")
}

func TestTable_RetriesRateLimit(t *testing.T) {
	var calls int32
	ts := tableServer(t, &calls)
	cfg := types.FetchConfig{RawDir: t.TempDir(), HTTPConfig: types.HTTPConfig{MaxRetries: 2}}

	_, skipped, err := Table(context.Background(), ts.Client(), "busy.txt", ts.URL+"/busy.txt", cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestAll(t *testing.T) {
	var calls int32
	ts := tableServer(t, &calls)
	cfg := types.FetchConfig{
		RawDir: t.TempDir(),
		Sources: map[string]string{
			"WS3.6.txt":   ts.URL + "/ws36.txt",
			"missing.dat": ts.URL + "/missing.dat",
		},
	}
	var buf bytes.Buffer

	res := All(context.Background(), ts.Client(), cfg, &buf, nil)
	assert.Equal(t, 1, res.Downloaded)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 2, res.Total())
	assert.True(t, res.HasFailures())
	assert.True(t, strings.Contains(buf.String(), "Fetch summary: 1 downloaded, 0 skipped, 1 failed (total: 2)"))

	manifest, err := ReadManifest(cfg.RawDir)
	require.NoError(t, err)
	require.Len(t, manifest, 1)
	assert.Equal(t, "WS3.6.txt", manifest[0].File)
	assert.Equal(t, ts.URL+"/ws36.txt", manifest[0].URL)

	res = All(context.Background(), ts.Client(), cfg, &bytes.Buffer{}, nil)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.Failed)
}
