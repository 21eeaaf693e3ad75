package hub

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"nodework/internal/observability"
)

func startHub(t *testing.T) (*Hub, *observability.Collector, *httptest.Server) {
	t.Helper()
	metrics := observability.NewCollector("test")
	h := New(zaptest.NewLogger(t), metrics)

	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	srv := httptest.NewServer(h)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return h, metrics, srv
}

func readLine(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	return strings.TrimRight(line, "\n")
}

func TestBroadcast(t *testing.T) {
	h, metrics, srv := startHub(t)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	r := bufio.NewReader(resp.Body)
	assert.Equal(t, ": connected", readLine(t, r))
	assert.Equal(t, "", readLine(t, r))

	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SSEClients))

	h.Broadcast("model_updated", map[string]int{"nodes": 2})
	assert.Equal(t, "event: model_updated", readLine(t, r))
	assert.Equal(t, `data: {"nodes":2}`, readLine(t, r))
	assert.Equal(t, "", readLine(t, r))
}

func TestClientDisconnect(t *testing.T) {
	h, metrics, srv := startHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return testutil.ToFloat64(metrics.SSEClients) == 0 }, time.Second, 5*time.Millisecond)
}

func TestBroadcastUnmarshalable(t *testing.T) {
	h, _, srv := startHub(t)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	r := bufio.NewReader(resp.Body)
	readLine(t, r)
	readLine(t, r)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Broadcast("broken", func() {})
	h.Broadcast("", "next")
	assert.Equal(t, `data: "next"`, readLine(t, r))
}
