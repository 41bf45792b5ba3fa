package modules_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"deal_radar/pkg/application/modules"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url) //nolint:noctx
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestServers(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	probeServer := modules.ProbeServer{Name: "deal-radar", Version: "v1", ListenAddress: ":10031"}.Run(ctx, g)
	modules.MetricServer{Name: "deal-radar", Version: "v1", ListenAddress: ":10032"}.Run(ctx, g)

	// Wait for servers to start.
	time.Sleep(time.Second)

	status, _ := get(t, "http://:10031/ready")
	rq.Equal(http.StatusServiceUnavailable, status)

	probeServer.MarkReady(time.Now())

	status, body := get(t, "http://:10031/ready")
	rq.Equal(http.StatusOK, status)
	rq.Contains(body, `"last_pass"`)

	status, body = get(t, "http://:10032/metrics")
	rq.Equal(http.StatusOK, status)
	rq.True(strings.Contains(body, `deal_radar_build_info{name="deal-radar",version="v1"} 1`))

	cancel()

	rq.NoError(g.Wait())
}
