package appServer

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ds124wfegd/visionpipe/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerShutdownStopsRun(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{Port: "0", Timeout: time.Second, Idle_timeout: time.Second}}
	srv := NewHTTPServer(cfg, http.NotFoundHandler())

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewServerRejectsBadAckMode(t *testing.T) {
	cfg := &config.Config{Pipeline: config.PipelineConfig{AckMode: "whenever"}}
	assert.Error(t, NewServer(cfg))
}
