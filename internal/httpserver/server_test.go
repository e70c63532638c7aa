package httpserver

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gfdmit/web-forum/community-service/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	srv := New(config.HTTPServer{
		BindAddress:     "127.0.0.1",
		BindPort:        "0",
		ShutdownTimeout: time.Second,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
	}, http.NotFoundHandler())
	assert.Equal(t, "127.0.0.1:0", srv.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_RunReportsListenError(t *testing.T) {
	srv := New(config.HTTPServer{BindAddress: "127.0.0.1", BindPort: "not-a-port", ShutdownTimeout: time.Second}, http.NotFoundHandler())

	err := srv.Run(context.Background())
	assert.Error(t, err)
}
