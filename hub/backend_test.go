/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package hub

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travisjeffery/go-dynaport"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/tochemey/rpchub/confmon"
	"github.com/tochemey/rpchub/credentials"
	"github.com/tochemey/rpchub/log"
)

func TestBackend(t *testing.T) {
	t.Run("With server backend lifecycle", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ports := dynaport.Get(1)
		addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(ports[0]))
		monitor := confmon.NewMonitor(
			confmon.NewStaticSource(confmon.Config{StorageTeamSize: 3}),
			confmon.WithLogger(log.DiscardLogger))

		backend, err := NewServerBackend(credentials.NewInsecure(), addr,
			[]Option{WithDebounceWindow(100 * time.Millisecond)},
			WithBackendMonitor(monitor),
			WithBackendLogger(log.DiscardLogger))
		require.NoError(t, err)
		require.NotNil(t, backend.Server())
		require.NotNil(t, backend.Monitor())
		require.False(t, backend.Provider().TLSEnabled())

		done := make(chan error, 1)
		go func() {
			done <- backend.Run(ctx)
		}()

		require.Eventually(t, func() bool {
			return backend.Server().IsRunning()
		}, 3*time.Second, 10*time.Millisecond)
		assert.Equal(t, 3, backend.Monitor().StorageTeamSize())

		// the endpoint is reachable through the backend's own dialer
		conn, err := backend.Dial(addr)
		require.NoError(t, err)
		checkCtx, checkCancel := context.WithTimeout(context.Background(), 5*time.Second)
		resp, err := grpc_health_v1.NewHealthClient(conn).Check(checkCtx, &grpc_health_v1.HealthCheckRequest{})
		checkCancel()
		require.NoError(t, err)
		assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
		require.NoError(t, conn.Close())

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("backend did not stop")
		}
		assert.Equal(t, Shutdown, backend.Server().State())
	})
	t.Run("With server backend and invalid address", func(t *testing.T) {
		backend, err := NewServerBackend(credentials.NewInsecure(), "", nil)
		require.Nil(t, backend)
		assert.ErrorIs(t, err, ErrEmptyAddress)
	})
	t.Run("With client backend", func(t *testing.T) {
		ctx := context.Background()
		ports := dynaport.Get(1)
		addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(ports[0]))

		srv, err := New(addr, WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		require.NoError(t, srv.Run(ctx))
		defer srv.Shutdown(ctx)

		backend := NewClientBackend(credentials.NewInsecure())
		require.Nil(t, backend.Server())

		conn, err := backend.Dial(addr)
		require.NoError(t, err)
		defer conn.Close()

		checkCtx, checkCancel := context.WithTimeout(ctx, 5*time.Second)
		defer checkCancel()
		resp, err := grpc_health_v1.NewHealthClient(conn).Check(checkCtx, &grpc_health_v1.HealthCheckRequest{})
		require.NoError(t, err)
		assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
	})
	t.Run("With client backend canceled run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		backend := NewClientBackend(credentials.NewInsecure())

		done := make(chan error, 1)
		go func() {
			done <- backend.Run(ctx)
		}()
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("client backend did not stop")
		}
	})
}
