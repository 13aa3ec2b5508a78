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
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/tochemey/rpchub/confmon"
	"github.com/tochemey/rpchub/credentials"
	"github.com/tochemey/rpchub/internal/grpcserver"
	"github.com/tochemey/rpchub/log"
)

// Backend bundles the per-process RPC facilities: the transport credential
// provider, optionally the shared endpoint Server, and optionally the
// cluster configuration monitor. It is constructed explicitly and injected
// into the roles that need it; there is no global lookup.
//
// A backend built with NewClientBackend only dials peers; one built with
// NewServerBackend also owns the process's endpoint server.
type Backend struct {
	provider credentials.Provider
	server   *Server
	monitor  *confmon.Monitor
	logger   log.Logger
}

// BackendOption defines a function type that configures the Backend
type BackendOption func(*Backend)

// WithBackendMonitor attaches a cluster configuration monitor driven by
// Backend.Run
func WithBackendMonitor(monitor *confmon.Monitor) BackendOption {
	return func(x *Backend) {
		x.monitor = monitor
	}
}

// WithBackendLogger sets the logger
func WithBackendLogger(logger log.Logger) BackendOption {
	return func(x *Backend) {
		x.logger = logger
	}
}

// NewClientBackend creates a Backend without an endpoint server. Roles use
// it to dial their peers with the provider's client credentials.
func NewClientBackend(provider credentials.Provider, opts ...BackendOption) *Backend {
	backend := &Backend{
		provider: provider,
		logger:   log.DefaultLogger,
	}
	for _, opt := range opts {
		opt(backend)
	}
	return backend
}

// NewServerBackend creates a Backend owning the process's shared endpoint
// server listening on the given address. Additional server behavior is
// tuned through the server options.
func NewServerBackend(provider credentials.Provider, address string, serverOpts []Option, opts ...BackendOption) (*Backend, error) {
	backend := NewClientBackend(provider, opts...)

	serverOpts = append([]Option{
		WithLogger(backend.logger),
		WithCredentialsProvider(provider),
	}, serverOpts...)

	server, err := New(address, serverOpts...)
	if err != nil {
		return nil, err
	}
	backend.server = server
	return backend, nil
}

// Run brings the configuration monitor and the endpoint server up together
// and then blocks until the context is canceled or the server loop exits.
// On the way out the server is shut down and the monitor stopped.
func (x *Backend) Run(ctx context.Context) error {
	// the two startups are independent, so no cross-cancellation on failure
	eg := new(errgroup.Group)
	if x.monitor != nil {
		eg.Go(func() error {
			if err := x.monitor.Start(ctx); err != nil {
				return fmt.Errorf("failed to start the configuration monitor: %w", err)
			}
			return nil
		})
	}
	if x.server != nil {
		eg.Go(func() error {
			return x.server.Run(ctx)
		})
	}
	if err := eg.Wait(); err != nil {
		x.teardown(ctx)
		return err
	}

	// a nil channel blocks forever, which is what a client-only backend wants
	var serverDone <-chan struct{}
	if x.server != nil {
		serverDone = x.server.Done()
	}
	select {
	case <-ctx.Done():
	case <-serverDone:
	}
	return x.teardown(ctx)
}

// Dial opens a client connection to a peer endpoint using the provider's
// client credentials
func (x *Backend) Dial(target string) (*grpc.ClientConn, error) {
	var opts []grpcserver.ConnOption
	if x.provider.TLSEnabled() {
		opts = append(opts, grpcserver.WithConnCredentials(x.provider.ClientCredentials()))
	}
	return grpcserver.NewConn(target, opts...).Dial()
}

// Server returns the endpoint server, nil for a client-only backend
func (x *Backend) Server() *Server {
	return x.server
}

// Monitor returns the attached configuration monitor, nil when none
func (x *Backend) Monitor() *confmon.Monitor {
	return x.monitor
}

// Provider returns the transport credential provider
func (x *Backend) Provider() credentials.Provider {
	return x.provider
}

func (x *Backend) teardown(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	var err error
	if x.server != nil {
		err = multierr.Append(err, x.server.Shutdown(ctx))
	}
	if x.monitor != nil {
		err = multierr.Append(err, x.monitor.Stop(ctx))
	}
	return err
}
