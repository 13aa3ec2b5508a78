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

// Package grpcserver wraps the native gRPC server and client connection
// primitives. A server instance is built once with a fixed service set and
// is not reconfigurable: callers wanting a different set build a new
// instance. Start and Stop may block and may fail; the lifecycle manager
// treats them as opaque blocking operations.
package grpcserver

import (
	"errors"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	gcredentials "google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"

	"github.com/tochemey/rpchub/internal/size"
	"github.com/tochemey/rpchub/log"
)

const (
	// MaxConnectionAge is the duration a connection may exist before shutdown
	MaxConnectionAge = 600 * time.Second
	// MaxConnectionAgeGrace is the maximum duration a
	// connection will be kept alive for outstanding RPCs to complete
	MaxConnectionAgeGrace = 60 * time.Second
	// KeepAliveTime is the period after which a keepalive ping is sent on the
	// transport
	KeepAliveTime = 1200 * time.Second
)

// Server will be implemented by the server
type Server interface {
	Start() error
	Stop() error
	GetListener() net.Listener
	GetServer() *grpc.Server
}

// Service will be implemented by any registrable grpc service
type Service interface {
	RegisterService(*grpc.Server)
}

type server struct {
	addr             string
	server           *grpc.Server
	listener         net.Listener
	logger           log.Logger
	options          []grpc.ServerOption
	services         []Service
	maxReceivMsgSize int
	maxSendMsgSize   int
	creds            gcredentials.TransportCredentials
	mu               *sync.RWMutex
	started          bool
}

var _ Server = (*server)(nil)

// New creates a server listening on addr exposing the configured services.
// The health check service is always registered so that peers can probe the
// endpoint regardless of which roles are present.
func New(addr string, opts ...Option) (Server, error) {
	if addr == "" {
		return nil, ErrEmptyAddress
	}

	s := newDefaultServer(addr)

	// apply functional options
	for _, opt := range opts {
		opt(s)
	}

	// build final grpc options without mutating the defaults slice
	finalOpts := make([]grpc.ServerOption, 0, len(s.options)+3)
	finalOpts = append(finalOpts, s.options...)
	finalOpts = append(finalOpts, grpc.MaxRecvMsgSize(s.maxReceivMsgSize))
	finalOpts = append(finalOpts, grpc.MaxSendMsgSize(s.maxSendMsgSize))
	if s.creds != nil {
		finalOpts = append(finalOpts, grpc.Creds(s.creds))
	}

	// create the grpc server
	s.server = grpc.NewServer(finalOpts...)

	// register health check service
	grpc_health_v1.RegisterHealthServer(s.server, health.NewServer())

	// register services
	for _, service := range s.services {
		service.RegisterService(s.server)
	}

	return s, nil
}

// GetServer returns the underlying grpc.Server
func (s *server) GetServer() *grpc.Server {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.server
}

// GetListener returns the underlying tcp listener
func (s *server) GetListener() net.Listener {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listener
}

// Start binds the listener and starts serving incoming connections
func (s *server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return errors.New("grpc server already started")
	}

	var err error
	s.listener, err = net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	go s.serv()
	s.started = true
	return nil
}

// Stop shuts the running server down gracefully, waiting for outstanding
// RPCs to complete. Blocks the caller.
func (s *server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return errors.New("grpc server not started")
	}

	s.started = false
	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return err
		}
	}

	s.server.GracefulStop()
	return nil
}

// serv makes the grpc listener ready to accept connections
func (s *server) serv() {
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) && !errors.Is(err, net.ErrClosed) {
		s.logger.Errorf("grpc server serve failed: %v", err)
	}
}

func newDefaultServer(addr string) *server {
	return &server{
		addr:             addr,
		mu:               &sync.RWMutex{},
		started:          false,
		logger:           log.DefaultLogger,
		maxSendMsgSize:   10 * size.MB,
		maxReceivMsgSize: 10 * size.MB,
		options: []grpc.ServerOption{
			grpc.KeepaliveParams(keepalive.ServerParameters{
				MaxConnectionIdle:     0,
				MaxConnectionAge:      MaxConnectionAge,
				MaxConnectionAgeGrace: MaxConnectionAgeGrace,
				Time:                  KeepAliveTime,
				Timeout:               0,
			}),
		},
		services: []Service{},
	}
}
