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

package grpcserver

import (
	gcredentials "google.golang.org/grpc/credentials"

	"github.com/tochemey/rpchub/log"
)

// Option defines a function type that configures the server.
type Option func(*server)

// ConnOption defines a function type that configures the Conn.
type ConnOption func(*Conn)

// WithLogger sets the logger for the server.
func WithLogger(logger log.Logger) Option {
	return func(s *server) {
		s.logger = logger
	}
}

// WithMaxRecvMsgSize sets the maximum receive message size for the server.
func WithMaxRecvMsgSize(size int) Option {
	return func(s *server) {
		s.maxReceivMsgSize = size
	}
}

// WithMaxSendMsgSize sets the maximum send message size for the server.
func WithMaxSendMsgSize(size int) Option {
	return func(s *server) {
		s.maxSendMsgSize = size
	}
}

// WithServices registers the provided services with the server.
func WithServices(services ...Service) Option {
	return func(s *server) {
		s.services = services
	}
}

// WithCredentials sets the transport credentials the server is started with.
func WithCredentials(creds gcredentials.TransportCredentials) Option {
	return func(s *server) {
		s.creds = creds
	}
}

// WithConnCredentials sets the transport credentials for the Conn.
func WithConnCredentials(creds gcredentials.TransportCredentials) ConnOption {
	return func(c *Conn) {
		c.creds = creds
	}
}

// WithConnMaxRecvMsgSize sets the maximum receive message size for the Conn.
func WithConnMaxRecvMsgSize(size int) ConnOption {
	return func(c *Conn) {
		c.maxReceivMsgSize = size
	}
}

// WithConnMaxSendMsgSize sets the maximum send message size for the Conn.
func WithConnMaxSendMsgSize(size int) ConnOption {
	return func(c *Conn) {
		c.maxSendMsgSize = size
	}
}
