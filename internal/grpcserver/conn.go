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
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	gcredentials "google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"

	"github.com/tochemey/rpchub/internal/size"
)

// Conn assembles the dial options used to reach a peer endpoint
type Conn struct {
	target           string
	maxReceivMsgSize int
	maxSendMsgSize   int
	options          []grpc.DialOption
	creds            gcredentials.TransportCredentials
}

// NewConn creates a new Conn instance with the provided target and options
func NewConn(target string, opts ...ConnOption) *Conn {
	const (
		defaultMaxMsgSize      = 10 * size.MB
		defaultBackoffMaxDelay = 5 * time.Second
		defaultKeepaliveTime   = 1200 * time.Second
	)

	conn := &Conn{
		target:           target,
		maxReceivMsgSize: defaultMaxMsgSize,
		maxSendMsgSize:   defaultMaxMsgSize,
	}

	// apply functional options to allow overriding defaults
	for _, opt := range opts {
		opt(conn)
	}

	bc := backoff.DefaultConfig
	bc.MaxDelay = defaultBackoffMaxDelay

	var dialOpts []grpc.DialOption

	dialOpts = append(dialOpts, grpc.WithKeepaliveParams(keepalive.ClientParameters{
		Time:                defaultKeepaliveTime,
		PermitWithoutStream: true,
	}))

	dialOpts = append(dialOpts, grpc.WithConnectParams(grpc.ConnectParams{
		Backoff: bc,
	}))

	// transport credentials: prefer the configured credentials, otherwise
	// fall back to insecure
	if conn.creds != nil {
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(conn.creds))
	} else {
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	dialOpts = append(dialOpts, grpc.WithDefaultCallOptions(
		grpc.MaxCallRecvMsgSize(conn.maxReceivMsgSize),
		grpc.MaxCallSendMsgSize(conn.maxSendMsgSize),
	))

	conn.options = dialOpts
	return conn
}

// Dial establishes a gRPC connection using the configured target and options
func (c *Conn) Dial() (*grpc.ClientConn, error) {
	if c.target == "" {
		return nil, ErrEmptyAddress
	}
	return grpc.NewClient(c.target, c.options...)
}
