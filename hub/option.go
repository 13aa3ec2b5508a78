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
	"time"

	"github.com/tochemey/rpchub/credentials"
	"github.com/tochemey/rpchub/log"
)

// Option defines a function type that configures the Server
type Option func(*Server)

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(x *Server) {
		x.logger = logger
	}
}

// WithCredentialsProvider sets the transport credentials provider. The
// default provider performs no transport security.
func WithCredentialsProvider(provider credentials.Provider) Option {
	return func(x *Server) {
		x.provider = provider
	}
}

// WithDebounceWindow sets the sliding delay after the last registry change
// before a restart is executed
func WithDebounceWindow(window time.Duration) Option {
	return func(x *Server) {
		if window > 0 {
			x.window = window
		}
	}
}
