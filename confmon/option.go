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

package confmon

import (
	"time"

	"github.com/tochemey/rpchub/log"
)

// Option defines a function type that configures the Monitor
type Option func(*Monitor)

// WithRefreshInterval sets how often the configuration is re-fetched
func WithRefreshInterval(interval time.Duration) Option {
	return func(x *Monitor) {
		if interval > 0 {
			x.refreshInterval = interval
		}
	}
}

// WithLoadRetries sets how many times the initial load is retried
func WithLoadRetries(retries int) Option {
	return func(x *Monitor) {
		if retries > 0 {
			x.loadRetries = retries
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(x *Monitor) {
		x.logger = logger
	}
}
