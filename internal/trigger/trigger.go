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

// Package trigger provides one-shot broadcast notification of state
// transitions. Every subscriber registered before a firing receives the
// transition outcome exactly once; subscribers registered afterwards wait
// for the next firing.
package trigger

import "sync"

// Trigger broadcasts a transition outcome to all current subscribers.
// A closed trigger never fires again: pending and future subscriptions
// remain unfulfilled forever.
type Trigger struct {
	mu     sync.Mutex
	subs   []chan error
	closed bool
}

// New creates an instance of Trigger
func New() *Trigger {
	return &Trigger{}
}

// Subscribe registers interest in the next firing. The returned channel
// receives a single value (nil on success) and is then closed.
func (x *Trigger) Subscribe() <-chan error {
	x.mu.Lock()
	defer x.mu.Unlock()

	ch := make(chan error, 1)
	if x.closed {
		// terminal: the channel will never receive
		return ch
	}
	x.subs = append(x.subs, ch)
	return ch
}

// Fire delivers the transition outcome to every current subscriber and
// resets the subscription list. Firing a closed trigger is a no-op.
func (x *Trigger) Fire(err error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.closed {
		return
	}
	for _, ch := range x.subs {
		ch <- err
		close(ch)
	}
	x.subs = nil
}

// Close makes the trigger permanently inert. Pending subscribers are
// abandoned, never fulfilled.
func (x *Trigger) Close() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.closed = true
	x.subs = nil
}
