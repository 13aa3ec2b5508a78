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

import "sync"

// registry maps each owner to its ordered list of registered services. An
// entry exists iff at least one service is registered for that owner.
// Re-registering an owner appends to its list, never replaces it.
type registry struct {
	mu      sync.Mutex
	entries map[OwnerID][]Service
	// owners keeps first-registration order so snapshots are deterministic
	owners []OwnerID
}

func newRegistry() *registry {
	return &registry{
		entries: make(map[OwnerID][]Service),
	}
}

// Register appends the given services to the owner's entry, creating it when
// absent. In-memory mutation, always succeeds.
func (x *registry) Register(owner OwnerID, services ...Service) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, ok := x.entries[owner]; !ok {
		x.owners = append(x.owners, owner)
	}
	x.entries[owner] = append(x.entries[owner], services...)
}

// Deregister removes the owner's whole entry and reports whether anything
// was removed. Unknown owners are a no-op.
func (x *registry) Deregister(owner OwnerID) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, ok := x.entries[owner]; !ok {
		return false
	}
	delete(x.entries, owner)
	for i, o := range x.owners {
		if o == owner {
			x.owners = append(x.owners[:i], x.owners[i+1:]...)
			break
		}
	}
	return true
}

// Snapshot flattens all owners' services into a single point-in-time list.
// No mutation can interleave within a single call.
func (x *registry) Snapshot() []Service {
	x.mu.Lock()
	defer x.mu.Unlock()

	var services []Service
	for _, owner := range x.owners {
		services = append(services, x.entries[owner]...)
	}
	return services
}

// Len returns the number of registered owners
func (x *registry) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.entries)
}
