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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

// namedService is an identity-compared registrable used throughout the tests
type namedService struct {
	name string
}

func (s *namedService) RegisterService(*grpc.Server) {}

func TestRegistry(t *testing.T) {
	t.Run("With append on re-registration", func(t *testing.T) {
		reg := newRegistry()
		owner := NewOwnerID()
		s1 := &namedService{name: "s1"}
		s2 := &namedService{name: "s2"}

		reg.Register(owner, s1)
		reg.Register(owner, s2)

		require.Equal(t, 1, reg.Len())
		assert.Equal(t, []Service{s1, s2}, reg.Snapshot())
	})
	t.Run("With deregistration removing the whole entry", func(t *testing.T) {
		reg := newRegistry()
		first := NewOwnerID()
		second := NewOwnerID()
		s1 := &namedService{name: "s1"}
		s2 := &namedService{name: "s2"}
		s3 := &namedService{name: "s3"}

		reg.Register(first, s1, s2)
		reg.Register(second, s3)
		require.Equal(t, 2, reg.Len())

		require.True(t, reg.Deregister(first))
		assert.Equal(t, 1, reg.Len())
		assert.Equal(t, []Service{s3}, reg.Snapshot())
	})
	t.Run("With unknown owner deregistration", func(t *testing.T) {
		reg := newRegistry()
		reg.Register(NewOwnerID(), &namedService{name: "s1"})

		assert.False(t, reg.Deregister(NewOwnerID()))
		assert.Equal(t, 1, reg.Len())
	})
	t.Run("With snapshot flattening in first-registration order", func(t *testing.T) {
		reg := newRegistry()
		first := NewOwnerID()
		second := NewOwnerID()
		s1 := &namedService{name: "s1"}
		s2 := &namedService{name: "s2"}
		s3 := &namedService{name: "s3"}

		reg.Register(first, s1)
		reg.Register(second, s3)
		reg.Register(first, s2)

		assert.Equal(t, []Service{s1, s2, s3}, reg.Snapshot())
	})
	t.Run("With empty registry snapshot", func(t *testing.T) {
		reg := newRegistry()
		assert.Empty(t, reg.Snapshot())
		assert.Zero(t, reg.Len())
	})
}

func TestOwnerID(t *testing.T) {
	first := NewOwnerID()
	second := NewOwnerID()
	assert.NotEqual(t, first, second)
	assert.NotEmpty(t, first.String())
}
