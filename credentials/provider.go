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

// Package credentials supplies the transport credentials used by the shared
// endpoint server and by role clients dialing their peers. Providers are
// assumed current and valid at the time of each call; how certificates are
// rotated or refreshed is the owner's concern, not this package's.
package credentials

import (
	gcredentials "google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Provider supplies server-side and client-side transport credentials
type Provider interface {
	// ServerCredentials returns the credentials the endpoint server is started with
	ServerCredentials() gcredentials.TransportCredentials
	// ClientCredentials returns the credentials used to dial peer endpoints
	ClientCredentials() gcredentials.TransportCredentials
	// TLSEnabled returns true when the provider performs TLS
	TLSEnabled() bool
}

// Insecure is a Provider that performs no transport security.
// Meant for tests and trusted single-host setups.
type Insecure struct{}

// enforce compilation error
var _ Provider = Insecure{}

// NewInsecure creates an instance of Insecure
func NewInsecure() Insecure {
	return Insecure{}
}

// ServerCredentials returns the credentials the endpoint server is started with
func (Insecure) ServerCredentials() gcredentials.TransportCredentials {
	return insecure.NewCredentials()
}

// ClientCredentials returns the credentials used to dial peer endpoints
func (Insecure) ClientCredentials() gcredentials.TransportCredentials {
	return insecure.NewCredentials()
}

// TLSEnabled returns true when the provider performs TLS
func (Insecure) TLSEnabled() bool {
	return false
}
