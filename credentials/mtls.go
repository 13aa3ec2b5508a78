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

package credentials

import (
	"crypto/tls"
	"crypto/x509"

	gcredentials "google.golang.org/grpc/credentials"
)

// MTLS is a Provider performing mutual TLS between the endpoint server and
// its peer clients. Both sides present certificates signed by the same root CA.
type MTLS struct {
	rootCA *x509.CertPool
	cert   *tls.Certificate
}

// enforce compilation error
var _ Provider = (*MTLS)(nil)

// NewMTLS creates an instance of MTLS from a root CA pool and the local
// certificate
func NewMTLS(rootCA *x509.CertPool, cert *tls.Certificate) *MTLS {
	return &MTLS{
		rootCA: rootCA,
		cert:   cert,
	}
}

// NewMTLSFromPEMBlocks creates an instance of MTLS from binary representations
// of the root certificate, the private key and the certificate file
func NewMTLSFromPEMBlocks(rootCAsPEMBlock, keyPEMBlock, certPEMBlock []byte) (*MTLS, error) {
	certpool := x509.NewCertPool()
	certpool.AppendCertsFromPEM(rootCAsPEMBlock)
	x509KeyPair, err := tls.X509KeyPair(certPEMBlock, keyPEMBlock)
	if err != nil {
		return nil, err
	}
	return &MTLS{
		rootCA: certpool,
		cert:   &x509KeyPair,
	}, nil
}

// ClientTLS returns the TLS client configuration that is required to make
// a secured connection to the endpoint server of a remote node
func (x *MTLS) ClientTLS() *tls.Config {
	return &tls.Config{
		RootCAs:      x.rootCA,
		Certificates: []tls.Certificate{*x.cert},
		NextProtos:   []string{"h2", "http/1.1"},
		MinVersion:   tls.VersionTLS13,
		CurvePreferences: []tls.CurveID{
			tls.CurveP521,
			tls.CurveP384,
			tls.CurveP256,
		},
	}
}

// ServerTLS returns the TLS server configuration required to handle secured
// connections from remote nodes
func (x *MTLS) ServerTLS() *tls.Config {
	return &tls.Config{
		ClientCAs:    x.rootCA,
		Certificates: []tls.Certificate{*x.cert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		NextProtos:   []string{"h2", "http/1.1"},
		MinVersion:   tls.VersionTLS13,
		CurvePreferences: []tls.CurveID{
			tls.CurveP521,
			tls.CurveP384,
			tls.CurveP256,
		},
	}
}

// ServerCredentials returns the credentials the endpoint server is started with
func (x *MTLS) ServerCredentials() gcredentials.TransportCredentials {
	return gcredentials.NewTLS(x.ServerTLS())
}

// ClientCredentials returns the credentials used to dial peer endpoints
func (x *MTLS) ClientCredentials() gcredentials.TransportCredentials {
	return gcredentials.NewTLS(x.ClientTLS())
}

// TLSEnabled returns true when the provider performs TLS
func (x *MTLS) TLSEnabled() bool {
	return true
}
