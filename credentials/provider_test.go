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
	"testing"

	"github.com/kapetan-io/tackle/autotls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsecure(t *testing.T) {
	provider := NewInsecure()
	assert.False(t, provider.TLSEnabled())
	assert.Equal(t, "insecure", provider.ServerCredentials().Info().SecurityProtocol)
	assert.Equal(t, "insecure", provider.ClientCredentials().Info().SecurityProtocol)
}

func TestMTLS(t *testing.T) {
	conf := autotls.Config{AutoTLS: true, ClientAuth: tls.RequireAndVerifyClientCert}
	require.NoError(t, autotls.Setup(&conf))

	provider := NewMTLS(conf.ClientTLS.RootCAs, &conf.ServerTLS.Certificates[0])
	require.True(t, provider.TLSEnabled())

	serverTLS := provider.ServerTLS()
	assert.Equal(t, tls.RequireAndVerifyClientCert, serverTLS.ClientAuth)
	assert.EqualValues(t, tls.VersionTLS13, serverTLS.MinVersion)
	assert.NotNil(t, serverTLS.ClientCAs)

	clientTLS := provider.ClientTLS()
	assert.NotNil(t, clientTLS.RootCAs)
	assert.Len(t, clientTLS.Certificates, 1)

	assert.Equal(t, "tls", provider.ServerCredentials().Info().SecurityProtocol)
	assert.Equal(t, "tls", provider.ClientCredentials().Info().SecurityProtocol)
}

func TestMTLSFromPEMBlocks(t *testing.T) {
	conf := autotls.Config{AutoTLS: true}
	require.NoError(t, autotls.Setup(&conf))

	provider, err := NewMTLSFromPEMBlocks(conf.CaPEM.Bytes(), conf.KeyPEM.Bytes(), conf.CertPEM.Bytes())
	require.NoError(t, err)
	require.True(t, provider.TLSEnabled())
	assert.Len(t, provider.ServerTLS().Certificates, 1)
}
