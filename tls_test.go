// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bassosimone/netstub"
	"github.com/bassosimone/tlsstub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TLSEngineStdlib returns "stdlib" as Name and a *tls.Conn from Client.
func TestTLSEngineStdlib(t *testing.T) {
	engine := TLSEngineStdlib{}

	assert.Equal(t, "stdlib", engine.Name())

	tlsConn := engine.Client(&netstub.FuncConn{}, &tls.Config{})
	require.NotNil(t, tlsConn)
	_, ok := tlsConn.(*tls.Conn)
	assert.True(t, ok)
}

// NewTLSHandshakeFunc populates all fields from Config and the provided logger.
func TestNewTLSHandshakeFunc(t *testing.T) {
	tlsConfig := &tls.Config{ServerName: "api.dynali.net"}

	fn := NewTLSHandshakeFunc(NewConfig(), tlsConfig, DefaultSLogger())

	require.NotNil(t, fn)
	assert.Equal(t, tlsConfig, fn.Config)
	assert.NotNil(t, fn.Engine)
	assert.NotNil(t, fn.Logger)
	assert.NotNil(t, fn.TimeNow)
	assert.NotNil(t, fn.ErrClassifier)
}

// NewTLSHandshakeFunc panics when given a nil TLS config.
func TestNewTLSHandshakeFuncNilConfig(t *testing.T) {
	assert.Panics(t, func() {
		NewTLSHandshakeFunc(NewConfig(), nil, DefaultSLogger())
	})
}

// Call returns the TLSConn on successful handshake.
func TestTLSHandshakeFuncSuccess(t *testing.T) {
	wantState := tls.ConnectionState{
		Version:            tls.VersionTLS13,
		CipherSuite:        tls.TLS_AES_128_GCM_SHA256,
		NegotiatedProtocol: "h2",
	}

	var gotConfig *tls.Config
	mockTLSConn := &tlsstub.FuncTLSConn{
		FuncConn: newMinimalConn(),
		ConnectionStateFunc: func() tls.ConnectionState {
			return wantState
		},
		HandshakeContextFunc: func(ctx context.Context) error {
			return nil
		},
	}
	engine := newMockTLSEngine(mockTLSConn)
	engine.ClientFunc = func(c net.Conn, config *tls.Config) TLSConn {
		gotConfig = config
		return mockTLSConn
	}

	tlsConfig := &tls.Config{ServerName: "api.dynali.net"}
	fn := NewTLSHandshakeFunc(NewConfig(), tlsConfig, DefaultSLogger())
	fn.Engine = engine

	result, err := fn.Call(context.Background(), newMinimalConn())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, wantState, result.ConnectionState())

	// The handshake uses a clone so the caller's config is never mutated
	require.NotNil(t, gotConfig)
	assert.NotSame(t, tlsConfig, gotConfig)
	assert.Equal(t, "api.dynali.net", gotConfig.ServerName)
	assert.Nil(t, tlsConfig.Time)
}

// Call closes the TLS connection and returns nil on handshake failure.
func TestTLSHandshakeFuncError(t *testing.T) {
	wantErr := errors.New("handshake failed")

	closeCalled := false
	mockTLSConn := &tlsstub.FuncTLSConn{
		FuncConn: newMinimalConn(),
		ConnectionStateFunc: func() tls.ConnectionState {
			return tls.ConnectionState{}
		},
		HandshakeContextFunc: func(ctx context.Context) error {
			return wantErr
		},
	}
	mockTLSConn.FuncConn.CloseFunc = func() error {
		closeCalled = true
		return nil
	}

	fn := NewTLSHandshakeFunc(NewConfig(), &tls.Config{ServerName: "api.dynali.net"}, DefaultSLogger())
	fn.Engine = newMockTLSEngine(mockTLSConn)

	result, err := fn.Call(context.Background(), newMinimalConn())

	require.ErrorIs(t, err, wantErr)
	assert.Nil(t, result)
	assert.True(t, closeCalled, "connection should be closed on error")
}

// Call propagates the caller's context deadline to HandshakeContext.
func TestTLSHandshakeFuncCallerTimeout(t *testing.T) {
	callerTimeout := 5 * time.Second

	mockTLSConn := &tlsstub.FuncTLSConn{
		FuncConn: newMinimalConn(),
		ConnectionStateFunc: func() tls.ConnectionState {
			return tls.ConnectionState{}
		},
		HandshakeContextFunc: func(ctx context.Context) error {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok, "context should have deadline from caller")
			assert.True(t, time.Until(deadline) <= callerTimeout)
			return nil
		},
	}

	fn := NewTLSHandshakeFunc(NewConfig(), &tls.Config{ServerName: "api.dynali.net"}, DefaultSLogger())
	fn.Engine = newMockTLSEngine(mockTLSConn)

	ctx, cancel := context.WithTimeout(context.Background(), callerTimeout)
	defer cancel()

	_, err := fn.Call(ctx, newMinimalConn())
	require.NoError(t, err)
}

// Call emits tlsHandshakeStart/tlsHandshakeDone log events.
func TestTLSHandshakeFuncLogging(t *testing.T) {
	logger, records := newCapturingLogger()

	mockTLSConn := &tlsstub.FuncTLSConn{
		FuncConn: newMinimalConn(),
		ConnectionStateFunc: func() tls.ConnectionState {
			return tls.ConnectionState{NegotiatedProtocol: "http/1.1"}
		},
		HandshakeContextFunc: func(ctx context.Context) error {
			return nil
		},
	}

	fn := NewTLSHandshakeFunc(NewConfig(), &tls.Config{ServerName: "api.dynali.net"}, logger)
	fn.Engine = newMockTLSEngine(mockTLSConn)

	_, _ = fn.Call(context.Background(), newMinimalConn())

	assert.Equal(t, []string{"tlsHandshakeStart", "tlsHandshakeDone"}, recordMessages(*records))
	assert.Equal(t, "mock", recordAttr((*records)[1], "tlsEngineName"))
	assert.Equal(t, "http/1.1", recordAttr((*records)[1], "tlsNegotiatedProtocol"))
	assert.Equal(t, "api.dynali.net", recordAttr((*records)[1], "tlsServerName"))
}
