// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package phttp is a binary, message-multiplexed request/response
// protocol layered on a reliable ordered byte-stream. Package phttp
// itself only establishes endpoints (spec §4.6); see package client for
// the outgoing-request multiplexer and package server for the
// incoming-request dispatcher.
package phttp

import (
	"net"

	"code.hybscloud.com/phttp/client"
	"code.hybscloud.com/phttp/server"
	"code.hybscloud.com/phttp/transport"
)

// Listener accepts PHTTP server endpoints over a network listener.
type Listener struct {
	ln net.Listener

	transportOpts []transport.Option
	serverOpts    []server.Option
}

// Listen binds a listener on network/address (e.g. "tcp", ":9000") and
// returns a Listener that yields a fresh Server per accepted connection
// (spec §4.6). transportOpts configure the byte-frame transport (e.g.
// transport.WithReadLimit) underlying every accepted connection.
func Listen(network, address string, transportOpts []transport.Option, serverOpts ...server.Option) (*Listener, error) {
	ln, err := net.Listen(network, address)
	if err != nil {
		return nil, err
	}
	return &Listener{ln: ln, transportOpts: transportOpts, serverOpts: serverOpts}, nil
}

// Accept waits for and returns the next connection's Server endpoint.
// The caller must call Run on the returned Server to begin dispatching.
func (l *Listener) Accept() (*server.Server, error) {
	conn, err := l.ln.Accept()
	if err != nil {
		return nil, err
	}
	return server.New(transport.NewTCP(conn, l.transportOpts...), l.serverOpts...), nil
}

// Addr returns the listener's bound address.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Close stops accepting new connections.
func (l *Listener) Close() error { return l.ln.Close() }

// Connect dials peer and returns a ready-to-use Client endpoint
// (spec §4.6). transportOpts configure the byte-frame transport (e.g.
// transport.WithReadLimit) underlying the dialed connection.
func Connect(network, address string, transportOpts []transport.Option, clientOpts ...client.Option) (*client.Client, error) {
	conn, err := net.Dial(network, address)
	if err != nil {
		return nil, err
	}
	return client.New(transport.NewTCP(conn, transportOpts...), clientOpts...), nil
}
