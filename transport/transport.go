// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package transport implements PHTTP's byte-frame channel: the abstract
// Put/Get/Close/Peer contract described in spec §1 and §4.3, plus the
// TCP-backed realization of it.
package transport

import (
	"net"

	"code.hybscloud.com/phttp/block"
)

// Transport is the abstract bidirectional byte-frame channel PHTTP's
// endpoints are built on. Put completes when the frame has been handed
// to the transport; Get suspends until a complete frame arrives.
//
// Implementations must preserve per-id Block ordering for Blocks sent
// on the same Transport (spec invariant I1 / §5 ordering guarantees);
// callers (client/server send mutex) are responsible for the
// three-Blocks-per-message atomicity, not Transport itself.
type Transport interface {
	// Put writes one Block's wire encoding in full. It errors on I/O
	// failure or a closed channel.
	Put(b block.Block) error

	// Get reads one complete Block. It errors on clean EOF or I/O
	// failure.
	Get() (block.Block, error)

	// Close performs an idempotent graceful shutdown of the underlying
	// channel.
	Close() error

	// Peer returns an opaque identifier for the remote endpoint.
	Peer() net.Addr
}
