// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"io"
	"net"
	"sync"

	"code.hybscloud.com/phttp/block"
	"code.hybscloud.com/phttp/internal/arena"
)

// TCP is the reliable-ordered-byte-stream-backed Transport (spec §1,
// §4.3, §6). Reads an 8-byte header, decodes (id, length), allocates a
// Block of size length, reads exactly length payload bytes, retrying
// short reads until full or the connection ends.
type TCP struct {
	conn  net.Conn
	alloc arena.Allocator
	opts  Options

	// writeMu serializes the raw bytes handed to conn.Write so that a
	// single Block's header+payload is never interleaved with another
	// goroutine's Put on the same connection. The three-Blocks-per-
	// message atomicity above this (spec's send mutex S) is a client/
	// server concern, layered on top of this lock, not a replacement
	// for it.
	writeMu sync.Mutex

	closeOnce sync.Once
	closeErr  error
}

// NewTCP wraps conn as a PHTTP byte-frame Transport.
func NewTCP(conn net.Conn, opts ...Option) *TCP {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &TCP{conn: conn, alloc: arena.Default, opts: o}
}

// Peer returns the remote address of the underlying connection.
func (t *TCP) Peer() net.Addr {
	if t.conn == nil {
		return nil
	}
	return t.conn.RemoteAddr()
}

// Put writes b's full wire encoding (header + payload) to the connection.
func (t *TCP) Put(b block.Block) error {
	if t.conn == nil {
		return ErrInvalidArgument
	}
	wire := b.Bytes()

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	off := 0
	for off < len(wire) {
		n, err := t.conn.Write(wire[off:])
		off += n
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}

// Get reads one complete Block: the 8-byte header, then exactly length
// payload bytes, retrying short reads (spec §4.3).
func (t *TCP) Get() (block.Block, error) {
	if t.conn == nil {
		return block.Block{}, ErrInvalidArgument
	}

	var hdr [block.HeaderLen]byte
	if err := t.readFull(hdr[:], true); err != nil {
		return block.Block{}, err
	}
	id, length := block.DecodeHeader(hdr[:])
	if length < 0 {
		return block.Block{}, ErrTooLong
	}
	if t.opts.ReadLimit > 0 && int64(length) > t.opts.ReadLimit {
		return block.Block{}, ErrTooLong
	}

	payload := t.alloc.Get(int(length))
	if length > 0 {
		if err := t.readFull(payload, false); err != nil {
			return block.Block{}, err
		}
	}
	return block.FromPayload(id, payload), nil
}

// readFull retries short reads until buf is filled or the connection
// ends. atBoundary indicates this read begins at a message boundary:
// a clean io.EOF there is reported as io.EOF (spec §4.3's "clean EOF");
// an io.EOF mid-read is reported as io.ErrUnexpectedEOF (truncated
// frame, a malformed-frame-shaped failure at the caller).
func (t *TCP) readFull(buf []byte, atBoundary bool) error {
	off := 0
	for off < len(buf) {
		n, err := t.conn.Read(buf[off:])
		off += n
		if err != nil {
			if err == io.EOF {
				if atBoundary && off == 0 {
					return io.EOF
				}
				return io.ErrUnexpectedEOF
			}
			return err
		}
		if n == 0 {
			return io.ErrNoProgress
		}
	}
	return nil
}

// Close idempotently closes the underlying connection.
func (t *TCP) Close() error {
	t.closeOnce.Do(func() {
		if t.conn != nil {
			t.closeErr = t.conn.Close()
		}
	})
	return t.closeErr
}
