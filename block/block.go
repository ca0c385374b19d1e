// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package block implements PHTTP's on-wire frame unit: a Block is an
// 8-byte little-endian (id, length) header followed by length bytes of
// payload. Blocks are single-owner values: once handed to a transport's
// Put, the caller must not read or write the Block again.
package block

import (
	"encoding/binary"

	"code.hybscloud.com/phttp/internal/arena"
)

// HeaderLen is the fixed size, in bytes, of a Block's wire header.
const HeaderLen = 8

// Control ids. id < 0 is reserved for control frames and is never
// presented to user code (spec invariant I4).
const (
	ShutdownRequest int32 = -1
	ShutdownAck     int32 = -2
)

// Block is a framed buffer: an id, and a payload whose length was fixed
// at construction. The id is mutable until the Block is transmitted.
type Block struct {
	id      int32
	payload []byte
}

// New constructs a Block of the given length, with id 0. The payload is
// drawn from alloc (or the package default pooled allocator if alloc is
// nil) and is exactly length bytes.
func New(length int, alloc arena.Allocator) Block {
	if alloc == nil {
		alloc = arena.Default
	}
	return Block{payload: alloc.Get(length)}
}

// NewWithID constructs a Block of the given length and id.
func NewWithID(length int, id int32, alloc arena.Allocator) Block {
	b := New(length, alloc)
	b.id = id
	return b
}

// FromPayload wraps an existing byte slice as a Block's payload without
// copying. Used by decoders that already own a freshly read buffer.
func FromPayload(id int32, payload []byte) Block {
	return Block{id: id, payload: payload}
}

// Control returns a zero-length control Block for the given control id.
func Control(id int32) Block {
	return Block{id: id}
}

// SetID stamps the Block's correlation id.
func (b *Block) SetID(id int32) { b.id = id }

// ID returns the Block's correlation id.
func (b Block) ID() int32 { return b.id }

// Size returns the total wire size of the Block: header plus payload.
func (b Block) Size() int { return HeaderLen + len(b.payload) }

// Content returns the payload only (no header).
func (b Block) Content() []byte { return b.payload }

// IsControl reports whether this Block carries a reserved control id.
func (b Block) IsControl() bool { return b.id < 0 }

// Bytes returns the full wire encoding: header followed by payload.
// The returned slice is freshly allocated; it does not alias Content().
func (b Block) Bytes() []byte {
	out := make([]byte, HeaderLen+len(b.payload))
	binary.LittleEndian.PutUint32(out[0:4], uint32(b.id))
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(b.payload)))
	copy(out[HeaderLen:], b.payload)
	return out
}

// DecodeHeader parses an 8-byte wire header into (id, length).
// hdr must be exactly HeaderLen bytes.
func DecodeHeader(hdr []byte) (id int32, length int32) {
	id = int32(binary.LittleEndian.Uint32(hdr[0:4]))
	length = int32(binary.LittleEndian.Uint32(hdr[4:8]))
	return id, length
}

// EncodeHeader writes the 8-byte wire header for (id, length) into hdr.
// hdr must be exactly HeaderLen bytes.
func EncodeHeader(hdr []byte, id int32, length int32) {
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(id))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(length))
}
