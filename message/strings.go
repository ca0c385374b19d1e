// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package message

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// cursor reads length-prefixed fields out of a Block payload, matching
// the wire contract: decoding is driven purely by declared lengths, and
// underflow fails with ErrMalformedFrame (spec §4.2).
type cursor struct {
	buf []byte
	off int
}

func newCursor(buf []byte) *cursor { return &cursor{buf: buf} }

func (c *cursor) remaining() int { return len(c.buf) - c.off }

func (c *cursor) readUint32() (uint32, error) {
	if c.remaining() < 4 {
		return 0, errors.Wrap(ErrMalformedFrame, "truncated length prefix")
	}
	v := binary.LittleEndian.Uint32(c.buf[c.off : c.off+4])
	c.off += 4
	return v, nil
}

func (c *cursor) readInt32() (int32, error) {
	v, err := c.readUint32()
	return int32(v), err
}

// readString reads a [len_le32][bytes[len]] field.
func (c *cursor) readString() (string, error) {
	n, err := c.readUint32()
	if err != nil {
		return "", err
	}
	if c.remaining() < int(n) {
		return "", errors.Wrapf(ErrMalformedFrame, "declared string length %d exceeds remaining %d bytes", n, c.remaining())
	}
	s := string(c.buf[c.off : c.off+int(n)])
	c.off += int(n)
	return s, nil
}

// packString appends a [len_le32][bytes] encoding of s to buf.
func packString(buf []byte, s string) []byte {
	var lenBytes [4]byte
	binary.LittleEndian.PutUint32(lenBytes[:], uint32(len(s)))
	buf = append(buf, lenBytes[:]...)
	buf = append(buf, s...)
	return buf
}

func packUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}
