// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package message

// Headers is an unordered string-to-string mapping with unique keys.
// Set performs insert-or-assign; duplicate keys on the wire collapse to
// the last value decoded (spec §3).
type Headers map[string]string

// NewHeaders returns an empty Headers map ready for Set.
func NewHeaders() Headers { return make(Headers) }

// Set inserts or overwrites the value for key.
func (h Headers) Set(key, value string) { h[key] = value }

// Get returns the value for key and whether it was present.
func (h Headers) Get(key string) (string, bool) {
	v, ok := h[key]
	return v, ok
}

// Clone returns an independent copy of h.
func (h Headers) Clone() Headers {
	out := make(Headers, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// PackHeaders serializes [count_le32] followed by count (key, value)
// length-prefixed string pairs. Emission order is unspecified (spec §4.2).
func PackHeaders(h Headers) []byte {
	var buf []byte
	buf = packUint32(buf, uint32(len(h)))
	for k, v := range h {
		buf = packString(buf, k)
		buf = packString(buf, v)
	}
	return buf
}

// UnpackHeaders decodes a Headers payload produced by PackHeaders.
// Duplicate keys collapse via insert-or-assign, last one wins.
func UnpackHeaders(payload []byte) (Headers, error) {
	c := newCursor(payload)
	count, err := c.readUint32()
	if err != nil {
		return nil, err
	}
	h := make(Headers, count)
	for i := uint32(0); i < count; i++ {
		k, err := c.readString()
		if err != nil {
			return nil, err
		}
		v, err := c.readString()
		if err != nil {
			return nil, err
		}
		h.Set(k, v)
	}
	return h, nil
}
