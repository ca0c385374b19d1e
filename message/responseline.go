// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package message

// ResponseLine is the code/message line of a Response.
type ResponseLine struct {
	Code    int32
	Message string
}

// PackResponseLine serializes [code_le32] followed by a length-prefixed
// message string (spec §4.2/§6).
func PackResponseLine(rl ResponseLine) []byte {
	var buf []byte
	buf = packUint32(buf, uint32(rl.Code))
	buf = packString(buf, rl.Message)
	return buf
}

// UnpackResponseLine decodes a ResponseLine payload produced by
// PackResponseLine. Trailing bytes are ignored.
func UnpackResponseLine(payload []byte) (ResponseLine, error) {
	c := newCursor(payload)
	code, err := c.readInt32()
	if err != nil {
		return ResponseLine{}, err
	}
	msg, err := c.readString()
	if err != nil {
		return ResponseLine{}, err
	}
	return ResponseLine{Code: code, Message: msg}, nil
}
