// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package message

// DefaultVersion is the literal version string a RequestLine carries
// when the caller does not set one explicitly (spec §3).
const DefaultVersion = "PHTTP/1.0"

// RequestLine is the verb/version/resource line of a Request.
type RequestLine struct {
	Verb     string
	Version  string
	Resource string
}

// NewRequestLine builds a RequestLine with DefaultVersion.
func NewRequestLine(verb, resource string) RequestLine {
	return RequestLine{Verb: verb, Version: DefaultVersion, Resource: resource}
}

// PackRequestLine serializes verb, version, resource as three
// consecutive length-prefixed strings (spec §4.2/§6).
func PackRequestLine(rl RequestLine) []byte {
	version := rl.Version
	if version == "" {
		version = DefaultVersion
	}
	var buf []byte
	buf = packString(buf, rl.Verb)
	buf = packString(buf, version)
	buf = packString(buf, rl.Resource)
	return buf
}

// UnpackRequestLine decodes a RequestLine payload produced by PackRequestLine.
// Trailing bytes after the three fields are ignored.
func UnpackRequestLine(payload []byte) (RequestLine, error) {
	c := newCursor(payload)
	verb, err := c.readString()
	if err != nil {
		return RequestLine{}, err
	}
	version, err := c.readString()
	if err != nil {
		return RequestLine{}, err
	}
	resource, err := c.readString()
	if err != nil {
		return RequestLine{}, err
	}
	return RequestLine{Verb: verb, Version: version, Resource: resource}, nil
}
