// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package message

// Request aggregates a RequestLine, Headers, and an opaque body (spec §3).
type Request struct {
	Line    RequestLine
	Headers Headers
	Body    []byte
}

// Response aggregates a ResponseLine, Headers, and an opaque body.
type Response struct {
	Line    ResponseLine
	Headers Headers
	Body    []byte
}

// NewRequest builds a Request with DefaultVersion and empty Headers.
func NewRequest(verb, resource string, body []byte) Request {
	return Request{Line: NewRequestLine(verb, resource), Headers: NewHeaders(), Body: body}
}

// NewResponse builds a Response with empty Headers.
func NewResponse(code int32, msg string, body []byte) Response {
	return Response{Line: ResponseLine{Code: code, Message: msg}, Headers: NewHeaders(), Body: body}
}
