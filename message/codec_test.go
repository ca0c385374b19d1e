// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package message_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/phttp/block"
	"code.hybscloud.com/phttp/message"
)

// S1: encode/decode a RequestLine, default version preserved.
func TestRequestLine_RoundTrip_S1(t *testing.T) {
	rl := message.NewRequestLine("POST", "TEST_RESOURCE/A")
	payload := message.PackRequestLine(rl)
	got, err := message.UnpackRequestLine(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Verb != "POST" || got.Resource != "TEST_RESOURCE/A" || got.Version != message.DefaultVersion {
		t.Fatalf("got=%+v", got)
	}
}

// S2: encode/decode a ResponseLine.
func TestResponseLine_RoundTrip_S2(t *testing.T) {
	rl := message.ResponseLine{Code: 20000, Message: "SUCCESS"}
	payload := message.PackResponseLine(rl)
	got, err := message.UnpackResponseLine(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Code != 20000 || got.Message != "SUCCESS" {
		t.Fatalf("got=%+v", got)
	}
}

// S3: Headers pack/unpack preserves entries (P2: header idempotence).
func TestHeaders_RoundTrip_S3(t *testing.T) {
	h := message.NewHeaders()
	h.Set("Test", "Headers")
	h.Set("Foo", "Bar")

	payload := message.PackHeaders(h)
	got, err := message.UnpackHeaders(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := got.Get("Test"); !ok || v != "Headers" {
		t.Fatalf("Test=%q ok=%v", v, ok)
	}
	if v, ok := got.Get("Foo"); !ok || v != "Bar" {
		t.Fatalf("Foo=%q ok=%v", v, ok)
	}
}

// P2: setting a key twice retains only the last value, surviving pack/unpack.
func TestHeaders_SetTwice_LastWins(t *testing.T) {
	h := message.NewHeaders()
	h.Set("K", "first")
	h.Set("K", "second")
	if v, _ := h.Get("K"); v != "second" {
		t.Fatalf("Get(K)=%q want second", v)
	}

	payload := message.PackHeaders(h)
	got, err := message.UnpackHeaders(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := got.Get("K"); v != "second" {
		t.Fatalf("after round-trip Get(K)=%q want second", v)
	}
}

// Duplicate keys on the wire: last entry wins after decode (spec §4.2).
func TestHeaders_DuplicateKeysOnWire_LastWins(t *testing.T) {
	var payload []byte
	payload = append(payload, 2, 0, 0, 0) // count = 2
	encodeField := func(s string) []byte {
		var out []byte
		out = append(out, byte(len(s)), 0, 0, 0)
		out = append(out, s...)
		return out
	}
	payload = append(payload, encodeField("K")...)
	payload = append(payload, encodeField("first")...)
	payload = append(payload, encodeField("K")...)
	payload = append(payload, encodeField("second")...)

	got, err := message.UnpackHeaders(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := got.Get("K"); v != "second" {
		t.Fatalf("Get(K)=%q want second", v)
	}
}

func TestUnpack_TruncatedPayload_MalformedFrame(t *testing.T) {
	_, err := message.UnpackRequestLine([]byte{5, 0, 0, 0, 'a'}) // declares 5 bytes, has 1
	if !errors.Is(err, message.ErrMalformedFrame) {
		t.Fatalf("err=%v want ErrMalformedFrame", err)
	}
}

func TestUnpack_TrailingGarbageTolerated(t *testing.T) {
	payload := message.PackResponseLine(message.ResponseLine{Code: 1, Message: "ok"})
	payload = append(payload, 0xDE, 0xAD, 0xBE, 0xEF)
	got, err := message.UnpackResponseLine(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Code != 1 || got.Message != "ok" {
		t.Fatalf("got=%+v", got)
	}
}

func TestStaging_CompletesAtThree(t *testing.T) {
	s := message.NewStaging(7)
	if c := s.Add(block.NewWithID(0, 7, nil)); c {
		t.Fatalf("complete after 1 block")
	}
	if c := s.Add(block.NewWithID(0, 7, nil)); c {
		t.Fatalf("complete after 2 blocks")
	}
	if c := s.Add(block.NewWithID(0, 7, nil)); !c {
		t.Fatalf("not complete after 3 blocks")
	}
	if s.Stage() != 3 {
		t.Fatalf("Stage()=%d want 3", s.Stage())
	}
}

func TestEncodeDecodeRequest_RoundTrip(t *testing.T) {
	req := message.NewRequest("ECHO", "/", []byte("payload"))
	req.Headers.Set("X", "Y")

	blocks := message.EncodeRequest(5, req)
	for _, b := range blocks {
		if b.ID() != 5 {
			t.Fatalf("block id=%d want 5", b.ID())
		}
	}
	got, err := message.DecodeRequest(blocks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Line.Verb != "ECHO" || got.Line.Resource != "/" || string(got.Body) != "payload" {
		t.Fatalf("got=%+v", got)
	}
	if v, _ := got.Headers.Get("X"); v != "Y" {
		t.Fatalf("headers not preserved: %+v", got.Headers)
	}
}

func TestEncodeDecodeResponse_RoundTrip(t *testing.T) {
	resp := message.NewResponse(20000, "OK", []byte("body"))
	blocks := message.EncodeResponse(9, resp)
	got, err := message.DecodeResponse(blocks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Line.Code != 20000 || got.Line.Message != "OK" || string(got.Body) != "body" {
		t.Fatalf("got=%+v", got)
	}
}
