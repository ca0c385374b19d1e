// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package block_test

import (
	"bytes"
	"testing"

	"code.hybscloud.com/phttp/block"
)

func TestBlock_BytesHeaderLayout(t *testing.T) {
	b := block.NewWithID(3, 42, nil)
	copy(b.Content(), []byte("abc"))

	got := b.Bytes()
	want := []byte{42, 0, 0, 0, 3, 0, 0, 0, 'a', 'b', 'c'}
	if !bytes.Equal(got, want) {
		t.Fatalf("Bytes()=% x want % x", got, want)
	}
	if b.Size() != block.HeaderLen+3 {
		t.Fatalf("Size()=%d want %d", b.Size(), block.HeaderLen+3)
	}
}

func TestBlock_NegativeID(t *testing.T) {
	b := block.NewWithID(0, -1, nil)
	got := b.Bytes()
	want := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Fatalf("Bytes()=% x want % x", got, want)
	}
	if !b.IsControl() {
		t.Fatalf("IsControl() = false, want true")
	}
}

func TestBlock_SetID(t *testing.T) {
	b := block.New(0, nil)
	if b.ID() != 0 {
		t.Fatalf("ID()=%d want 0", b.ID())
	}
	b.SetID(7)
	if b.ID() != 7 {
		t.Fatalf("ID()=%d want 7", b.ID())
	}
}

func TestDecodeEncodeHeader_RoundTrip(t *testing.T) {
	hdr := make([]byte, block.HeaderLen)
	block.EncodeHeader(hdr, -2, 12345)
	id, length := block.DecodeHeader(hdr)
	if id != -2 || length != 12345 {
		t.Fatalf("DecodeHeader=(%d,%d) want (-2,12345)", id, length)
	}
}

func TestControl_ZeroLengthPayload(t *testing.T) {
	b := block.Control(block.ShutdownRequest)
	if len(b.Content()) != 0 {
		t.Fatalf("Content() len=%d want 0", len(b.Content()))
	}
	if b.ID() != block.ShutdownRequest {
		t.Fatalf("ID()=%d want %d", b.ID(), block.ShutdownRequest)
	}
}

func TestFromPayload_NoCopy(t *testing.T) {
	p := []byte("hello")
	b := block.FromPayload(5, p)
	p[0] = 'X'
	if b.Content()[0] != 'X' {
		t.Fatalf("FromPayload should alias the given slice")
	}
}
