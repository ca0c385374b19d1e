// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package message

import (
	"code.hybscloud.com/phttp/block"
)

// Slot indices within a Staging triple, in wire transmission order
// (spec §2, §6): line, headers, body.
const (
	SlotLine = iota
	SlotHeaders
	SlotBody
	numSlots
)

// Staging is the receiver-side reassembly buffer for one correlation id:
// a three-slot array of Blocks together with a stage counter counting
// how many of the three have arrived (spec §3 "Message (internal)").
type Staging struct {
	ID     int32
	blocks [numSlots]block.Block
	stage  int
}

// NewStaging starts a staging slot for id.
func NewStaging(id int32) *Staging { return &Staging{ID: id} }

// Add places b into the next slot and reports whether the triple is now
// complete (stage reached 3). Blocks beyond the third are a protocol
// violation per spec §4.5 "Tie-breaks" and are dropped (not stored).
func (s *Staging) Add(b block.Block) (complete bool) {
	if s.stage >= numSlots {
		return true
	}
	s.blocks[s.stage] = b
	s.stage++
	return s.stage == numSlots
}

// Stage returns the number of Blocks staged so far, in {0,1,2,3}.
func (s *Staging) Stage() int { return s.stage }

// Blocks returns the completed triple in (line, headers, body) order.
// Callers must only call this once Add has reported complete.
func (s *Staging) Blocks() [numSlots]block.Block { return s.blocks }

// EncodeRequest packs req into a (line, headers, body) Block triple
// stamped with id, ready to be sent in that order under a send mutex
// (spec §4.2, §4.4 step 2).
func EncodeRequest(id int32, req Request) [numSlots]block.Block {
	linePayload := PackRequestLine(req.Line)
	headersPayload := PackHeaders(req.Headers)

	line := block.FromPayload(id, linePayload)
	headers := block.FromPayload(id, headersPayload)
	body := block.FromPayload(id, req.Body)
	return [numSlots]block.Block{line, headers, body}
}

// EncodeResponse packs resp into a (line, headers, body) Block triple
// stamped with id (spec §4.5 step 2).
func EncodeResponse(id int32, resp Response) [numSlots]block.Block {
	linePayload := PackResponseLine(resp.Line)
	headersPayload := PackHeaders(resp.Headers)

	line := block.FromPayload(id, linePayload)
	headers := block.FromPayload(id, headersPayload)
	body := block.FromPayload(id, resp.Body)
	return [numSlots]block.Block{line, headers, body}
}

// DecodeRequest decodes a completed Staging triple into a Request.
func DecodeRequest(blocks [numSlots]block.Block) (Request, error) {
	line, err := UnpackRequestLine(blocks[SlotLine].Content())
	if err != nil {
		return Request{}, err
	}
	headers, err := UnpackHeaders(blocks[SlotHeaders].Content())
	if err != nil {
		return Request{}, err
	}
	return Request{Line: line, Headers: headers, Body: blocks[SlotBody].Content()}, nil
}

// DecodeResponse decodes a completed Staging triple into a Response.
func DecodeResponse(blocks [numSlots]block.Block) (Response, error) {
	line, err := UnpackResponseLine(blocks[SlotLine].Content())
	if err != nil {
		return Response{}, err
	}
	headers, err := UnpackHeaders(blocks[SlotHeaders].Content())
	if err != nil {
		return Response{}, err
	}
	return Response{Line: line, Headers: headers, Body: blocks[SlotBody].Content()}, nil
}
