// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package server implements PHTTP's server endpoint: an incoming-request
// dispatcher that runs one handler task per completed request, joined
// through an in-flight task group (not indexed by correlation id), and
// replies under the request's id (spec §4.5).
package server

import (
	"sync"

	"github.com/containerd/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"code.hybscloud.com/phttp/block"
	"code.hybscloud.com/phttp/message"
	"code.hybscloud.com/phttp/transport"
)

// Handler produces a Response for an incoming Request. Handlers run on
// their own goroutine (spec §5 "Redispatch"), never on the receive
// loop's stack.
type Handler func(message.Request) message.Response

// Server is one side of an established PHTTP connection that dispatches
// incoming requests to a Handler and replies under their own id
// (spec §4.5).
type Server struct {
	t transport.Transport

	// sendMu is the send mutex S (shared meaning with client.Client):
	// held across a response triple's three Puts.
	sendMu sync.Mutex

	mu   sync.Mutex
	down bool

	staging *semaphore.Weighted // nil when Options.MaxStagingIDs == 0

	id     uuid.UUID
	logger *log.Entry
}

// New constructs a Server endpoint over an already-established transport.
// Run must be called to start dispatching.
func New(t transport.Transport, opts ...Option) *Server {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	s := &Server{
		t:      t,
		id:     uuid.New(),
		logger: o.Logger,
	}
	if o.MaxStagingIDs > 0 {
		s.staging = semaphore.NewWeighted(o.MaxStagingIDs)
	}
	return s
}

// Run reads Blocks in a loop, reassembles them into Requests by id, and
// dispatches each completed Request to h on its own goroutine, joined
// through an in-flight task group (spec §4.5 "run"). Run returns once
// the shutdown handshake has completed and every in-flight handler has
// finished.
func (s *Server) Run(h Handler) error {
	staging := make(map[int32]*message.Staging) // per-worker, not shared
	acquired := make(map[int32]bool)
	var inflight errgroup.Group

	defer func() {
		_ = inflight.Wait()
	}()

	for {
		b, err := s.t.Get()
		if err != nil {
			s.logger.WithError(err).Debug("phttp server: run loop ended")
			return inflight.Wait()
		}

		if b.IsControl() {
			switch b.ID() {
			case block.ShutdownRequest:
				s.sendMu.Lock()
				ackErr := s.t.Put(block.Control(block.ShutdownAck))
				s.sendMu.Unlock()
				if ackErr != nil {
					s.logger.WithError(ackErr).Debug("phttp server: shutdown ack failed")
				}
				return inflight.Wait()
			case block.ShutdownAck:
				return inflight.Wait()
			}
			continue
		}

		st, ok := staging[b.ID()]
		if !ok {
			if s.staging != nil && !s.staging.TryAcquire(1) {
				s.logger.WithField("id", b.ID()).Warn("phttp server: staging cap exceeded, dropping frame")
				continue
			}
			acquired[b.ID()] = s.staging != nil
			st = message.NewStaging(b.ID())
			staging[b.ID()] = st
		}
		if !st.Add(b) {
			continue
		}
		delete(staging, b.ID())
		if acquired[b.ID()] {
			s.staging.Release(1)
		}
		delete(acquired, b.ID())

		id := b.ID()
		blocks := st.Blocks()
		inflight.Go(func() error {
			s.handle(h, id, blocks)
			return nil
		})
	}
}

// handle decodes one completed triple, invokes h (recovering a panic
// into a synthesized error response per spec §9's resolution of the
// "handler exceptions get no reply" open issue), and sends the result
// under the send mutex.
func (s *Server) handle(h Handler, id int32, blocks [3]block.Block) {
	req, decErr := message.DecodeRequest(blocks)
	var resp message.Response
	if decErr != nil {
		resp = errorResponse(decErr)
	} else {
		resp = s.invoke(h, req)
	}

	out := message.EncodeResponse(id, resp)
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	for _, ob := range out {
		if err := s.t.Put(ob); err != nil {
			s.logger.WithError(err).WithField("id", id).Debug("phttp server: reply failed")
			return
		}
	}
}

// invoke calls h, converting a panic into a synthesized 500-class
// Response instead of letting the handler task crash Run (spec §4.5
// "Handler exceptions never crash run", §9 resolved open issue).
func (s *Server) invoke(h Handler, req message.Request) (resp message.Response) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Error("phttp server: handler panicked")
			resp = message.NewResponse(500, "handler error", nil)
		}
	}()
	return h(req)
}

func errorResponse(err error) message.Response {
	return message.NewResponse(400, "malformed request: "+err.Error(), nil)
}

// Close marks the server down and emits a shutdown control frame under
// the send mutex, idempotently (spec §4.5 "close").
func (s *Server) Close() error {
	s.mu.Lock()
	if s.down {
		s.mu.Unlock()
		return nil
	}
	s.down = true
	s.mu.Unlock()

	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	return s.t.Put(block.Control(block.ShutdownRequest))
}
