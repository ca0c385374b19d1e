// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package client implements PHTTP's client endpoint: an outgoing-request
// multiplexer with a promise table keyed by correlation id (spec §4.4).
package client

import (
	"math"
	"sync"

	"github.com/containerd/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"code.hybscloud.com/phttp/block"
	"code.hybscloud.com/phttp/message"
	"code.hybscloud.com/phttp/transport"
)

// Client is one side of an established PHTTP connection that issues
// outgoing requests and awaits their responses (spec §4.4).
type Client struct {
	t transport.Transport

	// sendMu is the send mutex S: held across the three Put calls of a
	// single message's burst so another Exec's burst cannot interleave
	// with it (spec §4.4 step 3, §5 ordering guarantees).
	sendMu sync.Mutex

	// mu is the bookkeeping spinlock guarding promises, topID, and down.
	// No suspension ever happens while mu is held (spec §5).
	mu       sync.Mutex
	promises map[int32]*promise
	topID    int32
	down     bool

	recvDone chan struct{}

	id     uuid.UUID
	logger *log.Entry
}

// New constructs a Client endpoint over an already-established
// transport and starts its receive worker.
func New(t transport.Transport, opts ...Option) *Client {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	c := &Client{
		t:        t,
		promises: make(map[int32]*promise),
		recvDone: make(chan struct{}),
		id:       uuid.New(),
		logger:   o.Logger,
	}
	go c.receiveLoop()
	return c
}

// nextID allocates a correlation id not currently present in the
// promise table, per spec §4.4 step 1 and the §9-resolved rescan rule:
// the loop exits when a candidate id is ABSENT from the table (the
// spec explicitly flags the opposite exit condition as a known defect
// in an earlier revision of the source this was distilled from).
// Caller must hold c.mu.
func (c *Client) nextID() int32 {
	for {
		c.topID++
		if c.topID < 0 || c.topID == math.MaxInt32 {
			c.topID = 0
		}
		if _, present := c.promises[c.topID]; !present {
			return c.topID
		}
	}
}

// Exec sends req and blocks until the matching Response arrives, the
// connection shuts down, or a transport error occurs (spec §4.4).
func (c *Client) Exec(req message.Request) (message.Response, error) {
	c.mu.Lock()
	if c.down {
		c.mu.Unlock()
		return message.Response{}, message.ErrChannelClosed
	}
	id := c.nextID()
	p := newPromise()
	c.promises[id] = p
	c.mu.Unlock()

	blocks := message.EncodeRequest(id, req)

	c.sendMu.Lock()
	var sendErr error
	for _, b := range blocks {
		if sendErr = c.t.Put(b); sendErr != nil {
			break
		}
	}
	c.sendMu.Unlock()

	if sendErr != nil {
		c.mu.Lock()
		delete(c.promises, id)
		c.mu.Unlock()
		return message.Response{}, errors.Wrap(message.ErrTransportClosed, sendErr.Error())
	}

	return p.await()
}

// receiveLoop reads Blocks off the transport, demultiplexes them by id
// into per-id staging triples, and fulfills the matching promise once a
// triple completes (spec §4.4 "Receive worker R").
func (c *Client) receiveLoop() {
	defer close(c.recvDone)
	staging := make(map[int32]*message.Staging)

	for {
		b, err := c.t.Get()
		if err != nil {
			c.logger.WithError(err).Debug("phttp client: receive loop ended")
			c.failAll(message.ErrChannelClosed)
			return
		}

		if b.IsControl() {
			switch b.ID() {
			case block.ShutdownRequest:
				// Peer wants to terminate: ack, then drain (spec §6).
				_ = c.t.Put(block.Control(block.ShutdownAck))
				c.failAll(message.ErrChannelClosed)
				return
			case block.ShutdownAck:
				c.failAll(message.ErrChannelClosed)
				return
			}
			continue
		}

		st, ok := staging[b.ID()]
		if !ok {
			st = message.NewStaging(b.ID())
			staging[b.ID()] = st
		}
		if !st.Add(b) {
			continue
		}
		delete(staging, b.ID())

		resp, decErr := message.DecodeResponse(st.Blocks())

		c.mu.Lock()
		p, present := c.promises[b.ID()]
		down := c.down
		if present {
			delete(c.promises, b.ID())
		}
		c.mu.Unlock()

		if !present {
			if down {
				// Already draining: this id's promise was failed and
				// removed by Close/failAll. A late response for it is
				// expected, not a protocol violation.
				continue
			}
			// A completed triple for an id the promise table doesn't
			// know about is a protocol/peer bug (spec §7
			// inconsistent-state). Fatal to this endpoint.
			c.logger.WithField("id", b.ID()).Error("phttp client: inconsistent state, unknown id")
			c.failAll(message.ErrInconsistentState)
			return
		}
		if decErr != nil {
			p.fail(errors.Wrap(decErr, "decode response"))
			continue
		}
		p.fulfill(resp)
	}
}

// failAll fails every currently-registered promise with err and marks
// the client down, draining the table unconditionally (spec §9
// resolution of the "Close doesn't fail promises until shutdown is
// observed" open issue).
func (c *Client) failAll(err error) {
	c.mu.Lock()
	c.down = true
	pending := c.promises
	c.promises = make(map[int32]*promise)
	c.mu.Unlock()

	for _, p := range pending {
		p.fail(err)
	}
}

// Close marks the client down, fails every pending Exec immediately,
// emits the shutdown control frame, and waits for the receive worker
// to finish before closing the underlying transport (spec §4.4 "close"
// and §9's resolution: local down plus unconditional draining, so a
// dead transport cannot make Close hang on the handshake).
func (c *Client) Close() error {
	c.failAll(message.ErrChannelClosed)

	c.sendMu.Lock()
	putErr := c.t.Put(block.Control(block.ShutdownRequest))
	c.sendMu.Unlock()

	<-c.recvDone

	closeErr := c.t.Close()
	if putErr != nil {
		return errors.Wrap(message.ErrTransportClosed, putErr.Error())
	}
	return closeErr
}
