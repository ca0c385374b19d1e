// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package client

import "code.hybscloud.com/phttp/message"

// promise is the client-side oneshot completion handle the design notes
// (spec §9) call for: a mapping from id to an awaiting handle that
// carries either a value or an error. The producer side (the receive
// worker) lives across a goroutine boundary from the consumer side
// (the Exec caller); a buffered channel of capacity 1 is the natural
// Go rendering of that handoff.
type promise struct {
	ch chan promiseResult
}

type promiseResult struct {
	resp message.Response
	err  error
}

func newPromise() *promise {
	return &promise{ch: make(chan promiseResult, 1)}
}

// fulfill completes the promise with a successful response. Must be
// called at most once.
func (p *promise) fulfill(resp message.Response) {
	p.ch <- promiseResult{resp: resp}
}

// fail completes the promise with an error. Must be called at most once.
func (p *promise) fail(err error) {
	p.ch <- promiseResult{err: err}
}

// await blocks until the promise is fulfilled or failed.
func (p *promise) await() (message.Response, error) {
	r := <-p.ch
	return r.resp, r.err
}
