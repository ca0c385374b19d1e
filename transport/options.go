// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

// Options configures a TCP transport's framing behavior.
type Options struct {
	// ReadLimit caps the maximum payload size, in bytes, a Get call
	// will accept. Zero means no limit. A declared length exceeding
	// ReadLimit fails the read with ErrTooLong; the client and server
	// endpoints treat that like any other Get failure and end their
	// receive loops.
	ReadLimit int64
}

var defaultOptions = Options{ReadLimit: 0}

// Option configures Options.
type Option func(*Options)

// WithReadLimit caps the maximum accepted payload size.
func WithReadLimit(limit int64) Option {
	return func(o *Options) { o.ReadLimit = limit }
}
