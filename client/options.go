// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package client

import "github.com/containerd/log"

// Options configures a Client.
type Options struct {
	Logger *log.Entry
}

var defaultOptions = Options{Logger: log.L}

// Option configures Options.
type Option func(*Options)

// WithLogger attaches a structured logger used for endpoint lifecycle
// events (receive loop ended by a transport error, inconsistent state).
// Diagnostics only; never required by the core contract.
func WithLogger(l *log.Entry) Option {
	return func(o *Options) { o.Logger = l }
}
