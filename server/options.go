// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import "github.com/containerd/log"

// Options configures a Server.
type Options struct {
	Logger *log.Entry

	// MaxStagingIDs caps the number of incomplete per-id staging
	// entries the server will hold at once (spec §9 "Staging slot
	// growth"). Zero means unlimited. A peer that opens more
	// incomplete ids than this cap has its excess first Blocks
	// dropped rather than grown without bound.
	MaxStagingIDs int64
}

var defaultOptions = Options{Logger: log.L, MaxStagingIDs: 0}

// Option configures Options.
type Option func(*Options)

// WithLogger attaches a structured logger used for endpoint lifecycle
// events. Diagnostics only; never required by the core contract.
func WithLogger(l *log.Entry) Option {
	return func(o *Options) { o.Logger = l }
}

// WithMaxStagingIDs caps concurrent incomplete per-id staging entries.
func WithMaxStagingIDs(n int64) Option {
	return func(o *Options) { o.MaxStagingIDs = n }
}
