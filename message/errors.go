// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package message

import "errors"

// Error taxonomy (spec §7). These are checked with errors.Is; callers
// that need additional context wrap them with github.com/pkg/errors,
// which preserves Unwrap compatibility with the standard errors package.
var (
	// ErrMalformedFrame reports a payload too short for its declared
	// field counts or lengths.
	ErrMalformedFrame = errors.New("phttp: malformed frame")

	// ErrTransportClosed reports an underlying byte-stream read, write,
	// or close failure ("transport-error" in spec terms).
	ErrTransportClosed = errors.New("phttp: transport error")

	// ErrChannelClosed reports that a local or peer shutdown has been
	// observed. All outstanding client promises fail with this kind;
	// subsequent Exec calls fail immediately with it.
	ErrChannelClosed = errors.New("phttp: channel closed")

	// ErrInconsistentState reports a completed triple for an id absent
	// from the promise table, or an equivalent bookkeeping violation.
	// Fatal to the endpoint that observes it.
	ErrInconsistentState = errors.New("phttp: inconsistent state")
)
