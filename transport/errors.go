// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

import "errors"

var (
	// ErrInvalidArgument reports a nil connection.
	ErrInvalidArgument = errors.New("transport: invalid argument")

	// ErrTooLong reports a declared payload length exceeding the
	// configured ReadLimit, or a negative declared length.
	ErrTooLong = errors.New("transport: message too long")
)
