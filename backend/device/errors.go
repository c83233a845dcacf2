// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import "errors"

var (
	// ErrAPIUnavailable is returned when a graphics API has no hal backend
	// compiled in or registered.
	ErrAPIUnavailable = errors.New("device: graphics API not available")

	// ErrNoHAL is returned when binding a renderer to a context that does
	// not expose a hal device and queue.
	ErrNoHAL = errors.New("device: context does not expose HAL types")

	// ErrGPUTimeout is returned when submitted work does not finish in time.
	ErrGPUTimeout = errors.New("device: GPU wait timed out")
)
