//go:build !linux && !windows

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

func fallbackAPI() (API, bool) {
	return API{}, false
}
