//go:build linux || windows

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"github.com/gogpu/gputypes"

	_ "github.com/gogpu/wgpu/hal/gles"
)

// GL is the fallback API where the GLES hal backend is built.
var GL = halAPI("gl", gputypes.BackendGL, false)

func fallbackAPI() (API, bool) {
	return GL, true
}
