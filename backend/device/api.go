// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// InstanceFactory creates hal instances. hal.Backend implementations and
// the noop API satisfy it.
type InstanceFactory interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// API is a graphics API the strategy can run on.
type API struct {
	// Name identifies the API in diagnostics and logs.
	Name string

	// SPIRV reports whether shaders must be compiled to SPIR-V.
	SPIRV bool

	// Factory returns the instance factory, or false when the API is not
	// available in this build or on this system.
	Factory func() (InstanceFactory, bool)
}

// halAPI returns an API backed by a registered hal backend.
func halAPI(name string, backend gputypes.Backend, spirv bool) API {
	return API{
		Name:  name,
		SPIRV: spirv,
		Factory: func() (InstanceFactory, bool) {
			b, ok := hal.GetBackend(backend)
			if !ok {
				return nil, false
			}
			return b, true
		},
	}
}

// Vulkan is the primary API.
var Vulkan = halAPI("vulkan", gputypes.BackendVulkan, true)

// DefaultAPIs returns the APIs tried in order: Vulkan first, then the
// platform fallback when one is compiled in.
func DefaultAPIs() []API {
	apis := []API{Vulkan}
	if fallback, ok := fallbackAPI(); ok {
		apis = append(apis, fallback)
	}
	return apis
}
