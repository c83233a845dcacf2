// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/offscreen"
	"github.com/gogpu/wgpu/hal"
)

// halProvider is implemented by contexts exposing hal types, including
// Context and external gpucontext providers built on gogpu/wgpu.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// BindRenderer binds a Renderer to ctx. The context must expose a hal
// device and queue through HalDevice and HalQueue.
func (s *Strategy) BindRenderer(ctx offscreen.GraphicsContext) (offscreen.Renderer, error) {
	hp, ok := ctx.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: %s context", ErrNoHAL, ctx.Strategy())
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}

	opts := RendererOptions{
		Format:      gputypes.TextureFormatRGBA8Unorm,
		Order:       offscreen.OrderRGBA,
		SampleCount: 1,
	}
	if c, ok := ctx.(*Context); ok {
		opts.Format = c.format
		opts.Order = c.config.Order
		opts.SampleCount = c.SampleCount()
		opts.SPIRV = c.api.SPIRV
	}
	return NewRenderer(device, queue, opts), nil
}
