// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/offscreen"
	"github.com/gogpu/wgpu/hal"
)

// Context is a surfaceless hal device and queue with its selected config.
//
// Context implements offscreen.GraphicsContext and gpucontext.DeviceProvider.
// HalDevice and HalQueue expose the underlying hal types to renderers.
type Context struct {
	api      API
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	info     offscreen.DeviceInfo
	config   offscreen.SurfaceConfig
	format   gputypes.TextureFormat
	released bool
}

var (
	_ offscreen.GraphicsContext  = (*Context)(nil)
	_ gpucontext.DeviceProvider = (*Context)(nil)
)

// Strategy returns the strategy name.
func (c *Context) Strategy() string { return Name }

// Describe returns the API, adapter and config.
func (c *Context) Describe() string {
	return fmt.Sprintf("%s on %s (%s)", c.api.Name, c.info, c.config)
}

// API returns the graphics API in use.
func (c *Context) API() API { return c.api }

// Info returns the opened adapter.
func (c *Context) Info() offscreen.DeviceInfo { return c.info }

// Config returns the selected config.
func (c *Context) Config() offscreen.SurfaceConfig { return c.config }

// SampleCount returns the selected number of samples per pixel.
func (c *Context) SampleCount() uint32 { return uint32(c.config.SampleCount) } //nolint:gosec // probed values are 1 or 4

// HalDevice returns the hal.Device, or nil after Release.
func (c *Context) HalDevice() any {
	if c.released {
		return nil
	}
	return c.device
}

// HalQueue returns the hal.Queue, or nil after Release.
func (c *Context) HalQueue() any {
	if c.released {
		return nil
	}
	return c.queue
}

// Device implements gpucontext.DeviceProvider.
func (c *Context) Device() gpucontext.Device { return deviceHandle{c} }

// Queue implements gpucontext.DeviceProvider.
func (c *Context) Queue() gpucontext.Queue { return queueHandle{c.queue} }

// Adapter implements gpucontext.DeviceProvider.
func (c *Context) Adapter() gpucontext.Adapter { return adapterHandle{c.info} }

// SurfaceFormat returns the color format of the selected config. There is
// no surface; renderers use it for their offscreen targets.
func (c *Context) SurfaceFormat() gputypes.TextureFormat { return c.format }

// Release destroys the device and the instance. It is safe to call twice.
func (c *Context) Release() error {
	if c.released {
		return nil
	}
	c.released = true
	if c.device != nil {
		c.device.Destroy()
	}
	if c.instance != nil {
		c.instance.Destroy()
	}
	offscreen.Logger().Debug("device: context released", "api", c.api.Name)
	return nil
}

// deviceHandle adapts the context to gpucontext.Device.
type deviceHandle struct{ ctx *Context }

// Poll does nothing; renderers wait on fences after every submit.
func (deviceHandle) Poll(bool) {}

func (h deviceHandle) Destroy() { _ = h.ctx.Release() }

type queueHandle struct{ q hal.Queue }

type adapterHandle struct{ info offscreen.DeviceInfo }
