// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package device provides the offscreen strategy that renders through a
// gogpu/wgpu hal device.
//
// The strategy tries Vulkan first and falls back to GL where that backend
// is built. For the API in use it lists every adapter, opens the first one,
// probes a small set of color formats and sample counts with 1x1 render
// targets, and keeps the config with the most samples. No window or surface
// is ever created.
//
// Import the package for its side effect of registering the "device"
// strategy:
//
//	import _ "github.com/gogpu/offscreen/backend/device"
package device

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/offscreen"
	"github.com/gogpu/wgpu/hal"
)

// Name is the strategy name in the offscreen registry.
const Name = "device"

func init() {
	offscreen.RegisterStrategy(Name, func() offscreen.Strategy {
		return New()
	})
}

// candidate is a color format the strategy can render into.
type candidate struct {
	format    gputypes.TextureFormat
	label     string
	alphaBits int
	order     offscreen.ChannelOrder
}

// candidateFormats are probed in this order.
var candidateFormats = []candidate{
	{gputypes.TextureFormatRGBA8Unorm, "rgba8unorm", 8, offscreen.OrderRGBA},
	{gputypes.TextureFormatBGRA8Unorm, "bgra8unorm", 8, offscreen.OrderBGRA},
	{gputypes.TextureFormatR8Unorm, "r8unorm", 0, offscreen.OrderRGBA},
}

// candidateSamples are the sample counts probed for each format. They
// cover every count WebGPU texture formats allow.
var candidateSamples = []uint32{1, 2, 4, 8}

// Strategy creates contexts on hal devices.
type Strategy struct {
	apis []API
}

// New returns a strategy trying apis in order. With no arguments it uses
// DefaultAPIs.
func New(apis ...API) *Strategy {
	if len(apis) == 0 {
		apis = DefaultAPIs()
	}
	return &Strategy{apis: apis}
}

// Name returns the strategy identifier.
func (s *Strategy) Name() string {
	return Name
}

// CreateContext opens a device on the first API that exposes one and
// selects its config. The device list and the picked config are written
// to cfg's diagnostics writer.
func (s *Strategy) CreateContext(cfg offscreen.ContextConfig) (offscreen.GraphicsContext, error) {
	var errs []error
	for _, api := range s.apis {
		ctx, err := open(api, cfg.Writer())
		if err == nil {
			return ctx, nil
		}
		if errors.Is(err, offscreen.ErrNoConfigs) {
			return nil, err
		}
		offscreen.Logger().Warn("device: API failed, trying next", "api", api.Name, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", api.Name, err))
	}
	if len(errs) == 0 {
		return nil, offscreen.ErrNoDevices
	}
	return nil, fmt.Errorf("%w: %w", offscreen.ErrNoDevices, errors.Join(errs...))
}

// open creates an instance for api, opens its first adapter and selects a
// config. On failure everything created so far is destroyed.
func open(api API, w io.Writer) (*Context, error) {
	if api.Factory == nil {
		return nil, ErrAPIUnavailable
	}
	factory, ok := api.Factory()
	if !ok {
		return nil, ErrAPIUnavailable
	}
	instance, err := factory.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, offscreen.ErrNoDevices
	}
	offscreen.ReportDevices(w, deviceInfos(adapters))

	selected := &adapters[0]
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	configs := offscreen.FindConfigs(offscreen.DefaultTemplate, probeConfigs(openDev.Device))
	config, err := offscreen.PickConfig(configs)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	fmt.Fprintf(w, "Picked a config with %d samples\n", config.SampleCount)

	ctx := &Context{
		api:      api,
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		info:     deviceInfo(selected),
		config:   config,
		format:   formatOf(config),
	}
	offscreen.Logger().Info("device: context ready",
		"api", api.Name, "adapter", ctx.info.Name, "config", config.String())
	return ctx, nil
}

func deviceInfo(a *hal.ExposedAdapter) offscreen.DeviceInfo {
	return offscreen.DeviceInfo{Name: a.Info.Name, Vendor: a.Info.Vendor}
}

func deviceInfos(adapters []hal.ExposedAdapter) []offscreen.DeviceInfo {
	out := make([]offscreen.DeviceInfo, len(adapters))
	for i := range adapters {
		out[i] = deviceInfo(&adapters[i])
	}
	return out
}

// probeConfigs returns one config per candidate format and sample count,
// in probe order. Candidates the device cannot render into get a zero
// sample count.
func probeConfigs(device hal.Device) []offscreen.SurfaceConfig {
	configs := make([]offscreen.SurfaceConfig, 0, len(candidateFormats)*len(candidateSamples))
	for _, c := range candidateFormats {
		for _, samples := range candidateSamples {
			cfg := offscreen.SurfaceConfig{
				ID:        len(configs),
				Label:     c.label,
				AlphaBits: c.alphaBits,
				Headless:  true,
				Order:     c.order,
			}
			if probe(device, c.format, samples) {
				cfg.SampleCount = int(samples)
			}
			configs = append(configs, cfg)
		}
	}
	return configs
}

// formatOf maps a config produced by probeConfigs back to its texture format.
func formatOf(cfg offscreen.SurfaceConfig) gputypes.TextureFormat {
	return candidateFormats[cfg.ID/len(candidateSamples)].format
}

// probe reports whether device can create a 1x1 render target of the given
// format and sample count.
func probe(device hal.Device, format gputypes.TextureFormat, samples uint32) bool {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "offscreen_probe",
		Size:          hal.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		offscreen.Logger().Debug("device: config rejected", "format", format, "samples", samples, "err", err)
		return false
	}
	device.DestroyTexture(tex)
	return true
}
