// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/offscreen"
	"github.com/gogpu/wgpu/hal/noop"
)

// noopAPI is an API backed by the wgpu noop backend.
var noopAPI = API{
	Name: "noop",
	Factory: func() (InstanceFactory, bool) {
		return &noop.API{}, true
	},
}

var missingAPI = API{
	Name: "missing",
	Factory: func() (InstanceFactory, bool) {
		return nil, false
	},
}

// createNoopContext creates a context on the noop backend for testing.
func createNoopContext(t *testing.T) (*Context, string) {
	t.Helper()
	var diag bytes.Buffer
	gc, err := New(noopAPI).CreateContext(offscreen.ContextConfig{Diagnostics: &diag})
	if err != nil {
		t.Fatalf("CreateContext failed: %v", err)
	}
	ctx := gc.(*Context)
	t.Cleanup(func() { _ = ctx.Release() })
	return ctx, diag.String()
}

func TestCreateContextNoop(t *testing.T) {
	ctx, diag := createNoopContext(t)

	if !strings.HasPrefix(diag, "Device 0: Name: ") {
		t.Errorf("diagnostics should start with the device list, got %q", diag)
	}
	if !strings.Contains(diag, "Picked a config with 8 samples\n") {
		t.Errorf("diagnostics missing picked config: %q", diag)
	}

	cfg := ctx.Config()
	if cfg.SampleCount != 8 || cfg.Label != "rgba8unorm" || cfg.AlphaBits != 8 {
		t.Errorf("Config() = %v, want rgba8unorm with 8 samples", cfg)
	}
	if ctx.SurfaceFormat() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("SurfaceFormat() = %v, want RGBA8Unorm", ctx.SurfaceFormat())
	}
	if ctx.Strategy() != Name {
		t.Errorf("Strategy() = %q, want %q", ctx.Strategy(), Name)
	}
	if ctx.API().Name != "noop" {
		t.Errorf("API() = %q, want noop", ctx.API().Name)
	}
	if ctx.HalDevice() == nil || ctx.HalQueue() == nil {
		t.Error("expected HAL device and queue")
	}
	if ctx.Device() == nil || ctx.Queue() == nil || ctx.Adapter() == nil {
		t.Error("expected non-nil DeviceProvider handles")
	}
}

func TestCreateContextFallsBack(t *testing.T) {
	var diag bytes.Buffer
	gc, err := New(missingAPI, noopAPI).CreateContext(offscreen.ContextConfig{Diagnostics: &diag})
	if err != nil {
		t.Fatalf("CreateContext failed: %v", err)
	}
	defer gc.Release()

	if got := gc.(*Context).API().Name; got != "noop" {
		t.Errorf("API() = %q, want the noop fallback", got)
	}
}

func TestCreateContextNoAPI(t *testing.T) {
	var diag bytes.Buffer
	_, err := New(missingAPI, API{Name: "nil"}).CreateContext(offscreen.ContextConfig{Diagnostics: &diag})
	if !errors.Is(err, offscreen.ErrNoDevices) {
		t.Fatalf("CreateContext error = %v, want ErrNoDevices", err)
	}
	if !errors.Is(err, ErrAPIUnavailable) {
		t.Errorf("CreateContext error = %v, want it to wrap ErrAPIUnavailable", err)
	}
	if diag.Len() != 0 {
		t.Errorf("no diagnostics expected without devices, got %q", diag.String())
	}
}

func TestContextReleaseTwice(t *testing.T) {
	ctx, _ := createNoopContext(t)
	if err := ctx.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := ctx.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
	if ctx.HalDevice() != nil {
		t.Error("HalDevice() should be nil after Release")
	}
}

func TestProbeConfigsOrder(t *testing.T) {
	ctx, _ := createNoopContext(t)

	configs := probeConfigs(ctx.device)
	if len(configs) != len(candidateFormats)*len(candidateSamples) {
		t.Fatalf("probeConfigs() returned %d configs", len(configs))
	}
	for i, c := range configs {
		if c.ID != i {
			t.Errorf("config %d has ID %d", i, c.ID)
		}
		wantFormat := candidateFormats[i/len(candidateSamples)]
		if c.Label != wantFormat.label || c.Order != wantFormat.order {
			t.Errorf("config %d = %v, want format %s", i, c, wantFormat.label)
		}
		if want := int(candidateSamples[i%len(candidateSamples)]); c.SampleCount != want {
			t.Errorf("config %d has %d samples, want %d", i, c.SampleCount, want)
		}
		if formatOf(c) != wantFormat.format {
			t.Errorf("formatOf(config %d) = %v, want %v", i, formatOf(c), wantFormat.format)
		}
	}
	matching := offscreen.FindConfigs(offscreen.DefaultTemplate, configs)
	for _, c := range matching {
		if c.Label == "r8unorm" {
			t.Errorf("r8unorm has no alpha and must not match: %v", c)
		}
	}
}

func TestStrategyRegistered(t *testing.T) {
	s, err := offscreen.LookupStrategy(Name)
	if err != nil {
		t.Fatalf("LookupStrategy(%q) error = %v", Name, err)
	}
	if s.Name() != Name {
		t.Errorf("Name() = %q", s.Name())
	}
}

func TestDefaultAPIsStartWithVulkan(t *testing.T) {
	apis := DefaultAPIs()
	if len(apis) == 0 || apis[0].Name != "vulkan" || !apis[0].SPIRV {
		t.Errorf("DefaultAPIs()[0] = %+v, want vulkan with SPIR-V", apis)
	}
}
