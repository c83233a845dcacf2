package offscreen

import (
	"fmt"
	"io"
)

// unknown is printed in place of a missing device name or vendor.
const unknown = "UNKNOWN"

// DeviceInfo describes an enumerated GPU adapter.
type DeviceInfo struct {
	// Name is the adapter name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the adapter vendor.
	Vendor string
}

// String returns "Name: <name> Vendor: <vendor>" with UNKNOWN for empty fields.
func (d DeviceInfo) String() string {
	return fmt.Sprintf("Name: %s Vendor: %s", orUnknown(d.Name), orUnknown(d.Vendor))
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}

// ReportDevices writes one line per device to w:
//
//	Device 0: Name: llvmpipe Vendor: Mesa
func ReportDevices(w io.Writer, devices []DeviceInfo) {
	for i, d := range devices {
		fmt.Fprintf(w, "Device %d: %s\n", i, d)
	}
}

// SurfaceConfig is a rendering configuration offered by a device.
type SurfaceConfig struct {
	// ID identifies the config within the strategy that produced it.
	ID int
	// Label is a short description, e.g. "rgba8unorm".
	Label string
	// AlphaBits is the alpha channel depth.
	AlphaBits int
	// SampleCount is the number of samples per pixel (1 for non-MSAA).
	SampleCount int
	// Headless reports whether the config renders without a surface.
	Headless bool
	// Order is the channel order of pixels read back from this config.
	Order ChannelOrder
}

// String implements fmt.Stringer.
func (c SurfaceConfig) String() string {
	return fmt.Sprintf("%s alpha=%d samples=%d headless=%t", c.Label, c.AlphaBits, c.SampleCount, c.Headless)
}

// ConfigTemplate lists the properties a config must have.
type ConfigTemplate struct {
	// AlphaBits is the minimum alpha channel depth.
	AlphaBits int
	// Headless requires configs usable without any surface.
	Headless bool
}

// DefaultTemplate requires an 8-bit alpha channel and no surface.
var DefaultTemplate = ConfigTemplate{AlphaBits: 8, Headless: true}

// Matches reports whether c satisfies the template.
func (t ConfigTemplate) Matches(c SurfaceConfig) bool {
	if c.AlphaBits < t.AlphaBits {
		return false
	}
	if t.Headless && !c.Headless {
		return false
	}
	return c.SampleCount > 0
}

// FindConfigs returns the configs matching t, in their original order.
func FindConfigs(t ConfigTemplate, all []SurfaceConfig) []SurfaceConfig {
	var out []SurfaceConfig
	for _, c := range all {
		if t.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// PickConfig returns the config with the most samples. A candidate only
// replaces the current pick when it has strictly more samples, so on a tie
// the first one found wins and the choice is deterministic.
func PickConfig(configs []SurfaceConfig) (SurfaceConfig, error) {
	if len(configs) == 0 {
		return SurfaceConfig{}, ErrNoConfigs
	}
	best := configs[0]
	for _, c := range configs[1:] {
		if c.SampleCount > best.SampleCount {
			best = c
		}
	}
	return best, nil
}
