package offscreen

import (
	"bytes"
	"errors"
	"testing"
)

func TestReportDevices(t *testing.T) {
	var buf bytes.Buffer
	ReportDevices(&buf, []DeviceInfo{
		{Name: "llvmpipe", Vendor: "Mesa"},
		{Name: "", Vendor: "AMD"},
		{},
	})

	want := "Device 0: Name: llvmpipe Vendor: Mesa\n" +
		"Device 1: Name: UNKNOWN Vendor: AMD\n" +
		"Device 2: Name: UNKNOWN Vendor: UNKNOWN\n"
	if got := buf.String(); got != want {
		t.Errorf("ReportDevices output:\n%s\nwant:\n%s", got, want)
	}
}

func TestReportDevicesEmpty(t *testing.T) {
	var buf bytes.Buffer
	ReportDevices(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output for no devices, got %q", buf.String())
	}
}

func TestConfigTemplateMatches(t *testing.T) {
	tests := []struct {
		name string
		cfg  SurfaceConfig
		want bool
	}{
		{"rgba8 headless", SurfaceConfig{AlphaBits: 8, SampleCount: 1, Headless: true}, true},
		{"deeper alpha", SurfaceConfig{AlphaBits: 16, SampleCount: 4, Headless: true}, true},
		{"no alpha", SurfaceConfig{AlphaBits: 0, SampleCount: 4, Headless: true}, false},
		{"needs surface", SurfaceConfig{AlphaBits: 8, SampleCount: 4, Headless: false}, false},
		{"unsupported", SurfaceConfig{AlphaBits: 8, SampleCount: 0, Headless: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultTemplate.Matches(tt.cfg); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.cfg, got, tt.want)
			}
		})
	}
}

func TestFindConfigsKeepsOrder(t *testing.T) {
	all := []SurfaceConfig{
		{ID: 0, AlphaBits: 0, SampleCount: 1, Headless: true},
		{ID: 1, AlphaBits: 8, SampleCount: 1, Headless: true},
		{ID: 2, AlphaBits: 8, SampleCount: 4, Headless: false},
		{ID: 3, AlphaBits: 8, SampleCount: 4, Headless: true},
	}
	got := FindConfigs(DefaultTemplate, all)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("FindConfigs() = %v, want IDs [1 3]", got)
	}
}

func TestPickConfigMaxSamples(t *testing.T) {
	configs := []SurfaceConfig{
		{ID: 0, SampleCount: 1},
		{ID: 1, SampleCount: 4},
		{ID: 2, SampleCount: 2},
	}
	got, err := PickConfig(configs)
	if err != nil {
		t.Fatalf("PickConfig() error = %v", err)
	}
	if got.ID != 1 {
		t.Errorf("PickConfig() picked ID %d, want 1", got.ID)
	}
}

func TestPickConfigTieKeepsFirst(t *testing.T) {
	configs := []SurfaceConfig{
		{ID: 0, SampleCount: 1},
		{ID: 1, SampleCount: 4},
		{ID: 2, SampleCount: 4},
	}
	got, err := PickConfig(configs)
	if err != nil {
		t.Fatalf("PickConfig() error = %v", err)
	}
	if got.ID != 1 {
		t.Errorf("PickConfig() picked ID %d on a tie, want the first (1)", got.ID)
	}
}

func TestPickConfigDeterministic(t *testing.T) {
	configs := []SurfaceConfig{
		{ID: 0, SampleCount: 4},
		{ID: 1, SampleCount: 1},
		{ID: 2, SampleCount: 4},
	}
	first, _ := PickConfig(configs)
	for i := 0; i < 10; i++ {
		got, _ := PickConfig(configs)
		if got != first {
			t.Fatalf("run %d picked %v, first run picked %v", i, got, first)
		}
	}
}

func TestPickConfigEmpty(t *testing.T) {
	_, err := PickConfig(nil)
	if !errors.Is(err, ErrNoConfigs) {
		t.Errorf("PickConfig(nil) error = %v, want ErrNoConfigs", err)
	}
}
