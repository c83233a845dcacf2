package offscreen

import (
	"bytes"
	"os"
	"testing"
)

// TestDefaultOptions tests that Run uses the build's default strategy.
func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.strategy != DefaultStrategy {
		t.Errorf("strategy = %q, want %q", o.strategy, DefaultStrategy)
	}
	if o.diagnostics != nil {
		t.Errorf("diagnostics = %v, want nil", o.diagnostics)
	}
}

func TestWithOptions(t *testing.T) {
	var buf bytes.Buffer
	o := defaultOptions()
	for _, opt := range []Option{WithStrategy("software"), WithDiagnostics(&buf)} {
		opt(&o)
	}
	if o.strategy != "software" {
		t.Errorf("strategy = %q, want software", o.strategy)
	}
	if o.diagnostics != &buf {
		t.Error("diagnostics writer not set")
	}
}

func TestContextConfigWriter(t *testing.T) {
	if w := (ContextConfig{}).Writer(); w != os.Stdout {
		t.Errorf("default Writer() = %v, want os.Stdout", w)
	}
	var buf bytes.Buffer
	if w := (ContextConfig{Diagnostics: &buf}).Writer(); w != &buf {
		t.Error("Writer() did not return the configured writer")
	}
}
