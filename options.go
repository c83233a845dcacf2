package offscreen

import "io"

// Option configures Run.
// Use functional options to customize the pipeline.
//
// Example:
//
//	// Default strategy for this build, diagnostics on stdout
//	offscreen.Run(offscreen.DefaultJob())
//
//	// CPU rendering, diagnostics discarded
//	offscreen.Run(job, offscreen.WithStrategy("software"), offscreen.WithDiagnostics(io.Discard))
type Option func(*runOptions)

// runOptions holds optional configuration for Run.
type runOptions struct {
	strategy    string
	diagnostics io.Writer
}

// defaultOptions returns the default run options.
func defaultOptions() runOptions {
	return runOptions{
		strategy:    DefaultStrategy,
		diagnostics: nil, // ContextConfig.Writer falls back to stdout
	}
}

// WithStrategy selects a registered strategy by name, overriding the
// build-time default.
func WithStrategy(name string) Option {
	return func(o *runOptions) {
		o.strategy = name
	}
}

// WithDiagnostics redirects the device list, picked config and screenshot
// description. The default is standard output.
func WithDiagnostics(w io.Writer) Option {
	return func(o *runOptions) {
		o.diagnostics = w
	}
}
