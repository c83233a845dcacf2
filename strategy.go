package offscreen

import (
	"fmt"
	"sort"
	"sync"
)

// Strategy produces a current offscreen GraphicsContext and binds a
// Renderer to it. Implementations differ in how they reach the GPU
// (wgpu/hal device enumeration, a desktop GL context, or the CPU).
type Strategy interface {
	// Name returns the strategy identifier used in the registry.
	Name() string

	// CreateContext creates a context and makes it current.
	CreateContext(cfg ContextConfig) (GraphicsContext, error)

	// BindRenderer wraps the context's graphics library into a Renderer.
	BindRenderer(ctx GraphicsContext) (Renderer, error)
}

// StrategyFactory creates a new strategy instance.
type StrategyFactory func() Strategy

// registry holds registered strategies.
var (
	registryMu sync.RWMutex
	strategies = make(map[string]StrategyFactory)
)

// RegisterStrategy registers a strategy factory with the given name.
// This is typically called from init() functions in backend packages.
// If a strategy with the same name is already registered, it is replaced.
func RegisterStrategy(name string, factory StrategyFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	strategies[name] = factory
}

// UnregisterStrategy removes a strategy from the registry.
// This is useful for testing.
func UnregisterStrategy(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(strategies, name)
}

// AvailableStrategies returns the sorted names of registered strategies.
func AvailableStrategies() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupStrategy returns a new instance of the named strategy.
func LookupStrategy(name string) (Strategy, error) {
	registryMu.RLock()
	factory, ok := strategies[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownStrategy, name, AvailableStrategies())
	}
	return factory(), nil
}

// CreateContext looks up the named strategy and creates its context.
// Every failure is wrapped in ErrContext.
func CreateContext(name string, cfg ContextConfig) (Strategy, GraphicsContext, error) {
	s, err := LookupStrategy(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrContext, err)
	}
	ctx, err := s.CreateContext(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrContext, err)
	}
	Logger().Info("offscreen: context ready", "strategy", s.Name(), "context", ctx.Describe())
	return s, ctx, nil
}

// BindRenderer binds a renderer to ctx using s.
// Every failure is wrapped in ErrRenderer.
func BindRenderer(s Strategy, ctx GraphicsContext) (Renderer, error) {
	r, err := s.BindRenderer(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderer, err)
	}
	return r, nil
}
