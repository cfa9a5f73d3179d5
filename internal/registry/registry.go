// Package registry provides a global registry for loop strategy
// factories. The built-in strategies register themselves at package
// init, allowing commands to instantiate a loop by mode name without
// hardcoded switches.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/frameloop/internal/loop"
)

// Factory is a function that creates a new loop with the given options.
type Factory func(opts loop.Options) (loop.Loop, error)

// StrategyInfo contains metadata about a registered strategy.
type StrategyInfo struct {
	Name        string
	Description string
}

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a strategy factory to the registry.
// Panics if a strategy with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: strategy %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered strategies, sorted by
// name.
func List() []StrategyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]StrategyInfo, 0, len(factories))
	for name := range factories {
		result = append(result, StrategyInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a new loop by strategy name.
// Returns an error if the name is not registered.
func Create(name string, opts loop.Options) (loop.Loop, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown strategy %q", name)
	}

	return f(opts)
}

// Exists checks if a strategy with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

func init() {
	Register("variable", "update/render every frame with the actual elapsed delta",
		func(opts loop.Options) (loop.Loop, error) {
			return loop.NewVariableLoop(opts)
		})
	Register("fixed", "deterministic accumulator stepping with interpolation alpha",
		func(opts loop.Options) (loop.Loop, error) {
			return loop.NewFixedLoop(opts)
		})
	Register("adaptive", "switches between fixed and variable based on rolling FPS",
		func(opts loop.Options) (loop.Loop, error) {
			return loop.NewAdaptiveLoop(opts)
		})
	Register("priority", "fixed stepping with ordered, time-budgeted sub-updates",
		func(opts loop.Options) (loop.Loop, error) {
			return loop.NewPriorityLoop(opts, nil)
		})
}
