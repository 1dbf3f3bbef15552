// Package plugins builds the overview's search providers. Each plugin
// contributes one provider; the registry orders them by priority, which is
// also the order of the result sections.
package plugins

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pders01/overview/internal/debuglog"
	"github.com/pders01/overview/internal/search"
)

// Env is what plugins build their providers from.
type Env struct {
	Store    search.ItemSource
	Launcher search.Launcher
	// IndexPath is where index-backed providers keep their data. Empty
	// means in memory.
	IndexPath string
}

// Plugin defines the interface that search provider plugins implement.
type Plugin interface {
	// Name identifies the plugin in configuration and is the title of its
	// result section.
	Name() string

	// Priority orders plugins (higher = earlier section).
	Priority() int

	// NewProvider builds the plugin's provider.
	NewProvider(env Env) (search.Provider, error)
}

// Registry manages all registered plugins
type Registry struct {
	plugins []Plugin
}

func NewRegistry() *Registry {
	return &Registry{plugins: make([]Plugin, 0)}
}

// Register adds a plugin. A later plugin with the same name replaces the
// earlier one.
func (r *Registry) Register(plugin Plugin) {
	for i, p := range r.plugins {
		if strings.EqualFold(p.Name(), plugin.Name()) {
			r.plugins[i] = plugin
			return
		}
	}
	r.plugins = append(r.plugins, plugin)
}

// FindPlugin returns the plugin registered under name, or nil.
func (r *Registry) FindPlugin(name string) Plugin {
	for _, p := range r.plugins {
		if strings.EqualFold(p.Name(), name) {
			return p
		}
	}
	return nil
}

// ListPlugins returns all registered plugins by descending priority.
// Plugins of equal priority keep registration order.
func (r *Registry) ListPlugins() []Plugin {
	out := append([]Plugin(nil), r.plugins...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority() > out[j].Priority()
	})
	return out
}

// Providers is the result of Registry.Build.
type Providers struct {
	List []search.Provider
}

// Close releases providers that hold resources, such as an index.
func (p *Providers) Close() error {
	var errs []error
	for _, prov := range p.List {
		if c, ok := prov.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", prov.Name(), err))
			}
		}
	}
	return errors.Join(errs...)
}

// Build creates the providers of every plugin not named in disabled. A
// plugin that fails is logged and skipped so the rest of search keeps
// working.
func (r *Registry) Build(env Env, disabled []string) *Providers {
	off := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		off[strings.ToLower(strings.TrimSpace(name))] = true
	}

	out := &Providers{}
	for _, p := range r.ListPlugins() {
		if off[strings.ToLower(p.Name())] {
			debuglog.Infof("plugins: %s disabled", p.Name())
			continue
		}
		prov, err := p.NewProvider(env)
		if err != nil {
			debuglog.Errorf("plugins: %s: %v", p.Name(), err)
			continue
		}
		out.List = append(out.List, prov)
	}
	return out
}
