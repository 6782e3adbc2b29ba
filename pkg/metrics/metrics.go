// Copyright The NRI Plugins Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"fmt"
	"path"

	logger "github.com/ahsang2/karma-allocator/pkg/log"
	"github.com/prometheus/client_golang/prometheus"
	model "github.com/prometheus/client_model/go"
)

var log = logger.Get("metrics")

type (
	// Collector is a named, registered prometheus.Collector.
	Collector struct {
		collector prometheus.Collector
		name      string
		group     string
		enabled   bool
	}

	// CollectorOption is an option for a Collector.
	CollectorOption func(*Collector)
)

// DefaultName is the name of the default group.
const DefaultName = "default"

// WithoutNamespace returns a CollectorOption that appends a marker to a
// collector's group name. No function in this package applies
// CollectorOptions, and NewGatherer prefixes every collector with the
// namespace and group name regardless of this marker.
func WithoutNamespace() CollectorOption {
	return func(c *Collector) { c.group = c.group + "\x00nons" }
}

// Name returns the fully qualified name of the collector.
func (c *Collector) Name() string {
	return c.group + "/" + c.name
}

// Matches returns true if the collector matches the given glob pattern.
func (c *Collector) Matches(glob string) bool {
	if glob == "*" || glob == c.group || glob == c.name || glob == c.Name() {
		return true
	}
	if ok, err := path.Match(glob, c.Name()); err == nil && ok {
		return true
	}
	return false
}

// Describe implements the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.collector.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if !c.enabled {
		return
	}
	c.collector.Collect(ch)
}

type (
	// Group is a named collection of collectors.
	Group struct {
		name       string
		collectors []*Collector
	}

	// Registry is a collection of groups.
	Registry struct {
		groups map[string]*Group
	}

	// RegisterOptions control how a collector is registered.
	RegisterOptions struct {
		group string
	}

	// RegisterOption is an option for Register.
	RegisterOption func(*RegisterOptions)
)

// WithGroup assigns a collector to a named group at registration time.
func WithGroup(name string) RegisterOption {
	return func(o *RegisterOptions) {
		if name == "" {
			name = DefaultName
		}
		o.group = name
	}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{groups: make(map[string]*Group)}
}

// Register adds a collector to the registry, enabled by default.
func (r *Registry) Register(name string, collector prometheus.Collector, opts ...RegisterOption) error {
	options := &RegisterOptions{group: DefaultName}
	for _, o := range opts {
		o(options)
	}

	grp, ok := r.groups[options.group]
	if !ok {
		grp = &Group{name: options.group}
		r.groups[options.group] = grp
	}

	grp.collectors = append(grp.collectors, &Collector{
		collector: collector,
		name:      name,
		group:     options.group,
		enabled:   true,
	})
	log.Info("registered collector %q in group %q", name, options.group)

	return nil
}

// Enable enables or disables the collectors matching any of the given
// globs, leaving the rest untouched. A nil or empty globs slice is a no-op.
func (r *Registry) Enable(enabled bool, globs ...string) {
	for _, g := range r.groups {
		for _, c := range g.collectors {
			for _, glob := range globs {
				if c.Matches(glob) {
					c.enabled = enabled
				}
			}
		}
	}
}

func prefixedRegisterer(prefix string, reg prometheus.Registerer) prometheus.Registerer {
	if prefix == "" {
		return reg
	}
	return prometheus.WrapRegistererWithPrefix(prefix+"_", reg)
}

type (
	// Gatherer turns a Registry into a prometheus.Gatherer, with an
	// optional common namespace prefix. Collection is purely pull-based:
	// Gather walks every enabled collector synchronously. Nothing here
	// starts a goroutine or a timer.
	Gatherer struct {
		*prometheus.Registry
	}

	// GathererOption is an option for NewGatherer.
	GathererOption func(*gathererConfig)

	gathererConfig struct {
		namespace string
	}
)

// WithNamespace sets the common namespace prefix for a Gatherer.
func WithNamespace(namespace string) GathererOption {
	return func(c *gathererConfig) { c.namespace = namespace }
}

// NewGatherer builds a Gatherer over every group in the registry.
func (r *Registry) NewGatherer(opts ...GathererOption) (*Gatherer, error) {
	cfg := &gathererConfig{}
	for _, o := range opts {
		o(cfg)
	}

	reg := prometheus.NewPedanticRegistry()
	ns := prefixedRegisterer(cfg.namespace, reg)

	for _, grp := range r.groups {
		grpReg := prefixedRegisterer(grp.name, ns)
		for _, c := range grp.collectors {
			if err := grpReg.Register(c); err != nil {
				return nil, fmt.Errorf("failed to register collector %q: %w", c.Name(), err)
			}
		}
	}

	return &Gatherer{Registry: reg}, nil
}

// Gather implements the prometheus.Gatherer interface.
func (g *Gatherer) Gather() ([]*model.MetricFamily, error) {
	return g.Registry.Gather()
}

var defaultRegistry = NewRegistry()

// Default returns the package-wide default registry.
func Default() *Registry {
	return defaultRegistry
}

// Register registers a collector with the default registry.
func Register(name string, collector prometheus.Collector, opts ...RegisterOption) error {
	return Default().Register(name, collector, opts...)
}

// MustRegister registers a collector with the default registry, panicking
// on failure.
func MustRegister(name string, collector prometheus.Collector, opts ...RegisterOption) {
	if err := Register(name, collector, opts...); err != nil {
		panic(err)
	}
}

// NewGatherer builds a Gatherer over the default registry.
func NewGatherer(opts ...GathererOption) (*Gatherer, error) {
	return Default().NewGatherer(opts...)
}
