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

package karma

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ahsang2/karma-allocator/pkg/metrics"
)

// Collector is a prometheus.Collector exposing the live state of an
// Allocator: per-tenant demand, allocation, and credits, plus the
// allocator's epoch counter. Collect reads the allocator's current
// state synchronously; it does not trigger an epoch and never blocks.
type Collector struct {
	a *Allocator

	epoch      *prometheus.Desc
	demand     *prometheus.Desc
	allocation *prometheus.Desc
	credits    *prometheus.Desc
}

// NewCollector returns a Collector over a, labeled with a's name.
func NewCollector(a *Allocator) *Collector {
	name := a.name
	if name == "" {
		name = "karma"
	}
	constLabels := prometheus.Labels{"allocator": name}

	return &Collector{
		a:     a,
		epoch: prometheus.NewDesc("karma_epoch_total", "Number of completed allocate() epochs.", nil, constLabels),
		demand: prometheus.NewDesc("karma_tenant_demand_blocks",
			"Current demand in blocks for a tenant.", []string{"tenant"}, constLabels),
		allocation: prometheus.NewDesc("karma_tenant_allocation_blocks",
			"Current allocation in blocks for a tenant.", []string{"tenant"}, constLabels),
		credits: prometheus.NewDesc("karma_tenant_credits",
			"Current credit balance for a tenant.", []string{"tenant"}, constLabels),
	}
}

// Register registers the collector with the default metrics registry
// under the given name, in the "karma" group.
func (c *Collector) Register(name string) error {
	return metrics.Register(name, c, metrics.WithGroup("karma"))
}

// Describe implements the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.epoch
	ch <- c.demand
	ch <- c.allocation
	ch <- c.credits
}

// Collect implements the prometheus.Collector interface. Like every other
// Allocator method, it assumes the caller excludes concurrent mutation
// of the allocator (see the package doc on concurrency).
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.epoch, prometheus.CounterValue, float64(c.a.epoch))

	for id, t := range c.a.table.tenants {
		if id == PublicID {
			continue
		}
		label := strconv.FormatUint(uint64(id), 10)
		ch <- prometheus.MustNewConstMetric(c.demand, prometheus.GaugeValue, float64(t.demand), label)
		ch <- prometheus.MustNewConstMetric(c.allocation, prometheus.GaugeValue, float64(t.allocation), label)
		ch <- prometheus.MustNewConstMetric(c.credits, prometheus.GaugeValue, float64(t.credits), label)
	}
}
