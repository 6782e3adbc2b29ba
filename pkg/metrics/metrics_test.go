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

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ahsang2/karma-allocator/pkg/metrics"
)

func newGaugeCollector(name string, value float64) prometheus.Collector {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: "test gauge",
	})
	g.Set(value)
	return g
}

func TestRegisterAndGather(t *testing.T) {
	r := metrics.NewRegistry()

	require.NoError(t, r.Register("credits", newGaugeCollector("karma_credits", 42)))

	g, err := r.NewGatherer()
	require.NoError(t, err)

	mfs, err := g.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)
	require.Equal(t, "default_karma_credits", mfs[0].GetName())
}

func TestNamespacePrefix(t *testing.T) {
	r := metrics.NewRegistry()
	require.NoError(t, r.Register("credits", newGaugeCollector("credits", 1), metrics.WithGroup("karma")))

	g, err := r.NewGatherer(metrics.WithNamespace("myapp"))
	require.NoError(t, err)

	mfs, err := g.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)
	require.Equal(t, "myapp_karma_credits", mfs[0].GetName())
}

func TestEnableDisableFiltersCollection(t *testing.T) {
	r := metrics.NewRegistry()
	require.NoError(t, r.Register("credits", newGaugeCollector("credits", 1), metrics.WithGroup("karma")))

	r.Enable(false, "karma/credits")

	g, err := r.NewGatherer()
	require.NoError(t, err)

	mfs, err := g.Gather()
	require.NoError(t, err)
	require.Empty(t, mfs)
}

func TestDefaultRegistry(t *testing.T) {
	metrics.MustRegister("default-test-gauge", newGaugeCollector("default_test_gauge", 7))

	g, err := metrics.NewGatherer()
	require.NoError(t, err)

	mfs, err := g.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "default_default_test_gauge" {
			found = true
		}
	}
	require.True(t, found, "expected default registry to contain the registered gauge")
}
