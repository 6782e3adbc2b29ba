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

// Package metrics provides a thin, purely pull-based wrapper around
// prometheus collector registration: named groups, namespace prefixing,
// and a Gatherer that turns a Registry into a prometheus.Gatherer. There
// is no background polling; callers collect on demand by calling Gather,
// which suits libraries (like karma) that must not start goroutines of
// their own.
//
// Simple usage:
//
//	metrics.MustRegister("karma", karma.NewCollector(alloc), metrics.WithGroup("karma"))
//	g, err := metrics.NewGatherer(metrics.WithNamespace("myapp"))
//	mfs, err := g.Gather()
package metrics
