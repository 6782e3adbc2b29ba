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
	logger "github.com/ahsang2/karma-allocator/pkg/log"
)

// Option is an opaque construction-time option for an Allocator.
type Option func(*Allocator) error

// WithLogger overrides the package-default logger an Allocator uses,
// for callers that want its log lines tagged under their own source
// name instead of "karma".
func WithLogger(l logger.Logger) Option {
	return func(a *Allocator) error {
		a.log = l
		return nil
	}
}

// WithName sets a human-readable name for the allocator, used as the
// "allocator" label value of any metrics collector built for it.
func WithName(name string) Option {
	return func(a *Allocator) error {
		a.name = name
		return nil
	}
}
