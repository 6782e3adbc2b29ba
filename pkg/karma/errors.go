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

import "fmt"

var (
	// ErrInvalid is returned for out-of-domain arguments and for misuse
	// of the reserved PublicID/DummyID ids.
	ErrInvalid = fmt.Errorf("karma: invalid argument")
	// ErrNotFound is returned when an operation references an unknown
	// tenant id.
	ErrNotFound = fmt.Errorf("karma: tenant not found")
	// ErrAlreadyExists is returned by AddTenant for a duplicate id.
	ErrAlreadyExists = fmt.Errorf("karma: tenant already exists")
)
