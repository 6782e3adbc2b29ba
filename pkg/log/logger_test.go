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

package log_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	log "github.com/ahsang2/karma-allocator/pkg/log"
)

func TestGetReturnsStableInstance(t *testing.T) {
	a := log.Get("test-source")
	b := log.Get("test-source")
	require.Same(t, a, b, "Get should return the same instance for the same source")
}

func TestDebugEnabledDefaultsOff(t *testing.T) {
	l := log.Get("unrelated-source")
	require.False(t, l.DebugEnabled())
}

func TestSetDebugEnablesSource(t *testing.T) {
	l := log.Get("debuggable-source")
	require.False(t, l.DebugEnabled())

	log.SetDebug("debuggable-source", true)
	require.True(t, l.DebugEnabled())

	log.SetDebug("debuggable-source", false)
	require.False(t, l.DebugEnabled())
}

func TestSetDebugWildcard(t *testing.T) {
	l := log.Get("wildcard-source")
	log.SetDebug("*", true)
	require.True(t, l.DebugEnabled())
	log.SetDebug("*", false)
}
