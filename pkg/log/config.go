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

package log

import "strings"

const (
	// debugEnvVar seeds which sources start out with debug logging enabled.
	debugEnvVar = "KARMA_LOG_DEBUG"
	// sourceEnvVar turns on source-name prefixes in log lines.
	sourceEnvVar = "KARMA_LOG_SOURCE"
)

// parseDebugEnv parses a comma separated list of sources (or "*" for all
// sources) and enables debug logging for them.
func parseDebugEnv(value string) error {
	mutex.Lock()
	defer mutex.Unlock()

	for _, src := range strings.Split(value, ",") {
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}
		if src == "all" {
			src = "*"
		}
		debugSrc[src] = true
	}
	return nil
}

// SetDebug enables or disables debug logging for the given source. Source
// "*" controls the fallback used for sources without an explicit setting.
func SetDebug(source string, enabled bool) {
	mutex.Lock()
	defer mutex.Unlock()
	debugSrc[source] = enabled
}
