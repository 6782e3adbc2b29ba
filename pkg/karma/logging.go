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

var log = logger.Get("karma")

// DumpState logs the demand, allocation, and credits of every real
// tenant, for debugging. It is a no-op unless debug logging is enabled
// for the allocator's logger.
func (a *Allocator) DumpState(prefix string) {
	if !a.log.DebugEnabled() {
		return
	}

	a.log.Debug("%sfair_share=%d free_blocks=%d public_blocks=%d", prefix, a.fairShare(), a.freeBlocks(), a.publicBlocks)

	for _, id := range a.table.realIDs() {
		t := a.table.tenants[id]
		a.log.Debug("%s  tenant %d: demand=%d allocation=%d credits=%d", prefix, id, t.demand, t.allocation, t.credits)
	}
}
