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

import "slices"

// donorCandidate is one entry of the sorted donor list borrowFromPoor
// walks: a tenant (or the public pseudo-tenant) willing to lend its
// surplus, keyed by current credits so the poorest donors are served
// first.
type donorCandidate struct {
	id      uint32
	credits uint32
	surplus int64
}

// borrowerCandidate is one entry of the sorted borrower list
// donateToRich walks: a tenant wanting more than its fair share, keyed
// by current credits so the richest borrowers are served first.
type borrowerCandidate struct {
	id      uint32
	credits int64
	request int64
}

// sortDonors orders donors ascending by credits, with id as a secondary
// key so ties resolve deterministically, and appends the terminal
// DummyID sentinel with a credit value no real donor can reach.
func sortDonors(donors []donorCandidate) []donorCandidate {
	slices.SortFunc(donors, func(a, b donorCandidate) int {
		if a.credits != b.credits {
			if a.credits < b.credits {
				return -1
			}
			return 1
		}
		if a.id < b.id {
			return -1
		} else if a.id > b.id {
			return 1
		}
		return 0
	})
	return append(donors, donorCandidate{id: DummyID, credits: ^uint32(0), surplus: 0})
}

// sortBorrowers orders borrowers descending by credits, with id as a
// secondary key, and appends the terminal DummyID sentinel with a
// credit value no real borrower can reach.
func sortBorrowers(borrowers []borrowerCandidate) []borrowerCandidate {
	slices.SortFunc(borrowers, func(a, b borrowerCandidate) int {
		if a.credits != b.credits {
			if a.credits > b.credits {
				return -1
			}
			return 1
		}
		if a.id < b.id {
			return -1
		} else if a.id > b.id {
			return 1
		}
		return 0
	})
	return append(borrowers, borrowerCandidate{id: DummyID, credits: -1, request: 0})
}
