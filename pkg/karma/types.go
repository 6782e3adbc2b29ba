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

const (
	// PublicID is the reserved id of the always-present pseudo-tenant
	// holding the public block pool. It is never a legal argument to
	// AddTenant or RemoveTenant.
	PublicID uint32 = 0

	// DummyID is a reserved sentinel id, never a legal tenant, used to
	// terminate sorted candidate lists so resolution loops need no
	// explicit end-of-list check.
	DummyID uint32 = 1<<32 - 1
)

// tenant is the per-tenant record tracked by a TenantTable: demand and
// allocation for the current epoch, carried credits, and the rate
// accumulated during the epoch and committed to credits at its end.
type tenant struct {
	demand     uint32
	allocation uint32
	credits    uint32
	rate       int64
}

// TenantTable maps tenant ids to their per-tenant record, including the
// distinguished public tenant. Iteration order is unspecified; callers
// that need a deterministic order sort explicitly.
type TenantTable struct {
	tenants map[uint32]*tenant
}

// newTenantTable returns a table already holding the public tenant.
func newTenantTable() *TenantTable {
	return &TenantTable{
		tenants: map[uint32]*tenant{
			PublicID: {},
		},
	}
}

// NumTenants returns the number of real tenants, excluding the public
// entry.
func (t *TenantTable) NumTenants() int {
	return len(t.tenants) - 1
}

func (t *TenantTable) get(id uint32) (*tenant, bool) {
	rec, ok := t.tenants[id]
	return rec, ok
}

func (t *TenantTable) has(id uint32) bool {
	_, ok := t.tenants[id]
	return ok
}

func (t *TenantTable) add(id uint32, credits uint32) {
	t.tenants[id] = &tenant{credits: credits}
}

func (t *TenantTable) remove(id uint32) {
	delete(t.tenants, id)
}

// totalCredits sums credits over every entry, including the public
// tenant, matching the averaging the original uses for a new tenant's
// initial grant.
func (t *TenantTable) totalCredits() uint64 {
	var total uint64
	for _, rec := range t.tenants {
		total += uint64(rec.credits)
	}
	return total
}

// realIDs returns the ids of every tenant except the public one.
func (t *TenantTable) realIDs() []uint32 {
	ids := make([]uint32, 0, len(t.tenants)-1)
	for id := range t.tenants {
		if id == PublicID {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
