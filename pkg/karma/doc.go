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

// Package karma implements the Karma block allocator: a credit-based
// arbiter that divides a fixed pool of indivisible blocks among a
// dynamic set of tenants once per epoch.
//
// # Tenants, credits, fair share
//
// Every tenant carries a demand (blocks wanted this epoch) and a
// credit balance carried over from previous epochs. A reserved public
// pseudo-tenant, PublicID, holds a pool of blocks carved out of the
// total budget at construction time; it is never a real tenant and
// cannot be added or removed.
//
// Given N real tenants and the blocks left once the public pool is set
// aside, fair share is floor(free_blocks/N): the baseline entitlement
// every tenant is owed regardless of credits. A tenant demanding less
// than fair share is a donor: it gets its full demand and lends its
// unused share, earning credits. A tenant demanding more is a
// borrower: it gets fair share plus at most as much of the excess as
// its credit balance can afford; when donated blocks fall short of what
// borrowers can afford, the richest borrowers are served first and a
// borrower may get less than that bound.
//
// # Epochs
//
// Callers drive one epoch by setting every tenant's demand with
// SetDemand and then calling Allocate, which computes every tenant's
// allocation and updated credit balance in one synchronous pass. There
// is no implicit epoch boundary and no background activity; Allocate
// does nothing until called, and does nothing at all with zero real
// tenants.
//
// # Concurrency
//
// An Allocator does no internal locking. Concurrent use requires
// external mutual exclusion over the instance.
package karma
