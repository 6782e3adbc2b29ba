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
	"fmt"
	"math"

	"github.com/pkg/errors"

	logger "github.com/ahsang2/karma-allocator/pkg/log"
)

// Allocator is one instance of the Karma block allocator: a fixed block
// budget, a public pool carved out of it at construction time, and the
// set of tenants currently competing for the remainder.
type Allocator struct {
	numBlocks    uint64
	alpha        float32
	initCredits  uint32
	publicBlocks uint64

	table *TenantTable
	epoch uint64

	name string
	log  logger.Logger
}

// NewAllocator creates an Allocator for numBlocks total blocks, carving
// out a public pool of floor(alpha*numBlocks) blocks shared by every
// tenant. initCredits seeds the credit balance of the first tenant
// added to an otherwise empty allocator. alpha must be in [0,1].
func NewAllocator(numBlocks uint64, alpha float32, initCredits uint32, opts ...Option) (*Allocator, error) {
	if alpha < 0 || alpha > 1 {
		return nil, errors.Wrapf(ErrInvalid, "alpha %v must be in [0,1]", alpha)
	}

	a := &Allocator{
		numBlocks:    numBlocks,
		alpha:        alpha,
		initCredits:  initCredits,
		publicBlocks: uint64(alpha * float32(numBlocks)),
		table:        newTenantTable(),
		log:          log,
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, errors.Wrap(err, "karma: failed to apply option")
		}
	}

	return a, nil
}

// NumTenants returns the number of real tenants currently tracked,
// excluding the public pseudo-tenant.
func (a *Allocator) NumTenants() int {
	return a.table.NumTenants()
}

// PublicBlocks returns the size of the public pool carved out at
// construction time.
func (a *Allocator) PublicBlocks() uint64 {
	return a.publicBlocks
}

// AddTenant registers a new tenant. Its initial credit balance is the
// sum of the credit balances of every currently tracked entry (the
// public pool included) divided by the number of real tenants, or
// initCredits if no real tenant exists yet.
func (a *Allocator) AddTenant(id uint32) error {
	if id == DummyID {
		return errors.Wrapf(ErrInvalid, "tenant id %d is reserved", id)
	}
	if a.table.has(id) {
		return errors.Wrapf(ErrAlreadyExists, "tenant %d", id)
	}

	n := a.table.NumTenants()
	credits := a.initCredits
	if n > 0 {
		credits = uint32(a.table.totalCredits() / uint64(n))
	}

	a.table.add(id, credits)
	a.log.Debug("added tenant %d with %d initial credits", id, credits)

	return nil
}

// RemoveTenant removes a tenant. The public pseudo-tenant cannot be
// removed.
func (a *Allocator) RemoveTenant(id uint32) error {
	if id == PublicID {
		return errors.Wrapf(ErrInvalid, "tenant id %d is reserved", id)
	}
	if !a.table.has(id) {
		return errors.Wrapf(ErrNotFound, "tenant %d", id)
	}

	a.table.remove(id)
	a.log.Debug("removed tenant %d", id)

	return nil
}

// SetDemand sets the number of blocks a tenant requests for the next
// epoch. If greedy is set, a demand below the current fair share is
// raised to the fair share; it never lowers an explicit higher demand.
func (a *Allocator) SetDemand(id uint32, demand uint32, greedy bool) error {
	if id == PublicID {
		return errors.Wrapf(ErrInvalid, "tenant id %d is reserved", id)
	}
	t, ok := a.table.get(id)
	if !ok {
		return errors.Wrapf(ErrNotFound, "tenant %d", id)
	}

	if greedy {
		if fs := a.fairShare(); demand < fs {
			demand = fs
		}
	}
	t.demand = demand

	return nil
}

// GetAllocation returns the number of blocks granted to a tenant in
// the most recent epoch.
func (a *Allocator) GetAllocation(id uint32) (uint32, error) {
	t, ok := a.table.get(id)
	if !ok {
		return 0, errors.Wrapf(ErrNotFound, "tenant %d", id)
	}
	return t.allocation, nil
}

// GetCredits returns a tenant's current credit balance.
func (a *Allocator) GetCredits(id uint32) (uint32, error) {
	t, ok := a.table.get(id)
	if !ok {
		return 0, errors.Wrapf(ErrNotFound, "tenant %d", id)
	}
	return t.credits, nil
}

// freeBlocks is the block budget left once the public pool is set
// aside.
func (a *Allocator) freeBlocks() uint64 {
	return a.numBlocks - a.publicBlocks
}

// fairShare is the baseline per-tenant entitlement. It is undefined
// with zero real tenants; callers must check NumTenants first.
func (a *Allocator) fairShare() uint32 {
	n := a.table.NumTenants()
	if n <= 0 {
		return 0
	}
	return uint32(a.freeBlocks() / uint64(n))
}

// surplusOf is fairShare-demand for a real donor, or the whole public
// pool for the public pseudo-tenant.
func (a *Allocator) surplusOf(id uint32, fs uint32) int64 {
	if id == PublicID {
		return int64(a.publicBlocks)
	}
	t := a.table.tenants[id]
	return int64(fs) - int64(t.demand)
}

// creditsForSort is the credit value used to order donor candidates.
// The public pseudo-tenant always sorts as the poorest possible donor
// (credits 0) regardless of the bookkeeping value stashed in its
// credits field during Allocate, matching the donor tuple (PUBLIC_ID,
// 0, public_blocks) built for it.
func (a *Allocator) creditsForSort(id uint32) uint32 {
	if id == PublicID {
		return 0
	}
	return a.table.tenants[id].credits
}

// requestOf is the credit-bounded amount a borrower may still receive
// beyond its fair share.
func (a *Allocator) requestOf(id uint32, fs uint32) int64 {
	t := a.table.tenants[id]
	req := int64(t.demand) - int64(fs)
	if c := int64(t.credits); c < req {
		req = c
	}
	return req
}

// Allocate runs one epoch: it computes every real tenant's allocation
// and credit delta from current demands and credits, and the fixed
// public pool, then commits both. It is a no-op with zero real
// tenants, since fair share is undefined in that case.
func (a *Allocator) Allocate() {
	n := a.table.NumTenants()
	if n == 0 {
		return
	}

	fs := a.fairShare()
	supply := a.publicBlocks
	var demandAcc uint64

	donors := make([]uint32, 0, n)
	borrowers := make([]uint32, 0, n)

	for id, t := range a.table.tenants {
		if id == PublicID {
			continue
		}

		t.rate = 0
		t.credits += uint32(a.publicBlocks / uint64(n))

		switch {
		case t.demand < fs:
			donors = append(donors, id)
			supply += uint64(fs - t.demand)
		case t.demand > fs:
			borrowers = append(borrowers, id)
			toAdd := uint64(t.demand - fs)
			if c := uint64(t.credits); c < toAdd {
				toAdd = c
			}
			demandAcc += toAdd
		}
		t.allocation = minUint32(t.demand, fs)
	}

	pub := a.table.tenants[PublicID]
	pub.rate = 0
	pub.credits = a.initCredits * uint32(n)

	if a.publicBlocks > 0 {
		donors = append(donors, PublicID)
	}

	if supply >= demandAcc {
		a.borrowFromPoor(demandAcc, donors, borrowers, fs)
	} else {
		a.donateToRich(supply, donors, borrowers, fs)
	}

	for id, t := range a.table.tenants {
		if id == PublicID {
			t.credits = 0
			continue
		}
		next := int64(t.credits) + t.rate
		if next < 0 {
			panic(fmt.Sprintf("karma: credit conservation violated for tenant %d (rate %d on %d credits)", id, t.rate, t.credits))
		}
		t.credits = uint32(next)
	}

	a.epoch++
	a.log.Debug("epoch %d complete: fair_share=%d supply=%d demand=%d", a.epoch, fs, supply, demandAcc)
}

// borrowFromPoor handles the case where donor surplus covers credit-
// bounded borrower demand: every borrower is fully satisfied, and the
// cost is spread across donors starting with the poorest (lowest
// credits first) so that lending equalizes credit balances.
func (a *Allocator) borrowFromPoor(demandAcc uint64, donors, borrowers []uint32, fs uint32) {
	for _, id := range borrowers {
		t := a.table.tenants[id]
		toBorrow := uint64(t.demand - fs)
		if c := uint64(t.credits); c < toBorrow {
			toBorrow = c
		}
		t.allocation += uint32(toBorrow)
		t.rate -= int64(toBorrow)
	}

	donorCands := make([]donorCandidate, 0, len(donors))
	for _, id := range donors {
		donorCands = append(donorCands, donorCandidate{
			id:      id,
			credits: a.creditsForSort(id),
			surplus: a.surplusOf(id, fs),
		})
	}
	donorCands = sortDonors(donorCands)
	last := len(donorCands) - 1 // index of the DummyID sentinel

	idx := 0
	currC := int64(-1)
	nextC := int64(donorCands[0].credits)
	h := NewBroadcastHeap()
	demand := int64(demandAcc)

	for demand > 0 {
		if h.Empty() {
			currC = nextC
			if currC >= int64(^uint32(0)) {
				panic(fmt.Sprintf("karma: borrow_from_poor exhausted all donors with demand=%d remaining", demand))
			}
		}

		for idx < last && int64(donorCands[idx].credits) == currC {
			h.Push(donorCands[idx].id, donorCands[idx].surplus)
			idx++
		}
		nextC = int64(donorCands[idx].credits)

		if demand < int64(h.Len()) {
			for i := int64(0); i < demand; i++ {
				id, v := h.Pop()
				a.table.tenants[id].rate += a.surplusOf(id, fs) - v + 1
			}
			demand = 0
		} else {
			alpha := minI64(h.Min(), demand/int64(h.Len()))
			alpha = minI64(alpha, nextC-currC)
			h.BroadcastAdd(-alpha)
			currC += alpha
			demand -= int64(h.Len()) * alpha
		}

		for !h.Empty() && h.Min() == 0 {
			id, _ := h.Pop()
			a.table.tenants[id].rate += a.surplusOf(id, fs)
		}
	}

	for !h.Empty() {
		id, v := h.Pop()
		a.table.tenants[id].rate += a.surplusOf(id, fs) - v
	}
}

// donateToRich handles the case where donor surplus falls short of
// credit-bounded borrower demand: every donor lends its entire
// surplus, and the shortfall is spread across borrowers starting with
// the richest (highest credits first).
func (a *Allocator) donateToRich(supplyAcc uint64, donors, borrowers []uint32, fs uint32) {
	for _, id := range donors {
		a.table.tenants[id].rate += a.surplusOf(id, fs)
	}

	borrowerCands := make([]borrowerCandidate, 0, len(borrowers))
	for _, id := range borrowers {
		t := a.table.tenants[id]
		borrowerCands = append(borrowerCands, borrowerCandidate{
			id:      id,
			credits: int64(t.credits),
			request: a.requestOf(id, fs),
		})
	}
	borrowerCands = sortBorrowers(borrowerCands)
	last := len(borrowerCands) - 1 // index of the DummyID sentinel

	idx := 0
	currC := int64(math.MaxInt32)
	nextC := borrowerCands[0].credits
	h := NewBroadcastHeap()
	supply := int64(supplyAcc)

	for supply > 0 {
		if h.Empty() {
			currC = nextC
			if currC <= -1 {
				panic(fmt.Sprintf("karma: donate_to_rich exhausted all borrowers with supply=%d remaining", supply))
			}
		}

		for idx < last && borrowerCands[idx].credits == currC {
			h.Push(borrowerCands[idx].id, borrowerCands[idx].request)
			idx++
		}
		nextC = borrowerCands[idx].credits

		if supply < int64(h.Len()) {
			for i := int64(0); i < supply; i++ {
				id, v := h.Pop()
				delta := a.requestOf(id, fs) - v + 1
				a.table.tenants[id].allocation += uint32(delta)
				a.table.tenants[id].rate -= delta
			}
			supply = 0
		} else {
			alpha := minI64(h.Min(), supply/int64(h.Len()))
			h.BroadcastAdd(-alpha)
			currC -= alpha
			supply -= int64(h.Len()) * alpha
		}

		for !h.Empty() && h.Min() == 0 {
			id, _ := h.Pop()
			delta := a.requestOf(id, fs)
			a.table.tenants[id].allocation += uint32(delta)
			a.table.tenants[id].rate -= delta
		}
	}

	for !h.Empty() {
		id, v := h.Pop()
		delta := a.requestOf(id, fs) - v
		a.table.tenants[id].allocation += uint32(delta)
		a.table.tenants[id].rate -= delta
	}
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
