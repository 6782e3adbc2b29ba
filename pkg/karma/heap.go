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

import "container/heap"

// broadcastItem is a single (id, value) entry tracked by a BroadcastHeap.
// The value stored here is internal: the externally visible value is
// value+offset, where offset lives on the owning heap.
type broadcastItem struct {
	id    uint32
	value int64
	index int
}

// broadcastItems is the container/heap.Interface backing a BroadcastHeap.
// Ties between equal values are broken on id, so heap order (and therefore
// pop order) is a deterministic function of the input.
type broadcastItems []*broadcastItem

var _ heap.Interface = &broadcastItems{}

func (h broadcastItems) Len() int { return len(h) }

func (h broadcastItems) Less(i, j int) bool {
	if h[i].value != h[j].value {
		return h[i].value < h[j].value
	}
	return h[i].id < h[j].id
}

func (h broadcastItems) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *broadcastItems) Push(x interface{}) {
	it := x.(*broadcastItem)
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *broadcastItems) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

// BroadcastHeap is a min-heap of (id, value) pairs that additionally
// supports BroadcastAdd, a shift applied to every stored value in
// amortized O(1) by maintaining a single lazy offset instead of touching
// every element.
//
// All stored values are interpreted externally as value+offset; Push
// compensates for the current offset so the externally visible value at
// insertion time is exactly what the caller passed in.
type BroadcastHeap struct {
	items  broadcastItems
	offset int64
}

// NewBroadcastHeap returns an empty BroadcastHeap.
func NewBroadcastHeap() *BroadcastHeap {
	return &BroadcastHeap{}
}

// Push inserts id with external value v.
func (h *BroadcastHeap) Push(id uint32, v int64) {
	heap.Push(&h.items, &broadcastItem{id: id, value: v - h.offset})
}

// Min returns the smallest external value currently stored. It is only
// defined when the heap is non-empty.
func (h *BroadcastHeap) Min() int64 {
	return h.items[0].value + h.offset
}

// Pop removes and returns the id and external value of the smallest
// element.
func (h *BroadcastHeap) Pop() (uint32, int64) {
	it := heap.Pop(&h.items).(*broadcastItem)
	return it.id, it.value + h.offset
}

// Len returns the number of stored elements.
func (h *BroadcastHeap) Len() int {
	return len(h.items)
}

// Empty reports whether the heap holds no elements.
func (h *BroadcastHeap) Empty() bool {
	return len(h.items) == 0
}

// BroadcastAdd shifts the external value of every stored element by
// delta, in O(1), by adjusting the heap's lazy offset.
func (h *BroadcastHeap) BroadcastAdd(delta int64) {
	h.offset += delta
}
