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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBroadcastHeapOrdersBySmallestValue(t *testing.T) {
	h := NewBroadcastHeap()
	h.Push(3, 30)
	h.Push(1, 10)
	h.Push(2, 20)

	require.Equal(t, int64(10), h.Min())

	id, v := h.Pop()
	require.Equal(t, uint32(1), id)
	require.Equal(t, int64(10), v)

	id, v = h.Pop()
	require.Equal(t, uint32(2), id)
	require.Equal(t, int64(20), v)

	id, v = h.Pop()
	require.Equal(t, uint32(3), id)
	require.Equal(t, int64(30), v)

	require.True(t, h.Empty())
}

func TestBroadcastHeapTieBreaksOnID(t *testing.T) {
	h := NewBroadcastHeap()
	h.Push(5, 10)
	h.Push(2, 10)
	h.Push(8, 10)

	id, _ := h.Pop()
	require.Equal(t, uint32(2), id)
	id, _ = h.Pop()
	require.Equal(t, uint32(5), id)
	id, _ = h.Pop()
	require.Equal(t, uint32(8), id)
}

func TestBroadcastAddShiftsEveryElement(t *testing.T) {
	h := NewBroadcastHeap()
	h.Push(1, 10)
	h.Push(2, 20)
	h.Push(3, 30)

	h.BroadcastAdd(-5)
	require.Equal(t, int64(5), h.Min())

	h.BroadcastAdd(2)
	require.Equal(t, int64(7), h.Min())

	id, v := h.Pop()
	require.Equal(t, uint32(1), id)
	require.Equal(t, int64(7), v)

	id, v = h.Pop()
	require.Equal(t, uint32(2), id)
	require.Equal(t, int64(17), v)

	id, v = h.Pop()
	require.Equal(t, uint32(3), id)
	require.Equal(t, int64(27), v)
}

func TestBroadcastHeapPushAfterBroadcastAddKeepsExternalValue(t *testing.T) {
	h := NewBroadcastHeap()
	h.Push(1, 10)
	h.BroadcastAdd(100)

	h.Push(2, 5)
	require.Equal(t, int64(5), h.Min())

	id, v := h.Pop()
	require.Equal(t, uint32(2), id)
	require.Equal(t, int64(5), v)

	id, v = h.Pop()
	require.Equal(t, uint32(1), id)
	require.Equal(t, int64(110), v)
}

func TestBroadcastHeapLenAndEmpty(t *testing.T) {
	h := NewBroadcastHeap()
	require.True(t, h.Empty())
	require.Equal(t, 0, h.Len())

	h.Push(1, 1)
	require.False(t, h.Empty())
	require.Equal(t, 1, h.Len())
}
