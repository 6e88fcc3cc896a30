/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package hlc implements the Hybrid Logical Clock: a stateful wrapper over
// a clock.Clock that hands out timestamps which are strictly monotonic in
// program order and bounded in how far they can be pulled ahead of
// physical time by a remote peer (spec.md §4.3).
package hlc

import (
	"fmt"
	"math"

	"github.com/SergioCKS/k-crdt/clock"
	"github.com/SergioCKS/k-crdt/timestamp"
	"github.com/SergioCKS/k-crdt/wire"
)

// OverflowError is HLCOverflow from spec.md §7: the logical counter would
// wrap past 255 within the same physical tick.
type OverflowError struct{}

func (OverflowError) Error() string { return "hlc: counter overflow" }

// DriftExceededError is HLCDriftExceeded from spec.md §7: UpdateWithTimestamp
// would move last_time more than MaxOffsetSeconds ahead of local physical
// time.
type DriftExceededError struct {
	DriftSeconds int64
}

func (e DriftExceededError) Error() string {
	return fmt.Sprintf("hlc: drift exceeded: %ds ahead of local clock (max %ds)", e.DriftSeconds, clock.MaxOffsetSeconds)
}

// HLC is the stateful Hybrid Logical Clock: last_time plus the Clock it
// polls. Every operation runs synchronously, never blocks, and performs at
// most one clock.PollTimeMs call (spec.md §5); an HLC is owned by a single
// goroutine unless the host wraps it in its own mutex.
type HLC struct {
	lastTime timestamp.Timestamp
	clock    clock.Clock
}

// New creates an HLC driving the given Clock, with last_time at the zero
// Timestamp.
func New(c clock.Clock) *HLC {
	return &HLC{clock: c}
}

// LastTime returns the current watermark: the largest timestamp this HLC
// has issued or observed.
func (h *HLC) LastTime() timestamp.Timestamp { return h.lastTime }

// GetOffsetMs returns the underlying clock's offset.
func (h *HLC) GetOffsetMs() int64 { return h.clock.GetOffsetMs() }

// SetOffsetMs sets the underlying clock's offset, saturating at
// ±clock.MaxOffsetMillis.
func (h *HLC) SetOffsetMs(ms int64) { h.clock.SetOffsetMs(ms) }

func pollTimestamp(c clock.Clock) timestamp.Timestamp {
	return timestamp.FromMs(c.PollTimeMs())
}

// GenerateTimestamp produces a causal-tick timestamp for a local event
// (spec.md §4.3):
//
//  1. pt = clock.PollTimeMs(), as a Timestamp with counter 0.
//  2. If pt.Time() > last_time.Time(): last_time = pt.
//  3. Else: last_time = Timestamp(last_time.Time(), last_time.Count()+1),
//     failing with OverflowError if the counter would wrap.
//
// The returned value is always the new last_time, which is guaranteed
// strictly greater than every timestamp previously returned by this HLC.
func (h *HLC) GenerateTimestamp() (timestamp.Timestamp, error) {
	pt := pollTimestamp(h.clock)

	if pt.Time() > h.lastTime.Time() {
		h.lastTime = pt
		return h.lastTime, nil
	}

	next, err := h.lastTime.IncreaseCounter()
	if err != nil {
		return h.lastTime, OverflowError{}
	}
	h.lastTime = next
	return h.lastTime, nil
}

// UpdateWithTimestamp merges a remote event's timestamp into local state,
// implementing the Kulkarni-Demirbas-Sakic HLC merge rule adapted to an
// 8-bit counter, with a drift guard (spec.md §4.3):
//
// Let local = clock.PollTimeMs(), l = last_time, m = msgTs.
//   - If local.Time() > l.Time() and local.Time() > m.Time(): last_time =
//     local (counter 0).
//   - Else if l.Time() == m.Time(): last_time = (l.Time(), max(l.Count(),
//     m.Count())+1).
//   - Else if l.Time() > m.Time(): last_time = (l.Time(), l.Count()+1).
//   - Else (m.Time() > l.Time()): last_time = (m.Time(), m.Count()+1).
//
// If the resulting last_time's seconds lead local's seconds by more than
// clock.MaxOffsetSeconds, the call fails with DriftExceededError and
// leaves state unchanged. If the counter would overflow, the call fails
// with OverflowError and leaves state unchanged.
func (h *HLC) UpdateWithTimestamp(msgTs timestamp.Timestamp) (timestamp.Timestamp, error) {
	local := pollTimestamp(h.clock)
	l, m := h.lastTime, msgTs

	var candidate timestamp.Timestamp
	var overflow bool

	switch {
	case local.Time() > l.Time() && local.Time() > m.Time():
		// Physical time has moved past both watermarks: reset the
		// counter, local time wins outright.
		candidate = timestamp.Timestamp(local.Time())
	case l.Time() == m.Time():
		maxCount := l.Count()
		if m.Count() > maxCount {
			maxCount = m.Count()
		}
		if maxCount == math.MaxUint8 {
			overflow = true
		} else {
			candidate = timestamp.Timestamp(l.Time() | uint64(maxCount+1))
		}
	case l.Time() > m.Time():
		if l.Count() == math.MaxUint8 {
			overflow = true
		} else {
			candidate = timestamp.Timestamp(l.Time() | uint64(l.Count()+1))
		}
	default: // m.Time() > l.Time()
		if m.Count() == math.MaxUint8 {
			overflow = true
		} else {
			candidate = timestamp.Timestamp(m.Time() | uint64(m.Count()+1))
		}
	}

	if overflow {
		return h.lastTime, OverflowError{}
	}

	driftSeconds := int64(candidate.Seconds()) - int64(local.Seconds())
	if driftSeconds > clock.MaxOffsetSeconds {
		return h.lastTime, DriftExceededError{DriftSeconds: driftSeconds}
	}

	h.lastTime = candidate
	return h.lastTime, nil
}

// PersistSize is the encoded size of a persisted HLC: offset (8 bytes,
// signed ms) followed by last_time (8 bytes), per spec.md §6.
const PersistSize = 16

// Serialize encodes the HLC as offset‖last_time, both big-endian, for
// host-side persistence.
func (h *HLC) Serialize() [PersistSize]byte {
	var b [PersistSize]byte
	wire.PutInt64(b[0:8], h.clock.GetOffsetMs())
	lt := h.lastTime.Bytes()
	copy(b[8:16], lt[:])
	return b
}

// Deserialize reconstructs an HLC state (offset + last_time) driving the
// given Clock. The clock's own offset is overwritten with the persisted
// value.
func Deserialize(b [PersistSize]byte, c clock.Clock) *HLC {
	offsetMs := wire.Int64(b[0:8])
	c.SetOffsetMs(offsetMs)

	var tb [timestamp.Size]byte
	copy(tb[:], b[8:16])

	return &HLC{
		lastTime: timestamp.FromBytes(tb),
		clock:    c,
	}
}
