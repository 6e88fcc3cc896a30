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

// Package vclock implements VClock, a GCounter viewed through a partial
// order instead of a scalar value: it tracks causal history across nodes
// rather than a numeric total (spec.md §4.6).
package vclock

import (
	"github.com/SergioCKS/k-crdt/counter"
	"github.com/SergioCKS/k-crdt/uid"
)

// Ordering is the result of comparing two VClocks.
type Ordering int

const (
	// Equal means every coordinate matches.
	Equal Ordering = iota
	// Less means a <= b coordinatewise, with at least one strict <.
	Less
	// Greater means a >= b coordinatewise, with at least one strict >.
	Greater
	// Concurrent means neither Less nor Greater holds: some coordinate of a
	// is strictly less and some other is strictly greater.
	Concurrent
)

func (o Ordering) String() string {
	switch o {
	case Equal:
		return "Equal"
	case Less:
		return "Less"
	case Greater:
		return "Greater"
	case Concurrent:
		return "Concurrent"
	default:
		return "Unknown"
	}
}

// VClock is a per-node logical counter, incremented by its own node on
// every local event and merged with a pointwise maximum on sync, exactly
// like counter.GCounter — the two types share a representation, and only
// their comparison semantics differ (spec.md §4.6).
type VClock struct {
	counter *counter.GCounter
}

// New returns an empty VClock, optionally seeding a 0 entry for
// initialNodeID.
func New(initialNodeID ...uid.UID) *VClock {
	return &VClock{counter: counter.NewGCounter(initialNodeID...)}
}

// Tick bumps nodeID's logical clock by 1, recording a local event.
func (v *VClock) Tick(nodeID uid.UID) { v.counter.Increment(nodeID) }

// Count returns nodeID's individual logical count (0 if absent).
func (v *VClock) Count(nodeID uid.UID) uint64 { return v.counter.Count(nodeID) }

// MergeFromState folds other's counts into v with a pointwise maximum,
// exactly as GCounter.MergeFromState.
func (v *VClock) MergeFromState(other *VClock) { v.counter.MergeFromState(other.counter) }

// Compare reports the partial-order relationship of v to other: it unions
// the two clocks' node ids (missing entries default to 0), and tracks
// whether any coordinate is strictly less and whether any is strictly
// greater. Both true means Concurrent; otherwise Less, Greater, or Equal
// (spec.md §4.6, §8 property 9).
func (v *VClock) Compare(other *VClock) Ordering {
	selfState := v.counter.State()
	otherState := other.counter.State()

	seen := make(map[uid.UID]struct{}, len(selfState)+len(otherState))
	var anyLess, anyGreater bool
	for id := range selfState {
		seen[id] = struct{}{}
	}
	for id := range otherState {
		seen[id] = struct{}{}
	}
	for id := range seen {
		a := selfState[id]
		b := otherState[id]
		switch {
		case a < b:
			anyLess = true
		case a > b:
			anyGreater = true
		}
	}

	switch {
	case anyLess && anyGreater:
		return Concurrent
	case anyLess:
		return Less
	case anyGreater:
		return Greater
	default:
		return Equal
	}
}
