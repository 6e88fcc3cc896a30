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

// Package counter implements GCounter, the grow-only counter CRDT whose
// merge is a pointwise maximum over per-node counts, and PNCounter, a pair
// of GCounters giving increment/decrement semantics.
package counter

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/SergioCKS/k-crdt/uid"
)

// GCounter tracks a monotonically non-decreasing per-node count. Its zero
// value is ready to use (an empty counter with value 0).
type GCounter struct {
	counts map[uid.UID]uint64
}

// NewGCounter returns an empty GCounter, optionally seeding a 0 count for
// initialNodeID so the node appears in State() immediately (spec.md §4.5).
func NewGCounter(initialNodeID ...uid.UID) *GCounter {
	c := &GCounter{counts: make(map[uid.UID]uint64)}
	if len(initialNodeID) > 0 {
		c.counts[initialNodeID[0]] = 0
	}
	return c
}

// Increment bumps nodeID's count by 1, inserting a 0 entry first if absent.
func (c *GCounter) Increment(nodeID uid.UID) {
	if c.counts == nil {
		c.counts = make(map[uid.UID]uint64)
	}
	c.counts[nodeID]++
}

// Value returns the sum of all per-node counts.
func (c *GCounter) Value() uint64 {
	var total uint64
	for _, v := range c.counts {
		total += v
	}
	return total
}

// Count returns nodeID's individual count (0 if absent).
func (c *GCounter) Count(nodeID uid.UID) uint64 { return c.counts[nodeID] }

// MergeFromState folds other's per-node counts into c as a pointwise
// maximum: the semilattice join that makes GCounter a CRDT (spec.md §4.5,
// §8 property 8).
func (c *GCounter) MergeFromState(other *GCounter) {
	if c.counts == nil {
		c.counts = make(map[uid.UID]uint64)
	}
	for nodeID, v := range other.counts {
		if v > c.counts[nodeID] {
			c.counts[nodeID] = v
		}
	}
}

// State returns a defensive copy of the per-node counts, for callers that
// need to inspect or serialize the full state rather than just Value().
func (c *GCounter) State() map[uid.UID]uint64 {
	out := make(map[uid.UID]uint64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// String renders the counter as its total value plus a sorted per-node
// breakdown, useful for CLI inspection and log lines
// (SPEC_FULL.md supplemental feature, grounded on original_source/'s
// Display impl for its counter types).
func (c *GCounter) String() string {
	ids := make([]uid.UID, 0, len(c.counts))
	for id := range c.counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	var b strings.Builder
	fmt.Fprintf(&b, "GCounter{value=%d, nodes={", c.Value())
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s:%d", id, c.counts[id])
	}
	b.WriteString("}}")
	return b.String()
}

// widen converts a uint64 sum to int64 using signed widening, per spec.md
// §4.5's explicit instruction that PNCounter.Value() must avoid unsigned
// underflow: both operands are widened to a type wide enough to hold their
// difference before subtracting, rather than subtracting as uint64 first.
func widen[T constraints.Unsigned](v T) int64 { return int64(v) }

// PNCounter pairs a positive and negative GCounter to support both
// increment and decrement while remaining convergent (spec.md §4.5).
type PNCounter struct {
	positive *GCounter
	negative *GCounter
}

// NewPNCounter returns an empty PNCounter.
func NewPNCounter() *PNCounter {
	return &PNCounter{positive: NewGCounter(), negative: NewGCounter()}
}

// Increment bumps nodeID's positive count by 1.
func (c *PNCounter) Increment(nodeID uid.UID) { c.positive.Increment(nodeID) }

// Decrement bumps nodeID's negative count by 1.
func (c *PNCounter) Decrement(nodeID uid.UID) { c.negative.Increment(nodeID) }

// Value returns positive.Value() - negative.Value(), computed with signed
// widening so the result may legitimately go negative without underflow.
func (c *PNCounter) Value() int64 {
	return widen(c.positive.Value()) - widen(c.negative.Value())
}

// MergeFromState merges both the positive and negative sides of other into c.
func (c *PNCounter) MergeFromState(other *PNCounter) {
	c.positive.MergeFromState(other.positive)
	c.negative.MergeFromState(other.negative)
}

// String renders both sides and the net value.
func (c *PNCounter) String() string {
	return fmt.Sprintf("PNCounter{value=%d, positive=%s, negative=%s}", c.Value(), c.positive, c.negative)
}
