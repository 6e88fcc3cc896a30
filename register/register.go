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

// Package register implements LWWRegister[T], the Last-Write-Wins
// Register CRDT: a (Timestamp, value) pair whose merge semantics depend
// entirely on HLC timestamp ordering with a deterministic node-id
// tie-break (spec.md §4.4).
package register

import (
	"fmt"

	"github.com/SergioCKS/k-crdt/timestamp"
	"github.com/SergioCKS/k-crdt/uid"
	"github.com/SergioCKS/k-crdt/wire"
)

// LWWRegister is a (ts, value) pair. T is any value type with a fixed-size
// Codec (spec.md §3, "LWWRegister<T>"). The merge operation is agnostic of
// T: it only ever compares timestamps and tie-break node ids, then copies
// the other side's value wholesale.
type LWWRegister[T any] struct {
	ts    timestamp.Timestamp
	value T
}

// New creates a register with the given initial timestamp and value.
func New[T any](ts timestamp.Timestamp, value T) *LWWRegister[T] {
	return &LWWRegister[T]{ts: ts, value: value}
}

// Timestamp returns the register's current timestamp.
func (r *LWWRegister[T]) Timestamp() timestamp.Timestamp { return r.ts }

// Value returns the register's current value.
func (r *LWWRegister[T]) Value() T { return r.value }

// UpdateValue replaces the register's (ts, value) pair unconditionally.
// The caller is responsible for sourcing newTS from its own HLC so that
// newTS > r.Timestamp() — the HLC's monotonicity guarantees this in
// practice, so UpdateValue does not re-check it (spec.md §4.4).
func (r *LWWRegister[T]) UpdateValue(newTS timestamp.Timestamp, newValue T) {
	r.ts = newTS
	r.value = newValue
}

// Merge folds other into r using the standard LWW tie-break: if
// (r.ts, selfNID) < (other.ts, otherNID) lexicographically, r adopts
// other's (ts, value); otherwise r is left unchanged. This is
// commutative, associative and idempotent because it is exactly argmax by
// the total order on (Timestamp, UID) (spec.md §4.4, §8 property 7).
func (r *LWWRegister[T]) Merge(other *LWWRegister[T], selfNID, otherNID uid.UID) {
	if lessPair(r.ts, selfNID, other.ts, otherNID) {
		r.ts = other.ts
		r.value = other.value
	}
}

// lessPair compares (ts1, nid1) < (ts2, nid2) lexicographically: first by
// timestamp, then — only on a timestamp tie — by node id.
func lessPair(ts1 timestamp.Timestamp, nid1 uid.UID, ts2 timestamp.Timestamp, nid2 uid.UID) bool {
	switch ts1.Compare(ts2) {
	case -1:
		return true
	case 1:
		return false
	default:
		return nid1.Less(nid2)
	}
}

// Serialize encodes the register as 8-byte ts ‖ codec.Encode(value),
// per spec.md §6 ("register_serialize").
func (r *LWWRegister[T]) Serialize(codec wire.Codec[T]) []byte {
	out := make([]byte, 0, timestamp.Size+codec.Width())
	tb := r.ts.Bytes()
	out = append(out, tb[:]...)
	out = codec.Encode(out, r.value)
	return out
}

// DeserializeError wraps a register deserialization failure
// (spec.md §7, CodecError).
type DeserializeError struct {
	cause error
}

func (e *DeserializeError) Error() string { return fmt.Sprintf("register: decode failed: %v", e.cause) }
func (e *DeserializeError) Unwrap() error { return e.cause }

// Deserialize decodes a register from exactly timestamp.Size + codec.Width()
// bytes. Any short or over-long input is a fatal parse error, never a
// partial result (spec.md §4.8's failure semantics, applied here too).
func Deserialize[T any](b []byte, codec wire.Codec[T]) (*LWWRegister[T], error) {
	want := timestamp.Size + codec.Width()
	if len(b) != want {
		return nil, &DeserializeError{cause: fmt.Errorf("expected %d bytes, got %d", want, len(b))}
	}
	var tb [timestamp.Size]byte
	copy(tb[:], b[:timestamp.Size])
	ts := timestamp.FromBytes(tb)

	value, err := codec.Decode(b[timestamp.Size:])
	if err != nil {
		return nil, &DeserializeError{cause: err}
	}
	return &LWWRegister[T]{ts: ts, value: value}, nil
}
