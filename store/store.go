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

// Package store provides the external serialization spec.md §5 says a host
// must supply if it shares a CRDT instance across goroutines: the core
// register/counter/vclock packages hold no locks of their own. Store is a
// sharded map of LWWRegister instances, one mutex per shard, so concurrent
// access to different registers doesn't serialize on a single lock.
package store

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/SergioCKS/k-crdt/register"
	"github.com/SergioCKS/k-crdt/uid"
	"github.com/SergioCKS/k-crdt/wire"
)

// DefaultShardCount is used when NewStore is called without an explicit
// shard count.
const DefaultShardCount = 16

type shard[T any] struct {
	mu        sync.Mutex
	registers map[uid.UID]*register.LWWRegister[T]
}

// Store is a sharded, mutex-protected map of LWWRegister[T] instances
// keyed by register id. NodeID identifies this store's owning replica for
// Merge's tie-break.
type Store[T any] struct {
	codec  wire.Codec[T]
	nodeID uid.UID
	shards []*shard[T]
}

// NewStore returns a Store with shardCount shards (DefaultShardCount if <= 0).
// nodeID is this replica's own node id, used as the tie-break id on the
// local side of every Merge.
func NewStore[T any](nodeID uid.UID, codec wire.Codec[T], shardCount int) *Store[T] {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}
	shards := make([]*shard[T], shardCount)
	for i := range shards {
		shards[i] = &shard[T]{registers: make(map[uid.UID]*register.LWWRegister[T])}
	}
	return &Store[T]{codec: codec, nodeID: nodeID, shards: shards}
}

func (s *Store[T]) shardFor(id uid.UID) *shard[T] {
	b := id.Bytes()
	h := xxhash.Sum64(b[:])
	return s.shards[h%uint64(len(s.shards))]
}

// Put installs or replaces the register at id unconditionally.
func (s *Store[T]) Put(id uid.UID, r *register.LWWRegister[T]) {
	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.registers[id] = r
}

// Get returns the register at id and whether it exists.
func (s *Store[T]) Get(id uid.UID) (*register.LWWRegister[T], bool) {
	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	r, ok := sh.registers[id]
	return r, ok
}

// MergeIncoming merges incoming (tagged with peerNodeID) into the register
// at id, creating it from incoming if absent. It is the store-level
// counterpart of LWWRegister.Merge, adding the missing-key case a bare
// register has no way to express.
func (s *Store[T]) MergeIncoming(id uid.UID, incoming *register.LWWRegister[T], peerNodeID uid.UID) {
	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	existing, ok := sh.registers[id]
	if !ok {
		sh.registers[id] = register.New(incoming.Timestamp(), incoming.Value())
		return
	}
	existing.Merge(incoming, s.nodeID, peerNodeID)
}

// Len returns the total number of registers across all shards.
func (s *Store[T]) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		total += len(sh.registers)
		sh.mu.Unlock()
	}
	return total
}

// Codec returns the codec this store uses to serialize its registers'
// values, so a caller building RegisterMessage frames doesn't need to
// track it separately.
func (s *Store[T]) Codec() wire.Codec[T] { return s.codec }
