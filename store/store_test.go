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

package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/SergioCKS/k-crdt/register"
	"github.com/SergioCKS/k-crdt/timestamp"
	"github.com/SergioCKS/k-crdt/uid"
)

func mustUID(t *testing.T) uid.UID {
	t.Helper()
	id, err := uid.New()
	require.NoError(t, err)
	return id
}

func TestPutGet(t *testing.T) {
	nodeID := mustUID(t)
	s := NewStore[bool](nodeID, register.BoolCodec{}, 0)

	regID := mustUID(t)
	r := register.New(timestamp.New(1, 0, 0), true)
	s.Put(regID, r)

	got, ok := s.Get(regID)
	require.True(t, ok)
	require.Equal(t, true, got.Value())
}

func TestGetMissing(t *testing.T) {
	s := NewStore[bool](mustUID(t), register.BoolCodec{}, 4)
	_, ok := s.Get(mustUID(t))
	require.False(t, ok)
}

func TestMergeIncomingCreatesWhenAbsent(t *testing.T) {
	s := NewStore[bool](mustUID(t), register.BoolCodec{}, 4)
	regID := mustUID(t)
	peer := mustUID(t)

	incoming := register.New(timestamp.New(5, 0, 0), true)
	s.MergeIncoming(regID, incoming, peer)

	got, ok := s.Get(regID)
	require.True(t, ok)
	require.Equal(t, true, got.Value())
}

func TestMergeIncomingAdoptsLaterTimestamp(t *testing.T) {
	nodeID := mustUID(t)
	peer := mustUID(t)
	s := NewStore[bool](nodeID, register.BoolCodec{}, 4)
	regID := mustUID(t)

	s.Put(regID, register.New(timestamp.New(1, 0, 0), false))
	s.MergeIncoming(regID, register.New(timestamp.New(2, 0, 0), true), peer)

	got, ok := s.Get(regID)
	require.True(t, ok)
	require.Equal(t, true, got.Value())
	require.Equal(t, timestamp.New(2, 0, 0), got.Timestamp())
}

func TestLenAcrossShards(t *testing.T) {
	s := NewStore[bool](mustUID(t), register.BoolCodec{}, 8)
	for i := 0; i < 50; i++ {
		s.Put(mustUID(t), register.New(timestamp.New(uint32(i), 0, 0), i%2 == 0))
	}
	require.Equal(t, 50, s.Len())
}

func TestConcurrentPutIsShardSafe(t *testing.T) {
	s := NewStore[bool](mustUID(t), register.BoolCodec{}, 8)
	var g errgroup.Group
	for i := 0; i < 100; i++ {
		i := i
		g.Go(func() error {
			id, err := uid.New()
			if err != nil {
				return err
			}
			s.Put(id, register.New(timestamp.New(uint32(i), 0, 0), true))
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, 100, s.Len())
}
