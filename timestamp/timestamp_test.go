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

package timestamp

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFieldAccessors(t *testing.T) {
	ts := New(100, 0x00ABCD00, 7)
	require.Equal(t, uint32(100), ts.Seconds())
	require.Equal(t, uint32(0x00ABCD00), ts.Fractions())
	require.Equal(t, uint8(7), ts.Count())
}

func TestByteRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		ts := Timestamp(r.Uint64())
		b := ts.Bytes()
		require.Len(t, b, Size)
		require.Equal(t, ts, FromBytes(b))
	}
}

func TestFractionsMaskZerosCounterBits(t *testing.T) {
	ts := New(0, 0xFFFFFFFF, 0xAB)
	require.Equal(t, uint32(FractionsMask), ts.Fractions())
	require.Equal(t, uint8(0xAB), ts.Count())
}

func TestResolutionWithin60ns(t *testing.T) {
	// spec.md §8 property 4: from_duration loses less than 60ns and never
	// goes negative.
	for _, nanos := range []uint32{0, 1, 999_999_999, 500_000_000, 123_456_789} {
		ts := FromDuration(1_700_000_000, nanos)
		_, gotNanos := ts.Duration()
		var lost int64
		if int64(gotNanos) >= int64(nanos) {
			lost = int64(gotNanos) - int64(nanos)
		} else {
			// carried into the next second
			lost = int64(gotNanos) + int64(1e9) - int64(nanos)
		}
		require.GreaterOrEqual(t, lost, int64(0))
		require.Less(t, lost, int64(60), "resolution loss must be under 60ns for nanos=%d", nanos)
	}
}

func TestSecondsSaturate(t *testing.T) {
	ts := FromDuration(math.MaxUint32+100, 0)
	require.Equal(t, uint32(math.MaxUint32), ts.Seconds())
}

func TestIncreaseCounter(t *testing.T) {
	ts := New(1, 0, 0)
	ts2, err := ts.IncreaseCounter()
	require.NoError(t, err)
	require.Equal(t, uint8(1), ts2.Count())

	maxed := New(1, 0, math.MaxUint8)
	_, err = maxed.IncreaseCounter()
	require.Error(t, err)
	require.ErrorIs(t, err, CounterOverflowError{})
}

func TestTotalOrder(t *testing.T) {
	a := New(1, 0, 0)
	b := New(1, 0, 1)
	c := New(2, 0, 0)
	require.True(t, a.Less(b))
	require.True(t, b.Less(c))
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, c.Compare(a))
	require.Equal(t, 0, a.Compare(a))
}

func TestRFC3339RoundTrip(t *testing.T) {
	s := "2024-01-15T10:30:00Z"
	ts, err := FromRFC3339(s)
	require.NoError(t, err)
	require.Equal(t, uint8(0), ts.Count())
	require.Contains(t, ts.String(), "2024-01-15T10:30:00")
}

func TestRFC3339ParseError(t *testing.T) {
	_, err := FromRFC3339("not-a-timestamp")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestFromMs(t *testing.T) {
	ts := FromMs(1500.5)
	require.Equal(t, uint32(1), ts.Seconds())
	require.Equal(t, uint8(0), ts.Count())
}
