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

// Package timestamp implements the 64-bit HLC/NTP timestamp word:
//
//	| seconds (32) | sub-second fractions (24) | counter (8) |
//
// The whole 64-bit word is the total order used everywhere in this module;
// lexicographic byte order equals numeric order (spec.md §3).
package timestamp

import (
	"fmt"
	"math"
	"time"

	"github.com/SergioCKS/k-crdt/wire"
)

// FractionsMask covers the 24 fraction bits, bits 8-31 of the 64-bit word.
const FractionsMask = 0x0000_0000_FFFF_FF00

// fractionsMask32 is the same mask applied to a bare 32-bit NTP fraction
// field (used by FromMs and FromDuration, which compute fractions as a
// 32-bit value before passing them to New).
const fractionsMask32 = 0xFFFF_FF00

// UnixToNTPEpochOffset is the number of seconds between the NTP epoch
// (1900-01-01) and the UNIX epoch (1970-01-01). This Timestamp's "seconds"
// field is always UNIX-epoch-relative (spec.md §3); the constant is
// exposed only for a host bridging to RFC 5905 NTP wire packets, which
// count seconds from 1900, and is never applied internally
// (SPEC_FULL.md).
const UnixToNTPEpochOffset = 2_208_988_800

// Size is the encoded size of a Timestamp in bytes.
const Size = 8

// Timestamp is the 64-bit HLC/NTP word, ordered as an unsigned integer.
type Timestamp uint64

// CounterOverflowError is returned when IncreaseCounter would wrap the
// 8-bit counter past 255 without a physical-time advance (spec.md §7,
// TimestampCounterOverflow). The HLC is the only legitimate caller of
// IncreaseCounter and is responsible for avoiding this by advancing
// last_time's seconds/fractions first.
type CounterOverflowError struct{}

func (CounterOverflowError) Error() string { return "timestamp: counter overflow" }

// New composes a Timestamp from its seconds/fractions/counter fields, per
// spec.md §4.1: (seconds << 32) | (fractions & FractionsMask) | count.
func New(seconds uint32, fractions uint32, count uint8) Timestamp {
	return Timestamp(uint64(seconds)<<32 | uint64(fractions&FractionsMask) | uint64(count))
}

// FromDuration builds a Timestamp from a (seconds, nanoseconds) pair, as
// spec.md §3's "from_duration" conversion: seconds saturates at
// 2^32-1, fractions = round_up(nanos * 2^32 / 1e9) rounded up again to
// the top 24 bits (adding 1<<8 when any of the low 8 bits are set), with
// any carry out of the fraction field added into the next second (never
// into the counter, which stays 0).
func FromDuration(seconds uint64, nanos uint32) Timestamp {
	sec := seconds
	if sec > math.MaxUint32 {
		sec = math.MaxUint32
	}

	frac := uint64(math.Ceil(float64(nanos) * (1 << 32) / 1e9))
	if frac&0xFF != 0 {
		// Round up to the next 24-bit fraction unit so the counter bits
		// stay clear and the result never falls below the input.
		frac = (frac &^ 0xFF) + (1 << 8)
	}
	if frac >= (1 << 32) {
		// Rounding pushed us into the next second.
		frac -= 1 << 32
		if sec < math.MaxUint32 {
			sec++
		}
	}

	return New(uint32(sec), uint32(frac)&fractionsMask32, 0)
}

// FromMs builds a Timestamp from milliseconds since the UNIX epoch, as a
// floating point value (spec.md §4.1's "from_ms"): seconds = floor(ms/1000)
// saturating at u32::MAX, sub_ms = ms - 1000*seconds, fractions =
// ((sub_ms * 2^32/1000) as u32) & FractionsMask; counter = 0.
func FromMs(ms float64) Timestamp {
	if ms < 0 {
		ms = 0
	}
	secF := math.Floor(ms / 1000)
	var seconds uint32
	if secF > math.MaxUint32 {
		seconds = math.MaxUint32
	} else {
		seconds = uint32(secF)
	}
	subMs := ms - 1000*secF
	fractions := uint32(subMs*(1<<32)/1000) & fractionsMask32
	return New(seconds, fractions, 0)
}

// Seconds returns the 32-bit seconds field.
func (t Timestamp) Seconds() uint32 { return uint32(uint64(t) >> 32) }

// Fractions returns the 24 fraction bits (still positioned in bits 8-31,
// i.e. already masked and shifted as stored in the word).
func (t Timestamp) Fractions() uint32 { return uint32(uint64(t)) & FractionsMask }

// Count returns the 8-bit logical counter.
func (t Timestamp) Count() uint8 { return uint8(uint64(t)) }

// Time returns the (seconds, fractions) physical-time prefix as a single
// 56-bit-significant integer, ignoring the counter — i.e. t with its
// counter bits zeroed. Two timestamps sharing a Time differ only in their
// logical counter.
func (t Timestamp) Time() uint64 { return uint64(t) &^ 0xFF }

// Nanoseconds returns the fraction field converted to nanoseconds:
// fractions * 1e9 / 2^32.
func (t Timestamp) Nanoseconds() uint32 {
	return uint32(uint64(t.Fractions()) * 1e9 / (1 << 32))
}

// Duration returns the (seconds, nanoseconds) pair the physical-time
// prefix represents.
func (t Timestamp) Duration() (seconds uint32, nanoseconds uint32) {
	return t.Seconds(), t.Nanoseconds()
}

// IncreaseCounter returns t with its counter incremented by 1. It fails
// with CounterOverflowError if the counter would wrap past 255.
func (t Timestamp) IncreaseCounter() (Timestamp, error) {
	if t.Count() == math.MaxUint8 {
		return t, CounterOverflowError{}
	}
	return Timestamp(uint64(t) + 1), nil
}

// Add returns t+d as an unsigned 64-bit addition. Underflow/overflow past
// the 64-bit range is a programming error, per spec.md §4.1, and is not
// guarded here.
func (t Timestamp) Add(d uint64) Timestamp { return Timestamp(uint64(t) + d) }

// Sub returns t-d as an unsigned 64-bit subtraction. Underflow is a
// programming error, per spec.md §4.1, and is not guarded here.
func (t Timestamp) Sub(d uint64) Timestamp { return Timestamp(uint64(t) - d) }

// Compare returns -1, 0 or 1 if t is less than, equal to, or greater than
// u, by the total order on the underlying 64-bit unsigned integer.
func (t Timestamp) Compare(u Timestamp) int {
	switch {
	case t < u:
		return -1
	case t > u:
		return 1
	default:
		return 0
	}
}

// Less reports whether t < u.
func (t Timestamp) Less(u Timestamp) bool { return t < u }

// Bytes encodes t as 8 big-endian bytes.
func (t Timestamp) Bytes() [Size]byte {
	var b [Size]byte
	wire.PutUint64(b[:], uint64(t))
	return b
}

// FromBytes decodes t from its 8-byte big-endian encoding.
func FromBytes(b [Size]byte) Timestamp {
	return Timestamp(wire.Uint64(b[:]))
}

// String renders t as an RFC3339 timestamp with nanosecond precision
// (the logical counter is not representable in RFC3339 and is dropped).
func (t Timestamp) String() string {
	return time.Unix(int64(t.Seconds()), int64(t.Nanoseconds())).UTC().Format(time.RFC3339Nano)
}

// ParseError is returned by FromRFC3339 on malformed input
// (spec.md §7, TimestampParseError).
type ParseError struct {
	cause error
}

func (e *ParseError) Error() string { return fmt.Sprintf("timestamp: parse error: %v", e.cause) }
func (e *ParseError) Unwrap() error { return e.cause }

// FromRFC3339 parses an RFC3339 string into a Timestamp with counter 0.
func FromRFC3339(s string) (Timestamp, error) {
	tm, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, &ParseError{cause: err}
	}
	sec := tm.Unix()
	if sec < 0 {
		return 0, &ParseError{cause: fmt.Errorf("timestamp predates the UNIX epoch: %s", s)}
	}
	return FromDuration(uint64(sec), uint32(tm.Nanosecond())), nil
}
