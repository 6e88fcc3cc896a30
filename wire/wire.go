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

// Package wire holds the big-endian, fixed-size encode/decode primitives
// shared by every on-the-wire or on-disk layout in this module: Timestamp,
// UID, LWWRegister payloads and the RegisterMessage envelope.
package wire

import "encoding/binary"

// PutUint8 writes v into b[0]. Panics if b is empty.
func PutUint8(b []byte, v uint8) { b[0] = v }

// Uint8 reads b[0]. Panics if b is empty.
func Uint8(b []byte) uint8 { return b[0] }

// PutUint32 writes v into b[0:4], big-endian. Panics if len(b) < 4.
func PutUint32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }

// Uint32 reads b[0:4] as big-endian. Panics if len(b) < 4.
func Uint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }

// PutUint64 writes v into b[0:8], big-endian. Panics if len(b) < 8.
func PutUint64(b []byte, v uint64) { binary.BigEndian.PutUint64(b, v) }

// Uint64 reads b[0:8] as big-endian. Panics if len(b) < 8.
func Uint64(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

// PutInt64 writes v into b[0:8], big-endian two's complement. Panics if len(b) < 8.
func PutInt64(b []byte, v int64) { binary.BigEndian.PutUint64(b, uint64(v)) }

// Int64 reads b[0:8] as a big-endian two's complement signed integer. Panics if len(b) < 8.
func Int64(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) }

// Codec is the fixed-size encode/decode capability a LWWRegister or
// RegisterMessage payload type must provide. Width is constant for a given
// Codec instance: a decoder that reads a variable number of bytes cannot be
// a Codec, by design (spec.md §4.4, §4.8 require fixed-size-by-tag payloads).
type Codec[T any] interface {
	// Encode appends the wire form of v to dst and returns the result.
	Encode(dst []byte, v T) []byte
	// Decode reads a value from the front of b. b is guaranteed to be
	// exactly Width() bytes long by the caller.
	Decode(b []byte) (T, error)
	// Width is the fixed encoded size in bytes.
	Width() int
}
