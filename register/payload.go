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

package register

import (
	"fmt"

	"github.com/SergioCKS/k-crdt/wire"
)

// BoolCodec encodes bool as a single byte (spec.md §4.8's N=9 boolean
// register example): 0x00 for false, 0x01 for true. Any other byte value
// is rejected rather than silently truthy-coerced.
type BoolCodec struct{}

func (BoolCodec) Width() int { return 1 }

func (BoolCodec) Encode(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

func (BoolCodec) Decode(b []byte) (bool, error) {
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("register: invalid bool byte 0x%02x", b[0])
	}
}

// U32Codec encodes uint32 as 4 big-endian bytes.
type U32Codec struct{}

func (U32Codec) Width() int { return 4 }

func (U32Codec) Encode(dst []byte, v uint32) []byte {
	var b [4]byte
	wire.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

func (U32Codec) Decode(b []byte) (uint32, error) {
	return wire.Uint32(b), nil
}

// I64Codec encodes int64 as 8 big-endian two's complement bytes.
type I64Codec struct{}

func (I64Codec) Width() int { return 8 }

func (I64Codec) Encode(dst []byte, v int64) []byte {
	var b [8]byte
	wire.PutInt64(b[:], v)
	return append(dst, b[:]...)
}

func (I64Codec) Decode(b []byte) (int64, error) {
	return wire.Int64(b), nil
}

// BytesCodec encodes a fixed-length byte string of size N. It is the
// building block for host-defined payload types spec.md anticipates beyond
// bool/u32/i64 (spec.md §3, "LWWRegister<T> for any fixed-size T").
type BytesCodec struct {
	N int
}

func (c BytesCodec) Width() int { return c.N }

func (c BytesCodec) Encode(dst []byte, v []byte) []byte {
	if len(v) != c.N {
		panic(fmt.Sprintf("register: BytesCodec.Encode: value length %d != width %d", len(v), c.N))
	}
	return append(dst, v...)
}

func (c BytesCodec) Decode(b []byte) ([]byte, error) {
	if len(b) != c.N {
		return nil, fmt.Errorf("register: BytesCodec.Decode: input length %d != width %d", len(b), c.N)
	}
	out := make([]byte, c.N)
	copy(out, b)
	return out, nil
}
