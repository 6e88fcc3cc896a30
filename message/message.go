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

// Package message implements the RegisterMessage wire envelope: the
// fixed-layout frame that carries one LWWRegister update between replicas
// (spec.md §4.8).
package message

import (
	"fmt"

	"github.com/SergioCKS/k-crdt/timestamp"
	"github.com/SergioCKS/k-crdt/uid"
	"github.com/SergioCKS/k-crdt/wire"
)

// TypeTag identifies the payload's logical value type on the wire.
type TypeTag uint8

const (
	// TypeBool is the boolean register payload (8-byte ts + 1-byte value, N=9).
	TypeBool TypeTag = 0
	// TypeU32 is the uint32 register payload (8-byte ts + 4-byte value, N=12).
	TypeU32 TypeTag = 1
	// TypeI64 is the int64 register payload (8-byte ts + 8-byte value, N=16).
	TypeI64 TypeTag = 2
)

// payloadWidth returns the expected total payload width (register-encoded
// bytes, i.e. timestamp.Size + value width) for a known type tag.
func payloadWidth(tag TypeTag) (int, bool) {
	switch tag {
	case TypeBool:
		return timestamp.Size + 1, true
	case TypeU32:
		return timestamp.Size + 4, true
	case TypeI64:
		return timestamp.Size + 8, true
	default:
		return 0, false
	}
}

// metadataSize is the fixed header before the payload: ts(8) + sender(16) +
// register_id(16) + type_tag(1) = 41 bytes (spec.md §4.8).
const metadataSize = timestamp.Size + uid.Size + uid.Size + 1

// Message is a parsed RegisterMessage envelope.
type Message struct {
	Timestamp    timestamp.Timestamp
	SenderNodeID uid.UID
	RegisterID   uid.UID
	Tag          TypeTag
	Payload      []byte
}

// CodecErrorKind enumerates why Parse failed (spec.md §4.8/§7).
type CodecErrorKind int

const (
	// UnknownRegisterType means type_tag did not match a known payload decoder.
	UnknownRegisterType CodecErrorKind = iota
	// PayloadLengthMismatch means the trailing length did not match the
	// expected width for the message's type_tag.
	PayloadLengthMismatch
	// TruncatedInput means the input was shorter than the fixed metadata header.
	TruncatedInput
	// IncompatibleVersion means the peer that produced the frame declared a
	// wire-format version this build will not parse (see ParseWithPeerVersion).
	IncompatibleVersion
)

// CodecError is returned by Parse on any malformed input. Parse never
// returns a partial result: failure is always fatal (spec.md §4.8).
type CodecError struct {
	Kind   CodecErrorKind
	Detail string
}

func (e *CodecError) Error() string {
	switch e.Kind {
	case UnknownRegisterType:
		return fmt.Sprintf("message: unknown register type: %s", e.Detail)
	case PayloadLengthMismatch:
		return fmt.Sprintf("message: payload length mismatch: %s", e.Detail)
	case TruncatedInput:
		return fmt.Sprintf("message: truncated input: %s", e.Detail)
	case IncompatibleVersion:
		return fmt.Sprintf("message: incompatible peer version: %s", e.Detail)
	default:
		return fmt.Sprintf("message: codec error: %s", e.Detail)
	}
}

// Build encodes a RegisterMessage: ts(8) ‖ senderNodeID(16) ‖
// registerID(16) ‖ tag(1) ‖ payload(N), per spec.md §4.8's
// "message_build" operation. The caller is responsible for payload having
// already been produced by the matching register's Serialize.
func Build(senderNodeID, registerID uid.UID, ts timestamp.Timestamp, tag TypeTag, payload []byte) []byte {
	out := make([]byte, 0, metadataSize+len(payload))

	tb := ts.Bytes()
	out = append(out, tb[:]...)

	sb := senderNodeID.Bytes()
	out = append(out, sb[:]...)

	rb := registerID.Bytes()
	out = append(out, rb[:]...)

	out = append(out, byte(tag))
	out = append(out, payload...)
	return out
}

// Parse decodes a RegisterMessage frame, dispatching on type_tag to
// validate the payload's expected width. It never returns a partially
// decoded Message: any error means the returned Message is the zero value.
func Parse(b []byte) (Message, error) {
	if len(b) < metadataSize {
		return Message{}, &CodecError{Kind: TruncatedInput, Detail: fmt.Sprintf("need at least %d bytes, got %d", metadataSize, len(b))}
	}

	var tsBytes [timestamp.Size]byte
	copy(tsBytes[:], b[0:8])
	ts := timestamp.FromBytes(tsBytes)

	var senderBytes [uid.Size]byte
	copy(senderBytes[:], b[8:24])
	sender, err := uid.FromBytes(senderBytes)
	if err != nil {
		return Message{}, &CodecError{Kind: TruncatedInput, Detail: err.Error()}
	}

	var registerBytes [uid.Size]byte
	copy(registerBytes[:], b[24:40])
	registerID, err := uid.FromBytes(registerBytes)
	if err != nil {
		return Message{}, &CodecError{Kind: TruncatedInput, Detail: err.Error()}
	}

	tag := TypeTag(wire.Uint8(b[40:41]))
	wantWidth, known := payloadWidth(tag)
	if !known {
		return Message{}, &CodecError{Kind: UnknownRegisterType, Detail: fmt.Sprintf("tag %d", tag)}
	}

	gotWidth := len(b) - metadataSize
	if gotWidth != wantWidth {
		return Message{}, &CodecError{Kind: PayloadLengthMismatch, Detail: fmt.Sprintf("tag %d expects %d payload bytes, got %d", tag, wantWidth, gotWidth)}
	}

	payload := make([]byte, wantWidth)
	copy(payload, b[metadataSize:])

	return Message{
		Timestamp:    ts,
		SenderNodeID: sender,
		RegisterID:   registerID,
		Tag:          tag,
		Payload:      payload,
	}, nil
}

// ParseWithPeerVersion parses a frame the same way Parse does, but first
// rejects it if peerVersion (the wire-format version the sender declared,
// negotiated out-of-band since the fixed-layout frame itself carries no
// version byte) is incompatible with this build's Current version. A host
// that talks to peers running other builds calls this instead of Parse so
// a stale or newer-major peer is refused before its bytes are interpreted,
// rather than silently misparsed.
func ParseWithPeerVersion(b []byte, peerVersion Version) (Message, error) {
	if !Current().Compatible(peerVersion) {
		return Message{}, &CodecError{Kind: IncompatibleVersion, Detail: fmt.Sprintf("peer %s, local %s", peerVersion, Current())}
	}
	return Parse(b)
}
