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

package message

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// WireVersion is this build's RegisterMessage wire format version, exposed
// so a host can decide whether to accept or translate a frame produced by
// an older build — one of spec.md §9's Open Questions, resolved here by
// giving the codec an explicit, comparable version rather than an
// undocumented implicit one.
const WireVersion = "1.0.0"

// Version wraps a parsed semantic wire-format version, using
// hashicorp/go-version for comparison instead of raw string equality so a
// host can express "accept anything >= 1.0.0" policies.
type Version struct {
	v *goversion.Version
}

// ParseVersion parses s (e.g. "1.0.0") as a wire-format version.
func ParseVersion(s string) (Version, error) {
	v, err := goversion.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("message: invalid wire version %q: %w", s, err)
	}
	return Version{v: v}, nil
}

// Current returns this build's own WireVersion, parsed.
func Current() Version {
	v, err := ParseVersion(WireVersion)
	if err != nil {
		// WireVersion is a package constant under this package's own
		// control; a parse failure here would be a build-time bug, not a
		// runtime condition a caller can react to.
		panic(err)
	}
	return v
}

// Compare returns -1, 0, or 1 if v is less than, equal to, or greater than
// other.
func (v Version) Compare(other Version) int { return v.v.Compare(other.v) }

// Compatible reports whether a frame built with peer's version can be
// parsed by this build: peer must be the same major version and no newer
// than this build, following the usual semver compatibility convention.
func (v Version) Compatible(peer Version) bool {
	if v.v.Segments()[0] != peer.v.Segments()[0] {
		return false
	}
	return peer.Compare(v) <= 0
}

func (v Version) String() string { return v.v.String() }
