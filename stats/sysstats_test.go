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

package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var expectedKeys = []string{
	"process.alive", "process.alive_since", "process.uptime",
	"process.cpu_permil", "process.rss", "process.vms", "process.num_threads",
	"runtime.goroutines", "runtime.mem.heap.alloc", "runtime.mem.heap.inuse",
	"runtime.mem.gc.count",
}

func TestSysStatsCollectRuntimeStats(t *testing.T) {
	s := SysStats{}
	collected, err := s.CollectRuntimeStats()
	require.NoError(t, err)

	keys := make([]string, 0, len(collected))
	for k := range collected {
		keys = append(keys, k)
	}
	require.ElementsMatch(t, expectedKeys, keys)
	require.Equal(t, uint64(1), collected["process.alive"])
}
