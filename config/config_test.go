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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadConfigAppliesDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "node.yaml")
	content := "node_id_seed: \"test-seed\"\nmetrics_listen_addr: \":8123\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := ReadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "test-seed", c.NodeIDSeed)
	require.Equal(t, ":8123", c.MetricsListenAddr)
	require.Equal(t, 10*time.Second, c.MetricsScrapeEvery)
	require.Equal(t, 16, c.StoreShardCount)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig("/nonexistent/path/node.yaml")
	require.Error(t, err)
}
