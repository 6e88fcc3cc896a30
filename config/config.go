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

// Package config reads crdtctl's node configuration file, following
// sptp/client/config.go's ReadConfig(path) (*Config, error) shape.
package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config is a node's local configuration: its own node id seed, the drift
// alert formula hlc.DriftMonitor should evaluate, and the metrics server
// settings for cmd/crdtctl's "store serve-metrics" subcommand.
type Config struct {
	NodeIDSeed         string        `yaml:"node_id_seed"`
	DriftAlertFormula  string        `yaml:"drift_alert_formula"`
	MetricsListenAddr  string        `yaml:"metrics_listen_addr"`
	MetricsScrapeEvery time.Duration `yaml:"metrics_scrape_every"`
	StoreShardCount    int           `yaml:"store_shard_count"`
}

// Default returns a Config with every field set to its documented default,
// matching the non-zero defaults ReadConfig seeds before unmarshaling.
func Default() *Config {
	return &Config{
		MetricsListenAddr:  ":9090",
		MetricsScrapeEvery: 10 * time.Second,
		StoreShardCount:    16,
	}
}

// ReadConfig reads and parses a YAML node config file, falling back to
// Default for any field the file doesn't set.
func ReadConfig(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return c, nil
}
