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

package cmd

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SergioCKS/k-crdt/config"
	"github.com/SergioCKS/k-crdt/stats"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Run a sharded register store as a long-lived process",
}

var storeServeMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Expose an empty Exporter's /metrics endpoint over HTTP (wiring point for a host embedding k-crdt)",
	RunE: func(_ *cobra.Command, _ []string) error {
		ConfigureVerbosity()
		cfg := config.Default()
		if p := ConfigPath(); p != "" {
			loaded, err := config.ReadConfig(p)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		exporter := stats.NewExporter()
		mux := http.NewServeMux()
		mux.Handle("/metrics", exporter.Handler())

		log.Infof("serving metrics on %s", cfg.MetricsListenAddr)
		return http.ListenAndServe(cfg.MetricsListenAddr, mux)
	},
}

func init() {
	RootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeServeMetricsCmd)
}
