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
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SergioCKS/k-crdt/clock"
	"github.com/SergioCKS/k-crdt/hlc"
)

var hlcTickCountFlag int

var hlcCmd = &cobra.Command{
	Use:   "hlc",
	Short: "Drive a local Hybrid Logical Clock",
}

var hlcTickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Generate one or more HLC timestamps off the system clock and print them",
	RunE: func(_ *cobra.Command, _ []string) error {
		ConfigureVerbosity()
		h := hlc.New(clock.NewSystem())
		for i := 0; i < hlcTickCountFlag; i++ {
			ts, err := h.GenerateTimestamp()
			if err != nil {
				log.Errorf("hlc tick failed: %v", err)
				return err
			}
			fmt.Printf("%d\tseconds=%d fractions=%d counter=%d\n", uint64(ts), ts.Seconds(), ts.Fractions(), ts.Count())
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(hlcCmd)
	hlcCmd.AddCommand(hlcTickCmd)
	hlcTickCmd.Flags().IntVarP(&hlcTickCountFlag, "count", "n", 1, "number of timestamps to generate")
}
