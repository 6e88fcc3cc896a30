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
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/SergioCKS/k-crdt/counter"
	"github.com/SergioCKS/k-crdt/uid"
)

var counterDemoNodesFlag int
var counterDemoIncrementsFlag int

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Exercise GCounter/PNCounter locally",
}

var counterDemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Simulate several nodes incrementing a GCounter and print the merged per-node table",
	RunE: func(_ *cobra.Command, _ []string) error {
		ConfigureVerbosity()
		ids := make([]uid.UID, counterDemoNodesFlag)
		counters := make([]*counter.GCounter, counterDemoNodesFlag)
		for i := range ids {
			id, err := uid.New()
			if err != nil {
				return fmt.Errorf("generating node id: %w", err)
			}
			ids[i] = id
			counters[i] = counter.NewGCounter(id)
			for j := 0; j < counterDemoIncrementsFlag; j++ {
				counters[i].Increment(id)
			}
		}

		merged := counter.NewGCounter()
		for _, c := range counters {
			merged.MergeFromState(c)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"node", "count"})
		for _, id := range ids {
			table.Append([]string{id.String(), fmt.Sprintf("%d", merged.Count(id))})
		}
		table.Render()
		fmt.Printf("total value: %d\n", merged.Value())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(counterCmd)
	counterCmd.AddCommand(counterDemoCmd)
	counterDemoCmd.Flags().IntVarP(&counterDemoNodesFlag, "nodes", "n", 3, "number of simulated nodes")
	counterDemoCmd.Flags().IntVarP(&counterDemoIncrementsFlag, "increments", "i", 100, "increments per node")
}
