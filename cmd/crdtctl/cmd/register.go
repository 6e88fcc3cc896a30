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
	"encoding/hex"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/SergioCKS/k-crdt/register"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Inspect LWWRegister wire payloads",
}

var registerInspectCmd = &cobra.Command{
	Use:   "inspect <hex-bytes>",
	Short: "Decode a hex-encoded boolean register payload (8-byte ts + 1-byte bool) and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ConfigureVerbosity()
		raw, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("decoding hex payload: %w", err)
		}
		r, err := register.Deserialize[bool](raw, register.BoolCodec{})
		if err != nil {
			fmt.Println(color.RedString("[FAIL]"), err)
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"field", "value"})
		table.Append([]string{"timestamp", fmt.Sprintf("%d", uint64(r.Timestamp()))})
		table.Append([]string{"seconds", fmt.Sprintf("%d", r.Timestamp().Seconds())})
		table.Append([]string{"counter", fmt.Sprintf("%d", r.Timestamp().Count())})
		table.Append([]string{"value", fmt.Sprintf("%v", r.Value())})
		table.Render()
		return nil
	},
}

func init() {
	RootCmd.AddCommand(registerCmd)
	registerCmd.AddCommand(registerInspectCmd)
}
