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

	"github.com/SergioCKS/k-crdt/clock"
	"github.com/SergioCKS/k-crdt/hlc"
	"github.com/SergioCKS/k-crdt/message"
	"github.com/SergioCKS/k-crdt/register"
	"github.com/SergioCKS/k-crdt/uid"
)

var messageBuildValueFlag bool
var messagePeerVersionFlag string

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Build and parse RegisterMessage wire envelopes",
}

var messageBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a boolean RegisterMessage off a fresh HLC tick and print it as hex",
	RunE: func(_ *cobra.Command, _ []string) error {
		ConfigureVerbosity()
		sender, err := uid.New()
		if err != nil {
			return fmt.Errorf("generating sender node id: %w", err)
		}
		registerID, err := uid.New()
		if err != nil {
			return fmt.Errorf("generating register id: %w", err)
		}

		h := hlc.New(clock.NewSystem())
		ts, err := h.GenerateTimestamp()
		if err != nil {
			return fmt.Errorf("generating timestamp: %w", err)
		}

		r := register.New(ts, messageBuildValueFlag)
		payload := r.Serialize(register.BoolCodec{})
		msg := message.Build(sender, registerID, ts, message.TypeBool, payload)

		fmt.Printf("wire-version\t%s\n", message.Current())
		fmt.Println(hex.EncodeToString(msg))
		return nil
	},
}

var messageParseCmd = &cobra.Command{
	Use:   "parse <hex-bytes>",
	Short: "Parse a hex-encoded RegisterMessage, refusing it if --peer-version is incompatible with this build",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ConfigureVerbosity()
		raw, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("decoding hex message: %w", err)
		}

		peerVersion, err := message.ParseVersion(messagePeerVersionFlag)
		if err != nil {
			return err
		}

		msg, err := message.ParseWithPeerVersion(raw, peerVersion)
		if err != nil {
			fmt.Println(color.RedString("[FAIL]"), err)
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"field", "value"})
		table.Append([]string{"peer-version", peerVersion.String()})
		table.Append([]string{"sender_node_id", msg.SenderNodeID.String()})
		table.Append([]string{"register_id", msg.RegisterID.String()})
		table.Append([]string{"type_tag", fmt.Sprintf("%d", msg.Tag)})
		table.Append([]string{"timestamp", fmt.Sprintf("%d", uint64(msg.Timestamp))})
		table.Append([]string{"payload", hex.EncodeToString(msg.Payload)})
		table.Render()
		return nil
	},
}

func init() {
	RootCmd.AddCommand(messageCmd)
	messageCmd.AddCommand(messageBuildCmd)
	messageCmd.AddCommand(messageParseCmd)
	messageBuildCmd.Flags().BoolVarP(&messageBuildValueFlag, "value", "b", true, "boolean value to encode")
	messageParseCmd.Flags().StringVar(&messagePeerVersionFlag, "peer-version", message.WireVersion, "wire-format version the sender declared")
}
