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

	"github.com/SergioCKS/k-crdt/uid"
)

var uidCmd = &cobra.Command{
	Use:   "uid",
	Short: "Inspect and generate 128-bit node/register identifiers",
}

var uidNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new random UID and print its string form",
	RunE: func(_ *cobra.Command, _ []string) error {
		ConfigureVerbosity()
		id, err := uid.New()
		if err != nil {
			return fmt.Errorf("generating uid: %w", err)
		}
		fmt.Println(id.String())
		return nil
	},
}

var uidParseCmd = &cobra.Command{
	Use:   "parse <string>",
	Short: "Parse a UID's string form and print its raw bytes in hex",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ConfigureVerbosity()
		id, err := uid.FromString(args[0])
		if err != nil {
			log.Errorf("invalid uid: %v", err)
			return err
		}
		b := id.Bytes()
		fmt.Printf("%x\n", b)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(uidCmd)
	uidCmd.AddCommand(uidNewCmd)
	uidCmd.AddCommand(uidParseCmd)
}
