// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cli

import (
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qcirlang/qcir/pkg/circuit"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect input_file",
	Short: "summarise a circuit's registers, layouts, and op counts",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := importFile(args[0])
		if err != nil {
			log.WithField("file", args[0]).Error(err)
			os.Exit(1)
		}
		if GetFlag(cmd, "json") {
			printJSON(c)
			return
		}
		printSummary(c)
	},
}

func init() {
	inspectCmd.Flags().Bool("json", false, "emit the summary as JSON")
	rootCmd.AddCommand(inspectCmd)
}

type summary struct {
	NQubits           int         `json:"nqubits"`
	NAncillae         int         `json:"nancillae"`
	NClassics         int         `json:"nclassics"`
	NOps              int         `json:"nops"`
	MaxControls       int         `json:"maxControls"`
	InitialLayout     map[int]int `json:"initialLayout"`
	OutputPermutation map[int]int `json:"outputPermutation"`
}

func toSummary(c *circuit.Circuit) summary {
	return summary{
		NQubits:           c.NQubits,
		NAncillae:         c.NAncillae,
		NClassics:         c.NClassics,
		NOps:              len(c.Ops),
		MaxControls:       c.MaxControls,
		InitialLayout:     c.InitialLayout,
		OutputPermutation: c.OutputPermutation,
	}
}

func printJSON(c *circuit.Circuit) {
	bytes, err := json.MarshalIndent(toSummary(c), "", "  ")
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	fmt.Println(string(bytes))
}

// printSummary prints a short human-readable report, using bold headers
// only when stdout is an actual terminal.
func printSummary(c *circuit.Circuit) {
	s := toSummary(c)
	bold := func(text string) string { return text }
	if term.IsTerminal(int(os.Stdout.Fd())) {
		bold = func(text string) string { return "\x1b[1m" + text + "\x1b[0m" }
	}
	fmt.Printf("%s %d\n", bold("qubits:"), s.NQubits)
	fmt.Printf("%s %d\n", bold("ancillae:"), s.NAncillae)
	fmt.Printf("%s %d\n", bold("classical bits:"), s.NClassics)
	fmt.Printf("%s %d\n", bold("operations:"), s.NOps)
	fmt.Printf("%s %d\n", bold("max controls:"), s.MaxControls)
}
