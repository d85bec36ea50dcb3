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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert input_file output_file",
	Short: "convert a circuit between formats",
	Long: `Import a circuit using a parser selected by the input file's
extension (.qasm, .real, .tfc, .txt) and dump it using a printer selected
by the output file's extension (.qasm, .py).`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := importFile(args[0])
		if err != nil {
			log.WithField("file", args[0]).Error(err)
			os.Exit(1)
		}
		if GetFlag(cmd, "strip-idle") {
			if err := c.StripIdleQubits(true); err != nil {
				log.Error(err)
				os.Exit(1)
			}
		}
		if err := dumpFile(c, args[1]); err != nil {
			log.WithField("file", args[1]).Error(err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", args[1])
	},
}

func init() {
	convertCmd.Flags().Bool("strip-idle", false, "strip idle qubits before dumping")
	rootCmd.AddCommand(convertCmd)
}
