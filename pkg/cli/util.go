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
	"path"
	"strings"

	"github.com/qcirlang/qcir/pkg/circuit"
	"github.com/qcirlang/qcir/pkg/dump"
	"github.com/qcirlang/qcir/pkg/frontend/grcs"
	"github.com/qcirlang/qcir/pkg/frontend/qasm"
	"github.com/qcirlang/qcir/pkg/frontend/real"
	"github.com/qcirlang/qcir/pkg/frontend/tfc"
	"github.com/spf13/cobra"
)

// GetFlag reads an expected boolean flag, or exits with an error message.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// fileResolver resolves an `include "path"` relative to the directory of
// the file being imported.
func fileResolver(dir string) func(string) (string, error) {
	return func(name string) (string, error) {
		bytes, err := os.ReadFile(path.Join(dir, name))
		if err != nil {
			return "", err
		}
		return string(bytes), nil
	}
}

// importFile dispatches on file extension per §6.2 and §6.1.
func importFile(filename string) (*circuit.Circuit, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	source := string(bytes)
	ext := strings.ToLower(path.Ext(filename))

	switch ext {
	case ".qasm":
		f := qasm.New(filename, source, fileResolver(path.Dir(filename)))
		c, err := f.Import()
		if err != nil {
			return nil, err
		}
		qasm.LoadLayoutComments(c, source)
		return c, nil
	case ".real":
		return real.Import(source)
	case ".tfc":
		return tfc.Import(source)
	case ".txt":
		return grcs.Import(source)
	default:
		return nil, fmt.Errorf("unrecognised import extension %q", ext)
	}
}

// dumpFile dispatches on file extension per §6.2 and writes the rendered
// circuit to filename.
func dumpFile(c *circuit.Circuit, filename string) error {
	ext := strings.ToLower(path.Ext(filename))
	var text string
	switch ext {
	case ".qasm":
		text = dump.QASM(c)
	case ".py":
		text = dump.Python(c)
	default:
		return fmt.Errorf("unrecognised dump extension %q", ext)
	}
	return os.WriteFile(filename, []byte(text), 0o644)
}
