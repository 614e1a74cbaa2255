// Copyright the go-setools authors.
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
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/setools/go-setools/pkg/engine"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] config_file [catalog_file]",
	Short: "Check a selection configuration.",
	Long: `Check that a selection configuration parses.  Given a catalog, additionally
	 resolve every expression (including plot expressions) against its columns.
	 Nothing is written.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 && len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		config := readConfigFile(args[0])
		//
		if len(args) == 2 {
			src := readCatalogFile(args[1])
			//
			result, err := engine.Run(src.Catalog, config, engine.Options{})
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			// Plot expressions are otherwise left to the renderer
			if err := engine.CheckPlots(src.Catalog, result.Masks, result.Plots); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		}
		//
		fmt.Println("OK")
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
