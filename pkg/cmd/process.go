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
	"math/rand/v2"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/setools/go-setools/pkg/engine"
	"github.com/setools/go-setools/pkg/output"
)

var processCmd = &cobra.Command{
	Use:   "process [flags] catalog_file config_file",
	Short: "Run a selection configuration against a catalog.",
	Long: `Run a selection configuration against a catalog, writing every product
	 (masks, splits, derived catalogs, statistics, plot specifications) beneath
	 the output directory.  Catalogs are FITS binary tables, optionally gzipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		var opts engine.Options
		//
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		// A fixed seed makes random splits reproducible
		if cmd.Flags().Changed("seed") {
			seed := uint64(GetUint(cmd, "seed"))
			opts.Rand = rand.New(rand.NewPCG(seed, 0))
		}
		//
		outDir := GetString(cmd, "output")
		dryRun := GetFlag(cmd, "dry-run")
		// Parse inputs
		src := readCatalogFile(args[0])
		config := readConfigFile(args[1])
		// Build every product
		result, err := engine.Run(src.Catalog, config, opts)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		if dryRun {
			reportRun(result)
			return
		}
		//
		writer := output.NewWriter(outDir, output.RunNumber(args[0]), src)
		//
		if err := writer.WriteAll(result); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// reportRun summarizes every built product without writing anything.
func reportRun(result *engine.Result) {
	if result.Masks != nil {
		for _, mask := range result.Masks.Masks() {
			saved := ""
			if mask.NoSave {
				saved = " (not saved)"
			}
			//
			fmt.Printf("mask %s: %d rows%s\n", mask.Name, mask.Count(), saved)
		}
	}
	//
	for _, spec := range result.Plots {
		fmt.Printf("plot %s: %d parameters\n", spec.Name, len(spec.ParamNames()))
	}
	//
	for _, derived := range result.NewCats {
		fmt.Printf("new catalog %s: %d columns (%s)\n", derived.Name, len(derived.Keys), derived.Format)
	}
	//
	for _, split := range result.RandSplits {
		fmt.Printf("random split %s: %s %d rows, %s %d rows\n", split.Name,
			split.KeepLabel, len(split.Keep), split.DropLabel, len(split.Drop))
	}
	//
	for _, split := range result.FlagSplits {
		fmt.Printf("flag split %s: %d values of %s\n", split.Name, len(split.Parts), split.Column)
	}
	//
	for _, group := range result.Stats {
		fmt.Printf("statistics %s: %d entries\n", group.Name, len(group.Keys))
	}
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringP("output", "o", ".", "specify output directory.")
	processCmd.Flags().Uint("seed", 0, "fix the seed driving random splits.")
	processCmd.Flags().Bool("dry-run", false, "build every product but write nothing.")
}
