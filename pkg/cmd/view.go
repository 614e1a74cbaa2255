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
	"golang.org/x/term"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/setools/go-setools/pkg/catalog"
	"github.com/setools/go-setools/pkg/expr"
	"github.com/setools/go-setools/pkg/util/termio"
)

var viewCmd = &cobra.Command{
	Use:   "view [flags] catalog_file",
	Short: "Summarize the columns of a catalog.",
	Long: `Print one line per column of a catalog: its name, storage form, per row
	 width and a summary (range and mean for numbers, an example value for
	 strings).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		src := readCatalogFile(args[0])
		//
		fmt.Printf("%d rows\n", src.Catalog.Height())
		printColumns(src.Catalog)
	},
}

// printColumns renders one summary row per column, clipped to the terminal
// width when stdout is one.
func printColumns(cat *catalog.Catalog) {
	var (
		columns = cat.Columns()
		table   = termio.NewTablePrinter(4, uint(len(columns)+1))
		bold    = termio.BoldAnsiEscape().Build()
	)
	//
	table.SetRow(0, "column", "form", "width", "summary")
	//
	for col := uint(0); col < 4; col++ {
		table.SetEscape(col, 0, bold)
	}
	//
	for i, col := range columns {
		table.SetRow(uint(i+1), col.Name(), col.Form(),
			fmt.Sprintf("%d", col.Width()), columnSummary(col))
	}
	//
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			table.SetMaxWidths(uint(width) / 4)
		}
	} else {
		table.AnsiEscapes(false)
	}
	//
	table.Print()
}

// columnSummary renders the range and mean of a numeric column, or an example
// value of a string column.
func columnSummary(col *catalog.Column) string {
	if col.IsString() {
		if col.Height() == 0 {
			return "empty"
		}
		//
		return fmt.Sprintf("e.g. %q", col.Strings()[0])
	}
	//
	xs := col.Floats()
	if len(xs) == 0 {
		return "empty"
	}
	//
	return fmt.Sprintf("min %s, max %s, mean %s",
		expr.FormatFloat(floats.Min(xs)),
		expr.FormatFloat(floats.Max(xs)),
		expr.FormatFloat(stat.Mean(xs, nil)))
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
