/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notargets/gofem2d/readfiles"
	"github.com/notargets/gofem2d/types"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <problem.inp> [problem.json]",
	Short: "Converts a legacy .inp problem file to JSON or YAML",
	Long: `
Reads a problem in the .inp format and writes the same problem as JSON, or as
YAML when the output name ends in .yaml or .yml. The default output name is the
input name with a .json extension.

gofem2d convert problem.inp [problem.json]`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var outputFile string
		if len(args) > 1 {
			outputFile = args[1]
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		written, err := ConvertInp(args[0], outputFile, verbose)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("Problem written to %s\n", written)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().BoolP("verbose", "v", false, "print the problem as read")
}

// ConvertInp rewrites an .inp problem file in the format named by the
// extension of outputFile, returning the name written
func ConvertInp(inputFile, outputFile string, verbose bool) (written string, err error) {
	var (
		data []byte
	)
	ip, err := readfiles.ReadInpFile(inputFile, verbose)
	if err != nil {
		return
	}
	if err = ip.Validate(); err != nil {
		return
	}
	if verbose {
		ip.Print()
	}
	if written = outputFile; written == "" {
		written = strings.TrimSuffix(inputFile, filepath.Ext(inputFile)) + ".json"
	}
	switch strings.ToLower(filepath.Ext(written)) {
	case ".yaml", ".yml":
		data, err = ip.Marshal(false)
	default:
		data, err = ip.Marshal(true)
	}
	if err != nil {
		return "", fmt.Errorf("encoding problem: %w", err)
	}
	if err = os.WriteFile(written, data, 0644); err != nil {
		return "", types.NewInputError("unable to write problem file %s: %v", written, err)
	}
	return
}
