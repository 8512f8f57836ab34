// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf2image/internal/pdfinfo"
)

var infoCmd = &cobra.Command{
	Use:   "info [pdfs...]",
	Short: "Print the page count of PDF files",
	Long: `Info reads each PDF and reports its page count and size without
rendering anything. Useful for choosing a --page-range.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var infos []pdfinfo.Info
	failed := 0
	for _, path := range args {
		info, err := pdfinfo.Inspect(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed: %s (%v)\n", path, err)
			failed++
			continue
		}
		infos = append(infos, info)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return err
		}
	} else if len(infos) > 0 {
		fmt.Fprintf(os.Stdout, "%-6s  %-10s  %s\n", "Pages", "Bytes", "File")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 60))
		for _, info := range infos {
			fmt.Fprintf(os.Stdout, "%-6d  %-10d  %s\n", info.Pages, info.Size, info.Path)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be read", failed)
	}
	return nil
}
