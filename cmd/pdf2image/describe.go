// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2image/internal/node"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the node descriptor and its parameters",
	Long: `Describe prints the descriptor the PDF to Image node registers with a
workflow host: its name, version, inputs and outputs, and every parameter with
its type, default, bounds and display conditions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return writeDescription(os.Stdout, format)
	},
}

func init() {
	describeCmd.Flags().String("format", "json", "output format: json or yaml")

	rootCmd.AddCommand(describeCmd)
}

func writeDescription(w io.Writer, format string) error {
	desc := node.Description()
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(desc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(desc)
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}
