package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
)

var (
	loadJSON bool
)

var loadCmd = &cobra.Command{
	Use:   "load [name]",
	Short: "Load a document",
	Long:  `Load a document by name. Prints the text by default, or the full document with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := scribe.New(backendOptions()...)
		if err != nil {
			fatal("Error initializing document store", err)
		}

		doc, err := svc.GetDocument(context.Background(), args[0])
		if err != nil {
			fatal("Error loading document", err)
		}

		if loadJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(doc); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		fmt.Print(doc.Text)
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().BoolVar(&loadJSON, "json", false, "Output in JSON format")
}
