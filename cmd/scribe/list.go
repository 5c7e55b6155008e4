package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
)

var (
	listJSON bool
	listLong bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := scribe.New(backendOptions()...)
		if err != nil {
			fatal("Error initializing document store", err)
		}

		ctx := context.Background()
		names, err := svc.ListDocuments(ctx)
		if err != nil {
			fatal("Error listing documents", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(names); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		if !listLong {
			t.AppendHeader(table.Row{"Name"})
			for _, name := range names {
				t.AppendRow(table.Row{name})
			}
			t.Render()
			return
		}

		t.AppendHeader(table.Row{"Name", "Font", "Size", "Theme", "Chars"})
		for _, name := range names {
			doc, err := svc.GetDocument(ctx, name)
			if err != nil {
				t.AppendRow(table.Row{name, "-", "-", "-", err.Error()})
				continue
			}
			t.AppendRow(table.Row{doc.Name, doc.Font, doc.FontSize, doc.Theme, len([]rune(doc.Text))})
		}
		t.Render()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "Load each document and show its settings")
}
