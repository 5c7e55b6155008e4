package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/pkg/core"
)

var (
	saveText     string
	saveFont     string
	saveFontSize uint32
	saveTheme    string
)

var saveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save a document",
	Long: `Create or overwrite the document with the given name.
The text is taken from --text, or from stdin when --text is "-".`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text := saveText
		if text == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Error reading stdin", err)
			}
			text = string(data)
		}

		svc, err := scribe.New(backendOptions()...)
		if err != nil {
			fatal("Error initializing document store", err)
		}

		msg, err := svc.SaveDocument(context.Background(), core.WritingDocument{
			Name:     args[0],
			Text:     text,
			Font:     saveFont,
			FontSize: saveFontSize,
			Theme:    saveTheme,
		})
		if err != nil {
			fatal("Error saving document", err)
		}
		fmt.Println(msg)
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().StringVar(&saveText, "text", "", `Document text ("-" reads stdin)`)
	saveCmd.Flags().StringVar(&saveFont, "font", "Arial", "Font family")
	saveCmd.Flags().Uint32Var(&saveFontSize, "font-size", 12, "Font size in points")
	saveCmd.Flags().StringVar(&saveTheme, "theme", "light", "Editor theme")
}
