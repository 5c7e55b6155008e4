package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Print the document storage folder",
	Long:  `Resolve the per-user storage folder, creating it if missing, and print its absolute path.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := scribe.UserFolder(backendOptions()...)
		if err != nil {
			fatal("Error resolving user folder", err)
		}
		fmt.Println(dir)
	},
}

func init() {
	rootCmd.AddCommand(folderCmd)
}
