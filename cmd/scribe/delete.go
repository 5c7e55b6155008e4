package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a document",
	Long:  `Delete permanently removes the document file from the storage folder.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := scribe.New(backendOptions()...)
		if err != nil {
			fatal("Error initializing document store", err)
		}

		msg, err := svc.DeleteDocument(context.Background(), args[0])
		if err != nil {
			fatal("Error deleting document", err)
		}
		fmt.Println(msg)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
