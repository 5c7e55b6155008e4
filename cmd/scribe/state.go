package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/pkg/dispatch"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the backend introspection state as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := backendOptions()
		svc, err := scribe.New(opts...)
		if err != nil {
			fatal("Error initializing document store", err)
		}
		player := scribe.NewAudio(opts...)
		defer player.Close()

		state, err := dispatch.New(svc, player, nil).Dispatch(context.Background(), dispatch.CmdBackendState, nil)
		if err != nil {
			fatal("Error reading state", err)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
