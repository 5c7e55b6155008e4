package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/pkg/audio"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the storage folder and audio player on this machine",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := backendOptions()
		healthy := true

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Check", "Status", "Detail"})

		dir, err := scribe.UserFolder(opts...)
		if err != nil {
			healthy = false
			t.AppendRow(table.Row{"storage", "FAIL", err.Error()})
		} else {
			t.AppendRow(table.Row{"storage", "OK", dir})
		}

		player := scribe.NewAudio(opts...).Player()
		status := audio.CheckPlayer(player)
		label := fmt.Sprintf("player (%s/%s)", runtime.GOOS, status.Name)
		if status.Available {
			t.AppendRow(table.Row{label, "OK", status.Detail})
		} else {
			healthy = false
			t.AppendRow(table.Row{label, "MISSING", status.Detail})
		}

		t.Render()
		if !healthy {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
