package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
)

var (
	playPoll time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play [path]",
	Short: "Play an audio file with the platform player",
	Long: `Start the platform player for the given file and wait until it finishes.
Interrupting the command stops playback.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return validatePoll(playPoll)
	},
	Run: func(cmd *cobra.Command, args []string) {
		player := scribe.NewAudio(backendOptions()...)
		defer player.Close()

		if err := player.Play(args[0]); err != nil {
			fatal("Error starting playback", err)
		}
		fmt.Fprintf(os.Stderr, "Playing %s (Ctrl+C to stop)\n", args[0])

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ticker := time.NewTicker(playPoll)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				fmt.Fprintln(os.Stderr, "Playback stopped.")
				return
			case <-ticker.C:
				if !player.IsPlaying() {
					return
				}
			}
		}
	},
}

// validatePoll rejects intervals time.NewTicker would panic on.
func validatePoll(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("--poll must be positive, got %s", d)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().DurationVar(&playPoll, "poll", 250*time.Millisecond, "How often to check whether the player is still running")
}
