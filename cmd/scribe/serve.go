package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/pkg/dispatch"
)

const lockFileName = ".scribe.lock"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer front-end commands over stdin/stdout",
	Long: `Serve reads newline-delimited JSON requests on stdin and writes one JSON
response per line on stdout:

  {"id":"1","cmd":"load_file","args":{"name":"draft"}}
  {"id":"1","ok":true,"result":{"name":"draft",...}}

Only one backend may serve a storage folder at a time. Audio playback is
stopped when the stream ends or the process is interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := backendOptions()
		logger := slog.Default()

		svc, err := scribe.New(opts...)
		if err != nil {
			return fmt.Errorf("initialize document store: %w", err)
		}
		dir, err := svc.UserFolder(cmd.Context())
		if err != nil {
			return err
		}

		lockPath := filepath.Join(dir, lockFileName)
		lock := flock.New(lockPath)
		ok, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return fmt.Errorf("another scribe backend is serving %s", dir)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn("failed to release lock", "path", lockPath, "error", err)
			}
		}()

		player := scribe.NewAudio(opts...)
		defer player.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d := dispatch.New(svc, player, logger)
		logger.Info("backend serving", "path", dir, "player", player.Player().Command)

		errc := make(chan error, 1)
		go func() {
			errc <- d.Serve(ctx, os.Stdin, os.Stdout)
		}()

		select {
		case <-ctx.Done():
			logger.Info("backend interrupted")
			return nil
		case err := <-errc:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info("backend input closed")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
