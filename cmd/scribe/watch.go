package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/pkg/adapters/lifecycle"
	"github.com/aretw0/scribe/pkg/core"
)

var (
	watchPattern string
	watchOnly    []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print document changes as they happen",
	Long:  `Watch the storage folder and print one line per created, modified or deleted document until interrupted.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		types, err := lifecycle.ParseEventTypes(watchOnly)
		if err != nil {
			fatal("Invalid --only", err)
		}

		svc, err := scribe.New(backendOptions()...)
		if err != nil {
			fatal("Error initializing document store", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runWatch(ctx, svc, watchPattern, types, os.Stdout, os.Stderr); err != nil {
			fatal("Error watching documents", err)
		}
	},
}

// runWatch prints one line per document change to out until ctx ends.
// Only events of the given types are printed; none means all.
func runWatch(ctx context.Context, svc *core.Service, pattern string, types []core.EventType, out, status io.Writer) error {
	dir, err := svc.UserFolder(ctx)
	if err != nil {
		return fmt.Errorf("resolve user folder: %w", err)
	}

	events, err := svc.Watch(ctx, pattern)
	if err != nil {
		return err
	}

	source := lifecycle.NewSource(events, types...)
	if err := source.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(status, "Watching %s (Ctrl+C to stop)\n", dir)

	for e := range source.Events() {
		doc, ok := e.(core.Event)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "%s %-6s %s\n", time.Unix(doc.Timestamp, 0).Format(time.TimeOnly), doc.Type, doc.Name)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Glob of document files to watch (default *.json)")
	watchCmd.Flags().StringSliceVar(&watchOnly, "only", nil, "Print only these event types (create, modify, delete)")
}
