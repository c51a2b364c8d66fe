package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/phanxgames/bongo"
	"github.com/spf13/cobra"
)

func newCaptureCmd() *cobra.Command {
	var (
		inputDir string
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Print keyboard events seen by the capture backend until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger("bongo-capture")
			opts := []bongo.CaptureOption{bongo.WithCaptureLogger(log)}
			if inputDir != "" {
				opts = append(opts, bongo.WithInputDir(inputDir))
			}
			capture, err := bongo.NewInputCapture(opts...)
			if err != nil {
				return err
			}
			defer capture.Close()

			out := cmd.OutOrStdout()
			devs := capture.Devices()
			if len(devs) == 0 {
				fmt.Fprintln(out, "No keyboards found; check permissions on the input devices.")
			}
			for _, d := range devs {
				fmt.Fprintf(out, "Reading %s (%s)\n", d.Path, d.Name)
			}
			fmt.Fprintln(out, "Press keys to see events. Ctrl+C to stop.")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			n := pollLoop(ctx, capture, interval, func(i int, e bongo.InputEvent) {
				fmt.Fprintf(out, "[%d] %s (0x%04X)\n", i, e, e.Code)
			})
			fmt.Fprintf(out, "\nTotal events captured: %d\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&inputDir, "input-dir", "", "Device directory to scan (default /dev/input)")
	cmd.Flags().DurationVar(&interval, "interval", 16*time.Millisecond, "Poll interval")
	return cmd
}

// pollLoop polls src every interval until ctx is done, passing each key
// event to emit with a running count. Returns the number of events seen.
func pollLoop(ctx context.Context, src bongo.InputSource, interval time.Duration, emit func(int, bongo.InputEvent)) int {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	count := 0
	for {
		for _, e := range src.Poll() {
			if e.Kind != bongo.KeyPress && e.Kind != bongo.KeyRelease {
				continue
			}
			count++
			emit(count, e)
		}
		select {
		case <-ctx.Done():
			return count
		case <-ticker.C:
		}
	}
}
