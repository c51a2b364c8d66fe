package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/bongo"
	"github.com/spf13/cobra"
)

func newViewCmd() *cobra.Command {
	var (
		settings   = bongo.DefaultSourceSettings()
		scale      float64
		deform     bool
		overlay    bool
		scriptPath string
		exitAfter  bool
		shotDir    string
		inputDir   string
	)
	cmd := &cobra.Command{
		Use:   "view <avatar.json|pack-dir>",
		Short: "Open a window showing the avatar reacting to the keyboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger("bongo-view")
			settings.AvatarPath = args[0]

			opts := []bongo.SourceOption{
				bongo.WithLogger(log),
				bongo.WithDeformation(deform),
				bongo.WithScreenshotDir(shotDir),
			}
			captureOpts := []bongo.CaptureOption{bongo.WithCaptureLogger(log.Named("input"))}
			if inputDir != "" {
				captureOpts = append(captureOpts, bongo.WithInputDir(inputDir))
				opts = append(opts, bongo.WithCaptureOptions(bongo.WithInputDir(inputDir)))
			}

			var runner *bongo.ScriptRunner
			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return err
				}
				if runner, err = bongo.LoadScript(data); err != nil {
					return err
				}
				capture, err := bongo.NewInputCapture(captureOpts...)
				if err != nil {
					log.Warn("keyboard capture unavailable", "error", err)
					capture = nil
				}
				if capture != nil {
					defer capture.Close()
					opts = append(opts, bongo.WithInput(bongo.MultiInput(capture, runner.Input())))
				} else {
					opts = append(opts, bongo.WithInput(runner.Input()))
				}
			}

			src := bongo.NewSource(settings, opts...)
			defer src.Close()
			if src.Avatar() == nil {
				return fmt.Errorf("could not load avatar from %s", args[0])
			}

			return bongo.Run(src, bongo.RunConfig{
				Title:              "bongo - " + src.Avatar().Name,
				Scale:              scale,
				ShowOverlay:        overlay,
				Script:             runner,
				ExitWhenScriptDone: exitAfter,
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&settings.Mode, "mode", "m", "", "Mode to show (default: the avatar's default mode)")
	f.Uint32Var(&settings.Width, "width", settings.Width, "Canvas width")
	f.Uint32Var(&settings.Height, "height", settings.Height, "Canvas height")
	f.Float64Var(&settings.AnimationSpeed, "speed", settings.AnimationSpeed, "Animation speed")
	f.Float64Var(&scale, "scale", 0.5, "Window scale")
	f.BoolVar(&deform, "deform", false, "Start with deformation enabled")
	f.BoolVar(&overlay, "overlay", true, "Show the diagnostics overlay")
	f.StringVar(&scriptPath, "script", "", "JSON input script to play")
	f.BoolVar(&exitAfter, "exit-after-script", false, "Close the window when the script finishes")
	f.StringVar(&shotDir, "screenshot-dir", "screenshots", "Directory for script screenshots")
	f.StringVar(&inputDir, "input-dir", "", "Device directory for keyboard capture")
	return cmd
}
