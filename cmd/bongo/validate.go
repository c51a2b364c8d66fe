package main

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/phanxgames/bongo"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var load bool
	cmd := &cobra.Command{
		Use:   "validate <avatar.json|pack-dir>",
		Short: "Check an avatar pack for missing files and bad manifests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := termenv.NewOutput(cmd.OutOrStdout())
			report := bongo.ValidatePack(args[0])
			printReport(out, report)

			if load {
				a, err := bongo.LoadPath(args[0], bongo.WithLoaderLogger(newLogger("bongo-validate")))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Loaded %q: modes %v, %d faces\n", a.Name, a.ModeNames, len(a.Face.Images))
			}
			if !report.OK() {
				return fmt.Errorf("validation failed: %d error(s)", len(report.Errors()))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&load, "load", false, "Also load the pack and decode every image")
	return cmd
}

func printReport(out *termenv.Output, r *bongo.ValidationReport) {
	red := out.Color("1")
	yellow := out.Color("3")
	green := out.Color("2")

	fmt.Fprintf(out, "Validating %s\n", out.String(r.Root).Bold())
	fmt.Fprintf(out, "  %d faces, %d modes %v\n\n", r.Faces, len(r.Modes), r.Modes)

	if w := r.Warnings(); len(w) > 0 {
		fmt.Fprintln(out, out.String("Warnings:").Foreground(yellow).Bold())
		for _, f := range w {
			fmt.Fprintf(out, "  %s\n", f)
		}
		fmt.Fprintln(out)
	}
	if e := r.Errors(); len(e) > 0 {
		fmt.Fprintln(out, out.String("Errors:").Foreground(red).Bold())
		for _, f := range e {
			fmt.Fprintf(out, "  %s\n", f)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, out.String(fmt.Sprintf("Validation FAILED: %d error(s)", len(e))).Foreground(red))
		return
	}
	fmt.Fprintln(out, out.String("Validation PASSED").Foreground(green))
	if n := len(r.Warnings()); n > 0 {
		fmt.Fprintf(out, "%d warning(s)\n", n)
	}
}
