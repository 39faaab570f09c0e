package main

import (
	"fmt"
	"strings"

	"phototag/internal/settings"
	"phototag/internal/startup"

	"github.com/spf13/cobra"
)

func newSettingsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
	}
	cmd.AddCommand(newFocalCommand(a))
	return cmd
}

func newFocalCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "focal [mode]",
		Short: "Show or set how focal lengths are displayed",
		Long: `Show or set how focal lengths are displayed.

Modes:
  off           show the recorded focal length
  always15      multiply every focal length by 1.5
  autoByCamera  multiply by 1.5 for known APS-C cameras (default)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			prefs, err := a.loadSettings(ctx)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Fprintf(out, "%s (%s)\n", prefs.FocalMode, prefs.FocalMode.Title())
				return nil
			}

			mode, ok := settings.ParseFocalMode(args[0])
			if !ok {
				names := make([]string, len(settings.FocalModes))
				for i, m := range settings.FocalModes {
					names[i] = string(m)
				}
				return fmt.Errorf("unknown focal mode %q (want one of: %s)", args[0], strings.Join(names, ", "))
			}

			db, err := a.settingsDB(ctx)
			if err != nil {
				return err
			}
			prefs.FocalMode = mode
			if err := settings.Save(ctx, db, prefs); err != nil {
				return err
			}
			fmt.Fprintf(out, "Focal length mode set to %s (%s)\n", mode, mode.Title())
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipLibrary": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := startup.GetBuildInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "phototag %s (commit %s, built %s, %s %s/%s)\n",
				info.Version, info.Commit, info.BuildTime, info.GoVersion, info.OS, info.Arch)
			return nil
		},
	}
}
