package main

import (
	"phototag/internal/logging"

	"github.com/spf13/cobra"
)

func newRootCommand(a *app) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "phototag",
		Short:         "Import, tag and browse a local photo library",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetOutput(cmd.ErrOrStderr())
			if verbose {
				logging.SetLevel(logging.LevelDebug)
			}
			if shouldSkipLibrary(cmd) {
				return nil
			}
			return a.open()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.libraryFlag, "library", "l", "", "Library directory (overrides LIBRARY_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newImportCommand(a))
	rootCmd.AddCommand(newListCommand(a))
	rootCmd.AddCommand(newTagsCommand(a))
	rootCmd.AddCommand(newTagCommand(a))
	rootCmd.AddCommand(newDeleteCommand(a))
	rootCmd.AddCommand(newShowCommand(a))
	rootCmd.AddCommand(newSettingsCommand(a))
	rootCmd.AddCommand(newPruneCommand(a))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func shouldSkipLibrary(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipLibrary"] == "true" {
			return true
		}
	}
	return false
}
