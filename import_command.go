package main

import (
	"fmt"

	"phototag/internal/importer"
	"phototag/internal/logging"
	"phototag/internal/metadata"
	"phototag/internal/tags"
	"phototag/internal/thumbcache"

	"github.com/spf13/cobra"
)

func newImportCommand(a *app) *cobra.Command {
	var tagsFlag string

	cmd := &cobra.Command{
		Use:   "import <paths...>",
		Short: "Import image files or directories into the library",
		Long: `Import image files or directories into the library.

Directories are searched recursively for image files. Every photo gets a
thumbnail and the tags given with --tags. One unreadable file does not stop
the rest of the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()

			paths, failures := importer.ExpandPaths(args)
			if len(paths) == 0 && len(failures) == 0 {
				fmt.Fprintln(out, "No images found")
				return nil
			}

			opts := importer.Options{
				MaxEdge: a.cfg.ThumbnailSize,
				Quality: a.cfg.ThumbnailQuality,
				Workers: a.cfg.ImportWorkers,
			}
			if isTerminal(errOut) {
				opts.Progress = func(done, total int) {
					fmt.Fprintf(errOut, "\rImporting %d/%d", done, total)
					if done == total {
						fmt.Fprintln(errOut)
					}
				}
			}

			pipeline := importer.New(metadata.NewExtractor(), a.renderer(), a.thumbs, opts)
			result := pipeline.Import(ctx, paths, tags.Parse(tagsFlag))
			failures = append(failures, result.Failures...)

			added := 0
			for _, entry := range result.Imported {
				if err := a.store.AddImported(entry); err != nil {
					failures = append(failures, importer.Failure{
						Path:   entry.SourcePath,
						Reason: fmt.Sprintf("add to library: %v", err),
					})
					if err := thumbcache.Remove(entry.ThumbnailPath); err != nil {
						logging.Debug("Ignoring thumbnail removal failure for %s: %v", entry.ThumbnailPath, err)
					}
					continue
				}
				added++
			}

			fmt.Fprintf(out, "Imported %d of %d files\n", added, added+len(failures))
			for _, f := range failures {
				fmt.Fprintf(errOut, "  failed: %s: %s\n", f.Path, f.Reason)
			}

			if err := ctx.Err(); err != nil {
				return err
			}
			if added == 0 && len(failures) > 0 {
				return fmt.Errorf("no photos imported")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tagsFlag, "tags", "t", "", "Comma-separated tags for every imported photo")
	return cmd
}
