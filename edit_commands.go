package main

import (
	"fmt"
	"io"
	"strings"

	"phototag/internal/library"
	"phototag/internal/tags"

	"github.com/spf13/cobra"
)

func newTagCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Change photo tags",
	}
	cmd.AddCommand(newTagAddCommand(a))
	cmd.AddCommand(newTagSetCommand(a))
	cmd.AddCommand(newTagDeleteCommand(a))
	return cmd
}

func newTagAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <tags> <ids...>",
		Short: "Add tags to one or more photos",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			toAdd := tags.Parse(args[0])
			if len(toAdd) == 0 {
				return fmt.Errorf("no tags given")
			}
			ids := args[1:]
			warnUnknown(cmd.ErrOrStderr(), a.store, ids)

			if err := a.store.AddTags(ids, toAdd); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tagged %d photos with %s\n", countKnown(a.store, ids), strings.Join(toAdd, ", "))
			return nil
		},
	}
}

func newTagSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <tags>",
		Short: "Replace the tags of one photo (an empty list clears them)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, ok := a.store.Get(id); !ok {
				return fmt.Errorf("photo %s not found", id)
			}
			if err := a.store.SetTags(id, tags.Parse(args[1])); err != nil {
				return err
			}
			entry, _ := a.store.Get(id)
			if len(entry.Tags) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: untagged\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", id, strings.Join(entry.Tags, ", "))
			}
			return nil
		},
	}
}

func newTagDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tag>",
		Short: "Remove a tag from every photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := strings.TrimSpace(args[0])
			affected := len(a.store.ByTag(tag))
			if err := a.store.DeleteTagGlobally(tag); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from %d photos\n", tag, affected)
			return nil
		},
	}
}

func newDeleteCommand(a *app) *cobra.Command {
	var keepThumbnails bool

	cmd := &cobra.Command{
		Use:   "delete <ids...>",
		Short: "Remove photos from the library (originals are kept)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warnUnknown(cmd.ErrOrStderr(), a.store, args)
			known := countKnown(a.store, args)

			if err := a.store.DeletePhotos(args, !keepThumbnails); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d photos\n", known)
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepThumbnails, "keep-thumbnails", false, "Leave thumbnail files in place")
	return cmd
}

func newPruneCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete thumbnails that belong to no photo in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			known := make(map[string]bool)
			for _, entry := range a.store.All() {
				known[entry.ID] = true
			}
			removed, err := a.thumbs.Prune(known)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d thumbnails from %s\n", removed, a.thumbs.Root())
			return nil
		},
	}
}

func countKnown(store *library.Store, ids []string) int {
	seen := make(map[string]bool)
	for _, id := range ids {
		if _, ok := store.Get(id); ok {
			seen[id] = true
		}
	}
	return len(seen)
}

func warnUnknown(w io.Writer, store *library.Store, ids []string) {
	for _, id := range ids {
		if _, ok := store.Get(id); !ok {
			fmt.Fprintf(w, "warning: photo %s not found\n", id)
		}
	}
}
