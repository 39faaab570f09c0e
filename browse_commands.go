package main

import (
	"fmt"
	"strconv"
	"strings"

	"phototag/internal/display"
	"phototag/internal/library"

	"github.com/spf13/cobra"
)

func newListCommand(a *app) *cobra.Command {
	var (
		tag      string
		untagged bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List photos, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []library.PhotoEntry
			switch {
			case untagged:
				entries = a.store.Untagged()
			case tag != "":
				entries = a.store.ByTag(tag)
			default:
				entries = a.store.Recent()
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				if isTerminal(out) {
					fmt.Fprintln(out, "No photos")
				}
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.ID,
					e.SortDate().Local().Format(display.DateLayout),
					e.FileName,
					strings.Join(e.Tags, ", "),
				})
			}
			writeTable(out, []string{"ID", "Date", "File", "Tags"}, rows, nil)
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Only photos carrying this tag (exact match)")
	cmd.Flags().BoolVar(&untagged, "untagged", false, "Only photos without tags")
	cmd.MarkFlagsMutuallyExclusive("tag", "untagged")
	return cmd
}

func newTagsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags with the number of photos carrying each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries := a.store.TagSummaries()
			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				if isTerminal(out) {
					fmt.Fprintln(out, "No tags")
				}
				return nil
			}

			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, []string{s.Tag, strconv.Itoa(s.Count)})
			}
			writeTable(out, []string{"Tag", "Photos"}, rows, []columnAlignment{alignLeft, alignRight})
			return nil
		},
	}
}

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of one photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, ok := a.store.Get(args[0])
			if !ok {
				return fmt.Errorf("photo %s not found", args[0])
			}

			prefs, err := a.loadSettings(cmd.Context())
			if err != nil {
				return err
			}

			details := display.Details(entry, prefs.FocalMode)
			rows := make([][]string, 0, len(details))
			for _, row := range details {
				rows = append(rows, []string{row.Label, row.Value})
			}
			writeTable(cmd.OutOrStdout(), []string{"Field", "Value"}, rows, nil)
			return nil
		},
	}
}
