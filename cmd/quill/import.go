package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/quill"
	"github.com/eringen/quill/markdown"
)

func importCmd() *cobra.Command {
	var (
		db    string
		prune bool
	)
	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Import Markdown posts into the SQLite database",
		Long: `Parse every .md file in a directory and upsert it into the database.

Front matter may be YAML (---) or TOML (+++). Posts without an id are
named after their file. With --prune, posts that no longer have a file
are deleted. A running server picks up the changes on SIGHUP.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := markdown.New().LoadDir(args[0])
			if err != nil {
				return err
			}
			store, err := quill.NewStore(db)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			keep := make([]string, 0, len(posts))
			for _, p := range posts {
				if err := store.SavePost(p); err != nil {
					return fmt.Errorf("import %s: %w", p.ID, err)
				}
				keep = append(keep, p.ID)
				fmt.Fprintf(out, "imported %s (%s)\n", p.ID, p.Title)
			}
			if prune {
				deleted, err := store.Prune(keep)
				if err != nil {
					return err
				}
				for _, id := range deleted {
					fmt.Fprintf(out, "deleted %s\n", id)
				}
			}

			tags, err := store.ListTags()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d posts imported into %s\n", len(posts), db)
			if len(tags) > 0 {
				fmt.Fprintf(out, "tags: %s\n", strings.Join(tags, " | "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", quill.EnvOr("QUILL_DB", "data/blog.db"), "SQLite database path")
	cmd.Flags().BoolVar(&prune, "prune", false, "Delete posts that have no Markdown file")
	return cmd
}
