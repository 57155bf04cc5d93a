package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwnbm/familytree/internal/storage"
)

var convertCmd = &cobra.Command{
	Use:   "convert <src> <dst>",
	Short: "Convert a tree file between formats",
	Long: `Convert loads the tree at <src> and saves it to <dst>.

Both paths pick their format by extension, so this migrates trees between
the JSON and SQLite representations in either direction.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, dst := args[0], args[1]

		svc := service()
		t, err := svc.Load(src)
		if err != nil {
			return err
		}
		if err := svc.Save(dst, t); err != nil {
			return err
		}
		rememberRecent(dst)

		fmt.Printf("Converted %s (%s) -> %s (%s): %d persons, %d events\n",
			src, storage.FormatForPath(src),
			dst, storage.FormatForPath(dst),
			len(t.Persons), len(t.Events))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
