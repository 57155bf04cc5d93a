package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwnbm/familytree/internal/storage"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that a tree file loads cleanly",
	Long: `Validate loads the file and reports the failure class on error:
read, write, serialize, or deserialize. A clean load exits zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := service().Load(args[0])
		if err != nil {
			var se *storage.Error
			if errors.As(err, &se) {
				return fmt.Errorf("%s: %s failure: %s", args[0], se.Kind, se.Detail)
			}
			return err
		}
		fmt.Printf("%s: OK (%d persons, %d events)\n", args[0], len(t.Persons), len(t.Events))

		// Relations referencing absent persons or events load fine from
		// JSON but would be rejected by the relational schema; point them
		// out so a conversion does not surprise.
		for _, r := range t.EventRelations {
			if _, ok := t.Persons[r.Person]; !ok {
				fmt.Printf("  warning: event relation references absent person %s\n", r.Person)
			}
			if _, ok := t.Events[r.Event]; !ok {
				fmt.Printf("  warning: event relation references absent event %s\n", r.Event)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
