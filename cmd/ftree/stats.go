package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jwnbm/familytree/internal/layout"
	"github.com/jwnbm/familytree/internal/tree"
)

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Print entity counts and the generation histogram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := service().Load(args[0])
		if err != nil {
			return err
		}
		rememberRecent(args[0])

		fmt.Printf("File:            %s\n", args[0])
		fmt.Printf("Persons:         %d\n", len(t.Persons))
		fmt.Printf("Parent-child:    %d\n", len(t.Edges))
		fmt.Printf("Spouse pairs:    %d\n", len(t.Spouses))
		fmt.Printf("Families:        %d\n", len(t.Families))
		fmt.Printf("Events:          %d\n", len(t.Events))
		fmt.Printf("Event relations: %d\n", len(t.EventRelations))
		fmt.Printf("Roots:           %d\n", len(t.Roots()))

		if len(t.Persons) == 0 {
			return nil
		}

		counts := make(map[int]int)
		for _, n := range layout.ComputeLayout(t, tree.Point{}) {
			counts[n.Generation]++
		}
		gens := make([]int, 0, len(counts))
		for g := range counts {
			gens = append(gens, g)
		}
		sort.Ints(gens)

		fmt.Println("Generations:")
		for _, g := range gens {
			fmt.Printf("  %3d: %d\n", g, counts[g])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
