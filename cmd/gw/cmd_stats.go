package main

import (
	"fmt"
	"sort"

	"github.com/dhamidi/gw/gw"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Print summary statistics for a .gw file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := gw.New(gw.WithStrict(false), gw.WithValidation(false))
			genealogy, err := parser.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			stats := genealogy.Statistics()
			fmt.Printf("persons:             %d\n", stats.TotalPersons)
			fmt.Printf("  male:              %d\n", stats.MalePersons)
			fmt.Printf("  female:            %d\n", stats.FemalePersons)
			fmt.Printf("  unknown gender:    %d\n", stats.UnknownGenderPersons)
			fmt.Printf("  living:            %d\n", stats.LivingPersons)
			fmt.Printf("  deceased:          %d\n", stats.DeceasedPersons)
			fmt.Printf("  with birth date:   %d\n", stats.PersonsWithBirthDate)
			fmt.Printf("  with death date:   %d\n", stats.PersonsWithDeathDate)
			fmt.Printf("families:            %d\n", stats.TotalFamilies)
			fmt.Printf("  with children:     %d\n", stats.FamiliesWithChildren)
			fmt.Printf("  children total:    %d\n", stats.TotalChildren)
			if stats.AverageAgeAtDeath > 0 {
				fmt.Printf("age at death:        avg %.1f, oldest %d, youngest %d\n",
					stats.AverageAgeAtDeath, stats.OldestDeath, stats.YoungestDeath)
			}
			return nil
		},
	}
}

// sortedKeys returns map keys in a stable order for printing.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
