package main

import (
	"fmt"

	"github.com/dhamidi/gw/gw/parser"
	"github.com/spf13/cobra"
)

func newEstimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <file>",
		Short: "Estimate parser memory use for a .gw file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			estimate, err := parser.EstimateMemory(args[0])
			if err != nil {
				return fmt.Errorf("estimate: %w", err)
			}

			fmt.Printf("file size:         %.2f MB\n", estimate.FileSizeMB)
			fmt.Printf("in-memory parse:   %.2f MB\n", estimate.NormalMemoryMB)
			fmt.Printf("streaming parse:   %.2f MB\n", estimate.StreamingMemoryMB)
			fmt.Printf("streaming saves:   %.1f%%\n", estimate.SavingPercent)
			fmt.Printf("recommended mode:  %s\n", estimate.RecommendedMode)
			return nil
		},
	}
}
