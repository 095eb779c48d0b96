package main

import (
	"fmt"
	"sort"

	"github.com/dhamidi/gw/gw"
	"github.com/dhamidi/gw/gw/diag"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Check .gw files and report their problems",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if !checkFile(path) {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) have problems", failed, len(args))
			}
			return nil
		},
	}
}

func checkFile(path string) bool {
	parser := gw.New(gw.WithStrict(false), gw.WithValidation(true))
	genealogy, err := parser.ParseFile(path)
	if err != nil {
		color.Red("%s: %s", path, err)
		return false
	}

	warnings := parser.Warnings()
	var problems []diag.Diagnostic
	if genealogy != nil {
		problems = genealogy.Problems
	}

	if len(warnings) == 0 && len(problems) == 0 {
		color.Green("%s: ok (%d persons, %d families)",
			path, len(genealogy.Persons), len(genealogy.Families))
		return true
	}

	fmt.Println(path + ":")
	for _, d := range sortDiagnostics(append(warnings, problems...)) {
		switch d.Severity {
		case diag.SeverityWarning:
			color.Yellow("  warning: %s", d)
		default:
			color.Red("  error: %s", d)
		}
	}
	return len(problems) == 0
}

func sortDiagnostics(diagnostics []diag.Diagnostic) []diag.Diagnostic {
	sort.SliceStable(diagnostics, func(i, j int) bool {
		return diagnostics[i].Line < diagnostics[j].Line
	})
	return diagnostics
}
