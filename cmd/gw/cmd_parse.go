package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dhamidi/gw/gw"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var lenient bool
	var noValidate bool
	var stream string
	var threshold float64

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .gw file and dump the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []gw.Option{
				gw.WithStrict(!lenient),
				gw.WithValidation(!noValidate),
			}
			switch stream {
			case "on":
				opts = append(opts, gw.WithStreaming(true))
			case "off":
				opts = append(opts, gw.WithStreaming(false))
			case "auto":
			default:
				return fmt.Errorf("unknown stream mode: %s", stream)
			}
			opts = append(opts, gw.WithStreamThreshold(threshold))

			parser := gw.New(opts...)
			genealogy, err := parser.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			switch outputFormat {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(genealogy); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			case "text":
				printGenealogy(genealogy)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "record problems instead of stopping at the first error")
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "skip consistency validation")
	cmd.Flags().StringVar(&stream, "stream", "auto", "streaming mode (auto, on, off)")
	cmd.Flags().Float64Var(&threshold, "stream-threshold", 10, "file size in MB above which auto mode streams")

	return cmd
}

func printGenealogy(g *gw.Genealogy) {
	fmt.Println(g)

	for _, id := range sortedKeys(g.Persons) {
		p := g.Persons[id]
		fmt.Printf("person %s: %s", id, p.DisplayName())
		if !p.BirthDate.IsZero() {
			fmt.Printf(" b. %s", p.BirthDate)
		}
		if !p.DeathDate.IsZero() {
			fmt.Printf(" d. %s", p.DeathDate)
		}
		fmt.Println()
	}

	for _, id := range sortedKeys(g.Families) {
		f := g.Families[id]
		fmt.Printf("family %s: %s + %s", f.ID, orUnknown(f.HusbandID), orUnknown(f.WifeID))
		if !f.MarriageDate.IsZero() {
			fmt.Printf(" m. %s", f.MarriageDate)
		}
		if len(f.Children) > 0 {
			fmt.Printf(" (%d children)", len(f.Children))
		}
		fmt.Println()
	}
}

func orUnknown(id string) string {
	if id == "" {
		return "?"
	}
	return id
}
