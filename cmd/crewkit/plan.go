package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/crewkit/internal/crewfile"
)

var planCmd = &cobra.Command{
	Use:   "plan <crew-file>",
	Short: "Show the execution order without running anything",
	Long: `Validate a crew file and print the order agents would execute in.

No API calls are made. Exits with an error if the dependency graph
contains a cycle.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := crewfile.Load(args[0])
		if err != nil {
			return err
		}
		c, err := f.Build()
		if err != nil {
			return err
		}

		order, err := c.Schedule()
		if err != nil {
			return err
		}

		for i, a := range order {
			line := fmt.Sprintf("%2d. %s", i+1, a.Name)
			if deps := a.Dependencies(); len(deps) > 0 {
				names := make([]string, len(deps))
				for j, d := range deps {
					names[j] = d.Name
				}
				line += fmt.Sprintf("  (after %s)", strings.Join(names, ", "))
			}
			fmt.Println(line)
		}
		return nil
	},
}
