package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/crewkit/internal/state"
	"github.com/ShayCichocki/crewkit/pkg/models"
)

var (
	historyLimit int
	historyRunID string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past runs",
	Long: `List recent crew runs recorded in the project history.

With --run, shows the per-agent outputs of one run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := state.OpenProject(".")
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer db.Close()

		if historyRunID != "" {
			return showRun(db, historyRunID)
		}
		return listRuns(db)
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of runs to list")
	historyCmd.Flags().StringVar(&historyRunID, "run", "", "Show the results of a specific run")
}

func listRuns(db *state.DB) error {
	runs, err := db.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, run := range runs {
		status := string(run.Status)
		switch run.Status {
		case models.RunCompleted:
			status = color.GreenString(status)
		case models.RunFailed:
			status = color.RedString(status)
		}
		fmt.Printf("%s  %s  %s  %s\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), status, run.CrewFile)
		if run.Error != "" {
			fmt.Printf("    %s\n", color.RedString(run.Error))
		}
	}
	return nil
}

func showRun(db *state.DB, runID string) error {
	run, err := db.GetRun(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with id %s", runID)
	}

	results, err := db.RunResults(runID)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	for _, r := range results {
		bold.Printf("── %d. %s ──\n", r.Position+1, r.AgentName)
		fmt.Println(r.Output)
		fmt.Println()
	}
	if run.Error != "" {
		color.Red("✗ %s", run.Error)
	}
	return nil
}
