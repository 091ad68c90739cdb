package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/crewkit/internal/config"
	"github.com/ShayCichocki/crewkit/internal/crew"
	"github.com/ShayCichocki/crewkit/internal/crewfile"
	"github.com/ShayCichocki/crewkit/internal/llm"
	"github.com/ShayCichocki/crewkit/internal/prompt"
	"github.com/ShayCichocki/crewkit/internal/state"
	"github.com/ShayCichocki/crewkit/pkg/models"
)

var (
	runModel  string
	runWatch  bool
	runNoSave bool
)

var runCmd = &cobra.Command{
	Use:   "run <crew-file>",
	Short: "Execute a crew",
	Long: `Execute every agent in a crew file in dependency order.

Each agent's output is appended to the context of the agents that depend
on it before they run. The run aborts without executing anything if the
dependency graph contains a cycle, and halts on the first failed agent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if runModel != "" {
			cfg.Anthropic.Model = runModel
		}

		if cfg.Run.DebugLog != "" {
			logger, err := crew.NewDebugLogger(cfg.Run.DebugLog)
			if err != nil {
				return err
			}
			crew.SetDebugLogger(logger)
			defer func() {
				crew.SetDebugLogger(nil)
				logger.Close()
			}()
		}

		if runWatch {
			return watchAndRun(ctx, cfg, args[0])
		}
		return runCrew(ctx, cfg, args[0])
	},
}

func init() {
	runCmd.Flags().StringVar(&runModel, "model", "", "Override the configured Claude model")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "Re-run the crew whenever the crew file changes")
	runCmd.Flags().BoolVar(&runNoSave, "no-save", false, "Skip recording the run in the local history")
}

// runCrew executes one pass over the crew file.
func runCrew(ctx context.Context, cfg *config.Config, path string) error {
	f, err := crewfile.Load(path)
	if err != nil {
		return err
	}
	c, err := f.Build()
	if err != nil {
		return err
	}

	gen, err := buildGenerator(cfg)
	if err != nil {
		return err
	}

	var db *state.DB
	runID := uuid.NewString()
	if !runNoSave {
		db, err = state.OpenProject(".")
		if err != nil {
			color.Yellow("⚠ history disabled: %v", err)
			db = nil
		} else {
			defer db.Close()
			err = db.CreateRun(&models.Run{
				ID:        runID,
				CrewFile:  path,
				Model:     cfg.Anthropic.Model,
				Status:    models.RunRunning,
				StartedAt: time.Now(),
			})
			if err != nil {
				color.Yellow("⚠ history disabled: %v", err)
				db = nil
			}
		}
	}

	bold := color.New(color.Bold)
	position := 0
	executor := crew.NewExecutor(gen, prompt.NewComposer())
	executor.SetObserver(func(r crew.Result) {
		bold.Printf("── %s ──\n", r.Name)
		fmt.Println(r.Output)
		fmt.Println()

		if db != nil {
			err := db.SaveResult(&models.AgentResult{
				RunID:     runID,
				Position:  position,
				AgentName: r.Name,
				Output:    r.Output,
			})
			if err != nil {
				color.Yellow("⚠ save result: %v", err)
			}
		}
		position++
	})

	results, err := executor.Run(ctx, c)
	if err != nil {
		if db != nil {
			if ferr := db.FinishRun(runID, models.RunFailed, err.Error()); ferr != nil {
				color.Yellow("⚠ record failure: %v", ferr)
			}
		}
		return err
	}

	if db != nil {
		if ferr := db.FinishRun(runID, models.RunCompleted, ""); ferr != nil {
			color.Yellow("⚠ record completion: %v", ferr)
		}
	}

	color.Green("✓ %d agents completed", len(results))
	return nil
}

// buildGenerator assembles the Claude client with the configured retry
// budget.
func buildGenerator(cfg *config.Config) (crew.Generator, error) {
	clientCfg := llm.ClientConfig{
		Model: anthropic.Model(cfg.Anthropic.Model),
	}

	if cfg.Bedrock.Enabled {
		clientCfg.UseAWSBedrock = true
		clientCfg.AWSRegion = cfg.Bedrock.Region
		clientCfg.AWSProfile = cfg.Bedrock.Profile
	} else {
		key, err := config.APIKey(cfg)
		if err != nil {
			return nil, err
		}
		clientCfg.APIKey = key
	}

	client, err := llm.NewClient(clientCfg)
	if err != nil {
		return nil, err
	}

	if cfg.Run.MaxRetries > 1 {
		return llm.WithRetry(client, cfg.Run.MaxRetries, cfg.Run.RetryBackoff), nil
	}
	return client, nil
}

// watchAndRun runs the crew, then re-runs it whenever the crew file
// changes. Failed runs don't stop the watch; the next edit triggers a
// fresh attempt.
func watchAndRun(ctx context.Context, cfg *config.Config, path string) error {
	if err := runCrew(ctx, cfg, path); err != nil {
		color.Red("✗ %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save,
	// which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	base := filepath.Base(path)
	color.Cyan("watching %s for changes (ctrl-c to stop)", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			color.Cyan("%s changed, re-running", base)
			if err := runCrew(ctx, cfg, path); err != nil {
				color.Red("✗ %v", err)
			}
		case <-watcher.Errors:
			// Keep watching.
		}
	}
}
