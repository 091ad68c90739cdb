package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/crewkit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Display the configuration crewkit would use.

Configuration is read from ~/.config/crewkit/config.yaml, with
project-level overrides in .crewkit.yaml and environment variables
(ANTHROPIC_API_KEY, CREWKIT_*) taking precedence.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		key, _ := config.APIKey(cfg)
		fmt.Printf("anthropic.api_key: %s\n", config.MaskAPIKey(key))
		fmt.Printf("anthropic.model:   %s\n", cfg.Anthropic.Model)
		fmt.Printf("bedrock.enabled:   %v\n", cfg.Bedrock.Enabled)
		if cfg.Bedrock.Enabled {
			fmt.Printf("bedrock.region:    %s\n", cfg.Bedrock.Region)
			fmt.Printf("bedrock.profile:   %s\n", cfg.Bedrock.Profile)
		}
		fmt.Printf("run.max_retries:   %d\n", cfg.Run.MaxRetries)
		fmt.Printf("run.retry_backoff: %s\n", cfg.Run.RetryBackoff)
		fmt.Printf("run.debug_log:     %s\n", cfg.Run.DebugLog)
	},
}
