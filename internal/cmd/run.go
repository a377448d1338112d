package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/config"
	"github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/pipeline"
)

var (
	runPrompts    string
	runFilters    string
	runCategories string
	runOutput     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Screen and categorize the prompt library",
	Long:  "Reads the prompt library, filters out prompts containing PII, categorizes the rest, and writes the cleaned CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, span := tracer.Start(cmd.Context(), "run")
		defer span.End()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		result, err := pipeline.New(cfg).Run(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Screening run failed")
			return fmt.Errorf("screening run failed: %w", err)
		}

		fmt.Printf("✓ Wrote %d clean prompts to %s\n", result.Kept, result.OutputFile)
		if len(result.Filtered) > 0 {
			fmt.Printf("  Filtered %d prompts: %s\n", len(result.Filtered), strings.Join(result.Filtered, ", "))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runPrompts, "prompts", "", "prompt library CSV (default: system_prompts.csv)")
	runCmd.Flags().StringVar(&runFilters, "pii-filters", "", "PII filter list (default: pii.txt)")
	runCmd.Flags().StringVar(&runCategories, "categories", "", "category taxonomy CSV (default: categories.csv)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "output CSV (default: cleaned_prompts.csv)")

	_ = viper.BindPFlag(config.KeyPromptsFile, runCmd.Flags().Lookup("prompts"))
	_ = viper.BindPFlag(config.KeyFiltersFile, runCmd.Flags().Lookup("pii-filters"))
	_ = viper.BindPFlag(config.KeyTaxonomyFile, runCmd.Flags().Lookup("categories"))
	_ = viper.BindPFlag(config.KeyOutputFile, runCmd.Flags().Lookup("output"))
}
