package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmxlabs/mixaudit/internal/pipeline"
	"github.com/mmxlabs/mixaudit/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Answer and audit multiple questions from a file in parallel",
	Long: `Batch processes multiple questions concurrently:
- Read questions from input file (one per line, # comments skipped)
- Answer and verify questions in parallel with configurable worker count
- Write an individual verification report for each question
- Every exchange still lands in the audit log

Example:
  mixaudit batch questions.txt
  mixaudit batch questions.txt --concurrency 8 --output-dir ./reports
  mixaudit batch questions.txt --llm-provider ollama --llm-model llama3.1:8b`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./mixaudit-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// LLM flags
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Concurrency.Workers = concurrency
	if err := applyLLMFlags(cfg); err != nil {
		return err
	}

	if cfg.LLM.Provider == "" {
		return fmt.Errorf("no LLM provider configured; set llm.provider in the config or pass --llm-provider")
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  MixAudit Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, newLogger())
	processor := worker.NewBatchProcessor(p, concurrency)

	fmt.Fprintf(os.Stderr, "⚙️  Reading questions from file...\n")
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Processed %d questions with %d workers\n", len(results), concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	validCount := 0
	flaggedCount := 0
	failureCount := 0

	for i, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %q: %v\n", result.Question, result.Error)
			continue
		}

		reportPath := filepath.Join(outputDir, fmt.Sprintf("report-%03d.json", i+1))
		data, err := json.MarshalIndent(result.Report, "", "  ")
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %q: marshal report: %v\n", result.Question, err)
			continue
		}
		if err := os.WriteFile(reportPath, data, 0o644); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %q: write report: %v\n", result.Question, err)
			continue
		}

		if result.Report.OverallValid {
			validCount++
			fmt.Fprintf(os.Stderr, "✓ %q (verified)\n", result.Question)
		} else {
			flaggedCount++
			fmt.Fprintf(os.Stderr, "⚠ %q (%d/%d claims verified)\n",
				result.Question, result.Report.General.Verified, result.Report.General.TotalClaims)
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d questions\n", len(results))
	fmt.Fprintf(os.Stderr, "  Verified:  %d\n", validCount)
	fmt.Fprintf(os.Stderr, "  Flagged:   %d\n", flaggedCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
