package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmxlabs/mixaudit/internal/pipeline"
)

var (
	askChannel string
	outJSON    string
	outMD      string
	askTimeout time.Duration
	noCache    bool
	noAnnotate bool
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question and audit the generated answer",
	Long: `Ask sends a question to the configured LLM provider, grounded in the
model output snapshot, then verifies every numeric claim in the answer
against the snapshot:
- Specific metric questions are checked value-for-value
- Ranking questions are checked against the true channel ordering
- Everything else gets a general fact check on all extracted numbers

Answers that fail verification are annotated with a discrepancy note.
Every exchange is written to the audit log.

Example:
  mixaudit ask "What is the ROI for Facebook?"
  mixaudit ask "Which channel should get more budget?" --channel fb
  mixaudit ask "How saturated is YouTube?" --llm-provider ollama --llm-model llama3.1:8b`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askChannel, "channel", "", "restrict the dataset slice to one channel (name or id)")
	askCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	askCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "overall timeout")
	askCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable answer cache (force a fresh answer)")
	askCmd.Flags().BoolVar(&noAnnotate, "no-annotate", false, "do not append discrepancy notes to failing answers")

	// LLM flags
	askCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, ollama)")
	askCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Annotate = !noAnnotate
	if err := applyLLMFlags(cfg); err != nil {
		return err
	}

	if cfg.LLM.Provider == "" {
		return fmt.Errorf("no LLM provider configured; set llm.provider in the config or pass --llm-provider")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Question: %s\n", question)
		if askChannel != "" {
			fmt.Fprintf(os.Stderr, "Channel:  %s\n", askChannel)
		}
		fmt.Fprintf(os.Stderr, "Provider: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg, newLogger())

	exchange, err := p.Ask(ctx, question, askChannel)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if err := p.RenderExchange(exchange, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
