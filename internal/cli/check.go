package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmxlabs/mixaudit/internal/pipeline"
)

var (
	checkChannel      string
	checkResponseFile string
	checkJSON         string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <question> [response]",
	Short: "Verify an existing answer against the model output",
	Long: `Check verifies an answer that was generated elsewhere, without calling
any LLM provider. The response text comes from the second argument or
from --response-file.

Example:
  mixaudit check "What is the ROI for Facebook?" "Facebook's ROI is 3.47."
  mixaudit check "Which channel is best?" --response-file answer.txt --json report.json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkChannel, "channel", "", "channel hint for the specific-metric validator (name or id)")
	checkCmd.Flags().StringVar(&checkResponseFile, "response-file", "", "read the response text from a file")
	checkCmd.Flags().StringVar(&checkJSON, "json", "", "write the full report to a JSON file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	question := args[0]

	response, err := checkResponse(args)
	if err != nil {
		return err
	}

	cfg := buildConfig()
	p := pipeline.NewPipeline(cfg, newLogger())

	report, err := p.Check(question, response, checkChannel)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if checkJSON != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if err := os.WriteFile(checkJSON, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", checkJSON)
		}
	}

	if err := p.RenderExchange(&pipeline.Exchange{
		Question: question,
		Channel:  checkChannel,
		Answer:   response,
		Report:   report,
	}, "", "", false); err != nil {
		return err
	}

	if !report.OverallValid {
		return fmt.Errorf("answer failed verification")
	}

	return nil
}

func checkResponse(args []string) (string, error) {
	if checkResponseFile != "" {
		data, err := os.ReadFile(checkResponseFile)
		if err != nil {
			return "", fmt.Errorf("read response file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if len(args) < 2 {
		return "", fmt.Errorf("provide the response as an argument or via --response-file")
	}
	return args[1], nil
}
