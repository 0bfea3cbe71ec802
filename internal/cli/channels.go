package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmxlabs/mixaudit/internal/insights"
	"github.com/mmxlabs/mixaudit/internal/pipeline"
)

// channelsCmd lists the channels in the dataset
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List the channels in the model output",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := pipeline.NewPipeline(buildConfig(), newLogger())

		ds, err := p.Dataset()
		if err != nil {
			return err
		}

		for _, name := range insights.ListChannels(ds) {
			fmt.Println(name)
		}
		return nil
	},
}

// channelCmd prints the deterministic summary for one channel
var channelCmd = &cobra.Command{
	Use:   "channel <name>",
	Short: "Show the data-grounded summary for a channel",
	Long: `Channel prints a deterministic summary built straight from the model
output: contribution, incremental KPI, spend, ROI, response-curve shape
and the observed spend range. No LLM is involved.

Example:
  mixaudit channel Facebook
  mixaudit channel yt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := pipeline.NewPipeline(buildConfig(), newLogger())

		ds, err := p.Dataset()
		if err != nil {
			return err
		}

		insight, err := insights.ChannelSummary(ds, args[0])
		if err != nil {
			return err
		}
		return printInsight(insight)
	},
}

// safeRangeCmd prints the observed spend range for a channel
var safeRangeCmd = &cobra.Command{
	Use:   "safe-range <name>",
	Short: "Show the safe (observed) spend range for a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := pipeline.NewPipeline(buildConfig(), newLogger())

		ds, err := p.Dataset()
		if err != nil {
			return err
		}

		insight, err := insights.SafeSpendRange(ds, args[0])
		if err != nil {
			return err
		}
		return printInsight(insight)
	},
}

// bestCmd prints the channel with the highest ROI
var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the channel with the highest ROI",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := pipeline.NewPipeline(buildConfig(), newLogger())

		ds, err := p.Dataset()
		if err != nil {
			return err
		}

		insight, err := insights.BestChannelByROI(ds)
		if err != nil {
			return err
		}
		return printInsight(insight)
	},
}

func printInsight(insight *insights.Insight) error {
	data, err := json.MarshalIndent(insight, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal insight: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	rootCmd.AddCommand(channelsCmd)
	rootCmd.AddCommand(channelCmd)
	rootCmd.AddCommand(safeRangeCmd)
	rootCmd.AddCommand(bestCmd)
}
