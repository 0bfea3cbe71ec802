package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmxlabs/mixaudit/internal/model"
)

var (
	cfgFile     string
	verbose     bool
	dataPath    string
	llmProvider string
	llmModel    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mixaudit",
	Short: "MixAudit - trust verification for AI answers about marketing-mix models",
	Long: `MixAudit answers questions about marketing-mix model output and then
audits the answers it gives.

Every numeric claim in a generated answer is extracted and traced back to
the model output snapshot. Answers whose numbers cannot be verified are
flagged, annotated, and logged.

MixAudit checks numbers against data; it does not judge whether the
underlying model is right.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for MixAudit.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mixaudit v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.mixaudit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "model output JSON path (default: model_output.json)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("dataset.path", rootCmd.PersistentFlags().Lookup("data"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.mixaudit")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match MIXAUDIT_*
	viper.SetEnvPrefix("MIXAUDIT")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildConfig merges defaults, config file, environment and global flags
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	_ = viper.Unmarshal(cfg)

	if dataPath != "" {
		cfg.Dataset.Path = dataPath
	}
	cfg.Output.Verbose = verbose

	return cfg
}

// applyLLMFlags overlays provider flags and pulls API keys from the
// environment; keys never come from the config file
func applyLLMFlags(cfg *model.Config) error {
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return nil
}

// newLogger builds the CLI logger; verbose lowers the level to info
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
