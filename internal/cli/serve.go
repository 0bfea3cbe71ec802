package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmxlabs/mixaudit/internal/pipeline"
	"github.com/mmxlabs/mixaudit/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve starts the HTTP API:

  GET  /health                      service status
  GET  /channels                    channel names in the dataset
  GET  /channel?name=&question=     channel summary, or an audited AI answer
  GET  /safe_range?name=            observed spend range for a channel
  GET  /best_channel                highest-ROI channel
  POST /validate                    verify an external answer against the data

Without an LLM provider the deterministic endpoints still work; only
question answering is disabled.

Example:
  mixaudit serve
  mixaudit serve --addr :9090 --llm-provider openai --llm-model gpt-4o-mini`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")

	// LLM flags
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, ollama)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if err := applyLLMFlags(cfg); err != nil {
		return err
	}

	logger := newLogger()
	p := pipeline.NewPipeline(cfg, logger)
	srv := server.New(p, cfg, logger)

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	fmt.Fprintf(os.Stderr, "mixaudit API listening on %s\n", cfg.Server.Addr)

	select {
	case err := <-errCh:
		return err
	case <-done:
		fmt.Fprintln(os.Stderr, "shutting down")
		return srv.Shutdown()
	}
}
