// Command salesai is the terminal front end of the SalesAI backend: an
// interactive form plus one-shot analyze, recommend and lookup commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/salesai/backend/internal/assistant"
	"github.com/salesai/backend/internal/catalog"
	"github.com/salesai/backend/internal/client"
	"github.com/salesai/backend/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	apiURL       string
	timeout      time.Duration
	verbose      bool
	noEnrich     bool
	glamourStyle string

	log *logrus.Logger

	cat = catalog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "salesai",
	Short: "SalesAI - lead qualification assistant",
	Long: `SalesAI turns a handful of facts about a prospect into a sales analysis
report and matches the prospect's pain points against the solution catalog.

Run without arguments to start the interactive form.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		var err error
		log, err = logger.New(level, "")
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log.SetOutput(os.Stderr)
		return nil
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "SalesAI backend base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Timeout for backend calls")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noEnrich, "no-enrich", false, "Do not fill empty fields from the company catalog")
	rootCmd.PersistentFlags().StringVar(&glamourStyle, "style", "", "Markdown style (dark, light, notty); auto-detected when empty")

	rootCmd.AddCommand(tuiCmd, analyzeCmd, recommendCmd, companiesCmd, solutionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newController wires the controller to the backend client
func newController() *assistant.Controller {
	api := client.New(apiURL, client.WithLogger(log))

	var enricher assistant.Enricher = assistant.CatalogEnricher{Catalog: cat}
	if noEnrich {
		enricher = assistant.PassthroughEnricher{}
	}
	return assistant.NewController(cat.Companies, api, api, enricher, log)
}
