package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Nithiyasree11/basic-stock-analyzer/config"
	"github.com/Nithiyasree11/basic-stock-analyzer/internal/display"
	"github.com/Nithiyasree11/basic-stock-analyzer/internal/web"
	"github.com/Nithiyasree11/basic-stock-analyzer/pkg/app"
	"github.com/Nithiyasree11/basic-stock-analyzer/pkg/logger"
)

// EngineBuilder builds the analyzer used by serve and analyze.
type EngineBuilder func(ctx context.Context, cfg *config.Config, log *zap.Logger) (web.Analyzer, error)

func buildEngine(ctx context.Context, cfg *config.Config, log *zap.Logger) (web.Analyzer, error) {
	return app.BuildEngine(ctx, cfg, log)
}

// commandEnv is what every command gets after the root pre-run.
type commandEnv struct {
	build EngineBuilder
	cfg   *config.Config
	log   *zap.Logger
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(buildEngine)
}

func newRootCmd(build EngineBuilder) *cobra.Command {
	rt := &commandEnv{build: build}

	rootCmd := &cobra.Command{
		Use:   "stockanalyzer",
		Short: "Stock Analyzer - LLM summaries of a stock's financials, fundamentals and news",
		Long: `Stock Analyzer fetches financial statements, fundamentals and recent news for a ticker,
summarizes each with a language model and composes a final investment conclusion.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.LogLevel = "debug"
			}
			log, err := logger.New(cfg.LogLevel, cfg.Env)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			rt.cfg, rt.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.log != nil {
				_ = rt.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: serve the web form
			return rt.serve(cmd, "")
		},
	}

	rootCmd.AddCommand(newServeCmd(rt))
	rootCmd.AddCommand(newAnalyzeCmd(rt))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(rt))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

func newServeCmd(rt *commandEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			return rt.serve(cmd, addr)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides HTTP_ADDR)")
	return cmd
}

func (rt *commandEnv) serve(cmd *cobra.Command, addr string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := rt.build(ctx, rt.cfg, rt.log)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = rt.cfg.HTTPAddr
	}

	DisplayWelcomeBanner(cmd.OutOrStdout())
	srv := web.NewServer(web.ServerConfig{
		Addr:       addr,
		Version:    Version,
		RunTimeout: rt.cfg.RunTimeout,
	}, engine, rt.log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	displayInfo(cmd.OutOrStdout(), fmt.Sprintf("Listening on %s", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newAnalyzeCmd(rt *commandEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [SYMBOL]",
		Short: "Run one analysis for a stock symbol",
		Long: `Run one analysis for a stock ticker symbol and print the summaries and conclusion.
Without SYMBOL you are prompted for one.
Example: stockanalyzer analyze AAPL --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var symbol string
			if len(args) == 1 {
				symbol = args[0]
			} else {
				var err error
				if symbol, err = PromptForTicker(); err != nil {
					return err
				}
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			return rt.analyze(cmd, symbol, asJSON)
		},
	}

	cmd.Flags().Bool("json", false, "Print the raw record as JSON")
	return cmd
}

func (rt *commandEnv) analyze(cmd *cobra.Command, symbol string, asJSON bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	engine, err := rt.build(ctx, rt.cfg, rt.log)
	if err != nil {
		return err
	}

	if !asJSON {
		displayInfo(out, fmt.Sprintf("🚀 Starting analysis for %s", symbol))
	}
	rec, err := engine.Analyze(ctx, symbol)
	if err != nil {
		display.DisplayError(cmd.ErrOrStderr(), err, "analysis")
		return fmt.Errorf("analysis failed: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	display.NewResultsDisplay(out).Show(rec)
	return nil
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// no config needed
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stockanalyzer %s\n", Version)
		},
	}
}

func newConfigCmd(rt *commandEnv) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rt.cfg.Redacted())
		},
	})

	return configCmd
}
