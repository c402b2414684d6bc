// Command hdidash serves the HDI dashboard and exports cleaned snapshots.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hdidash/internal/chart"
	"hdidash/internal/config"
	"hdidash/internal/indicators"
	"hdidash/internal/logging"
	"hdidash/internal/report"
	"hdidash/internal/server"
	"hdidash/internal/snapshot"
)

// app is the state shared by subcommands once the root pre-run has finished.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fatalf("hdidash: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "hdidash",
		Short:         "Human Development Index dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = a.logLevel
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error); overrides HDIDASH_LOG_LEVEL")
	root.AddCommand(newServeCmd(a), newExportCmd(a))
	return root
}

func newServeCmd(a *app) *cobra.Command {
	var (
		port      int
		host      string
		dataDir   string
		snap      string
		cacheSize int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("host") {
				cfg.Host = host
			}
			if flags.Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if flags.Changed("snapshot") {
				cfg.Snapshot = snap
			}
			if flags.Changed("cache-size") {
				cfg.CacheSize = cacheSize
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ds, err := loadDataset(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			stats := ds.Stats()
			a.logger.Info("dataset loaded",
				zap.Int("raw_rows", stats.RawRows),
				zap.Int("clean_rows", stats.CleanRows),
				zap.Int("dropped_rows", stats.Dropped()),
				zap.Int("entities", stats.Entities),
			)

			renderer, err := chart.NewRenderer(ds, cfg.CacheSize)
			if err != nil {
				return err
			}
			srv := server.New(renderer, a.logger)
			if err := server.Run(cmd.Context(), cfg.Addr(), srv.Handler(), a.logger); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&port, "port", 10000, "HTTP port; overrides PORT")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "Bind host; overrides HDIDASH_HOST")
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "Directory holding the source CSV files; overrides HDIDASH_DATA_DIR")
	cmd.Flags().StringVar(&snap, "snapshot", "", "SQLite snapshot to load instead of the CSV files; overrides HDIDASH_SNAPSHOT")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 256, "Rendered figure cache entries (0 disables); overrides HDIDASH_CACHE_SIZE")
	return cmd
}

func loadDataset(ctx context.Context, cfg config.Config) (*indicators.Dataset, error) {
	if cfg.Snapshot != "" {
		ds, err := snapshot.Load(ctx, cfg.Snapshot)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		return ds, nil
	}
	ds, err := indicators.LoadDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, nil
}

func newExportCmd(a *app) *cobra.Command {
	var (
		dataDir     string
		outDir      string
		csvPath     string
		sqlitePath  string
		profilePath string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Clean the source CSVs and write a cleaned CSV, a SQLite snapshot and a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("data-dir") {
				dataDir = a.cfg.DataDir
			}
			if csvPath == "" {
				csvPath = filepath.Join(outDir, "hdi_cleaned.csv")
			}
			if sqlitePath == "" {
				sqlitePath = filepath.Join(outDir, "hdi_cleaned.sqlite")
			}
			if profilePath == "" {
				profilePath = filepath.Join(outDir, "hdi_profile.md")
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("mkdir outputs: %w", err)
			}

			ds, err := indicators.LoadDir(dataDir)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			if err := writeCleanedCSV(csvPath, ds); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
			if err := snapshot.Write(cmd.Context(), sqlitePath, ds); err != nil {
				return fmt.Errorf("write sqlite: %w", err)
			}
			if err := os.WriteFile(profilePath, []byte(report.Profile(ds)), 0o644); err != nil {
				return fmt.Errorf("write profile: %w", err)
			}

			stats := ds.Stats()
			a.logger.Info("export finished",
				zap.String("csv", csvPath),
				zap.String("sqlite", sqlitePath),
				zap.String("profile", profilePath),
				zap.Int("clean_rows", stats.CleanRows),
			)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rows read: %d\n", stats.RawRows)
			fmt.Fprintf(out, "Rows written (cleaned): %d\n", stats.CleanRows)
			fmt.Fprintf(out, "Entities: %d\n", stats.Entities)
			fmt.Fprintf(out, "CSV: %s\n", csvPath)
			fmt.Fprintf(out, "SQLite: %s\n", sqlitePath)
			fmt.Fprintf(out, "Profile: %s\n", profilePath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "Directory holding the source CSV files")
	cmd.Flags().StringVar(&outDir, "out-dir", "outputs", "Output directory")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Cleaned CSV output path (default <out-dir>/hdi_cleaned.csv)")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite output path (default <out-dir>/hdi_cleaned.sqlite)")
	cmd.Flags().StringVar(&profilePath, "profile", "", "Profile markdown output path (default <out-dir>/hdi_profile.md)")
	return cmd
}

func writeCleanedCSV(path string, ds *indicators.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := indicators.WriteCSV(f, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fatalf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}
