package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"examcraft/internal/config"
	"examcraft/internal/database"
	"examcraft/internal/importer"
	"examcraft/internal/logger"
	"examcraft/internal/repository"
	"examcraft/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "import_questions",
		Short:        "Bulk import questions from a CSV or JSON file",
		SilenceUsage: true,
		RunE:         runImport,
	}
	f := cmd.Flags()
	f.StringP("file", "f", "", "Path to the CSV or JSON file (required)")
	f.String("format", "", "File format: csv or json (default: from the file extension)")
	f.String("db", "", "SQLite database path (overrides db.path)")
	f.Bool("migrate", true, "Apply pending migrations before importing")
	f.Bool("template", false, "Print the CSV template and exit")
	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	if tmpl, _ := cmd.Flags().GetBool("template"); tmpl {
		_, err := fmt.Fprint(cmd.OutOrStdout(), importer.TemplateCSV)
		return err
	}

	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return fmt.Errorf("--file is required")
	}
	formatHint, _ := cmd.Flags().GetString("format")
	if formatHint == "" && strings.EqualFold(filepath.Ext(path), ".json") {
		formatHint = string(importer.FormatJSON)
	}
	format, err := importer.ParseFormat(formatHint)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		cfg.DB.Driver = config.DriverSQLite
		cfg.DB.Path = dbPath
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	l := logger.Get()

	db, err := database.NewDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
		if err := database.RunMigrations(db); err != nil {
			return err
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	imports := service.NewImportService(
		repository.NewTransactionManagerAdapter(db),
		repository.NewQuestionDatabaseAdapter(db),
		repository.NewSubjectDatabaseAdapter(db),
	)
	report, err := imports.Import(ctx, format, file)
	if err != nil {
		return err
	}
	l.Info("Import finished",
		zap.String("file", path),
		zap.String("format", string(format)),
		zap.Int("inserted", report.Inserted),
		zap.Int("rejected", len(report.Errors)))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
