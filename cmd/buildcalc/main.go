// buildcalc computes the statistics of character builds.
//
// Usage:
//
//	go run ./cmd/buildcalc builds/fire_kin.yaml builds/shield_scrapper.yaml
//	go run ./cmd/buildcalc -summary builds/*.yaml
//	go run ./cmd/buildcalc -import data   # copy table files into the database
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/buildcalc/internal/config"
	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/db"
	"github.com/udisondev/buildcalc/internal/game/build"
	"github.com/udisondev/buildcalc/internal/game/totals"
)

const ConfigPath = "config/buildcalc.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := flag.String("config", ConfigPath, "calculator config file")
	importDir := flag.String("import", "", "import table files from this directory into the database and exit")
	summary := flag.Bool("summary", false, "print formatted summaries instead of full reports")
	flag.Parse()

	if p := os.Getenv("BUILDCALC_CONFIG"); p != "" && *cfgPath == ConfigPath {
		*cfgPath = p
	}
	cfg, err := config.LoadCalculator(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("buildcalc starting",
		"log_level", cfg.LogLevel,
		"table_source", cfg.TableSource,
		"pv_mode", cfg.PvMode,
		"workers", cfg.Workers)

	if *importDir != "" {
		return importTables(ctx, cfg, *importDir)
	}

	tables, err := loadTables(ctx, cfg)
	if err != nil {
		return fmt.Errorf("loading tables: %w", err)
	}

	if flag.NArg() == 0 {
		return fmt.Errorf("no build files given")
	}
	builds := make([]build.Build, 0, flag.NArg())
	for _, path := range flag.Args() {
		b, err := build.LoadFile(path)
		if err != nil {
			return err
		}
		builds = append(builds, b)
	}

	calc := build.NewCalculator(tables, build.Options{
		PvMode:        cfg.PvMode,
		Heuristic:     cfg.DamageHeuristic,
		ProcBreakdown: cfg.ProcBreakdown,
	})
	reports, err := build.CalculateAll(ctx, calc, builds, cfg.Workers)
	if err != nil {
		return fmt.Errorf("calculating builds: %w", err)
	}
	slog.Info("builds calculated", "count", len(reports))

	return printReports(reports, *summary)
}

func loadTables(ctx context.Context, cfg config.Calculator) (*data.Tables, error) {
	switch cfg.TableSource {
	case config.SourceFile:
		return data.LoadTables(ctx, cfg.DataDir)
	case config.SourceDatabase:
		database, err := connect(ctx, cfg, cfg.Migrate)
		if err != nil {
			return nil, err
		}
		defer database.Close()
		return database.Tables().LoadTables(ctx)
	}
	slog.Info("using builtin tables")
	return data.BuiltinTables(), nil
}

func importTables(ctx context.Context, cfg config.Calculator, dir string) error {
	tables, err := data.LoadTables(ctx, dir)
	if err != nil {
		return fmt.Errorf("loading table files: %w", err)
	}

	database, err := connect(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer database.Close()

	return database.Tables().ImportTables(ctx, tables)
}

func connect(ctx context.Context, cfg config.Calculator, migrate bool) (*db.DB, error) {
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	slog.Info("database connected", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)

	if migrate {
		version, err := db.RunMigrations(ctx, database.Pool())
		if err != nil {
			database.Close()
			return nil, err
		}
		slog.Info("database migrations applied", "version", version)
	}
	return database, nil
}

func printReports(reports []totals.Report, summary bool) error {
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	enc.SetIndent(2)

	for _, r := range reports {
		var doc any = r
		if summary {
			doc = map[string]any{"build": r.Build, "summary": r.Summary()}
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("writing report %q: %w", r.Build, err)
		}
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
