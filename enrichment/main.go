package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/zenchef/salesforce-data-utils/pkg/enrich"
	"github.com/zenchef/salesforce-data-utils/pkg/enrich/schema/postgres"
	sfrest "github.com/zenchef/salesforce-data-utils/pkg/salesforce/rest"
	"github.com/zenchef/salesforce-data-utils/pkg/serpapi"
	"go.uber.org/zap"
)

const defaultSyncLimit = 100

func main() {
	dryRun := flag.Bool("dry-run", false, "Run without modifying Salesforce")
	limit := flag.Int("limit", 0, "Limit the number of accounts to process (0 = no limit)")
	syncAfter := flag.Bool("sync", false, "Run synchronization to Salesforce after enrichment")
	syncOnly := flag.Bool("sync-only", false, "Run only the synchronization to Salesforce")
	csvAudit := flag.Bool("csv", false, "Write a per-run CSV audit log under data/")
	initSchema := flag.String("init-schema", "", "Path to a schema SQL file to apply before running")
	flag.Parse()

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Let in-flight workers finish their current account on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting enrichment",
		zap.Bool("dry_run", *dryRun),
		zap.Int("limit", *limit))

	// Load configuration
	sfCfg, err := sfrest.LoadConfig()
	if err != nil {
		logger.Error("Failed to load Salesforce config", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to load Salesforce config: %v\n", err)
		os.Exit(1)
	}

	serpCfg, err := serpapi.LoadConfig()
	if err != nil {
		logger.Error("Failed to load SERP API config", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to load SERP API config: %v\n", err)
		os.Exit(1)
	}

	// Initialize database connection
	dbCfg := postgres.NewConfig()
	db, err := postgres.New(dbCfg, logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if *initSchema != "" {
		if err := db.InitSchemaFromFile(ctx, *initSchema); err != nil {
			logger.Error("Failed to initialize schema", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Failed to initialize schema: %v\n", err)
			os.Exit(1)
		}
	}

	// Create clients and services
	sfClient := sfrest.NewSalesforceWithLogger(sfCfg, logger)
	serpClient := serpapi.NewClient(serpCfg, logger)
	store := postgres.NewResultStore(db, logger)
	syncSvc := enrich.NewSyncService(sfClient, store, logger)

	syncLimit := *limit
	if syncLimit <= 0 {
		syncLimit = defaultSyncLimit
	}

	// Sync-only mode skips enrichment entirely
	if *syncOnly {
		runSync(ctx, syncSvc, syncLimit, *dryRun, logger)
		return
	}

	var audit *enrich.AuditLog
	if *csvAudit {
		if err := os.MkdirAll("data", 0o755); err != nil {
			logger.Error("Failed to create data directory", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Failed to create data directory: %v\n", err)
			os.Exit(1)
		}
		path := filepath.Join("data",
			fmt.Sprintf("enrichment_%s.csv", time.Now().Format("20060102_150405")))
		audit, err = enrich.NewAuditLog(path)
		if err != nil {
			logger.Error("Failed to open audit log", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Failed to open audit log: %v\n", err)
			os.Exit(1)
		}
		defer audit.Close()
		logger.Info("Audit log enabled", zap.String("path", path))
	}

	svc := enrich.NewService(sfClient, serpClient, store, audit, logger)
	fetcher := enrich.NewFetcher(sfClient, svc, logger)

	processed, err := fetcher.Run(ctx, enrich.BatchOptions{
		DryRun: *dryRun,
		Limit:  *limit,
	})
	if err != nil {
		// Individual account failures are already recorded as results;
		// a loop-level error means the fetch itself broke. Report it and
		// still print what was processed.
		logger.Error("Enrichment loop error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Enrichment loop error: %v\n", err)
	}

	stats := svc.Stats()
	logger.Info("Enrichment finished",
		zap.Int("processed", processed),
		zap.Int("enriched", stats.Count(enrich.StatusEnriched)),
		zap.Int("no_result", stats.Count(enrich.StatusNoResult)),
		zap.Int("skipped", stats.Count(enrich.StatusSkipped)),
		zap.Int("skipped_sanity_check", stats.Count(enrich.StatusSkippedSanityCheck)),
		zap.Int("errors", stats.Count(enrich.StatusError)))

	fmt.Println("Enrichment finished.")
	fmt.Printf("Run Summary:\n")
	fmt.Printf("  Processed:            %d\n", processed)
	fmt.Printf("  Enriched:             %d\n", stats.Count(enrich.StatusEnriched))
	fmt.Printf("  No result:            %d\n", stats.Count(enrich.StatusNoResult))
	fmt.Printf("  Skipped:              %d\n", stats.Count(enrich.StatusSkipped))
	fmt.Printf("  Skipped sanity check: %d\n", stats.Count(enrich.StatusSkippedSanityCheck))
	fmt.Printf("  Errors:               %d\n", stats.Count(enrich.StatusError))

	if *syncAfter {
		runSync(ctx, syncSvc, syncLimit, *dryRun, logger)
	}
}

func runSync(ctx context.Context, syncSvc *enrich.SyncService, limit int, dryRun bool, logger *zap.Logger) {
	synced, failed, err := syncSvc.SyncPending(ctx, limit, dryRun)
	if err != nil {
		logger.Error("Sync failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Sync failed: %v\n", err)
		return
	}
	fmt.Printf("Sync complete. Synced: %d, Failed: %d\n", synced, failed)
}
