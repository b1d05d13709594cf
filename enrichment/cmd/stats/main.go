package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/zenchef/salesforce-data-utils/pkg/enrich/schema/postgres"
	"go.uber.org/zap"
)

// Prints how many stored enrichment results exist per status.
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbCfg := postgres.NewConfig()
	db, err := postgres.New(dbCfg, logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	store := postgres.NewResultStore(db, logger)

	counts, err := store.StatusCounts(context.Background())
	if err != nil {
		logger.Error("Failed to fetch status counts", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to fetch status counts: %v\n", err)
		os.Exit(1)
	}

	statuses := make([]string, 0, len(counts))
	total := 0
	for status, n := range counts {
		statuses = append(statuses, status)
		total += n
	}
	sort.Strings(statuses)

	fmt.Printf("Enrichment results by status:\n")
	for _, status := range statuses {
		fmt.Printf("  %-22s %d\n", status, counts[status])
	}
	fmt.Printf("  %-22s %d\n", "TOTAL", total)
}
