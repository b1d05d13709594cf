package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/zenchef/salesforce-data-utils/pkg/enrich"
	"github.com/zenchef/salesforce-data-utils/pkg/enrich/schema/postgres"
	"go.uber.org/zap"
)

const pageSize = 1000

// Re-cleans every stored price so legacy rows holding raw amounts or
// ranges end up with the "$".."$$$$" picklist format.
func main() {
	dryRun := flag.Bool("dry-run", false, "Report what would change without writing")
	flag.Parse()

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
	ctx := context.Background()

	offset := 0
	totalProcessed := 0
	totalUpdated := 0

	for {
		prices, err := store.ListPrices(ctx, pageSize, offset)
		if err != nil {
			logger.Error("Failed to fetch price page", zap.Error(err), zap.Int("offset", offset))
			fmt.Fprintf(os.Stderr, "Failed to fetch price page: %v\n", err)
			os.Exit(1)
		}
		if len(prices) == 0 {
			break
		}

		for _, p := range prices {
			totalProcessed++
			if p.Price == "" {
				continue
			}

			cleaned := enrich.CleanPrice(p.Price)
			if cleaned == "" || cleaned == p.Price {
				continue
			}

			logger.Info("Updating price format",
				zap.String("account_id", p.AccountID),
				zap.String("old", p.Price),
				zap.String("new", cleaned))

			if !*dryRun {
				if err := store.UpdatePrice(ctx, p.AccountID, cleaned); err != nil {
					logger.Error("Failed to update price",
						zap.String("account_id", p.AccountID),
						zap.Error(err))
					continue
				}
			}
			totalUpdated++
		}

		offset += len(prices)
		if len(prices) < pageSize {
			break
		}
	}

	logger.Info("Price format migration complete",
		zap.Int("processed", totalProcessed),
		zap.Int("updated", totalUpdated),
		zap.Bool("dry_run", *dryRun))
	fmt.Printf("Processed %d rows, updated %d prices.\n", totalProcessed, totalUpdated)
}
