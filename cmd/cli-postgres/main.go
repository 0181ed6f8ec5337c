package main

import (
	"context"
	"fmt"

	"github.com/marcelsud/local-library/catalog"
	"github.com/marcelsud/local-library/catalog/postgres"
	"github.com/marcelsud/local-library/config"
	"github.com/marcelsud/local-library/metrics"
)

/*
CLI PostgreSQL - prepares the catalog database and reports what is in it

Run with:
  go run cmd/cli-postgres/main.go

Make sure that:
1. PostgreSQL is running
2. .env (or the environment) has the POSTGRES_* variables
*/

func main() {
	// 1. Load configuration
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Printf("❌ Error loading config: %v\n", err)
		return
	}

	// 1a. Validate PostgreSQL configuration
	if err := cfg.ValidatePostgres(); err != nil {
		fmt.Printf("❌ Configuration validation failed: %v\n", err)
		return
	}

	ctx := context.Background()

	// 2. Connect to PostgreSQL
	fmt.Printf("🔗 Connecting to PostgreSQL at %s:%s...\n", cfg.PostgresHost, cfg.PostgresPort)
	repo, err := postgres.NewRepositoryWithPoolConfig(
		cfg.PostgresConnectionString(),
		cfg.GetPostgresMaxOpenConns(),
		cfg.GetPostgresMaxIdleConns(),
		cfg.GetPostgresConnMaxLifeMinutes(),
	)
	if err != nil {
		fmt.Printf("❌ Error connecting to PostgreSQL: %v\n", err)
		return
	}
	defer repo.Close(ctx)
	fmt.Println("✅ Connected to PostgreSQL!")

	// 3. Create tables
	if err := repo.CreateTables(ctx); err != nil {
		fmt.Printf("❌ Error creating tables: %v\n", err)
		return
	}
	fmt.Println("✅ Tables ready")

	// 4. Report catalog contents
	m, err := metrics.NewCatalogCollector(repo).Collect(ctx)
	if err != nil {
		fmt.Printf("❌ Error reading catalog: %v\n", err)
		return
	}
	fmt.Println("\n📚 Catalog:")
	fmt.Printf("   Authors: %d\n", m.Authors)
	fmt.Printf("   Books:   %d\n", m.Books)
	for _, s := range []catalog.Status{catalog.Available, catalog.OnLoan, catalog.Maintenance, catalog.Reserved} {
		fmt.Printf("   %-12s %d\n", s.String()+":", m.StatusCounts[catalog.PartitionOf(s).String()])
	}

	// 5. Show the loans due first
	loans, err := catalog.NewService(repo).ListPartition(ctx, catalog.PartitionOnLoan, "")
	if err != nil {
		fmt.Printf("❌ Error listing loans: %v\n", err)
		return
	}
	fmt.Println("\n⏰ Due first:")
	if len(loans) == 0 {
		fmt.Println("   (no loans)")
	}
	for _, i := range loans[:min(len(loans), 5)] {
		due := "-"
		if i.DueBack != nil {
			due = i.DueBack.Format(catalog.DateLayout)
		}
		fmt.Printf("   [%s] book %d due %s (%s)\n", i.ID, i.BookID, due, i.Borrower)
	}

	fmt.Println("\n✅ CLI completed successfully!")
}
