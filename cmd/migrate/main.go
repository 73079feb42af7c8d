// Command migrate creates the console's audit schema and applies the
// retention policy.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kloudinfotech/helpdesk-console/internal/pkg/logger"
	"github.com/kloudinfotech/helpdesk-console/internal/repository/postgres"
)

func main() {
	dsn := pflag.String("database-url", os.Getenv("DATABASE_URL"), "Postgres URL (default $DATABASE_URL)")
	pruneDays := pflag.Int("prune-days", 0, "delete audit entries older than this many days; 0 keeps everything")
	status := pflag.Bool("status", false, "print the audit table status and exit")
	pflag.Parse()

	if *dsn == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, *dsn, 2)
	if err != nil {
		logger.Error("connect failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	repo := postgres.NewAuditRepo(db)

	if !*status {
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Error("migration failed", "error", err)
			os.Exit(1)
		}
		logger.Info("audit schema is up to date")
	}

	if *pruneDays > 0 && !*status {
		n, err := repo.Prune(ctx, time.Duration(*pruneDays)*24*time.Hour)
		if err != nil {
			logger.Error("prune failed", "error", err)
			os.Exit(1)
		}
		logger.Info("pruned audit entries", "deleted", n, "older_than_days", *pruneDays)
	}

	count, newest, err := repo.Stats(ctx)
	if err != nil {
		logger.Error("status failed", "error", err)
		os.Exit(1)
	}
	last := "never"
	if !newest.IsZero() {
		last = newest.Format(time.RFC3339)
	}
	fmt.Printf("console_audit_log: %d entries, newest %s\n", count, last)
}
