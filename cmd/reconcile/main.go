// reconcile runs the finance reconciliation sweep once and prints the
// report. Safe to rerun: the sweep only backfills deposit records that are
// still missing.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/reconcile
package main

import (
	"context"
	"fmt"
	"os"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
	"bitbucket.org/mmdatafocus/bridal_backend/utils"
	"bitbucket.org/mmdatafocus/bridal_backend/workflow"
)

func main() {
	ctx := utils.SetUserNameInContext(context.Background(), "reconcile-cli")

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized. Set DB_* env vars.")
		os.Exit(1)
	}
	config.ConnectRedis()

	report, err := workflow.RunReconciliation(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reconciliation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("created %d deposit records\n", report.Created)
	if len(report.Failed) > 0 {
		fmt.Printf("failed candidates:\n")
		for _, ref := range report.Failed {
			fmt.Printf("  %s #%d\n", ref.Kind, ref.ID)
		}
		os.Exit(2)
	}
}
