// seed-admin creates the boutique admin user if it does not exist yet.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
package main

import (
	"context"
	"fmt"
	"os"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
	"bitbucket.org/mmdatafocus/bridal_backend/models"
	"bitbucket.org/mmdatafocus/bridal_backend/utils"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized. Set DB_* env vars.")
		os.Exit(1)
	}
	if err := models.MigrateAll(db); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "boutiqueAdmin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_PASSWORD is required")
		os.Exit(1)
	}

	ctx = utils.SetUserNameInContext(ctx, "seed")

	if _, err := models.GetUserByUsername(ctx, username); err == nil {
		fmt.Printf("user %s already exists, nothing to do\n", username)
		return
	}

	user, err := models.CreateUser(ctx, &models.NewUser{
		Username: username,
		Name:     "Boutique Admin",
		Password: password,
		Role:     "admin",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("created admin user %s (id=%d)\n", user.Username, user.ID)
}
