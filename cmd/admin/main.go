// Command admin is the operator CLI. Registration through the API never
// yields an admin, so promoting moderators happens here, against the
// same database the server uses.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agoraforum/agora/internal/db"
	"github.com/agoraforum/agora/pkg/config"
	"github.com/agoraforum/agora/pkg/logging"
)

func main() {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Operator tasks for the Agora forum",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(migrateCmd(), promoteCmd(), demoteCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openDatabase() (*db.DB, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return db.New(&cfg.Database, cfg.Logging.Level)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the user, post and comment tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.Migrate(); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("Migrations complete.")
			return nil
		},
	}
}

func promoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <email>",
		Short: "Grant the admin flag to a registered user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setAdmin(args[0], true)
		},
	}
}

func demoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demote <email>",
		Short: "Remove the admin flag from a registered user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setAdmin(args[0], false)
		},
	}
}

func setAdmin(email string, isAdmin bool) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := context.Background()
	users := db.NewUserRepository(db.NewRepository(database.DB))

	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("no user registered as %s", email)
	}

	if err := users.SetAdmin(ctx, user.ID, isAdmin); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	fmt.Printf("User %s is_admin=%v\n", email, isAdmin)
	return nil
}
