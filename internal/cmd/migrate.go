package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sadisms/stack-radar/internal/migration"
)

var (
	migrationsDir string
	migrateTarget string
	migrateSteps  int
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migrations",
}

// withManager connects the manager to the database and runs fn.
func withManager(fn func(ctx context.Context, m *migration.Manager) error) error {
	_, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()
	defer db.Close(log)

	manager := migration.NewManager(migration.NewStore(db), migrationsDir, os.Stdout, os.Stdin)
	return fn(context.Background(), manager)
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *migration.Manager) error {
			return m.Status(ctx)
		})
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *migration.Manager) error {
			return m.Up(ctx, migrateTarget)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *migration.Manager) error {
			return m.Down(ctx, migrateSteps)
		})
	},
}

var migrateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Rollback all migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *migration.Manager) error {
			return m.Reset(ctx, migrateForce)
		})
	},
}

var migrateCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create new migration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Creating files needs no database connection.
		manager := migration.NewManager(nil, migrationsDir, os.Stdout, os.Stdin)
		return manager.Create(args[0])
	},
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrationsDir, "dir", "migrations", "Migrations directory")
	migrateUpCmd.Flags().StringVar(&migrateTarget, "target", "", "Target migration version")
	migrateDownCmd.Flags().IntVar(&migrateSteps, "steps", 1, "Number of steps to rollback")
	migrateResetCmd.Flags().BoolVar(&migrateForce, "force", false, "Skip confirmation")

	migrateCmd.AddCommand(migrateStatusCmd, migrateUpCmd, migrateDownCmd, migrateResetCmd, migrateCreateCmd)
	rootCmd.AddCommand(migrateCmd)
}
