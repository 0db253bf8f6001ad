package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/voicenote/internal/infrastructure/database"
)

var (
	migrateDown bool
	migrateMax  int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
	Long: `Apply the embedded SQL migrations to the database configured by DB_DRIVER
and friends, or roll them back with --down.

Examples:
  voicenote migrate
  voicenote migrate --down --max 1
  DB_DRIVER=sqlite DB_PATH=dev.db voicenote migrate`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "roll back instead of applying")
	migrateCmd.Flags().IntVar(&migrateMax, "max", 1, "migrations to roll back with --down (0 = all)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer database.CloseDB(db)

	out := cmd.OutOrStdout()
	if migrateDown {
		n, err := database.Rollback(db, cfg.Database.Driver, migrateMax)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Rolled back %d migration(s)\n", n)
		return nil
	}

	n, err := database.Migrate(db, cfg.Database.Driver, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Applied %d migration(s)\n", n)
	return nil
}
