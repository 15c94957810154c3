package commands

import (
	"fmt"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update every table",
	Long: `Runs gorm AutoMigrate for every model. Columns are added, never dropped.

Examples:
  jpctl migrate
  jpctl migrate --db postgres://localhost/jp_performance -v`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := db.WithContext(cmd.Context()).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Migrated %d tables\n", len(models.All()))
		return nil
	},
}
