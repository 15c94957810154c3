package commands

import (
	"fmt"
	"os"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Global flags
	envFile string
	dbURL   string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "jpctl",
	Short: "JP Performance Cars maintenance CLI",
	Long: `jpctl runs one-off maintenance tasks against the shop database.

Commands:
  migrate         - Create or update every table
  seed-admin      - Create the first super admin
  import-obd      - Load OBD codes and solutions from a YAML catalog
  prune-sessions  - Delete expired admin sessions`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile == "" {
			return nil
		}
		if err := godotenv.Overload(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file before running")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log SQL statements")

	rootCmd.AddCommand(migrateCmd, seedAdminCmd, importOBDCmd, pruneSessionsCmd)
}

func openDB() (*gorm.DB, error) {
	url := dbURL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return nil, fmt.Errorf("--db or DATABASE_URL: %w", config.ErrMissingSetting)
	}
	return config.OpenGorm(url, !verbose)
}
