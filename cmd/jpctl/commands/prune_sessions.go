package commands

import (
	"fmt"

	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/spf13/cobra"
)

var pruneSessionsCmd = &cobra.Command{
	Use:   "prune-sessions",
	Short: "Delete expired admin sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		removed, err := services.NewAdminSessionService(db).CleanupExpiredSessions(cmd.Context())
		if err != nil {
			return fmt.Errorf("prune sessions: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Removed %d expired sessions\n", removed)
		return nil
	},
}
