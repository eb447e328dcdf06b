package cli

import (
	"log"

	"github.com/spf13/cobra"

	"trivia-client/internal/config"
	"trivia-client/internal/infra/postgres"
)

// NewMigrateCmd applies database migrations for the postgres store.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			group, err := postgres.Migrate(cmd.Context(), cfg.Postgres.URL)
			if err != nil {
				return err
			}
			if group.IsZero() {
				log.Printf("no new migrations")
				return nil
			}
			log.Printf("migrated to %s", group)
			return nil
		},
	}
}
