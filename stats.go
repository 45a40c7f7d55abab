package main

import (
	"os"

	"github.com/spf13/cobra"

	"placebook/models"
	"placebook/services"
	"placebook/storage"
)

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print catalog statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.statsSource()
			if err != nil {
				return err
			}
			insights := services.NewInsightService(a.logger)
			insights.Print(os.Stdout, insights.Generate(items))
			return nil
		},
	}
}

// statsSource reads the venues from PostgreSQL when the mirror is enabled,
// falling back to the list file.
func (a *app) statsSource() ([]models.Venue, error) {
	if a.cfg.PostgresEnabled {
		pg, err := storage.NewPostgresWriter(a.cfg.DSN())
		if err == nil {
			defer pg.Close()
			venues, err := pg.FetchAll()
			if err == nil {
				return venues, nil
			}
			a.logger.Error("[stats] Failed to fetch venues from DB: %v", err)
		} else {
			a.logger.Error("[stats] Failed to connect to PostgreSQL: %v", err)
		}
	}
	return a.listStore().Load()
}
