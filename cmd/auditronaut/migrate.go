package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the audit tables for the configured database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, closeStore, err := openStore(cmd.Context(), a.cfg, true)
			if err != nil {
				return err
			}
			defer closeStore()
			a.logger.Info("schema applied", zap.String("driver", a.cfg.Database.Driver))
			return nil
		},
	}
}
