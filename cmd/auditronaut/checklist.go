package main

import (
	"github.com/spf13/cobra"

	"github.com/bryanwahyu/auditronaut/internal/application/audits"
	"github.com/bryanwahyu/auditronaut/internal/config"
	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
)

func loadCatalog(cfg *config.Config) (*checklist.Catalog, error) {
	if cfg.Audit.ChecklistPath == "" {
		return checklist.DefaultCatalog(), nil
	}
	return checklist.LoadCatalog(cfg.Audit.ChecklistPath)
}

func newChecklistCommand(a *app) *cobra.Command {
	var scope []string
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Print the active checklist as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := loadCatalog(a.cfg)
			if err != nil {
				return err
			}
			items := catalog.Items()
			if len(scope) > 0 {
				svc := &audits.Service{Catalog: catalog}
				frameworks, err := svc.ParseScope(scope)
				if err != nil {
					return err
				}
				items = catalog.ForScope(frameworks)
			}
			return checklist.EncodeCatalog(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().StringSliceVar(&scope, "scope", nil, "only questions tagged with these frameworks, e.g. --scope PCI,ITSM")
	return cmd
}
