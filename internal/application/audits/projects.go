package audits

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
)

// CreateProject registers a project under an organization. Names are unique
// across organizations.
func (s *Service) CreateProject(ctx context.Context, organization, name string) (*audit.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, audit.ErrProjectNameEmpty
	}
	organization = strings.TrimSpace(organization)
	if organization == "" {
		organization = s.Options.DefaultOrganization
	}
	p := &audit.Project{Organization: organization, Name: name}
	if err := s.Store.CreateProject(ctx, p); err != nil {
		return nil, err
	}
	s.log().Info("project created", zap.String("organization", organization), zap.String("project", name))
	return p, nil
}

// ListProjects groups project names by organization. An empty store is first
// seeded with the configured default projects.
func (s *Service) ListProjects(ctx context.Context) (map[string][]string, error) {
	projects, err := s.Store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 && len(s.Options.DefaultProjects) > 0 {
		for _, name := range s.Options.DefaultProjects {
			p := &audit.Project{Organization: s.Options.DefaultOrganization, Name: name}
			if err := s.Store.CreateProject(ctx, p); err != nil && !errors.Is(err, audit.ErrProjectExists) {
				return nil, err
			}
		}
		if projects, err = s.Store.ListProjects(ctx); err != nil {
			return nil, err
		}
	}

	grouped := make(map[string][]string)
	for _, p := range projects {
		grouped[p.Organization] = append(grouped[p.Organization], p.Name)
	}
	return grouped, nil
}
