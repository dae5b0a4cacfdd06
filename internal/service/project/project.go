package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
	"github.com/Alijeyrad/taadol_backend/internal/repo"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	Name string
	// Sections are catalog names (or slugs) to attach right away.
	Sections []string
}

type Detail struct {
	schema.Project
	Sections []schema.ProjectSection `json:"sections"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context) ([]schema.Project, error)
	Get(ctx context.Context, id string) (*Detail, error)
	Create(ctx context.Context, req CreateRequest) (*Detail, error)
	Rename(ctx context.Context, id, name string) (*schema.Project, error)
	Delete(ctx context.Context, id string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type projectService struct {
	db *repo.Client
}

func New(db *repo.Client) Service {
	return &projectService{db: db}
}

func (s *projectService) List(ctx context.Context) ([]schema.Project, error) {
	ps, err := s.db.Projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return ps, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*Detail, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	p, err := s.db.Projects.Get(ctx, oid)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	secs, err := s.db.Sections.ListByProject(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("list project sections: %w", err)
	}
	return &Detail{Project: *p, Sections: secs}, nil
}

// canonicalSections resolves names and slugs, dropping repeats.
func canonicalSections(in []string) ([]string, error) {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, n := range in {
		name, ok := catalog.Canonical(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSection, n)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}

func (s *projectService) Create(ctx context.Context, req CreateRequest) (*Detail, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	sections, err := canonicalSections(req.Sections)
	if err != nil {
		return nil, err
	}

	p, err := s.db.Projects.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	out := &Detail{Project: *p, Sections: []schema.ProjectSection{}}
	for _, sn := range sections {
		sec, err := s.db.Sections.Create(ctx, p.ID, sn)
		if err != nil {
			return nil, fmt.Errorf("create section %s: %w", sn, err)
		}
		if !catalog.IsItemBearing(sn) {
			if _, err := s.db.Flat.Upsert(ctx, sn, sec.ID, map[string]schema.FlatField{}); err != nil {
				return nil, fmt.Errorf("create %s details: %w", sn, err)
			}
		}
		out.Sections = append(out.Sections, *sec)
	}
	return out, nil
}

func (s *projectService) Rename(ctx context.Context, id, name string) (*schema.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	p, err := s.db.Projects.Rename(ctx, oid, name)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rename project: %w", err)
	}
	return p, nil
}

// Delete removes the project with its sections, their details and the
// project's income and tax records.
func (s *projectService) Delete(ctx context.Context, id string) error {
	oid, err := repo.ParseID(id)
	if err != nil {
		return ErrNotFound
	}
	if _, err := s.db.Projects.Get(ctx, oid); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("get project: %w", err)
	}

	secs, err := s.db.Sections.ListByProject(ctx, oid)
	if err != nil {
		return fmt.Errorf("list project sections: %w", err)
	}
	sectionIDs := make([]bson.ObjectID, len(secs))
	for i, sec := range secs {
		sectionIDs[i] = sec.ID
	}

	if _, err := s.db.Items.DeleteBySections(ctx, sectionIDs); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	if _, err := s.db.Flat.DeleteBySections(ctx, sectionIDs); err != nil {
		return fmt.Errorf("delete details: %w", err)
	}
	if _, err := s.db.Sections.DeleteByProject(ctx, oid); err != nil {
		return fmt.Errorf("delete sections: %w", err)
	}
	if err := s.db.Incomes.DeleteByProject(ctx, oid); err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	if err := s.db.Taxes.DeleteByProject(ctx, oid); err != nil {
		return fmt.Errorf("delete tax: %w", err)
	}
	if err := s.db.Projects.Delete(ctx, oid); err != nil && !repo.IsNotFound(err) {
		return fmt.Errorf("delete project: %w", err)
	}

	slog.InfoContext(ctx, "project deleted", "project_id", id, "sections", len(secs))
	return nil
}
