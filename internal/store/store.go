// Package store is the persistence collaborator for the reporting engine.
// It materializes the in-memory snapshot the pure pipeline consumes and
// carries the routine CRUD the admin and collaborator surfaces need.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"
)

// Store bundles the three repositories behind one handle.
type Store struct {
	Projects   *ProjectRepo
	Profiles   *ProfileRepo
	Activities *ActivityRepo
}

func New(db *pgxpool.Pool) *Store {
	return &Store{
		Projects:   NewProjectRepo(db),
		Profiles:   NewProfileRepo(db),
		Activities: NewActivityRepo(db),
	}
}

// Snapshot fetches the three collections as one consistent read-only view:
// projects by title, profiles by name, activities newest first. When
// selfID is set, the acting profile is resolved separately so it stays
// addressable even if profile visibility is scoped; an unknown selfID is
// tolerated and simply leaves Self nil.
func (s *Store) Snapshot(ctx context.Context, selfID string) (*domain.Snapshot, error) {
	projects, err := s.Projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	profiles, err := s.Profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	activities, err := s.Activities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	snap := &domain.Snapshot{
		Projects:   projects,
		Profiles:   profiles,
		Activities: activities,
	}

	if selfID != "" {
		self, err := s.Profiles.Get(ctx, selfID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("load acting profile: %w", err)
		}
		snap.Self = self
	}

	return snap, nil
}
