package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"
)

// ActivityRepo provides persistence operations for activity entries.
type ActivityRepo struct {
	db *pgxpool.Pool
}

func NewActivityRepo(db *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// List returns every activity newest first. The staleness evaluator
// relies on this ordering for its first-occurrence tie break.
func (r *ActivityRepo) List(ctx context.Context) ([]domain.Activity, error) {
	const q = `
select id::text, project_id::text, user_id::text, created_at, text
from activities
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Activity, 0, 64)
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.UserID, &a.CreatedAt, &a.Text); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ActivityRepo) Create(ctx context.Context, projectID, userID, text string) (*domain.Activity, error) {
	if text == "" {
		return nil, fmt.Errorf("text required")
	}

	const q = `
insert into activities (id, project_id, user_id, text)
values ($1::uuid, $2::uuid, $3::uuid, $4)
returning id::text, project_id::text, user_id::text, created_at, text;
`
	var a domain.Activity
	err := r.db.QueryRow(ctx, q, uuid.New().String(), projectID, userID, text).
		Scan(&a.ID, &a.ProjectID, &a.UserID, &a.CreatedAt, &a.Text)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActivityRepo) UpdateText(ctx context.Context, id, text string) (*domain.Activity, error) {
	if text == "" {
		return nil, fmt.Errorf("text required")
	}

	const q = `
update activities
set text = $2
where id = $1::uuid
returning id::text, project_id::text, user_id::text, created_at, text;
`
	var a domain.Activity
	err := r.db.QueryRow(ctx, q, id, text).
		Scan(&a.ID, &a.ProjectID, &a.UserID, &a.CreatedAt, &a.Text)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ActivityRepo) Delete(ctx context.Context, id string) (bool, error) {
	const q = `delete from activities where id = $1::uuid;`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
