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

// ProjectRepo provides persistence operations for projects.
type ProjectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepo(db *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// List returns all projects ordered by title, the order every view and
// export consumes them in.
func (r *ProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	const q = `
select id::text, title, coalesce(subtitle, ''),
       to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD')
from projects
order by title asc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Subtitle, &p.StartDate, &p.EndDate); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepo) Create(ctx context.Context, title, subtitle, startDate, endDate string) (*domain.Project, error) {
	if title == "" {
		return nil, fmt.Errorf("title required")
	}

	const q = `
insert into projects (id, title, subtitle, start_date, end_date)
values ($1::uuid, $2, nullif($3, ''), $4::date, $5::date)
returning id::text, title, coalesce(subtitle, ''),
          to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD');
`
	var p domain.Project
	err := r.db.QueryRow(ctx, q, uuid.New().String(), title, subtitle, startDate, endDate).
		Scan(&p.ID, &p.Title, &p.Subtitle, &p.StartDate, &p.EndDate)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update changes a project's title and subtitle. An empty subtitle clears
// the stored one.
func (r *ProjectRepo) Update(ctx context.Context, id, title, subtitle string) (*domain.Project, error) {
	const q = `
update projects
set title = $2, subtitle = nullif($3, '')
where id = $1::uuid
returning id::text, title, coalesce(subtitle, ''),
          to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD');
`
	var p domain.Project
	err := r.db.QueryRow(ctx, q, id, title, subtitle).
		Scan(&p.ID, &p.Title, &p.Subtitle, &p.StartDate, &p.EndDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes a project. Linked activities go with it via the schema's
// cascade rule.
func (r *ProjectRepo) Delete(ctx context.Context, id string) (bool, error) {
	const q = `delete from projects where id = $1::uuid;`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
