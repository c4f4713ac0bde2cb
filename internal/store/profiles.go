package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"
)

// ProfileRepo provides persistence operations for collaborator profiles.
// Account creation and credentials live in the external auth provider;
// this repo only reads and edits the display attributes.
type ProfileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepo(db *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	const q = `
select id::text, coalesce(email, ''), coalesce(name, ''), coalesce(color, ''), role
from profiles
order by name asc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Profile, 0, 16)
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.Name, &p.Color, &p.Role); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepo) Get(ctx context.Context, id string) (*domain.Profile, error) {
	const q = `
select id::text, coalesce(email, ''), coalesce(name, ''), coalesce(color, ''), role
from profiles
where id = $1::uuid;
`
	var p domain.Profile
	err := r.db.QueryRow(ctx, q, id).Scan(&p.ID, &p.Email, &p.Name, &p.Color, &p.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update edits the display attributes an admin manages: name, accent
// color and role.
func (r *ProfileRepo) Update(ctx context.Context, id, name, color string, role domain.Role) (*domain.Profile, error) {
	const q = `
update profiles
set name = $2, color = $3, role = $4
where id = $1::uuid
returning id::text, coalesce(email, ''), coalesce(name, ''), coalesce(color, ''), role;
`
	var p domain.Profile
	err := r.db.QueryRow(ctx, q, id, name, color, string(role)).
		Scan(&p.ID, &p.Email, &p.Name, &p.Color, &p.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
