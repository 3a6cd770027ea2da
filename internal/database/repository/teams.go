package repository

import (
	"context"
	"database/sql"
	"strings"
)

// TeamRepo handles teams and their schedule aliases.
type TeamRepo struct {
	db *sql.DB
}

func NewTeamRepo(db *sql.DB) *TeamRepo {
	return &TeamRepo{db: db}
}

func (r *TeamRepo) Upsert(ctx context.Context, t Team) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO teams(id, code, name, city)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 code=excluded.code,
	 name=excluded.name,
	 city=excluded.city;
	`, t.ID, t.Code, t.Name, t.City)
	return err
}

func (r *TeamRepo) List(ctx context.Context) ([]Team, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, code, name, city FROM teams ORDER BY city, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.City); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ByCode returns sql.ErrNoRows when no team has the code.
func (r *TeamRepo) ByCode(ctx context.Context, code string) (Team, error) {
	var t Team
	err := r.db.QueryRowContext(ctx, `SELECT id, code, name, city FROM teams WHERE code = ?`,
		strings.ToUpper(strings.TrimSpace(code))).Scan(&t.ID, &t.Code, &t.Name, &t.City)
	return t, err
}

// AddAlias maps alias to a team. Re-adding an alias repoints it.
func (r *TeamRepo) AddAlias(ctx context.Context, alias, teamID string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO team_aliases(alias, team_id) VALUES (?, ?)
	ON CONFLICT(alias) DO UPDATE SET team_id=excluded.team_id;
	`, strings.TrimSpace(alias), teamID)
	return err
}

// Aliases returns every alias keyed by its lower-cased spelling.
func (r *TeamRepo) Aliases(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT alias, team_id FROM team_aliases`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var alias, id string
		if err := rows.Scan(&alias, &id); err != nil {
			return nil, err
		}
		out[strings.ToLower(alias)] = id
	}
	return out, rows.Err()
}
