package repository

import (
	"context"
	"database/sql"
)

// GameRepo handles the weekly schedule.
type GameRepo struct {
	db *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{db: db}
}

func (r *GameRepo) Upsert(ctx context.Context, g Game) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO games(id, week, visitor_id, home_id, kickoff, status, visitor_score, home_score, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 kickoff=excluded.kickoff,
	 status=excluded.status,
	 visitor_score=excluded.visitor_score,
	 home_score=excluded.home_score,
	 sort_order=excluded.sort_order;
	`, g.ID, g.Week, g.VisitorID, g.HomeID, g.Kickoff.UTC(), string(g.Status), g.VisitorScore, g.HomeScore, g.SortOrder)
	return err
}

// Exists reports whether a game with id is stored.
func (r *GameRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games WHERE id = ?`, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListWeek returns the week's games in schedule order with both teams joined.
func (r *GameRepo) ListWeek(ctx context.Context, week int) ([]Game, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT g.id, g.week, g.visitor_id, g.home_id, g.kickoff, g.status,
	       g.visitor_score, g.home_score, g.sort_order,
	       v.id, v.code, v.name, v.city,
	       h.id, h.code, h.name, h.city
	FROM games g
	JOIN teams v ON v.id = g.visitor_id
	JOIN teams h ON h.id = g.home_id
	WHERE g.week = ?
	ORDER BY g.sort_order, g.kickoff, g.id`, week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Game
	for rows.Next() {
		var g Game
		var status string
		if err := rows.Scan(&g.ID, &g.Week, &g.VisitorID, &g.HomeID, &g.Kickoff, &status,
			&g.VisitorScore, &g.HomeScore, &g.SortOrder,
			&g.Visitor.ID, &g.Visitor.Code, &g.Visitor.Name, &g.Visitor.City,
			&g.Home.ID, &g.Home.Code, &g.Home.Name, &g.Home.City); err != nil {
			return nil, err
		}
		g.Status = GameStatus(status)
		out = append(out, g)
	}
	return out, rows.Err()
}

// Weeks lists the weeks that have at least one game, ascending.
func (r *GameRepo) Weeks(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT week FROM games ORDER BY week`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var w int
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// UpdateStatus records live state and score. It returns sql.ErrNoRows for an unknown id.
func (r *GameRepo) UpdateStatus(ctx context.Context, id string, status GameStatus, visitorScore, homeScore int) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE games SET status = ?, visitor_score = ?, home_score = ? WHERE id = ?`,
		string(status), visitorScore, homeScore, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
