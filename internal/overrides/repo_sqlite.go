package overrides

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_overrides (
	user_id TEXT NOT NULL,
	param   TEXT NOT NULL,
	value   REAL NOT NULL,
	PRIMARY KEY (user_id, param)
);`

// SQLiteRepo persists user overrides in a local sqlite database.
type SQLiteRepo struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open overrides db %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init overrides schema: %w", err)
	}
	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Close() error { return r.db.Close() }

func (r *SQLiteRepo) Set(ctx context.Context, userID, param string, value float64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_overrides (user_id, param, value) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, param) DO UPDATE SET value = excluded.value`,
		userID, param, value)
	if err != nil {
		return fmt.Errorf("set override %s/%s: %w", userID, param, err)
	}
	return nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, userID, param string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM user_overrides WHERE user_id = ? AND param = ?`, userID, param)
	if err != nil {
		return fmt.Errorf("delete override %s/%s: %w", userID, param, err)
	}
	return nil
}

func (r *SQLiteRepo) Get(ctx context.Context, userID string) (Overrides, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT param, value FROM user_overrides WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("load overrides for %s: %w", userID, err)
	}
	defer rows.Close()

	out := Overrides{}
	for rows.Next() {
		var param string
		var value float64
		if err := rows.Scan(&param, &value); err != nil {
			return nil, fmt.Errorf("scan override row: %w", err)
		}
		out[param] = value
	}
	return out, rows.Err()
}
