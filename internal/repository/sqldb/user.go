package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/qa-backend/internal/apperror"
	"github.com/sakif/qa-backend/internal/model"
	"github.com/sakif/qa-backend/internal/repository"
)

// Users returns the user repository view of db.
func (db *DB) Users() repository.UserRepository { return userRepo{db} }

type userRepo struct{ db *DB }

var _ repository.UserRepository = userRepo{}

// Create inserts the user. The UNIQUE constraint on name is the source of
// truth for duplicates; a violation comes back as a Conflict.
func (r userRepo) Create(ctx context.Context, user *model.User) error {
	err := r.db.conn.QueryRowContext(ctx,
		`INSERT INTO users (name) VALUES ($1) RETURNING id`,
		user.Name,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", user.Name)
		}
		return fmt.Errorf("sqldb: inserting user %q: %w", user.Name, err)
	}
	return nil
}

func (r userRepo) GetByName(ctx context.Context, name string) (*model.User, error) {
	var u model.User
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, name FROM users WHERE name = $1`, name,
	).Scan(&u.ID, &u.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", name)
		}
		return nil, fmt.Errorf("sqldb: getting user %q: %w", name, err)
	}
	return &u, nil
}

func (r userRepo) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.conn.QueryContext(ctx, `SELECT name FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing users: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqldb: scanning user: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating users: %w", err)
	}
	return names, nil
}
