package sqldb

import (
	"context"
	"fmt"

	"github.com/sakif/qa-backend/internal/repository"
)

var _ repository.Existence = (*DB)(nil)

var existsQueries = map[repository.Entity]string{
	repository.EntityUser:     `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`,
	repository.EntityQuestion: `SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1)`,
	repository.EntityAnswer:   `SELECT EXISTS (SELECT 1 FROM answers WHERE id = $1)`,
	repository.EntityComment:  `SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1)`,
}

// Exists reports whether a row with the given id exists in the entity's table.
func (db *DB) Exists(ctx context.Context, entity repository.Entity, id int64) (bool, error) {
	q, ok := existsQueries[entity]
	if !ok {
		return false, fmt.Errorf("sqldb: unknown entity %q", entity)
	}
	var found bool
	if err := db.conn.QueryRowContext(ctx, q, id).Scan(&found); err != nil {
		return false, fmt.Errorf("sqldb: checking %s %d exists: %w", entity, id, err)
	}
	return found, nil
}
