package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"vardef/internal/migration/models"
)

const uniqueViolation = "23505"

// PostgresStore persists mappings in vardok_id_mappings.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, m *models.Mapping) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vardok_id_mappings (vardok_id, definition_id, created_at)
		VALUES ($1, $2, $3)
	`, m.VardokID, m.DefinitionID, m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrConflict
		}
		return fmt.Errorf("insert vardok mapping %s: %w", m.VardokID, err)
	}
	return nil
}

func (s *PostgresStore) FindByVardokID(ctx context.Context, vardokID string) (*models.Mapping, error) {
	var m models.Mapping
	err := s.db.QueryRowContext(ctx, `
		SELECT vardok_id, definition_id, created_at
		FROM vardok_id_mappings
		WHERE vardok_id = $1
	`, vardokID).Scan(&m.VardokID, &m.DefinitionID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find vardok mapping %s: %w", vardokID, err)
	}
	return &m, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Mapping, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT vardok_id, definition_id, created_at
		FROM vardok_id_mappings
		ORDER BY vardok_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list vardok mappings: %w", err)
	}
	defer rows.Close()

	var out []*models.Mapping
	for rows.Next() {
		var m models.Mapping
		if err := rows.Scan(&m.VardokID, &m.DefinitionID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vardok mapping: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
