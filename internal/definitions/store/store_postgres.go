package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"vardef/internal/definitions/models"
)

const uniqueViolation = "23505"

// PostgresStore persists definition records in the variable_definitions table. Content
// and owner are jsonb; the key columns are plain so the uniqueness guard and the short
// name index live in the database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed definition store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectColumns = `
	id, definition_id, patch_id, short_name, valid_from, valid_until, variable_status,
	owner, content, created_at, created_by, last_updated_at, last_updated_by`

// Insert writes all records in one transaction. A duplicate (definition_id, valid_from,
// patch_id) aborts the transaction with ErrConflict.
func (s *PostgresStore) Insert(ctx context.Context, records ...*models.SavedVariableDefinition) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert definitions tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO variable_definitions (
			id, definition_id, patch_id, short_name, valid_from, valid_until, variable_status,
			owner, content, created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	for _, r := range records {
		owner, err := json.Marshal(r.Owner)
		if err != nil {
			return fmt.Errorf("encode owner: %w", err)
		}
		content, err := json.Marshal(r.Content)
		if err != nil {
			return fmt.Errorf("encode content: %w", err)
		}
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		_, err = tx.ExecContext(ctx, query,
			r.ID, r.DefinitionID, r.PatchID, r.ShortName, r.ValidFrom.Time, nullDate(r.ValidUntil), string(r.VariableStatus),
			owner, content, r.CreatedAt, r.CreatedBy, r.LastUpdatedAt, r.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrConflict
			}
			return fmt.Errorf("insert definition %s patch %d: %w", r.DefinitionID, r.PatchID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert definitions tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByDefinition(ctx context.Context, definitionID string) ([]*models.SavedVariableDefinition, error) {
	query := `SELECT` + selectColumns + `
		FROM variable_definitions
		WHERE definition_id = $1
		ORDER BY valid_from, patch_id`
	rows, err := s.db.QueryContext(ctx, query, definitionID)
	if err != nil {
		return nil, fmt.Errorf("list definition %s: %w", definitionID, err)
	}
	return scanRecords(rows)
}

func (s *PostgresStore) FindDefinitionIDByShortName(ctx context.Context, shortName string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT definition_id FROM variable_definitions WHERE short_name = $1 LIMIT 1`, shortName,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("find definition by short name: %w", err)
	}
	return id, nil
}

// FindDefinitionIDsByShortNames resolves many short names in one round trip.
func (s *PostgresStore) FindDefinitionIDsByShortNames(ctx context.Context, shortNames []string) (map[string]string, error) {
	out := make(map[string]string, len(shortNames))
	if len(shortNames) == 0 {
		return out, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT short_name, definition_id
		FROM variable_definitions
		WHERE short_name = ANY($1::text[])
	`, pq.Array(shortNames))
	if err != nil {
		return nil, fmt.Errorf("find definitions by short names: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var shortName, id string
		if err := rows.Scan(&shortName, &id); err != nil {
			return nil, fmt.Errorf("scan short name row: %w", err)
		}
		out[shortName] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) ListLatestPatches(ctx context.Context) ([]*models.SavedVariableDefinition, error) {
	query := `SELECT DISTINCT ON (definition_id, valid_from)` + selectColumns + `
		FROM variable_definitions
		ORDER BY definition_id, valid_from, patch_id DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list latest patches: %w", err)
	}
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*models.SavedVariableDefinition, error) {
	defer rows.Close()
	var out []*models.SavedVariableDefinition
	for rows.Next() {
		var (
			r          models.SavedVariableDefinition
			validFrom  time.Time
			validUntil sql.NullTime
			status     string
			owner      []byte
			content    []byte
		)
		if err := rows.Scan(
			&r.ID, &r.DefinitionID, &r.PatchID, &r.ShortName, &validFrom, &validUntil, &status,
			&owner, &content, &r.CreatedAt, &r.CreatedBy, &r.LastUpdatedAt, &r.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan definition row: %w", err)
		}
		r.ValidFrom = models.DateOf(validFrom)
		if validUntil.Valid {
			r.ValidUntil = models.DatePtr(models.DateOf(validUntil.Time))
		}
		r.VariableStatus = models.VariableStatus(status)
		if err := json.Unmarshal(owner, &r.Owner); err != nil {
			return nil, fmt.Errorf("decode owner: %w", err)
		}
		if err := json.Unmarshal(content, &r.Content); err != nil {
			return nil, fmt.Errorf("decode content: %w", err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullDate(d *models.Date) sql.NullTime {
	if d == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: d.Time, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
