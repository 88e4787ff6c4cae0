package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"talentgate/internal/identity/models"
	"talentgate/pkg/platform/sentinel"
)

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

// Postgres persists candidates in PostgreSQL. The username unique
// constraint in the schema is the source of truth for duplicate handling.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, candidate *models.Candidate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidates (id, username, credential_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		candidate.ID, candidate.Username, candidate.CredentialHash, string(candidate.Role), candidate.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create candidate: %w", err)
	}
	return nil
}

func (s *Postgres) FindByUsername(ctx context.Context, username string) (*models.Candidate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, credential_hash, role, created_at
		FROM candidates WHERE username = $1`, username)
	return scanCandidate(row)
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, credential_hash, role, created_at
		FROM candidates WHERE id = $1`, id)
	return scanCandidate(row)
}

func scanCandidate(row *sql.Row) (*models.Candidate, error) {
	var candidate models.Candidate
	var role string
	err := row.Scan(&candidate.ID, &candidate.Username, &candidate.CredentialHash, &role, &candidate.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan candidate: %w", err)
	}
	candidate.Role = models.Role(role)
	return &candidate, nil
}
