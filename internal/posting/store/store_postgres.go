package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"talentgate/internal/candidacy"
	"talentgate/internal/posting/models"
	"talentgate/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// Postgres persists postings in PostgreSQL. Execute serializes updates per
// posting with SELECT ... FOR UPDATE inside a transaction.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, posting *models.Posting) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, name, state, created_at, closed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		posting.ID, posting.Name, int16(posting.Status), posting.CreatedAt, posting.ClosedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create posting: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Posting, error) {
	posting, err := s.scanPosting(s.db.QueryRowContext(ctx, `
		SELECT id, name, state, created_at, closed_at FROM jobs WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	return posting, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Posting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, state, created_at, closed_at FROM jobs`)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	defer rows.Close()

	var out []*models.Posting
	for rows.Next() {
		posting, err := s.scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, posting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	return out, nil
}

func (s *Postgres) Execute(ctx context.Context, id uuid.UUID, validate func(*models.Posting) error, mutate func(*models.Posting)) (*models.Posting, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	posting, err := s.scanPosting(tx.QueryRowContext(ctx, `
		SELECT id, name, state, created_at, closed_at FROM jobs WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}
	if err := validate(posting); err != nil {
		return nil, err
	}
	mutate(posting)

	_, err = tx.ExecContext(ctx, `
		UPDATE jobs SET name = $2, state = $3, closed_at = $4 WHERE id = $1`,
		posting.ID, posting.Name, int16(posting.Status), posting.ClosedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update posting: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit posting update: %w", err)
	}
	return posting, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Postgres) scanPosting(row rowScanner) (*models.Posting, error) {
	var posting models.Posting
	var state int16
	var closedAt sql.NullTime
	err := row.Scan(&posting.ID, &posting.Name, &state, &posting.CreatedAt, &closedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan posting: %w", err)
	}
	posting.Status = models.Status(state)
	if closedAt.Valid {
		t := closedAt.Time.UTC()
		posting.ClosedAt = &t
	}
	posting.Applicants = make(map[string]candidacy.State)
	return &posting, nil
}
