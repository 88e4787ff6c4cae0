package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"talentgate/internal/candidacy"
	"talentgate/internal/candidacy/models"
	"talentgate/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// Postgres persists applications in PostgreSQL. The composite primary key
// on (job_id, candidate_id) enforces one candidacy per pair; Execute
// serializes updates with SELECT ... FOR UPDATE.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Insert(ctx context.Context, application *models.Application) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO applications (job_id, candidate_id, state, updated_at)
		VALUES ($1, $2, $3, $4)`,
		application.JobID, application.CandidateID, int16(application.State), application.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (s *Postgres) Find(ctx context.Context, jobID, candidateID uuid.UUID) (*models.Application, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT a.job_id, a.candidate_id, c.username, a.state, a.updated_at
		FROM applications a
		JOIN candidates c ON c.id = a.candidate_id
		WHERE a.job_id = $1 AND a.candidate_id = $2`, jobID, candidateID)
	return scanApplication(row)
}

func (s *Postgres) Execute(ctx context.Context, jobID, candidateID uuid.UUID, validate func(*models.Application) error, mutate func(*models.Application)) (*models.Application, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	application, err := scanApplication(tx.QueryRowContext(ctx, `
		SELECT a.job_id, a.candidate_id, c.username, a.state, a.updated_at
		FROM applications a
		JOIN candidates c ON c.id = a.candidate_id
		WHERE a.job_id = $1 AND a.candidate_id = $2
		FOR UPDATE OF a`, jobID, candidateID))
	if err != nil {
		return nil, err
	}
	if err := validate(application); err != nil {
		return nil, err
	}
	mutate(application)

	_, err = tx.ExecContext(ctx, `
		UPDATE applications SET state = $3, updated_at = $4
		WHERE job_id = $1 AND candidate_id = $2`,
		application.JobID, application.CandidateID, int16(application.State), application.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit application update: %w", err)
	}
	return application, nil
}

func (s *Postgres) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.job_id, a.candidate_id, c.username, a.state, a.updated_at
		FROM applications a
		JOIN candidates c ON c.id = a.candidate_id
		WHERE a.job_id = $1`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []*models.Application
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, application)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var application models.Application
	var state int16
	err := row.Scan(&application.JobID, &application.CandidateID, &application.Username, &state, &application.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan application: %w", err)
	}
	parsed, err := candidacy.ParseState(uint8(state))
	if err != nil {
		return nil, err
	}
	application.State = parsed
	return &application, nil
}
