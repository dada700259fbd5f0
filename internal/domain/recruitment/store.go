package recruitment

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"peoplehub/internal/platform/querier"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ListPostings(ctx context.Context, status string) ([]JobPosting, error) {
	query := `
    SELECT id, title, department, description, status, created_at
    FROM job_postings
  `
	var args []any
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var postings []JobPosting
	for rows.Next() {
		var p JobPosting
		if err := rows.Scan(&p.ID, &p.Title, &p.Department, &p.Description, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		postings = append(postings, p)
	}
	return postings, nil
}

func (s *Store) CreatePosting(ctx context.Context, payload JobPosting) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_postings (title, department, description, status)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, payload.Title, payload.Department, payload.Description, PostingOpen).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ClosePosting(ctx context.Context, postingID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE job_postings SET status = $1 WHERE id = $2 AND status = $3
  `, PostingClosed, postingID, PostingOpen)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetApplication(ctx context.Context, applicationID string) (Application, error) {
	var app Application
	err := s.DB.QueryRow(ctx, `
    SELECT id, posting_id, candidate_name, candidate_email, stage, COALESCE(notes, ''), created_at, updated_at
    FROM applications
    WHERE id = $1
  `, applicationID).Scan(&app.ID, &app.PostingID, &app.CandidateName, &app.CandidateEmail, &app.Stage, &app.Notes, &app.CreatedAt, &app.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Application{}, ErrNotFound
	}
	if err != nil {
		return Application{}, err
	}
	return app, nil
}

func (s *Store) ListApplications(ctx context.Context, postingID string) ([]Application, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, posting_id, candidate_name, candidate_email, stage, COALESCE(notes, ''), created_at, updated_at
    FROM applications
    WHERE posting_id = $1
    ORDER BY created_at
  `, postingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.PostingID, &app.CandidateName, &app.CandidateEmail, &app.Stage, &app.Notes, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func (s *Store) CreateApplication(ctx context.Context, payload Application) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO applications (posting_id, candidate_name, candidate_email, stage, notes)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, payload.PostingID, payload.CandidateName, payload.CandidateEmail, StageApplied, payload.Notes).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// AdvanceApplication moves an application to the next stage. The
// current stage in the WHERE clause guards against concurrent moves.
func (s *Store) AdvanceApplication(ctx context.Context, applicationID, fromStage, toStage, notes string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE applications
    SET stage = $1, notes = $2, updated_at = now()
    WHERE id = $3 AND stage = $4
  `, toStage, notes, applicationID, fromStage)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}
