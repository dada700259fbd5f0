package attendance

import (
	"context"
	"errors"
	"time"

	"peoplehub/internal/platform/querier"
)

var (
	ErrAlreadyClockedIn = errors.New("open attendance entry exists")
	ErrNotClockedIn     = errors.New("no open attendance entry")
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ClockIn(ctx context.Context, employeeID string, at time.Time) (Recording, error) {
	var open int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM attendance_recordings WHERE employee_id = $1 AND clock_out IS NULL
  `, employeeID).Scan(&open); err != nil {
		return Recording{}, err
	}
	if open > 0 {
		return Recording{}, ErrAlreadyClockedIn
	}

	var rec Recording
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance_recordings (employee_id, clock_in)
    VALUES ($1,$2)
    RETURNING id, employee_id, clock_in, clock_out, created_at
  `, employeeID, at).Scan(&rec.ID, &rec.EmployeeID, &rec.ClockIn, &rec.ClockOut, &rec.CreatedAt)
	if err != nil {
		return Recording{}, err
	}
	return rec, nil
}

func (s *Store) ClockOut(ctx context.Context, employeeID string, at time.Time) (Recording, error) {
	var rec Recording
	err := s.DB.QueryRow(ctx, `
    UPDATE attendance_recordings
    SET clock_out = $1
    WHERE id = (
      SELECT id FROM attendance_recordings
      WHERE employee_id = $2 AND clock_out IS NULL
      ORDER BY clock_in DESC
      LIMIT 1
    )
    RETURNING id, employee_id, clock_in, clock_out, created_at
  `, at, employeeID).Scan(&rec.ID, &rec.EmployeeID, &rec.ClockIn, &rec.ClockOut, &rec.CreatedAt)
	if err != nil {
		return Recording{}, ErrNotClockedIn
	}
	return rec, nil
}

func (s *Store) ListForMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Recording, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, clock_in, clock_out, created_at
    FROM attendance_recordings
    WHERE employee_id = $1 AND clock_in >= $2 AND clock_in < $3
    ORDER BY clock_in
  `, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recordings []Recording
	for rows.Next() {
		var rec Recording
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.ClockIn, &rec.ClockOut, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recordings = append(recordings, rec)
	}
	return recordings, nil
}
