package notifications

import (
	"context"
	"log/slog"
	"time"

	"peoplehub/internal/platform/querier"
)

const (
	TypeLeaveRequested = "leave_requested"
	TypeLeaveDecided   = "leave_decided"
	TypeCarryoverRun   = "carryover_run"
	TypeApplication    = "application_update"
)

// Mailer sends a plain-text email. Implementations must tolerate an
// empty recipient and return nil.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type Service struct {
	DB     querier.Querier
	Mailer Mailer
	From   string
}

func New(db querier.Querier, mailer Mailer, from string) *Service {
	return &Service{DB: db, Mailer: mailer, From: from}
}

// Create stores an in-app notification and, when a mailer is
// configured, mirrors it to the user's email. Mail failures are logged
// and never fail the notification.
func (s *Service) Create(ctx context.Context, userID, ntype, title, body string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (user_id, type, title, body)
    VALUES ($1,$2,$3,$4)
  `, userID, ntype, title, body)
	if err != nil {
		return err
	}

	if s.Mailer != nil {
		var email string
		if lookupErr := s.DB.QueryRow(ctx, "SELECT email FROM users WHERE id = $1", userID).Scan(&email); lookupErr == nil {
			if sendErr := s.Mailer.Send(ctx, s.From, email, title, body); sendErr != nil {
				slog.Warn("notification email failed", "userId", userID, "err", sendErr)
			}
		}
	}
	return nil
}

// CreateForEmployee resolves the employee's portal user and notifies
// it. Employees without a user account are skipped silently.
func (s *Service) CreateForEmployee(ctx context.Context, employeeID, ntype, title, body string) error {
	var userID string
	err := s.DB.QueryRow(ctx, "SELECT id FROM users WHERE employee_id = $1", employeeID).Scan(&userID)
	if err != nil {
		return nil
	}
	return s.Create(ctx, userID, ntype, title, body)
}

// CreateForManagerOf notifies the manager of the given employee, when
// the employee has one with a user account.
func (s *Service) CreateForManagerOf(ctx context.Context, employeeID, ntype, title, body string) error {
	var userID string
	err := s.DB.QueryRow(ctx, `
    SELECT u.id
    FROM users u
    JOIN employees e ON u.employee_id = e.manager_id
    WHERE e.id = $1
  `, employeeID).Scan(&userID)
	if err != nil {
		return nil
	}
	return s.Create(ctx, userID, ntype, title, body)
}

// CreateForRole fans a notification out to every active user holding
// the role.
func (s *Service) CreateForRole(ctx context.Context, role, ntype, title, body string) error {
	rows, err := s.DB.Query(ctx, "SELECT id FROM users WHERE role = $1 AND status = 'active'", role)
	if err != nil {
		return err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		userIDs = append(userIDs, id)
	}
	for _, id := range userIDs {
		if err := s.Create(ctx, id, ntype, title, body); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, type, title, body, read_at, created_at
    FROM notifications
    WHERE user_id = $1
    ORDER BY created_at DESC
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read_at = now() WHERE id = $1 AND user_id = $2 AND read_at IS NULL
  `, notificationID, userID)
	return err
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM notifications WHERE user_id = $1 AND read_at IS NULL
  `, userID).Scan(&count)
	return count, err
}
