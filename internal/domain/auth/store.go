package auth

import (
	"context"

	"peoplehub/internal/platform/querier"
)

type AuthUser struct {
	ID           string
	Email        string
	PasswordHash string
	RoleName     string
	EmployeeID   string
	Status       string
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var user AuthUser
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.email, u.password_hash, u.role, COALESCE(u.employee_id::text, ''), u.status
    FROM users u
    WHERE u.email = $1 AND u.status = $2
  `, email, UserStatusActive).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.RoleName, &user.EmployeeID, &user.Status)
	if err != nil {
		return AuthUser{}, err
	}
	return user, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login_at = now() WHERE id = $1", userID)
	return err
}

func (s *Store) CreateUser(ctx context.Context, email, passwordHash, role, employeeID string) (string, error) {
	var id string
	var empID any
	if employeeID != "" {
		empID = employeeID
	}
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role, employee_id, status)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, email, passwordHash, role, empID, UserStatusActive).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, userID, hash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET password_hash = $1 WHERE id = $2", hash, userID)
	return err
}
