package core

import (
	"context"
	"fmt"

	"peoplehub/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ListEmployees(ctx context.Context, limit, offset int) ([]Employee, int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, email, department, hiring_date, carried_forward_days,
           COALESCE(manager_id::text, ''), status, created_at, updated_at
    FROM employees
    ORDER BY last_name, first_name
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Department, &e.HiringDate,
			&e.CarriedForwardDays, &e.ManagerID, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, nil
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	var e Employee
	if err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, email, department, hiring_date, carried_forward_days,
           COALESCE(manager_id::text, ''), status, created_at, updated_at
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Department, &e.HiringDate,
		&e.CarriedForwardDays, &e.ManagerID, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) CreateEmployee(ctx context.Context, payload Employee) (string, error) {
	var id string
	var managerID any
	if payload.ManagerID != "" {
		managerID = payload.ManagerID
	}
	status := payload.Status
	if status == "" {
		status = EmploymentActive
	}
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, department, hiring_date, manager_id, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, payload.FirstName, payload.LastName, payload.Email, payload.Department, payload.HiringDate, managerID, status).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, employeeID string, payload Employee) error {
	var managerID any
	if payload.ManagerID != "" {
		managerID = payload.ManagerID
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1, last_name = $2, email = $3, department = $4, hiring_date = $5,
        manager_id = $6, status = $7, updated_at = now()
    WHERE id = $8
  `, payload.FirstName, payload.LastName, payload.Email, payload.Department, payload.HiringDate,
		managerID, payload.Status, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s not found", employeeID)
	}
	return nil
}

func (s *Store) TerminateEmployee(ctx context.Context, employeeID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees SET status = $1, updated_at = now() WHERE id = $2
  `, EmploymentTerminated, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s not found", employeeID)
	}
	return nil
}

func (s *Store) IsManagerOf(ctx context.Context, managerEmployeeID, employeeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE id = $1 AND manager_id = $2
  `, employeeID, managerEmployeeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
