package attendance

import (
	"context"
	"time"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ClockIn(ctx context.Context, employeeID string, at time.Time) (Recording, error) {
	return s.Store.ClockIn(ctx, employeeID, at)
}

func (s *Service) ClockOut(ctx context.Context, employeeID string, at time.Time) (Recording, error) {
	return s.Store.ClockOut(ctx, employeeID, at)
}

func (s *Service) MonthlySummary(ctx context.Context, employeeID string, year int, month time.Month) (MonthlySummary, error) {
	recordings, err := s.Store.ListForMonth(ctx, employeeID, year, month)
	if err != nil {
		return MonthlySummary{}, err
	}
	return BuildMonthlySummary(employeeID, year, month, recordings), nil
}

func (s *Service) ListForMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Recording, error) {
	return s.Store.ListForMonth(ctx, employeeID, year, month)
}
