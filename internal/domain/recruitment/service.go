package recruitment

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListPostings(ctx context.Context, status string) ([]JobPosting, error) {
	return s.Store.ListPostings(ctx, status)
}

func (s *Service) CreatePosting(ctx context.Context, payload JobPosting) (string, error) {
	return s.Store.CreatePosting(ctx, payload)
}

func (s *Service) ClosePosting(ctx context.Context, postingID string) error {
	return s.Store.ClosePosting(ctx, postingID)
}

func (s *Service) ListApplications(ctx context.Context, postingID string) ([]Application, error) {
	return s.Store.ListApplications(ctx, postingID)
}

func (s *Service) CreateApplication(ctx context.Context, payload Application) (string, error) {
	return s.Store.CreateApplication(ctx, payload)
}

// AdvanceApplication validates the stage move before touching the row,
// then re-checks it in the update so two reviewers cannot race past
// the pipeline.
func (s *Service) AdvanceApplication(ctx context.Context, applicationID, toStage, notes string) (Application, error) {
	app, err := s.Store.GetApplication(ctx, applicationID)
	if err != nil {
		return Application{}, err
	}
	if err := ValidateTransition(app.Stage, toStage); err != nil {
		return Application{}, err
	}
	if err := s.Store.AdvanceApplication(ctx, applicationID, app.Stage, toStage, notes); err != nil {
		return Application{}, err
	}
	return s.Store.GetApplication(ctx, applicationID)
}
