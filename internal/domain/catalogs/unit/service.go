package unit

import (
	"context"
	"fmt"
)

// Service provides read access to the unit catalog.
type Service struct {
	repo Repository
}

// NewService creates a unit catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all catalog units.
func (s *Service) List(ctx context.Context) ([]Unit, error) {
	units, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

// Exists reports whether code is a valid unit token.
func (s *Service) Exists(ctx context.Context, code string) (bool, error) {
	ok, err := s.repo.Exists(ctx, code)
	if err != nil {
		return false, fmt.Errorf("check unit: %w", err)
	}
	return ok, nil
}
