package health

import (
	"context"
	"errors"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) error
}

type Service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers. Nil checkers are skipped so
// optional dependencies can be passed unconditionally.
func NewService(checkers ...Checker) *Service {
	s := &Service{}
	for _, ch := range checkers {
		if ch != nil {
			s.checkers = append(s.checkers, ch)
		}
	}
	return s
}

// Ready runs every checker and joins the failures, each prefixed with the
// checker name.
func (s *Service) Ready(ctx context.Context) error {
	var errs []error
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
		}
	}
	return errors.Join(errs...)
}
