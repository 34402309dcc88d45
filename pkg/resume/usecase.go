package resume

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/artem13815/resumes/pkg/apperr"
)

// MsgNotFound is the single message for a resume that is absent or owned
// by someone else.
const MsgNotFound = "resume not found"

// UseCase describes ownership-scoped resume management.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Resume, error)
	List(ctx context.Context, ownerID uuid.UUID, order SortOrder) ([]View, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (View, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, p Patch) (Resume, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (uuid.UUID, error)
}

type Service struct {
	repo Repository
}

var _ UseCase = (*Service)(nil)

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func notFound() error { return apperr.NotFound(MsgNotFound) }

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Resume, error) {
	r, err := s.repo.Create(ctx, Resume{
		OwnerID: ownerID,
		Title:   in.Title,
		Content: in.Content,
		Status:  DefaultStatus,
	})
	if err != nil {
		return Resume{}, fmt.Errorf("create resume: %w", err)
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, order SortOrder) ([]View, error) {
	if order != SortAsc {
		order = SortDesc
	}
	items, err := s.repo.ListByOwner(ctx, ownerID, order)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	views := make([]View, 0, len(items))
	for _, r := range items {
		views = append(views, r.View())
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (View, error) {
	r, err := s.find(ctx, ownerID, id, true)
	if err != nil {
		return View{}, err
	}
	return r.View(), nil
}

// Update checks existence for the owner first, then writes with the same
// (id, owner) predicate. A miss at write time means the resume went away
// between the two calls and is reported like any other miss.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, p Patch) (Resume, error) {
	existing, err := s.find(ctx, ownerID, id, false)
	if err != nil {
		return Resume{}, err
	}
	p = p.Normalize()
	if p.Empty() {
		return existing, nil
	}
	r, err := s.repo.Update(ctx, id, ownerID, p)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Resume{}, notFound()
		}
		return Resume{}, fmt.Errorf("update resume: %w", err)
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) (uuid.UUID, error) {
	if _, err := s.find(ctx, ownerID, id, false); err != nil {
		return uuid.Nil, err
	}
	deleted, err := s.repo.Delete(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return uuid.Nil, notFound()
		}
		return uuid.Nil, fmt.Errorf("delete resume: %w", err)
	}
	return deleted, nil
}

func (s *Service) find(ctx context.Context, ownerID, id uuid.UUID, includeAuthor bool) (Resume, error) {
	r, err := s.repo.GetOne(ctx, GetQuery{ID: id, OwnerID: ownerID, IncludeAuthor: includeAuthor})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Resume{}, notFound()
		}
		return Resume{}, fmt.Errorf("get resume: %w", err)
	}
	return r, nil
}
