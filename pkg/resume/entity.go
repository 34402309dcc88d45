package resume

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the review stage of a resume.
type Status string

const (
	StatusApply      Status = "APPLY"
	StatusDrop       Status = "DROP"
	StatusPass       Status = "PASS"
	StatusInterview1 Status = "INTERVIEW1"
	StatusInterview2 Status = "INTERVIEW2"
	StatusFinalPass  Status = "FINAL_PASS"
)

// DefaultStatus is assigned to every newly created resume.
const DefaultStatus = StatusApply

// Resume is the stored record. AuthorName is filled only by reads that
// join the owner.
type Resume struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"authorId"`
	AuthorName string    `json:"-"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// View is the outward projection of a resume: the owner's display name in
// place of the owner id.
type View struct {
	ID         uuid.UUID `json:"id"`
	AuthorName string    `json:"authorName"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (r Resume) View() View {
	return View{
		ID:         r.ID,
		AuthorName: r.AuthorName,
		Title:      r.Title,
		Content:    r.Content,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type CreateInput struct {
	Title   string
	Content string
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title   *string
	Content *string
}

// Normalize drops empty values: an empty field means "keep the stored one".
func (p Patch) Normalize() Patch {
	if p.Title != nil && *p.Title == "" {
		p.Title = nil
	}
	if p.Content != nil && *p.Content == "" {
		p.Content = nil
	}
	return p
}

func (p Patch) Empty() bool { return p.Title == nil && p.Content == nil }

// SortOrder is the direction of a listing over creation time.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts "asc" or "desc" in any case; anything else,
// including an empty string, yields SortDesc.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(strings.ToLower(strings.TrimSpace(s))) == SortAsc {
		return SortAsc
	}
	return SortDesc
}

// ErrNotFound is returned by Repository when no resume matches both the id
// and the owner.
var ErrNotFound = errors.New("resume not found")

// GetQuery selects one resume. OwnerID is mandatory.
type GetQuery struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	IncludeAuthor bool
}

// Repository is the resume store port. Every method is scoped by owner.
type Repository interface {
	// Create assigns ID and timestamps and returns the stored record.
	Create(ctx context.Context, r Resume) (Resume, error)
	// ListByOwner returns the owner's resumes with AuthorName, ordered by
	// creation time.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, order SortOrder) ([]Resume, error)
	GetOne(ctx context.Context, q GetQuery) (Resume, error)
	// Update applies p atomically where id and owner both match.
	Update(ctx context.Context, id, ownerID uuid.UUID, p Patch) (Resume, error)
	// Delete removes the resume where id and owner both match.
	Delete(ctx context.Context, id, ownerID uuid.UUID) (uuid.UUID, error)
}
