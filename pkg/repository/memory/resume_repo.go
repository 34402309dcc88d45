package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/resumes/pkg/resume"
)

type storedResume struct {
	resume.Resume
	seq uint64
}

// ResumeRepository resolves author names through the UserRepository it is
// built with, the way the SQL store joins users.
type ResumeRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]storedResume
	seq   uint64
	users *UserRepository
}

func NewResumeRepository(users *UserRepository) *ResumeRepository {
	return &ResumeRepository{items: make(map[uuid.UUID]storedResume), users: users}
}

func (r *ResumeRepository) Create(_ context.Context, rs resume.Resume) (resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rs.ID == uuid.Nil {
		rs.ID = uuid.New()
	}
	if rs.Status == "" {
		rs.Status = resume.DefaultStatus
	}
	now := time.Now().UTC()
	rs.CreatedAt, rs.UpdatedAt = now, now
	rs.AuthorName = ""
	r.seq++
	r.items[rs.ID] = storedResume{Resume: rs, seq: r.seq}
	return rs, nil
}

func (r *ResumeRepository) ListByOwner(_ context.Context, ownerID uuid.UUID, order resume.SortOrder) ([]resume.Resume, error) {
	r.mu.RLock()
	owned := make([]storedResume, 0)
	for _, it := range r.items {
		if it.OwnerID == ownerID {
			owned = append(owned, it)
		}
	}
	r.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		a, b := owned[i], owned[j]
		if order == resume.SortAsc {
			return a.seq < b.seq
		}
		return a.seq > b.seq
	})
	name := r.users.name(ownerID)
	res := make([]resume.Resume, 0, len(owned))
	for _, it := range owned {
		rs := it.Resume
		rs.AuthorName = name
		res = append(res, rs)
	}
	return res, nil
}

func (r *ResumeRepository) GetOne(_ context.Context, q resume.GetQuery) (resume.Resume, error) {
	r.mu.RLock()
	it, ok := r.items[q.ID]
	r.mu.RUnlock()
	if !ok || it.OwnerID != q.OwnerID {
		return resume.Resume{}, resume.ErrNotFound
	}
	rs := it.Resume
	if q.IncludeAuthor {
		rs.AuthorName = r.users.name(rs.OwnerID)
	}
	return rs, nil
}

func (r *ResumeRepository) Update(_ context.Context, id, ownerID uuid.UUID, p resume.Patch) (resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok || it.OwnerID != ownerID {
		return resume.Resume{}, resume.ErrNotFound
	}
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Content != nil {
		it.Content = *p.Content
	}
	it.UpdatedAt = time.Now().UTC()
	r.items[id] = it
	return it.Resume, nil
}

func (r *ResumeRepository) Delete(_ context.Context, id, ownerID uuid.UUID) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok || it.OwnerID != ownerID {
		return uuid.Nil, resume.ErrNotFound
	}
	delete(r.items, id)
	return id, nil
}
