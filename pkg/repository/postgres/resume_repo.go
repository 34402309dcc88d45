package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/resumes/pkg/resume"
)

// ResumeRepository stores resumes. Every statement carries the owner id in
// its predicate.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{pool: pool}
}

const resumeColumns = `r.id, r.owner_id, r.title, r.content, r.status, r.created_at, r.updated_at`

func (r *ResumeRepository) Create(ctx context.Context, rs resume.Resume) (resume.Resume, error) {
	if rs.ID == uuid.Nil {
		rs.ID = uuid.New()
	}
	if rs.Status == "" {
		rs.Status = resume.DefaultStatus
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	rs.CreatedAt, rs.UpdatedAt = now, now
	_, err := r.pool.Exec(ctx, `
INSERT INTO resumes (id, owner_id, title, content, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, rs.ID, rs.OwnerID, rs.Title, rs.Content, rs.Status, rs.CreatedAt, rs.UpdatedAt)
	if err != nil {
		return resume.Resume{}, fmt.Errorf("insert resume: %w", err)
	}
	rs.AuthorName = ""
	return rs, nil
}

func (r *ResumeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, order resume.SortOrder) ([]resume.Resume, error) {
	// order is interpolated only from this closed set
	dir := "DESC"
	if order == resume.SortAsc {
		dir = "ASC"
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+resumeColumns+`, u.name
FROM resumes r JOIN users u ON u.id = r.owner_id
WHERE r.owner_id = $1
ORDER BY r.created_at `+dir+`, r.id `+dir, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()
	res := make([]resume.Resume, 0)
	for rows.Next() {
		var m resume.Resume
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.Title, &m.Content, &m.Status, &m.CreatedAt, &m.UpdatedAt, &m.AuthorName); err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		res = append(res, normalizeResume(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return res, nil
}

func (r *ResumeRepository) GetOne(ctx context.Context, q resume.GetQuery) (resume.Resume, error) {
	var (
		m    resume.Resume
		dest = []any{&m.ID, &m.OwnerID, &m.Title, &m.Content, &m.Status, &m.CreatedAt, &m.UpdatedAt}
		row  pgx.Row
	)
	if q.IncludeAuthor {
		row = r.pool.QueryRow(ctx, `
SELECT `+resumeColumns+`, u.name
FROM resumes r JOIN users u ON u.id = r.owner_id
WHERE r.id = $1 AND r.owner_id = $2
`, q.ID, q.OwnerID)
		dest = append(dest, &m.AuthorName)
	} else {
		row = r.pool.QueryRow(ctx, `
SELECT `+resumeColumns+`
FROM resumes r
WHERE r.id = $1 AND r.owner_id = $2
`, q.ID, q.OwnerID)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, resume.ErrNotFound
		}
		return resume.Resume{}, fmt.Errorf("select resume: %w", err)
	}
	return normalizeResume(m), nil
}

// Update is a single conditional statement: it only touches the row when
// both id and owner match, and leaves nil fields as stored.
func (r *ResumeRepository) Update(ctx context.Context, id, ownerID uuid.UUID, p resume.Patch) (resume.Resume, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE resumes r SET
	title = COALESCE($3, r.title),
	content = COALESCE($4, r.content),
	updated_at = $5
WHERE r.id = $1 AND r.owner_id = $2
RETURNING `+resumeColumns, id, ownerID, p.Title, p.Content, time.Now().UTC())
	var m resume.Resume
	if err := row.Scan(&m.ID, &m.OwnerID, &m.Title, &m.Content, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, resume.ErrNotFound
		}
		return resume.Resume{}, fmt.Errorf("update resume: %w", err)
	}
	return normalizeResume(m), nil
}

func (r *ResumeRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (uuid.UUID, error) {
	var deleted uuid.UUID
	err := r.pool.QueryRow(ctx, `
DELETE FROM resumes WHERE id = $1 AND owner_id = $2
RETURNING id
`, id, ownerID).Scan(&deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, resume.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("delete resume: %w", err)
	}
	return deleted, nil
}

func normalizeResume(m resume.Resume) resume.Resume {
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return m
}
