package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"github.com/swapnilyadv/CloneX/internal/projects/domain"
)

// Store is the persistence capability the composer and dashboard consume.
type Store interface {
	Create(ctx context.Context, ownerID string, req domain.CreateProjectRequest) (*domain.Project, error)
	List(ctx context.Context, ownerID string) ([]domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	SetStarred(ctx context.Context, ownerID, id string, starred bool) (*domain.Project, error)
}

const idAttempts = 5

// storeFailure logs a driver error and replaces it with user-facing text.
func storeFailure(op string, err error) error {
	log.Printf("[store] %s: %v", op, err)
	return &domain.StoreError{Message: "Project storage is unavailable, please try again.", Err: err}
}

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project for the given owner.
func (r *ProjectRepository) Create(ctx context.Context, ownerID string, req domain.CreateProjectRequest) (*domain.Project, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("owner id required")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("prompt required")
	}

	attachments := req.Attachments
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	raw, err := json.Marshal(attachments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attachments: %w", err)
	}

	for i := 0; i < idAttempts; i++ {
		id, err := newProjectID()
		if err != nil {
			return nil, err
		}

		const q = `
INSERT INTO projects (id, owner_id, name, prompt, model, attachments)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, owner_id, name, prompt, model, attachments, starred, created_at;
`
		p, err := scanProject(r.db.QueryRowContext(ctx, q, id, ownerID, req.Name, req.Prompt, string(req.Model), raw))
		if err == nil {
			return p, nil
		}

		// unique violation on id → retry
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, storeFailure("create", err)
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

// List returns the owner's projects, newest first.
func (r *ProjectRepository) List(ctx context.Context, ownerID string) ([]domain.Project, error) {
	const q = `
SELECT id, owner_id, name, prompt, model, attachments, starred, created_at
FROM projects
WHERE owner_id = $1
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, storeFailure("list", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, storeFailure("list", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("list", err)
	}
	return out, nil
}

// GetByID loads a single project.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	const q = `
SELECT id, owner_id, name, prompt, model, attachments, starred, created_at
FROM projects
WHERE id = $1;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeFailure("get", err)
	}
	return p, nil
}

// SetStarred flags or unflags one of the owner's projects.
func (r *ProjectRepository) SetStarred(ctx context.Context, ownerID, id string, starred bool) (*domain.Project, error) {
	const q = `
UPDATE projects
SET starred = $3
WHERE owner_id = $1 AND id = $2
RETURNING id, owner_id, name, prompt, model, attachments, starred, created_at;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, ownerID, id, starred))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeFailure("star", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p     domain.Project
		model string
		raw   []byte
	)
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Prompt, &model, &raw, &p.Starred, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Model = domain.Model(model)
	p.Attachments = []domain.Attachment{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p.Attachments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attachments: %w", err)
		}
	}
	return &p, nil
}
