package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapnilyadv/CloneX/internal/projects/domain"
)

var projectColumns = []string{"id", "owner_id", "name", "prompt", "model", "attachments", "starred", "created_at"}

func setupProjectRepo(t *testing.T) (*ProjectRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProjectRepository(db), mock
}

func TestProjectRepository_Create(t *testing.T) {
	ctx := context.Background()
	req := domain.CreateProjectRequest{
		Name:   "Build a todo app",
		Prompt: "Build a todo app",
		Model:  domain.ModelGPT4o,
		Attachments: []domain.Attachment{
			{Kind: domain.KindDesignLink, Value: "https://figma.com/file/abc", Name: "Figma"},
		},
	}
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("inserts and returns the project", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		mock.ExpectQuery(`INSERT INTO projects`).
			WithArgs(sqlmock.AnyArg(), "user-1", "Build a todo app", "Build a todo app", "GPT-4o",
				[]byte(`[{"kind":"design-link","value":"https://figma.com/file/abc","name":"Figma"}]`)).
			WillReturnRows(sqlmock.NewRows(projectColumns).AddRow(
				"clonex-12345-6789", "user-1", "Build a todo app", "Build a todo app", "GPT-4o",
				[]byte(`[{"kind":"design-link","value":"https://figma.com/file/abc","name":"Figma"}]`), false, created))

		p, err := repo.Create(ctx, "user-1", req)
		require.NoError(t, err)
		assert.Equal(t, "clonex-12345-6789", p.ID)
		assert.Equal(t, domain.ModelGPT4o, p.Model)
		assert.Equal(t, req.Attachments, p.Attachments)
		assert.Equal(t, created, p.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stores an empty attachment list as []", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		mock.ExpectQuery(`INSERT INTO projects`).
			WithArgs(sqlmock.AnyArg(), "user-1", "x", "x", "GPT-4o", []byte(`[]`)).
			WillReturnRows(sqlmock.NewRows(projectColumns).AddRow(
				"clonex-12345-6789", "user-1", "x", "x", "GPT-4o", []byte(`[]`), false, created))

		p, err := repo.Create(ctx, "user-1", domain.CreateProjectRequest{Name: "x", Prompt: "x", Model: domain.ModelGPT4o})
		require.NoError(t, err)
		assert.NotNil(t, p.Attachments)
		assert.Empty(t, p.Attachments)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retries on id collision", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		mock.ExpectQuery(`INSERT INTO projects`).WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectQuery(`INSERT INTO projects`).
			WillReturnRows(sqlmock.NewRows(projectColumns).AddRow(
				"clonex-22222-3333", "user-1", req.Name, req.Prompt, "GPT-4o", []byte(`[]`), false, created))

		p, err := repo.Create(ctx, "user-1", req)
		require.NoError(t, err)
		assert.Equal(t, "clonex-22222-3333", p.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns other database errors", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		mock.ExpectQuery(`INSERT INTO projects`).WillReturnError(errors.New("connection reset"))

		_, err := repo.Create(ctx, "user-1", req)
		var storeErr *domain.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.NotContains(t, err.Error(), "connection reset")
		assert.EqualError(t, errors.Unwrap(err), "connection reset")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver text never reaches the caller", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		mock.ExpectQuery(`INSERT INTO projects`).
			WillReturnError(&pq.Error{Code: "53300", Message: "sorry, too many clients already"})

		_, err := repo.Create(ctx, "user-1", req)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "pq:")
		assert.NotContains(t, err.Error(), "too many clients")
		var pgErr *pq.Error
		assert.ErrorAs(t, err, &pgErr)
	})

	t.Run("requires owner and prompt", func(t *testing.T) {
		repo, _ := setupProjectRepo(t)
		_, err := repo.Create(ctx, "", req)
		assert.Error(t, err)
		_, err = repo.Create(ctx, "user-1", domain.CreateProjectRequest{Prompt: "  "})
		assert.Error(t, err)
	})
}

func TestProjectRepository_List(t *testing.T) {
	repo, mock := setupProjectRepo(t)
	newer := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, owner_id, name, prompt, model, attachments, starred, created_at\s+FROM projects\s+WHERE owner_id = \$1\s+ORDER BY created_at DESC`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(projectColumns).
			AddRow("p2", "user-1", "second", "second", "Claude", []byte(`[]`), true, newer).
			AddRow("p1", "user-1", "first", "first", "GPT-4", []byte(`[]`), false, older))

	items, err := repo.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p2", items[0].ID)
	assert.True(t, items[0].Starred)
	assert.Equal(t, "p1", items[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		mock.ExpectQuery(`SELECT .* FROM projects\s+WHERE id = \$1`).
			WithArgs("p1").
			WillReturnRows(sqlmock.NewRows(projectColumns).
				AddRow("p1", "user-1", "first", "first", "GPT-4", []byte(`[{"kind":"style-guide","value":"calm","name":"style"}]`), false, time.Now()))

		p, err := repo.GetByID(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, []domain.Attachment{{Kind: domain.KindStyleGuide, Value: "calm", Name: "style"}}, p.Attachments)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		mock.ExpectQuery(`SELECT .* FROM projects`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProjectRepository_SetStarred(t *testing.T) {
	t.Run("updates the flag", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		mock.ExpectQuery(`UPDATE projects\s+SET starred = \$3`).
			WithArgs("user-1", "p1", true).
			WillReturnRows(sqlmock.NewRows(projectColumns).
				AddRow("p1", "user-1", "first", "first", "GPT-4", []byte(`[]`), true, time.Now()))

		p, err := repo.SetStarred(context.Background(), "user-1", "p1", true)
		require.NoError(t, err)
		assert.True(t, p.Starred)
	})

	t.Run("other owners' projects are not found", func(t *testing.T) {
		repo, mock := setupProjectRepo(t)
		mock.ExpectQuery(`UPDATE projects`).WithArgs("user-2", "p1", true).WillReturnError(sql.ErrNoRows)

		_, err := repo.SetStarred(context.Background(), "user-2", "p1", true)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestNewProjectID(t *testing.T) {
	id, err := newProjectID()
	require.NoError(t, err)
	assert.Regexp(t, `^clonex-\d{5}-\d{4}$`, id)
}
