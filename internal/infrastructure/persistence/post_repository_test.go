package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/packmart/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockPostRepository(t *testing.T) (*GormPostRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPostRepository(gormDB), mock, mockDB
}

func TestGormPostRepository_FindBySlug(t *testing.T) {
	t.Run("finds existing post", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		postID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "title", "slug", "body", "published"}).
			AddRow(postID, "Choosing the right mailer", "choosing-the-right-mailer", "...", true)

		mock.ExpectQuery(`SELECT \* FROM "posts" WHERE slug = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("choosing-the-right-mailer", 1).
			WillReturnRows(rows)

		post, err := repo.FindBySlug(context.Background(), "choosing-the-right-mailer")

		assert.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, postID, post.ID)
		assert.True(t, post.Published)
	})

	t.Run("returns ErrNotFound for missing slug", func(t *testing.T) {
		repo, mock, mockDB := newMockPostRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "posts" WHERE slug = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("nope", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		post, err := repo.FindBySlug(context.Background(), "nope")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, post)
	})
}

func TestGormPostRepository_FindPublished(t *testing.T) {
	repo, mock, mockDB := newMockPostRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "title", "slug", "body", "published"}).
		AddRow(uuid.New(), "Second", "second", "...", true).
		AddRow(uuid.New(), "First", "first", "...", true)

	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE published = \$1 ORDER BY published_at DESC`).
		WithArgs(true).
		WillReturnRows(rows)

	posts, err := repo.FindPublished(context.Background(), shared.Filter{})

	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPostRepository_ExistsBySlug(t *testing.T) {
	repo, mock, mockDB := newMockPostRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE slug = \$1`).
		WithArgs("taken").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsBySlug(context.Background(), "taken")

	assert.NoError(t, err)
	assert.True(t, exists)
}
