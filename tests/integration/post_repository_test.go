package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packmart/backend/internal/domain/content"
	"github.com/packmart/backend/internal/domain/shared"
	"github.com/packmart/backend/internal/infrastructure/persistence"
)

func TestPostRepository_SaveAndFindBySlug(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormPostRepository(tdb.DB)
	ctx := context.Background()

	post, err := content.NewPost("Choosing the right box size", "choosing-the-right-box-size", "A sizing guide", "Measure twice, pack once.")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, post))

	found, err := repo.FindBySlug(ctx, "choosing-the-right-box-size")
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)
	assert.False(t, found.Published)

	exists, err := repo.ExistsBySlug(ctx, "choosing-the-right-box-size")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySlug(ctx, "never-written")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPostRepository_FindPublished(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormPostRepository(tdb.DB)
	ctx := context.Background()

	draft, err := content.NewPost("Draft", "draft-post", "", "Not yet.")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, draft))

	published, err := content.NewPost("Live", "live-post", "", "Out there.")
	require.NoError(t, err)
	published.Publish()
	require.NoError(t, repo.Save(ctx, published))

	posts, err := repo.FindPublished(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "live-post", posts[0].Slug)
	require.NotNil(t, posts[0].PublishedAt)
}

func TestPostRepository_Delete(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormPostRepository(tdb.DB)
	ctx := context.Background()

	post, err := content.NewPost("Ephemeral", "ephemeral", "", "Gone soon.")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, post))

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err = repo.FindBySlug(ctx, "ephemeral")
	assert.True(t, shared.IsNotFound(err))
}
