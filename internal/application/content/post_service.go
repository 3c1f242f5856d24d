package content

import (
	"context"

	"github.com/google/uuid"

	"github.com/packmart/backend/internal/domain/content"
	"github.com/packmart/backend/internal/domain/shared"
)

// PostService handles blog post management and public listing
type PostService struct {
	postRepo content.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo content.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// Create creates a new draft post
func (s *PostService) Create(ctx context.Context, req CreatePostRequest) (*PostResponse, error) {
	exists, err := s.postRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A post with this slug already exists")
	}

	post, err := content.NewPost(req.Title, req.Slug, req.Excerpt, req.Body)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	resp := ToPostResponse(post)
	return &resp, nil
}

// Update updates a post's editable fields
func (s *PostService) Update(ctx context.Context, id uuid.UUID, req UpdatePostRequest) (*PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := post.Update(req.Title, req.Excerpt, req.Body); err != nil {
		return nil, err
	}
	post.SetCoverImage(req.CoverImage)

	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	resp := ToPostResponse(post)
	return &resp, nil
}

// Publish makes a post publicly visible
func (s *PostService) Publish(ctx context.Context, id uuid.UUID) (*PostResponse, error) {
	return s.setPublished(ctx, id, true)
}

// Unpublish removes a post from public view
func (s *PostService) Unpublish(ctx context.Context, id uuid.UUID) (*PostResponse, error) {
	return s.setPublished(ctx, id, false)
}

func (s *PostService) setPublished(ctx context.Context, id uuid.UUID, published bool) (*PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if published {
		post.Publish()
	} else {
		post.Unpublish()
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}
	resp := ToPostResponse(post)
	return &resp, nil
}

// Get returns a post by id, published or not
func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPostResponse(post)
	return &resp, nil
}

// GetPublishedBySlug returns a published post for the public site.
// Unpublished posts are reported as absent.
func (s *PostService) GetPublishedBySlug(ctx context.Context, slug string) (*PostResponse, error) {
	post, err := s.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, shared.ErrNotFound
	}
	resp := ToPostResponse(post)
	return &resp, nil
}

// ListPublished returns published posts for the public site
func (s *PostService) ListPublished(ctx context.Context, filter shared.Filter) ([]PostSummaryResponse, error) {
	posts, err := s.postRepo.FindPublished(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToPostSummaries(posts), nil
}

// List returns all posts for the admin console, paginated
func (s *PostService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[PostSummaryResponse], error) {
	posts, err := s.postRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToPostSummaries(posts), total, filter.Page, filter.PageSize)
	return &result, nil
}

// Delete removes a post
func (s *PostService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.postRepo.Delete(ctx, id)
}
