package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/packmart/backend/internal/domain/content"
)

// CreatePostRequest creates a new draft post
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=300"`
	Slug    string `json:"slug" binding:"required,min=1,max=300"`
	Excerpt string `json:"excerpt" binding:"max=1000"`
	Body    string `json:"body" binding:"required"`
}

// UpdatePostRequest updates an existing post
type UpdatePostRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=300"`
	Excerpt    string `json:"excerpt" binding:"max=1000"`
	Body       string `json:"body" binding:"required"`
	CoverImage string `json:"cover_image" binding:"max=500"`
}

// PostResponse is the API view of a blog post
type PostResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PostSummaryResponse is the listing view without the full body
type PostSummaryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// ToPostResponse converts a domain Post to its response shape
func ToPostResponse(p *content.Post) PostResponse {
	return PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Body:        p.Body,
		CoverImage:  p.CoverImage,
		Published:   p.Published,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPostSummaries converts domain Posts to their listing shape
func ToPostSummaries(posts []content.Post) []PostSummaryResponse {
	summaries := make([]PostSummaryResponse, len(posts))
	for i, p := range posts {
		summaries[i] = PostSummaryResponse{
			ID:          p.ID,
			Title:       p.Title,
			Slug:        p.Slug,
			Excerpt:     p.Excerpt,
			CoverImage:  p.CoverImage,
			Published:   p.Published,
			PublishedAt: p.PublishedAt,
		}
	}
	return summaries
}
