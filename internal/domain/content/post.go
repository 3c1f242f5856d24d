package content

import (
	"regexp"
	"strings"
	"time"

	"github.com/packmart/backend/internal/domain/shared"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Post represents a blog article rendered by the storefront
type Post struct {
	shared.BaseEntity
	Title       string
	Slug        string
	Excerpt     string
	Body        string
	CoverImage  string
	Published   bool
	PublishedAt *time.Time
}

// NewPost creates an unpublished draft post
func NewPost(title, slug, excerpt, body string) (*Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Title is required")
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Body is required")
	}

	return &Post{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		Slug:       slug,
		Excerpt:    strings.TrimSpace(excerpt),
		Body:       body,
	}, nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_INPUT", "Slug is required")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_INPUT", "Slug must be lowercase words separated by hyphens")
	}
	return nil
}

// Update replaces the editable fields of the post
func (p *Post) Update(title, excerpt, body string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_INPUT", "Title is required")
	}
	if strings.TrimSpace(body) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Body is required")
	}
	p.Title = title
	p.Excerpt = strings.TrimSpace(excerpt)
	p.Body = body
	p.Touch()
	return nil
}

// SetCoverImage sets the cover image URL
func (p *Post) SetCoverImage(url string) {
	p.CoverImage = strings.TrimSpace(url)
	p.Touch()
}

// Publish makes the post visible on the storefront
func (p *Post) Publish() {
	if p.Published {
		return
	}
	now := time.Now()
	p.Published = true
	p.PublishedAt = &now
	p.Touch()
}

// Unpublish hides the post from the storefront
func (p *Post) Unpublish() {
	p.Published = false
	p.Touch()
}
