package models

import (
	"time"

	"github.com/packmart/backend/internal/domain/content"
)

// PostModel is the persistence model for the blog Post entity.
type PostModel struct {
	BaseModel
	Title       string     `gorm:"type:varchar(300);not null"`
	Slug        string     `gorm:"type:varchar(300);not null;uniqueIndex"`
	Excerpt     string     `gorm:"type:text"`
	Body        string     `gorm:"type:text;not null"`
	CoverImage  string     `gorm:"type:varchar(500)"`
	Published   bool       `gorm:"not null;default:false;index"`
	PublishedAt *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (PostModel) TableName() string {
	return "posts"
}

// ToDomain converts the persistence model to a domain Post entity.
func (m *PostModel) ToDomain() *content.Post {
	return &content.Post{
		BaseEntity:  m.BaseModel.ToDomain(),
		Title:       m.Title,
		Slug:        m.Slug,
		Excerpt:     m.Excerpt,
		Body:        m.Body,
		CoverImage:  m.CoverImage,
		Published:   m.Published,
		PublishedAt: m.PublishedAt,
	}
}

// FromDomain populates the persistence model from a domain Post entity.
func (m *PostModel) FromDomain(p *content.Post) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Title = p.Title
	m.Slug = p.Slug
	m.Excerpt = p.Excerpt
	m.Body = p.Body
	m.CoverImage = p.CoverImage
	m.Published = p.Published
	m.PublishedAt = p.PublishedAt
}

// PostModelFromDomain creates a new persistence model from a domain Post entity.
func PostModelFromDomain(p *content.Post) *PostModel {
	m := &PostModel{}
	m.FromDomain(p)
	return m
}
