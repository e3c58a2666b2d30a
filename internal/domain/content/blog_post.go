package content

import (
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// BlogPost is the aggregate root for a blog article
type BlogPost struct {
	shared.BaseAggregateRoot
	Title       string
	Slug        string
	Excerpt     string
	Body        string
	CoverImage  string
	Author      string
	Published   bool
	PublishedAt *time.Time
}

// TableName specifies the table name for GORM
func (BlogPost) TableName() string {
	return "blog_posts"
}

// NewBlogPost creates an unpublished draft
func NewBlogPost(title, body, author string) (*BlogPost, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Post title cannot be empty")
	}
	if body == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Post body cannot be empty")
	}

	slug := catalog.Slugify(title)
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Cannot derive a valid slug from post title")
	}

	return &BlogPost{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Slug:              slug,
		Body:              body,
		Author:            author,
	}, nil
}

// UpdateContent edits the post text
func (p *BlogPost) UpdateContent(title, excerpt, body string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Post title cannot be empty")
	}
	if body == "" {
		return shared.NewDomainError("INVALID_BODY", "Post body cannot be empty")
	}
	p.Title = title
	p.Excerpt = excerpt
	p.Body = body
	p.Touch()
	return nil
}

// SetCoverImage stores the cover image URL
func (p *BlogPost) SetCoverImage(url string) {
	p.CoverImage = url
	p.Touch()
}

// Publish makes the post publicly visible. Publishing an already
// published post keeps the original publish time.
func (p *BlogPost) Publish() {
	if p.Published {
		return
	}
	now := time.Now()
	p.Published = true
	p.PublishedAt = &now
	p.UpdatedAt = now
}

// Unpublish withdraws the post from public listings
func (p *BlogPost) Unpublish() {
	p.Published = false
	p.Touch()
}
