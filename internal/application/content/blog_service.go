package content

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/content"
	"github.com/storefront/backend/internal/domain/shared"
)

// BlogService handles blog content use cases
type BlogService struct {
	postRepo content.BlogPostRepository
	logger   *zap.Logger
}

// NewBlogService creates a new blog service
func NewBlogService(postRepo content.BlogPostRepository, logger *zap.Logger) *BlogService {
	return &BlogService{
		postRepo: postRepo,
		logger:   logger,
	}
}

// GetBySlug returns a single post. Drafts are hidden from the public
// site but remain visible to admins.
func (s *BlogService) GetBySlug(ctx context.Context, slug string, includeDrafts bool) (*BlogPostResponse, error) {
	p, err := s.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Published && !includeDrafts {
		return nil, shared.ErrNotFound
	}
	response := ToBlogPostResponse(p, false)
	return &response, nil
}

// ListPublished returns a paginated index of published posts without
// bodies
func (s *BlogService) ListPublished(ctx context.Context, filter shared.Filter) (*shared.Paginated[BlogPostResponse], error) {
	posts, err := s.postRepo.FindPublished(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["published"] = true
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	items := make([]BlogPostResponse, 0, len(posts))
	for _, p := range posts {
		items = append(items, ToBlogPostResponse(p, true))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListAll returns every post including drafts (admin)
func (s *BlogService) ListAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[BlogPostResponse], error) {
	posts, err := s.postRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	items := make([]BlogPostResponse, 0, len(posts))
	for _, p := range posts {
		items = append(items, ToBlogPostResponse(p, true))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Create registers a new draft (admin)
func (s *BlogService) Create(ctx context.Context, req CreateBlogPostRequest) (*BlogPostResponse, error) {
	p, err := content.NewBlogPost(req.Title, req.Body, req.Author)
	if err != nil {
		return nil, err
	}
	if req.Excerpt != "" {
		if err := p.UpdateContent(req.Title, req.Excerpt, req.Body); err != nil {
			return nil, err
		}
	}
	if req.CoverImage != "" {
		p.SetCoverImage(req.CoverImage)
	}

	if err := s.postRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	s.logger.Info("blog post created",
		zap.String("post_id", p.ID.String()),
		zap.String("slug", p.Slug))

	response := ToBlogPostResponse(p, false)
	return &response, nil
}

// Update edits an existing post (admin)
func (s *BlogService) Update(ctx context.Context, id uuid.UUID, req UpdateBlogPostRequest) (*BlogPostResponse, error) {
	p, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := p.Title
	excerpt := p.Excerpt
	body := p.Body
	if req.Title != nil {
		title = *req.Title
	}
	if req.Excerpt != nil {
		excerpt = *req.Excerpt
	}
	if req.Body != nil {
		body = *req.Body
	}
	if err := p.UpdateContent(title, excerpt, body); err != nil {
		return nil, err
	}
	if req.CoverImage != nil {
		p.SetCoverImage(*req.CoverImage)
	}

	if err := s.postRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	response := ToBlogPostResponse(p, false)
	return &response, nil
}

// SetPublished publishes or withdraws a post (admin)
func (s *BlogService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*BlogPostResponse, error) {
	p, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if published {
		p.Publish()
	} else {
		p.Unpublish()
	}
	if err := s.postRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}
	response := ToBlogPostResponse(p, false)
	return &response, nil
}

// Delete removes a post (admin)
func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.postRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}
