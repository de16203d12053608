package site

import (
	"context"

	"github.com/voltrak-labs/showroom/internal/backend"
	"github.com/voltrak-labs/showroom/pkg/api"
	"github.com/voltrak-labs/showroom/pkg/models"
)

// BlogPage is a blog post with related posts.
type BlogPage struct {
	Blog    models.Blog   `json:"blog"`
	Related []models.Blog `json:"related"`
}

// Blogs lists blog posts.
func (s *Site) Blogs(ctx context.Context) ([]models.Blog, error) {
	var out []models.Blog
	if _, err := s.client.Get(ctx, api.EndpointBlogs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BlogDetail loads post id and up to RelatedCount other posts.
func (s *Site) BlogDetail(ctx context.Context, id int64) (*BlogPage, error) {
	page := &BlogPage{}
	if _, err := s.client.Get(ctx, backend.ItemPath(api.EndpointBlogs, id), &page.Blog); err != nil {
		return nil, err
	}
	all, err := s.Blogs(ctx)
	if err != nil {
		return nil, err
	}
	page.Related = pickRelated(s, all, func(b models.Blog) bool { return sameID(b.ID, id) }, RelatedCount)
	return page, nil
}
