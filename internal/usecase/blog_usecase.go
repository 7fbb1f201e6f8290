package usecase

import (
	"context"

	"quill/internal/domain/entity"
)

// CreateBlogInput defines a new post. The author is always the requester.
type CreateBlogInput struct {
	Title   string
	Content string
}

// UpdateBlogInput is a partial update. The author cannot be changed.
type UpdateBlogInput struct {
	Title   *string
	Content *string
}

// BlogSummary is a post with its author's public projection.
type BlogSummary struct {
	ID      int64       `json:"id"`
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Author  UserSummary `json:"author"`
}

// NewBlogSummary projects a blog and its loaded author.
func NewBlogSummary(blog *entity.Blog) BlogSummary {
	summary := BlogSummary{
		ID:      blog.ID,
		Title:   blog.Title,
		Content: blog.Content,
		Author:  NewUserSummary(blog.Author),
	}
	if blog.Author == nil {
		summary.Author.ID = blog.AuthorID
	}

	return summary
}

// BlogUsecase defines blog post operations.
type BlogUsecase interface {
	Create(ctx context.Context, claim entity.SessionClaim, input *CreateBlogInput) (*BlogSummary, error)
	ListAll(ctx context.Context) ([]BlogSummary, error)
	ListMine(ctx context.Context, claim entity.SessionClaim) ([]BlogSummary, error)
	GetByID(ctx context.Context, id int64) (*BlogSummary, error)
	Update(ctx context.Context, claim entity.SessionClaim, id int64, input *UpdateBlogInput) (*BlogSummary, error)
	Remove(ctx context.Context, claim entity.SessionClaim, id int64) error
}
