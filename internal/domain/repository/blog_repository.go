package repository

import (
	"context"
	"errors"

	"quill/internal/domain/entity"
)

// ErrBlogNotFound is returned when a blog does not exist.
var ErrBlogNotFound = errors.New("blog not found")

// BlogRepository defines persistence for blogs. Every read joins the author.
type BlogRepository interface {
	// FindByID retrieves a blog and its author.
	FindByID(ctx context.Context, id int64) (*entity.Blog, error)

	// FindByTitle retrieves a blog by its unique title.
	FindByTitle(ctx context.Context, title string) (*entity.Blog, error)

	// Create persists a new blog. A duplicate title surfaces as domainerrors.ErrBlogTitleExists.
	Create(ctx context.Context, blog *entity.Blog) error

	// Update saves title and content. The author column is never written.
	Update(ctx context.Context, blog *entity.Blog) error

	// Delete hard-deletes a blog. Returns ErrBlogNotFound when nothing was removed.
	Delete(ctx context.Context, id int64) error

	// ListOrderedByID returns all blogs in ascending ID order.
	ListOrderedByID(ctx context.Context) ([]*entity.Blog, error)

	// ListByAuthorID returns the author's blogs in ascending ID order.
	ListByAuthorID(ctx context.Context, authorID int64) ([]*entity.Blog, error)
}
