package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/policy"
	"quill/internal/domain/repository"
	"quill/internal/errors"
	"quill/internal/usecase"

	"go.uber.org/fx"
)

// blogService implements the BlogUsecase interface.
type blogService struct {
	txManager repository.TransactionManager
	blogRepo  repository.BlogRepository
	logger    *slog.Logger
}

// BlogServiceParams holds dependencies for BlogService, injected by Fx.
type BlogServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	BlogRepo  repository.BlogRepository
	Logger    *slog.Logger
}

// NewBlogService is the constructor for blogService.
func NewBlogService(params BlogServiceParams) usecase.BlogUsecase {
	return &blogService{
		txManager: params.TxManager,
		blogRepo:  params.BlogRepo,
		logger:    params.Logger,
	}
}

func (srv *blogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create publishes a post owned by the requester.
func (srv *blogService) Create(ctx context.Context, claim entity.SessionClaim, input *usecase.CreateBlogInput) (*usecase.BlogSummary, error) {
	if input == nil || strings.TrimSpace(input.Title) == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("title is required"))
	}

	blog := &entity.Blog{
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		AuthorID: claim.UserID,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// A token outlives a soft delete, so the author is re-read here.
		author, err := repoFactory.UserRepo().FindByID(ctx, claim.UserID)
		if errors.Is(err, repository.ErrUserNotFound) || (err == nil && !author.IsActive()) {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "author account is no longer active")
		}
		if err != nil {
			return errors.Wrap(err, "failed to load author")
		}

		blogRepo := repoFactory.BlogRepo()
		if err := ensureTitleAvailable(ctx, blogRepo, blog.Title, 0); err != nil {
			return err
		}

		if err := blogRepo.Create(ctx, blog); err != nil {
			return errors.Wrap(err, "failed to create blog")
		}
		blog.Author = author

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "create blog")
	}

	srv.log(ctx).Info("Blog created", slog.Int64("blogID", blog.ID), slog.Int64("authorID", blog.AuthorID))
	summary := usecase.NewBlogSummary(blog)

	return &summary, nil
}

// ListAll returns every post in ascending ID order.
func (srv *blogService) ListAll(ctx context.Context) ([]usecase.BlogSummary, error) {
	blogs, err := srv.blogRepo.ListOrderedByID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list blogs")
	}

	return toBlogSummaries(blogs), nil
}

// ListMine returns the requester's posts in ascending ID order.
func (srv *blogService) ListMine(ctx context.Context, claim entity.SessionClaim) ([]usecase.BlogSummary, error) {
	blogs, err := srv.blogRepo.ListByAuthorID(ctx, claim.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list blogs by author")
	}

	return toBlogSummaries(blogs), nil
}

// GetByID returns one post. No ownership check applies to reads.
func (srv *blogService) GetByID(ctx context.Context, id int64) (*usecase.BlogSummary, error) {
	blog, err := findBlog(ctx, srv.blogRepo, id)
	if err != nil {
		return nil, err
	}

	summary := usecase.NewBlogSummary(blog)

	return &summary, nil
}

// Update patches title and content. Existence is checked before permission.
func (srv *blogService) Update(ctx context.Context, claim entity.SessionClaim, id int64, input *usecase.UpdateBlogInput) (*usecase.BlogSummary, error) {
	if input == nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("request body is required"))
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("title must not be empty"))
	}

	var updated *entity.Blog
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		blogRepo := repoFactory.BlogRepo()

		blog, err := findBlog(ctx, blogRepo, id)
		if err != nil {
			return err
		}
		if err := policy.RequireOwnerOrAdmin(claim, blog.AuthorID); err != nil {
			return err
		}

		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if err := ensureTitleAvailable(ctx, blogRepo, title, blog.ID); err != nil {
				return err
			}
			blog.Title = title
		}
		if input.Content != nil {
			blog.Content = *input.Content
		}

		if err := blogRepo.Update(ctx, blog); err != nil {
			return errors.Wrap(err, "failed to update blog")
		}
		updated = blog

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "update blog %d", id)
	}

	srv.log(ctx).Info("Blog updated", slog.Int64("blogID", id), slog.Int64("by", claim.UserID))
	summary := usecase.NewBlogSummary(updated)

	return &summary, nil
}

// Remove hard-deletes a post. Existence is checked before permission.
func (srv *blogService) Remove(ctx context.Context, claim entity.SessionClaim, id int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		blogRepo := repoFactory.BlogRepo()

		blog, err := findBlog(ctx, blogRepo, id)
		if err != nil {
			return err
		}
		if err := policy.RequireOwnerOrAdmin(claim, blog.AuthorID); err != nil {
			return err
		}

		err = blogRepo.Delete(ctx, id)
		if errors.Is(err, repository.ErrBlogNotFound) {
			return errors.WithStack(domainerrors.ErrBlogNotFound)
		}

		return errors.Wrap(err, "failed to delete blog")
	})
	if err != nil {
		return errors.Wrapf(err, "remove blog %d", id)
	}

	srv.log(ctx).Info("Blog removed", slog.Int64("blogID", id), slog.Int64("by", claim.UserID))

	return nil
}

func findBlog(ctx context.Context, blogRepo repository.BlogRepository, id int64) (*entity.Blog, error) {
	blog, err := blogRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrBlogNotFound) {
		return nil, errors.WithStack(domainerrors.ErrBlogNotFound)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find blog")
	}

	return blog, nil
}

// ensureTitleAvailable fails Conflict when another blog already uses title.
// The unique index remains the authoritative guard against concurrent writers.
func ensureTitleAvailable(ctx context.Context, blogRepo repository.BlogRepository, title string, selfID int64) error {
	existing, err := blogRepo.FindByTitle(ctx, title)
	switch {
	case errors.Is(err, repository.ErrBlogNotFound):
		return nil
	case err != nil:
		return errors.Wrap(err, "failed to check blog title")
	case existing.ID != selfID:
		return errors.WithStack(domainerrors.ErrBlogTitleExists)
	default:
		return nil
	}
}

func toBlogSummaries(blogs []*entity.Blog) []usecase.BlogSummary {
	summaries := make([]usecase.BlogSummary, 0, len(blogs))
	for _, blog := range blogs {
		summaries = append(summaries, usecase.NewBlogSummary(blog))
	}

	return summaries
}
