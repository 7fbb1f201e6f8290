package postgres

import (
	"context"
	"time"

	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/errors"
	"quill/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// blogRepository implements repository.BlogRepository. Reads preload the author.
type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository is the constructor for blogRepository.
func NewBlogRepository(db *gorm.DB) repository.BlogRepository {
	return &blogRepository{db: db}
}

// FindByID retrieves a blog and its author.
func (repo *blogRepository) FindByID(ctx context.Context, id int64) (*entity.Blog, error) {
	return repo.findOne(ctx, "blogs.id = ?", id)
}

// FindByTitle retrieves a blog by its title.
func (repo *blogRepository) FindByTitle(ctx context.Context, title string) (*entity.Blog, error) {
	return repo.findOne(ctx, "blogs.title = ?", title)
}

func (repo *blogRepository) findOne(ctx context.Context, query string, arg any) (*entity.Blog, error) {
	var blogM model.BlogModel
	err := repo.db.WithContext(ctx).
		Preload("Author").
		Where(query, arg).
		First(&blogM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBlogNotFound
		}

		return nil, errors.Wrap(err, "failed to find blog")
	}

	return toBlogDomain(&blogM), nil
}

// Create persists a new blog.
func (repo *blogRepository) Create(ctx context.Context, blog *entity.Blog) error {
	blogM := fromBlogDomain(blog)

	// Omit the association so an attached author is never upserted.
	if err := repo.db.WithContext(ctx).Omit("Author").Create(blogM).Error; err != nil {
		return translateBlogWriteError(err, "failed to create blog")
	}

	blog.ID = blogM.ID
	blog.CreatedAt = blogM.CreatedAt
	blog.UpdatedAt = blogM.UpdatedAt

	return nil
}

// Update saves title and content only. author_id is immutable.
func (repo *blogRepository) Update(ctx context.Context, blog *entity.Blog) error {
	now := time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.BlogModel{}).
		Where("id = ?", blog.ID).
		Select("title", "content", "updated_at").
		Updates(&model.BlogModel{Title: blog.Title, Content: blog.Content, UpdatedAt: now})
	if result.Error != nil {
		return translateBlogWriteError(result.Error, "failed to update blog")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBlogNotFound
	}

	blog.UpdatedAt = now

	return nil
}

// Delete removes the blog row.
func (repo *blogRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BlogModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete blog")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBlogNotFound
	}

	return nil
}

// ListOrderedByID returns all blogs in ascending ID order.
func (repo *blogRepository) ListOrderedByID(ctx context.Context) ([]*entity.Blog, error) {
	return repo.list(repo.db.WithContext(ctx))
}

// ListByAuthorID returns the author's blogs in ascending ID order.
func (repo *blogRepository) ListByAuthorID(ctx context.Context, authorID int64) ([]*entity.Blog, error) {
	return repo.list(repo.db.WithContext(ctx).Where("author_id = ?", authorID))
}

func (repo *blogRepository) list(tx *gorm.DB) ([]*entity.Blog, error) {
	var blogMs []*model.BlogModel
	if err := tx.Preload("Author").Order("blogs.id ASC").Find(&blogMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list blogs")
	}

	blogs := make([]*entity.Blog, 0, len(blogMs))
	for _, blogM := range blogMs {
		blogs = append(blogs, toBlogDomain(blogM))
	}

	return blogs, nil
}

func translateBlogWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrBlogTitleExists.WrapMessage("title already exists")
	}
	if isForeignKeyConstraintViolation(err) {
		return domainerrors.ErrBlogWriteFailed.WrapMessage("author does not exist")
	}
	if isNotNullConstraintViolation(err) {
		return domainerrors.ErrBlogWriteFailed.WrapMessage("missing required blog information")
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

func toBlogDomain(data *model.BlogModel) *entity.Blog {
	if data == nil {
		return nil
	}

	return &entity.Blog{
		ID:        data.ID,
		Title:     data.Title,
		Content:   data.Content,
		AuthorID:  data.AuthorID,
		Author:    toUserDomain(data.Author),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromBlogDomain(data *entity.Blog) *model.BlogModel {
	if data == nil {
		return nil
	}

	return &model.BlogModel{
		ID:        data.ID,
		Title:     data.Title,
		Content:   data.Content,
		AuthorID:  data.AuthorID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
