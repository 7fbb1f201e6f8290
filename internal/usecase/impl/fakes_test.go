package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore backs the in-memory repositories. It mirrors the database's
// unique constraints on email and title.
type memStore struct {
	mu         sync.Mutex
	users      map[int64]entity.User
	blogs      map[int64]entity.Blog
	nextUserID int64
	nextBlogID int64
}

func newMemStore() *memStore {
	return &memStore{
		users: map[int64]entity.User{},
		blogs: map[int64]entity.Blog{},
	}
}

func (s *memStore) seedUser(user entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	user.ID = s.nextUserID
	user.Role = entity.RoleOrDefault(user.Role)
	s.users[user.ID] = user

	return &user
}

func (s *memStore) seedBlog(blog entity.Blog) *entity.Blog {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextBlogID++
	blog.ID = s.nextBlogID
	s.blogs[blog.ID] = blog

	return &blog
}

func (s *memStore) user(id int64) (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]

	return user, ok
}

func (s *memStore) blogCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.blogs)
}

type memUserRepo struct{ store *memStore }

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.Email == email {
			return &user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return errors.WithStack(domainerrors.ErrEmailAlreadyExists)
		}
	}

	r.store.nextUserID++
	user.ID = r.store.nextUserID
	user.Role = entity.RoleOrDefault(user.Role)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.store.users[user.ID] = *user

	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for id, existing := range r.store.users {
		if id != user.ID && existing.Email == user.Email {
			return errors.WithStack(domainerrors.ErrEmailAlreadyExists)
		}
	}
	r.store.users[user.ID] = *user

	return nil
}

func (r *memUserRepo) ListOrderedByID(_ context.Context) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users := make([]*entity.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

type memBlogRepo struct{ store *memStore }

func (r *memBlogRepo) withAuthor(blog entity.Blog) *entity.Blog {
	if author, ok := r.store.users[blog.AuthorID]; ok {
		blog.Author = &author
	}

	return &blog
}

func (r *memBlogRepo) FindByID(_ context.Context, id int64) (*entity.Blog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	blog, ok := r.store.blogs[id]
	if !ok {
		return nil, repository.ErrBlogNotFound
	}

	return r.withAuthor(blog), nil
}

func (r *memBlogRepo) FindByTitle(_ context.Context, title string) (*entity.Blog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, blog := range r.store.blogs {
		if blog.Title == title {
			return r.withAuthor(blog), nil
		}
	}

	return nil, repository.ErrBlogNotFound
}

func (r *memBlogRepo) Create(_ context.Context, blog *entity.Blog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.blogs {
		if existing.Title == blog.Title {
			return errors.WithStack(domainerrors.ErrBlogTitleExists)
		}
	}

	r.store.nextBlogID++
	blog.ID = r.store.nextBlogID
	stored := *blog
	stored.Author = nil
	r.store.blogs[blog.ID] = stored

	return nil
}

func (r *memBlogRepo) Update(_ context.Context, blog *entity.Blog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.blogs[blog.ID]
	if !ok {
		return repository.ErrBlogNotFound
	}
	current.Title = blog.Title
	current.Content = blog.Content
	r.store.blogs[blog.ID] = current

	return nil
}

func (r *memBlogRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.blogs[id]; !ok {
		return repository.ErrBlogNotFound
	}
	delete(r.store.blogs, id)

	return nil
}

func (r *memBlogRepo) ListOrderedByID(_ context.Context) ([]*entity.Blog, error) {
	return r.list(func(entity.Blog) bool { return true }), nil
}

func (r *memBlogRepo) ListByAuthorID(_ context.Context, authorID int64) ([]*entity.Blog, error) {
	return r.list(func(blog entity.Blog) bool { return blog.AuthorID == authorID }), nil
}

func (r *memBlogRepo) list(keep func(entity.Blog) bool) []*entity.Blog {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	blogs := make([]*entity.Blog, 0, len(r.store.blogs))
	for _, blog := range r.store.blogs {
		if keep(blog) {
			blogs = append(blogs, r.withAuthor(blog))
		}
	}
	sort.Slice(blogs, func(i, j int) bool { return blogs[i].ID < blogs[j].ID })

	return blogs
}

// memTxManager runs the callback directly against the shared store.
type memTxManager struct {
	factory *memRepoFactory
	calls   int
}

func (tm *memTxManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	tm.calls++

	return fn(tm.factory)
}

type memRepoFactory struct {
	userRepo *memUserRepo
	blogRepo *memBlogRepo
}

func (f *memRepoFactory) UserRepo() repository.UserRepository { return f.userRepo }

func (f *memRepoFactory) BlogRepo() repository.BlogRepository { return f.blogRepo }

// stubHasher prefixes the password so hashes are readable in assertions.
type stubHasher struct {
	err error
}

func (h *stubHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}

	return "hashed:" + password, nil
}

func (h *stubHasher) Check(password, hash string) bool {
	return strings.HasPrefix(hash, "hashed:") && hash == "hashed:"+password
}

// stubTokenService issues "token-<userID>-<role>" strings.
type stubTokenService struct {
	issued []entity.SessionClaim
	err    error
}

func (s *stubTokenService) Issue(claim entity.SessionClaim) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.issued = append(s.issued, claim)

	return "token-" + claim.Role.String(), nil
}

func (s *stubTokenService) Validate(string) (*entity.SessionClaim, error) {
	return nil, errors.WithStack(domainerrors.ErrUnauthenticated)
}

func (s *stubTokenService) AccessTokenTTL() time.Duration {
	return time.Hour
}

type testDeps struct {
	store     *memStore
	txManager *memTxManager
	userRepo  *memUserRepo
	blogRepo  *memBlogRepo
	hasher    *stubHasher
	tokens    *stubTokenService
}

func newTestDeps() *testDeps {
	store := newMemStore()
	userRepo := &memUserRepo{store: store}
	blogRepo := &memBlogRepo{store: store}

	return &testDeps{
		store:     store,
		txManager: &memTxManager{factory: &memRepoFactory{userRepo: userRepo, blogRepo: blogRepo}},
		userRepo:  userRepo,
		blogRepo:  blogRepo,
		hasher:    &stubHasher{},
		tokens:    &stubTokenService{},
	}
}

func (d *testDeps) credentialService() *credentialService {
	return NewCredentialService(CredentialServiceParams{
		TxManager:    d.txManager,
		UserRepo:     d.userRepo,
		Hasher:       d.hasher,
		TokenService: d.tokens,
		Logger:       newDiscardLogger(),
	}).(*credentialService)
}

func (d *testDeps) userService() *userService {
	return NewUserService(UserServiceParams{
		TxManager: d.txManager,
		UserRepo:  d.userRepo,
		Hasher:    d.hasher,
		Logger:    newDiscardLogger(),
	}).(*userService)
}

func (d *testDeps) blogService() *blogService {
	return NewBlogService(BlogServiceParams{
		TxManager: d.txManager,
		BlogRepo:  d.blogRepo,
		Logger:    newDiscardLogger(),
	}).(*blogService)
}

func ptr[T any](v T) *T {
	return &v
}
