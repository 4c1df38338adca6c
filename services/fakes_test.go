package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/naimekattor/assunnah-blog/models"
)

// In-memory repository fakes. They mimic the gorm-backed behavior the
// services depend on: ErrRecordNotFound on a miss and ErrDuplicatedKey
// on a unique-index violation.

type fakePostRepo struct {
	mu     sync.Mutex
	nextID uint
	posts  map[uint]models.Post

	// forcedConflicts makes the next n Create calls fail with a
	// duplicate-key error, simulating a lost slug race.
	forcedConflicts int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[uint]models.Post{}}
}

func (r *fakePostRepo) Create(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.forcedConflicts > 0 {
		r.forcedConflicts--
		return gorm.ErrDuplicatedKey
	}
	for _, p := range r.posts {
		if p.Slug == post.Slug {
			return gorm.ErrDuplicatedKey
		}
	}

	r.nextID++
	post.ID = r.nextID
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	r.posts[post.ID] = *post
	return nil
}

func (r *fakePostRepo) GetByID(id uint) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return withPreloads(p), nil
}

func (r *fakePostRepo) GetBySlug(slug string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.posts {
		if p.Slug == slug {
			return withPreloads(p), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// withPreloads mimics the Preload("Category") the real repository does
// on reads, so services see a populated association pointer.
func withPreloads(p models.Post) *models.Post {
	if p.CategoryID != nil {
		p.Category = &models.Category{ID: *p.CategoryID}
	}
	return &p
}

func (r *fakePostRepo) SlugExists(slug string, excludeID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.posts {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePostRepo) GetList(filter models.PostFilter) ([]models.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Post
	for _, p := range r.posts {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.AuthorID > 0 && p.AuthorID != filter.AuthorID {
			continue
		}
		if filter.CategoryID > 0 && (p.CategoryID == nil || *p.CategoryID != filter.CategoryID) {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		if filter.SortBy == "published_at" {
			ti, tj := timeOrZero(matched[i].PublishedAt), timeOrZero(matched[j].PublishedAt)
			return ti.After(tj)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func (r *fakePostRepo) GetPending() ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []models.Post
	for _, p := range r.posts {
		if p.Status == models.StatusPending {
			pending = append(pending, p)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

func (r *fakePostRepo) Update(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	post.UpdatedAt = time.Now()

	// Like the real repository, only the post's own columns are written;
	// associations on the struct are ignored.
	stored := *post
	stored.Author = models.User{}
	stored.Category = nil
	r.posts[post.ID] = stored
	return nil
}

func (r *fakePostRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.posts, id)
	return nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	nextID     uint
	categories map[uint]models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[uint]models.Category{}}
}

func (r *fakeCategoryRepo) Create(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Name == category.Name || c.Slug == category.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	category.ID = r.nextID
	category.CreatedAt = time.Now()
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) GetByID(id uint) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) GetByName(name string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) GetAll() ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []models.Category
	for _, c := range r.categories {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	user.ID = r.nextID
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return &models.User{}, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdatePassword(id uint, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hashedPassword
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]uint
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]uint{}}
}

func (s *fakeTokenStore) Issue(_ context.Context, userID uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	s.tokens[token] = userID
	return token, nil
}

func (s *fakeTokenStore) Consume(_ context.Context, token string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.tokens[token]
	if !ok {
		return 0, nil
	}
	delete(s.tokens, token)
	return id, nil
}

// expire drops a token as if its TTL had elapsed.
func (s *fakeTokenStore) expire(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}
