package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/naimekattor/assunnah-blog/models"
	"github.com/naimekattor/assunnah-blog/policy"
	"github.com/naimekattor/assunnah-blog/repositories"
)

const (
	// maxSlugAttempts bounds the probe-and-increment loop; the unique
	// index on posts.slug is the real guarantee.
	maxSlugAttempts = 50

	// maxCreateRetries bounds the retry loop around a duplicate-key
	// insert when two requests race on the same title.
	maxCreateRetries = 3

	excerptRuneLimit = 160
)

type PostService interface {
	Create(actor *models.Actor, req models.CreatePostRequest) (*models.Post, error)
	Get(actor *models.Actor, id uint) (*models.Post, error)
	GetBySlug(actor *models.Actor, slug string) (*models.Post, error)
	List(actor *models.Actor, params models.PostListParams) ([]models.Post, int64, error)
	Update(actor *models.Actor, id uint, req models.UpdatePostRequest) (*models.Post, error)
	Delete(actor *models.Actor, id uint) error
	Approve(actor *models.Actor, id uint) (*models.Post, error)
	Reject(actor *models.Actor, id uint) (*models.Post, error)
	PendingQueue(actor *models.Actor) ([]models.Post, error)
}

type postService struct {
	postRepo     repositories.PostRepository
	categoryRepo repositories.CategoryRepository

	// restampPublishedAt: when true, re-approving an already-published
	// post bumps published_at to now instead of leaving it alone.
	restampPublishedAt bool
}

func NewPostService(postRepo repositories.PostRepository, categoryRepo repositories.CategoryRepository, restampPublishedAt bool) PostService {
	return &postService{
		postRepo:           postRepo,
		categoryRepo:       categoryRepo,
		restampPublishedAt: restampPublishedAt,
	}
}

func (s *postService) Create(actor *models.Actor, req models.CreatePostRequest) (*models.Post, error) {
	if !policy.Allowed(actor, policy.OpCreate, nil) {
		return nil, models.ErrorUnauthorized{}
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		return nil, models.ErrorValidation{Message: "title must not be empty"}
	}
	if content == "" {
		return nil, models.ErrorValidation{Message: "content must not be empty"}
	}
	if Slugify(title) == "" {
		return nil, models.ErrorValidation{Message: "title contains no usable characters"}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorValidation{Message: "unknown category"}
			}
			return nil, models.ErrorUpstream{Message: "load category", Err: err}
		}
	}

	excerpt := strings.TrimSpace(req.Excerpt)
	if excerpt == "" {
		excerpt = deriveExcerpt(content)
	}

	// The slug probe and the insert are separate statements, so two
	// concurrent creates with the same title can both pass the probe.
	// The unique index rejects the loser and we retry with a fresh slug.
	for attempt := 0; attempt < maxCreateRetries; attempt++ {
		slug, err := s.uniqueSlug(title, 0)
		if err != nil {
			return nil, err
		}

		post := &models.Post{
			AuthorID:   actor.ID,
			Title:      title,
			Slug:       slug,
			Content:    content,
			Excerpt:    excerpt,
			CategoryID: req.CategoryID,
			Status:     models.StatusPending,
		}

		err = s.postRepo.Create(post)
		if err == nil {
			return s.postRepo.GetByID(post.ID)
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorUpstream{Message: "create post", Err: err}
		}
	}

	return nil, models.ErrorConflict{Message: "could not allocate a unique slug"}
}

func (s *postService) Get(actor *models.Actor, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOrUpstream(err, "post not found")
	}
	if err := s.authorizeRead(actor, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) GetBySlug(actor *models.Actor, slug string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(slug)
	if err != nil {
		return nil, notFoundOrUpstream(err, "post not found")
	}
	if err := s.authorizeRead(actor, post); err != nil {
		return nil, err
	}
	return post, nil
}

// authorizeRead applies the read branch of the policy. Anonymous callers
// get NotFound for non-published posts so the response does not reveal
// whether the post exists.
func (s *postService) authorizeRead(actor *models.Actor, post *models.Post) error {
	if policy.Allowed(actor, policy.OpRead, post) {
		return nil
	}
	if actor == nil {
		return models.ErrorNotFound{Message: "post not found"}
	}
	return models.ErrorForbidden{Message: "you may not view this post"}
}

func (s *postService) List(actor *models.Actor, params models.PostListParams) ([]models.Post, int64, error) {
	filter := models.PostFilter{
		CategoryID: params.CategoryID,
		Page:       params.Page,
		Limit:      params.Limit,
	}

	switch {
	case params.Mine:
		if actor == nil {
			return nil, 0, models.ErrorUnauthorized{}
		}
		filter.AuthorID = actor.ID
		if params.Status != "" {
			status, err := parseStatus(params.Status)
			if err != nil {
				return nil, 0, err
			}
			filter.Status = status
		}

	case params.Status == "":
		// Default listing: public feed of published posts, newest
		// publications first. Privileged roles see everything.
		if actor == nil || actor.Role == models.RoleUser {
			filter.Status = models.StatusPublished
			filter.SortBy = "published_at"
		}

	case params.Status == string(models.StatusPublished):
		filter.Status = models.StatusPublished
		filter.SortBy = "published_at"

	default:
		status, err := parseStatus(params.Status)
		if err != nil {
			return nil, 0, err
		}
		if actor == nil {
			return nil, 0, models.ErrorUnauthorized{}
		}
		filter.Status = status
		if actor.Role == models.RoleUser {
			// Ordinary users may only see their own non-published posts.
			filter.AuthorID = actor.ID
		}
	}

	posts, total, err := s.postRepo.GetList(filter)
	if err != nil {
		return nil, 0, models.ErrorUpstream{Message: "list posts", Err: err}
	}
	return posts, total, nil
}

func (s *postService) Update(actor *models.Actor, id uint, req models.UpdatePostRequest) (*models.Post, error) {
	if actor == nil {
		return nil, models.ErrorUnauthorized{}
	}

	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOrUpstream(err, "post not found")
	}

	if !policy.Allowed(actor, policy.OpUpdate, post) {
		return nil, models.ErrorForbidden{Message: "you may not edit this post"}
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		return nil, models.ErrorValidation{Message: "title must not be empty"}
	}
	if content == "" {
		return nil, models.ErrorValidation{Message: "content must not be empty"}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorValidation{Message: "unknown category"}
			}
			return nil, models.ErrorUpstream{Message: "load category", Err: err}
		}
	}

	// Slug and status never change on update. The preloaded Category is
	// dropped so the struct never carries an association that disagrees
	// with the new foreign key.
	post.Title = title
	post.Content = content
	post.CategoryID = req.CategoryID
	post.Category = nil
	post.Excerpt = strings.TrimSpace(req.Excerpt)
	if post.Excerpt == "" {
		post.Excerpt = deriveExcerpt(content)
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, models.ErrorUpstream{Message: "update post", Err: err}
	}
	return s.postRepo.GetByID(post.ID)
}

func (s *postService) Delete(actor *models.Actor, id uint) error {
	if actor == nil {
		return models.ErrorUnauthorized{}
	}

	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return notFoundOrUpstream(err, "post not found")
	}

	if !policy.Allowed(actor, policy.OpDelete, post) {
		return models.ErrorForbidden{Message: "you may not delete this post"}
	}

	if err := s.postRepo.Delete(id); err != nil {
		return models.ErrorUpstream{Message: "delete post", Err: err}
	}
	return nil
}

func (s *postService) Approve(actor *models.Actor, id uint) (*models.Post, error) {
	post, err := s.authorizeModeration(actor, policy.OpApprove, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch post.Status {
	case models.StatusPending:
		post.Status = models.StatusPublished
		post.PublishedAt = &now
	case models.StatusPublished:
		if s.restampPublishedAt {
			post.PublishedAt = &now
		} else {
			return post, nil
		}
	case models.StatusRejected:
		return nil, models.ErrorConflict{Message: "a rejected post cannot be approved"}
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, models.ErrorUpstream{Message: "approve post", Err: err}
	}
	return post, nil
}

func (s *postService) Reject(actor *models.Actor, id uint) (*models.Post, error) {
	post, err := s.authorizeModeration(actor, policy.OpReject, id)
	if err != nil {
		return nil, err
	}

	switch post.Status {
	case models.StatusPending:
		post.Status = models.StatusRejected
	case models.StatusRejected:
		return post, nil
	case models.StatusPublished:
		return nil, models.ErrorConflict{Message: "a published post cannot be rejected"}
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, models.ErrorUpstream{Message: "reject post", Err: err}
	}
	return post, nil
}

func (s *postService) authorizeModeration(actor *models.Actor, op policy.Operation, id uint) (*models.Post, error) {
	if actor == nil {
		return nil, models.ErrorUnauthorized{}
	}

	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOrUpstream(err, "post not found")
	}

	if !policy.Allowed(actor, op, post) {
		return nil, models.ErrorForbidden{Message: "moderator or admin role required"}
	}
	return post, nil
}

// PendingQueue lists posts awaiting review, oldest first.
func (s *postService) PendingQueue(actor *models.Actor) ([]models.Post, error) {
	if actor == nil {
		return nil, models.ErrorUnauthorized{}
	}
	if actor.Role != models.RoleModerator && actor.Role != models.RoleAdmin {
		return nil, models.ErrorForbidden{Message: "moderator or admin role required"}
	}

	posts, err := s.postRepo.GetPending()
	if err != nil {
		return nil, models.ErrorUpstream{Message: "load moderation queue", Err: err}
	}
	return posts, nil
}

// uniqueSlug probes storage for a free slug, incrementing a numeric
// suffix on collision. The loop is bounded; the posts.slug unique index
// covers the remaining race.
func (s *postService) uniqueSlug(title string, excludeID uint) (string, error) {
	slug := Slugify(title)
	if numericSlug(slug) {
		// Keep the slug distinguishable from a numeric id.
		slug = "post-" + slug
	}
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		exists, err := s.postRepo.SlugExists(slug, excludeID)
		if err != nil {
			return "", models.ErrorUpstream{Message: "check slug uniqueness", Err: err}
		}
		if !exists {
			return slug, nil
		}
		slug = nextSlug(slug)
	}
	return "", models.ErrorConflict{Message: "could not allocate a unique slug"}
}

func parseStatus(s string) (models.PostStatus, error) {
	switch models.PostStatus(s) {
	case models.StatusPending, models.StatusPublished, models.StatusRejected:
		return models.PostStatus(s), nil
	}
	return "", models.ErrorValidation{Message: "invalid status filter"}
}

func notFoundOrUpstream(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrorNotFound{Message: message}
	}
	return models.ErrorUpstream{Message: "load post", Err: err}
}

// deriveExcerpt produces a short plain-text summary from HTML content.
func deriveExcerpt(content string) string {
	var b strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}

	plain := strings.Join(strings.Fields(b.String()), " ")
	runes := []rune(plain)
	if len(runes) <= excerptRuneLimit {
		return plain
	}
	return strings.TrimSpace(string(runes[:excerptRuneLimit])) + "..."
}
