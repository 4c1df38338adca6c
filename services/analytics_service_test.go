package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naimekattor/assunnah-blog/models"
)

type fakePageViewRepo struct {
	mu    sync.Mutex
	views []models.PageView

	createErr error
	created   chan struct{}
}

func newFakePageViewRepo() *fakePageViewRepo {
	return &fakePageViewRepo{created: make(chan struct{}, 16)}
}

func (r *fakePageViewRepo) Create(view *models.PageView) error {
	defer func() { r.created <- struct{}{} }()
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, *view)
	return nil
}

func (r *fakePageViewRepo) CountSince(since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.views {
		if !v.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakePageViewRepo) TopPages(time.Time, int) ([]models.PathCount, error) {
	return nil, nil
}

func (r *fakePageViewRepo) DailyViews(time.Time) ([]models.DailyCount, error) {
	return nil, nil
}

func (r *fakePageViewRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.PageView
	var deleted int64
	for _, v := range r.views {
		if v.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, v)
	}
	r.views = kept
	return deleted, nil
}

func waitCreated(t *testing.T, repo *fakePageViewRepo) {
	t.Helper()
	select {
	case <-repo.created:
	case <-time.After(2 * time.Second):
		t.Fatal("page view was never written")
	}
}

func TestTrackRecordsInBackground(t *testing.T) {
	repo := newFakePageViewRepo()
	svc := NewAnalyticsService(repo, 90)

	svc.Track(models.PageView{Path: "/post/first-post", SessionID: "abc"})
	waitCreated(t, repo)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Len(t, repo.views, 1)
	assert.Equal(t, "/post/first-post", repo.views[0].Path)
	assert.Equal(t, "abc", repo.views[0].SessionID)
}

func TestTrackAssignsSessionID(t *testing.T) {
	repo := newFakePageViewRepo()
	svc := NewAnalyticsService(repo, 90)

	svc.Track(models.PageView{Path: "/"})
	waitCreated(t, repo)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Len(t, repo.views, 1)
	assert.NotEmpty(t, repo.views[0].SessionID)
}

func TestTrackSwallowsFailures(t *testing.T) {
	repo := newFakePageViewRepo()
	repo.createErr = errors.New("storage down")
	svc := NewAnalyticsService(repo, 90)

	// Must not panic or surface anything.
	svc.Track(models.PageView{Path: "/"})
	waitCreated(t, repo)
}
