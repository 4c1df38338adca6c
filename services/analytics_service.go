package services

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/naimekattor/assunnah-blog/models"
	"github.com/naimekattor/assunnah-blog/repositories"
)

type AnalyticsService interface {
	// Track records a page view without blocking the caller. Failures
	// are logged and never surface to the request.
	Track(view models.PageView)
	Stats(days int) (*models.AnalyticsStats, error)
	PurgeOldViews() error
}

type analyticsService struct {
	viewRepo      repositories.PageViewRepository
	retentionDays int
}

func NewAnalyticsService(viewRepo repositories.PageViewRepository, retentionDays int) AnalyticsService {
	return &analyticsService{viewRepo: viewRepo, retentionDays: retentionDays}
}

func (s *analyticsService) Track(view models.PageView) {
	if view.SessionID == "" {
		view.SessionID = uuid.NewString()
	}

	go func() {
		if err := s.viewRepo.Create(&view); err != nil {
			log.Printf("analytics: record page view for %s: %v", view.Path, err)
		}
	}()
}

func (s *analyticsService) Stats(days int) (*models.AnalyticsStats, error) {
	if days < 1 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	total, err := s.viewRepo.CountSince(since)
	if err != nil {
		return nil, models.ErrorUpstream{Message: "count page views", Err: err}
	}

	topPages, err := s.viewRepo.TopPages(since, 10)
	if err != nil {
		return nil, models.ErrorUpstream{Message: "aggregate top pages", Err: err}
	}

	daily, err := s.viewRepo.DailyViews(since)
	if err != nil {
		return nil, models.ErrorUpstream{Message: "aggregate daily views", Err: err}
	}

	return &models.AnalyticsStats{
		TotalViews: total,
		TopPages:   topPages,
		DailyViews: daily,
	}, nil
}

// PurgeOldViews removes page views past the retention window. Wired to
// the nightly cron job in main.
func (s *analyticsService) PurgeOldViews() error {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	deleted, err := s.viewRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("analytics: purged %d page views older than %s", deleted, cutoff.Format("2006-01-02"))
	}
	return nil
}
