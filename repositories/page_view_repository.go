package repositories

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/naimekattor/assunnah-blog/models"
)

type PageViewRepository interface {
	Create(view *models.PageView) error
	CountSince(since time.Time) (int64, error)
	TopPages(since time.Time, limit int) ([]models.PathCount, error)
	DailyViews(since time.Time) ([]models.DailyCount, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type pageViewRepository struct {
	db *gorm.DB
	sb sq.StatementBuilderType
}

func NewPageViewRepository(db *gorm.DB) PageViewRepository {
	return &pageViewRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *pageViewRepository) Create(view *models.PageView) error {
	return r.db.Create(view).Error
}

func (r *pageViewRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.PageView{}).
		Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *pageViewRepository) TopPages(since time.Time, limit int) ([]models.PathCount, error) {
	query, args, err := r.sb.
		Select("path", "COUNT(*) AS views").
		From("page_views").
		Where(sq.GtOrEq{"created_at": since}).
		GroupBy("path").
		OrderBy("views DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	var results []models.PathCount
	if err := r.db.Raw(query, args...).Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *pageViewRepository) DailyViews(since time.Time) ([]models.DailyCount, error) {
	query, args, err := r.sb.
		Select("DATE_TRUNC('day', created_at) AS day", "COUNT(*) AS views").
		From("page_views").
		Where(sq.GtOrEq{"created_at": since}).
		GroupBy("day").
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var results []models.DailyCount
	if err := r.db.Raw(query, args...).Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *pageViewRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", cutoff).Delete(&models.PageView{})
	return res.RowsAffected, res.Error
}
