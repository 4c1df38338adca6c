package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/naimekattor/assunnah-blog/models"
	"github.com/naimekattor/assunnah-blog/repositories"
)

type CategoryService interface {
	CreateCategory(req models.CreateCategoryRequest) (*models.Category, error)
	GetCategories() ([]models.Category, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(req models.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.ErrorValidation{Message: "name must not be empty"}
	}

	_, err := s.categoryRepo.GetByName(name)
	if err == nil {
		return nil, models.ErrorConflict{Message: "category already exists"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorUpstream{Message: "look up category", Err: err}
	}

	category := &models.Category{
		Name: name,
		Slug: Slugify(name),
	}

	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "category already exists"}
		}
		return nil, models.ErrorUpstream{Message: "create category", Err: err}
	}
	return category, nil
}

func (s *categoryService) GetCategories() ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, models.ErrorUpstream{Message: "list categories", Err: err}
	}
	return categories, nil
}
