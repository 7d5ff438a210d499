package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/okalns/ledgerly-backend/internal/domain"
)

// CategoryService handles category-related business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a category for the user. Names are trimmed but
// not deduplicated.
func (s *CategoryService) CreateCategory(userID uuid.UUID, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	return s.categoryRepo.Create(&domain.Category{
		UserID: userID,
		Name:   name,
	})
}

// GetCategories retrieves the user's categories
func (s *CategoryService) GetCategories(userID uuid.UUID) ([]*domain.Category, error) {
	return s.categoryRepo.GetByUser(userID)
}

// DeleteCategory deletes a category the user owns. Transactions that
// referenced it keep their rows with a null category.
func (s *CategoryService) DeleteCategory(userID uuid.UUID, id int32) error {
	return s.categoryRepo.Delete(userID, id)
}
