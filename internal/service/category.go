package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/shop-api/internal/domain/models"
	"github.com/linemk/shop-api/internal/storage"
)

// CategoryInput — поля категории для создания и полной замены
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	Create(ctx context.Context, in CategoryInput) (*models.Category, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	Update(ctx context.Context, id int64, in CategoryInput) (*models.Category, error)
	// Delete возвращает ErrConflict, если на категорию ссылается хотя бы один товар.
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	log          *slog.Logger
	categoryRepo storage.CategoryStorage
}

func NewCategoryService(log *slog.Logger, categoryRepo storage.CategoryStorage) CategoryService {
	return &categoryService{
		log:          log,
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	const op = "service.CategoryService.List"

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.log.Error("failed to list categories", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	const op = "service.CategoryService.Create"
	logger := s.log.With(slog.String("op", op))

	if verr := validateStruct(in); verr != nil {
		return nil, verr
	}

	category, err := s.categoryRepo.CreateCategory(ctx, in.Name)
	if err != nil {
		logger.Error("failed to create category", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("category created", slog.Int64("categoryID", category.ID))
	return category, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	const op = "service.CategoryService.Get"

	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrCategoryNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		s.log.Error("failed to get category", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return category, nil
}

// Update сначала проверяет существование категории, затем валидирует поля.
func (s *categoryService) Update(ctx context.Context, id int64, in CategoryInput) (*models.Category, error) {
	const op = "service.CategoryService.Update"
	logger := s.log.With(slog.String("op", op), slog.Int64("categoryID", id))

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if verr := validateStruct(in); verr != nil {
		return nil, verr
	}

	category, err := s.categoryRepo.UpdateCategory(ctx, id, in.Name)
	if err != nil {
		if errors.Is(err, storage.ErrCategoryNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		logger.Error("failed to update category", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("category updated")
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	const op = "service.CategoryService.Delete"
	logger := s.log.With(slog.String("op", op), slog.Int64("categoryID", id))

	err := s.categoryRepo.DeleteCategory(ctx, id)
	switch {
	case err == nil:
		logger.Info("category deleted")
		return nil
	case errors.Is(err, storage.ErrCategoryNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, storage.ErrForeignKeyViolation):
		logger.Warn("category is referenced by products")
		return fmt.Errorf("%s: %w", op, ErrConflict)
	default:
		logger.Error("failed to delete category", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
}
