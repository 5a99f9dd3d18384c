package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/shop-api/internal/domain/models"
	"github.com/linemk/shop-api/internal/storage"
	"github.com/shopspring/decimal"
)

// ProductInput — поля товара. Указатели нужны, чтобы отличать отсутствующее поле от нуля.
type ProductInput struct {
	Name       string           `json:"name" validate:"required,max=255"`
	CategoryID *int64           `json:"category_id" validate:"required"`
	Price      *decimal.Decimal `json:"price" validate:"required"`

	malformed malformedFields
}

type ProductService interface {
	List(ctx context.Context) ([]*models.Product, error)
	Create(ctx context.Context, in ProductInput) (*models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, id int64, in ProductInput) (*models.Product, error)
	// Delete возвращает ErrConflict, если товар есть хотя бы в одном заказе.
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	log          *slog.Logger
	productRepo  storage.ProductStorage
	categoryRepo storage.CategoryStorage
}

func NewProductService(log *slog.Logger, productRepo storage.ProductStorage, categoryRepo storage.CategoryStorage) ProductService {
	return &productService{
		log:          log,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// validate проверяет поля в порядке name, category_id, price и
// возвращает ошибку первого невалидного поля.
func (s *productService) validate(ctx context.Context, in ProductInput) error {
	verr := validateStruct(in)
	if in.malformed["name"] {
		return newValidationError("name", "The name field must be a string.")
	}
	if verr != nil && verr.Field == "name" {
		return verr
	}

	if in.malformed["category_id"] {
		return selectedInvalid("category_id")
	}
	if in.CategoryID != nil {
		if _, err := s.categoryRepo.GetCategoryByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, storage.ErrCategoryNotFound) {
				return selectedInvalid("category_id")
			}
			return err
		}
	}
	if verr != nil && verr.Field == "category_id" {
		return verr
	}

	if in.malformed["price"] {
		return newValidationError("price", "The price field must be a number.")
	}
	if verr != nil {
		return verr
	}

	if in.Price.IsNegative() {
		return newValidationError("price", "The price field must be at least 0.")
	}
	return nil
}

func (s *productService) List(ctx context.Context) ([]*models.Product, error) {
	const op = "service.ProductService.List"

	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *productService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	const op = "service.ProductService.Create"
	logger := s.log.With(slog.String("op", op))

	if err := s.validate(ctx, in); err != nil {
		return nil, wrapValidation(op, err)
	}

	product, err := s.productRepo.CreateProduct(ctx, &models.Product{
		Name:       in.Name,
		CategoryID: *in.CategoryID,
		Price:      *in.Price,
	})
	if err != nil {
		// категорию могли удалить между проверкой и вставкой
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, selectedInvalid("category_id")
		}
		logger.Error("failed to create product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product created", slog.Int64("productID", product.ID))
	return product, nil
}

func (s *productService) Get(ctx context.Context, id int64) (*models.Product, error) {
	const op = "service.ProductService.Get"

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		s.log.Error("failed to get product", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id int64, in ProductInput) (*models.Product, error) {
	const op = "service.ProductService.Update"
	logger := s.log.With(slog.String("op", op), slog.Int64("productID", id))

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, wrapValidation(op, err)
	}

	product, err := s.productRepo.UpdateProduct(ctx, &models.Product{
		ID:         id,
		Name:       in.Name,
		CategoryID: *in.CategoryID,
		Price:      *in.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrProductNotFound):
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrForeignKeyViolation):
			return nil, selectedInvalid("category_id")
		}
		logger.Error("failed to update product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product updated")
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	const op = "service.ProductService.Delete"
	logger := s.log.With(slog.String("op", op), slog.Int64("productID", id))

	err := s.productRepo.DeleteProduct(ctx, id)
	switch {
	case err == nil:
		logger.Info("product deleted")
		return nil
	case errors.Is(err, storage.ErrProductNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, storage.ErrForeignKeyViolation):
		logger.Warn("product is referenced by orders")
		return fmt.Errorf("%s: %w", op, ErrConflict)
	default:
		logger.Error("failed to delete product", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
}

// wrapValidation оставляет ошибки валидации как есть, остальные дополняет op
func wrapValidation(op string, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return fmt.Errorf("%s: %w", op, err)
}
