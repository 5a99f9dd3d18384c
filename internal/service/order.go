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

// OrderInput — товар и количество заказа
type OrderInput struct {
	ProductID *int64 `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required,min=1"`

	malformed malformedFields
}

// OrderService работает с заказами. Get, Update и Delete доступны только
// владельцу заказа; List и Report работают по всем заказам.
type OrderService interface {
	List(ctx context.Context) ([]*models.OrderListItem, error)
	Create(ctx context.Context, userID int64, in OrderInput) (*models.Order, error)
	Get(ctx context.Context, userID, id int64) (*models.Order, error)
	Update(ctx context.Context, userID, id int64, in OrderInput) (*models.Order, error)
	Delete(ctx context.Context, userID, id int64) error
	Report(ctx context.Context) (*models.Report, error)
}

type orderService struct {
	log         *slog.Logger
	userRepo    storage.UserStorage
	productRepo storage.ProductStorage
	orderRepo   storage.OrderStorage
}

func NewOrderService(log *slog.Logger, userRepo storage.UserStorage, productRepo storage.ProductStorage, orderRepo storage.OrderStorage) OrderService {
	return &orderService{
		log:         log,
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

func (s *orderService) List(ctx context.Context) ([]*models.OrderListItem, error) {
	const op = "service.OrderService.List"

	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// Create создаёт заказ от имени пользователя: цена берётся у товара на
// текущий момент, имя и адрес покупателя копируются в заказ.
func (s *orderService) Create(ctx context.Context, userID int64, in OrderInput) (*models.Order, error) {
	const op = "service.OrderService.Create"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	draft, err := s.buildOrder(ctx, userID, in)
	if err != nil {
		return nil, wrapValidation(op, err)
	}

	order, err := s.orderRepo.CreateOrder(ctx, draft)
	if err != nil {
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, selectedInvalid("product_id")
		}
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("order created", slog.Int64("orderID", order.ID), slog.String("total", order.TotalPrice.StringFixed(2)))
	return order, nil
}

func (s *orderService) Get(ctx context.Context, userID, id int64) (*models.Order, error) {
	const op = "service.OrderService.Get"

	order, err := s.ownedOrder(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// Update полностью заменяет товар и количество, пересчитывает сумму по
// текущей цене товара и заново снимает данные покупателя и дату заказа.
func (s *orderService) Update(ctx context.Context, userID, id int64, in OrderInput) (*models.Order, error) {
	const op = "service.OrderService.Update"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("orderID", id))

	if _, err := s.ownedOrder(ctx, userID, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	draft, err := s.buildOrder(ctx, userID, in)
	if err != nil {
		return nil, wrapValidation(op, err)
	}
	draft.ID = id

	order, err := s.orderRepo.UpdateOrder(ctx, draft)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrOrderNotFound):
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrForeignKeyViolation):
			return nil, selectedInvalid("product_id")
		}
		logger.Error("failed to update order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("order updated", slog.String("total", order.TotalPrice.StringFixed(2)))
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, userID, id int64) error {
	const op = "service.OrderService.Delete"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("orderID", id))

	if _, err := s.ownedOrder(ctx, userID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		logger.Error("failed to delete order", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("order deleted")
	return nil
}

// Report агрегирует все заказы независимо от пользователя.
// Выручка суммируется здесь же, чтобы total_revenue точно совпадал с суммой строк.
func (s *orderService) Report(ctx context.Context) (*models.Report, error) {
	const op = "service.OrderService.Report"

	lines, err := s.orderRepo.ReportOrders(ctx)
	if err != nil {
		s.log.Error("failed to build report", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	revenue := decimal.Zero
	for _, line := range lines {
		revenue = revenue.Add(line.TotalPrice)
	}

	return &models.Report{
		TotalOrders:  len(lines),
		TotalRevenue: revenue,
		Orders:       lines,
	}, nil
}

// ownedOrder загружает заказ и проверяет владельца.
// Отсутствие заказа проверяется раньше владельца.
func (s *orderService) ownedOrder(ctx context.Context, userID, id int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get order", slog.Int64("orderID", id), slog.Any("error", err))
		return nil, err
	}
	if !order.OwnedBy(userID) {
		s.log.Warn("order belongs to another user", slog.Int64("orderID", id), slog.Int64("userID", userID))
		return nil, ErrForbidden
	}
	return order, nil
}

// buildOrder валидирует вход (product_id, затем quantity), берёт текущую
// цену товара и данные покупателя и считает total_price = price * quantity.
func (s *orderService) buildOrder(ctx context.Context, userID int64, in OrderInput) (*models.Order, error) {
	verr := validateStruct(in)
	if in.malformed["product_id"] {
		return nil, selectedInvalid("product_id")
	}
	if verr != nil && verr.Field == "product_id" {
		return nil, verr
	}

	var product *models.Product
	if in.ProductID != nil {
		p, err := s.productRepo.GetProductByID(ctx, *in.ProductID)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				return nil, selectedInvalid("product_id")
			}
			return nil, fmt.Errorf("failed to get product: %w", err)
		}
		product = p
	}
	if in.malformed["quantity"] {
		return nil, newValidationError("quantity", "The quantity field must be an integer.")
	}
	if verr != nil {
		return nil, verr
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	quantity := *in.Quantity
	return &models.Order{
		UserID:          user.ID,
		ProductID:       product.ID,
		Quantity:        quantity,
		TotalPrice:      product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		CustomerName:    user.Name,
		CustomerAddress: user.Address,
	}, nil
}
