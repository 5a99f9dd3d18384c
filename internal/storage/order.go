package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/shop-api/internal/domain/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// ListOrders возвращает все заказы с именем и адресом владельца (JOIN users).
	ListOrders(ctx context.Context) ([]*models.OrderListItem, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	// CreateOrder вставляет новый заказ, order_date выставляется в NOW().
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// UpdateOrder полностью заменяет товар, количество, сумму и снимок покупателя,
	// order_date обновляется до текущего момента.
	UpdateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	// ReportOrders возвращает строки отчета по всем заказам (JOIN products, categories).
	ReportOrders(ctx context.Context) ([]models.ReportLine, error)
}

// orderRepository реализует OrderStorage поверх *sql.DB.
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

const orderColumns = `id, user_id, product_id, quantity, total_price, customer_name, customer_address,
	order_date, created_at, updated_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(
		&order.ID, &order.UserID, &order.ProductID, &order.Quantity, &order.TotalPrice,
		&order.CustomerName, &order.CustomerAddress,
		&order.OrderDate, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, translateError(err)
	}
	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]*models.OrderListItem, error) {
	query := `
		SELECT o.id, o.product_id, o.quantity, o.total_price, u.name, u.address, o.created_at, o.updated_at
		FROM orders o
		JOIN users u ON o.user_id = u.id
		ORDER BY o.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*models.OrderListItem, 0)
	for rows.Next() {
		item := &models.OrderListItem{}
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.TotalPrice,
			&item.CustomerName, &item.CustomerAddress, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	return scanOrder(row)
}

// CreateOrder вставляет новый заказ в таблицу orders.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	query := `INSERT INTO orders (user_id, product_id, quantity, total_price, customer_name, customer_address,
	              order_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW(), NOW())
	          RETURNING ` + orderColumns
	row := r.db.QueryRowContext(ctx, query,
		order.UserID, order.ProductID, order.Quantity, order.TotalPrice, order.CustomerName, order.CustomerAddress)
	created, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return created, nil
}

func (r *orderRepository) UpdateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	query := `UPDATE orders
	          SET user_id = $1, product_id = $2, quantity = $3, total_price = $4,
	              customer_name = $5, customer_address = $6, order_date = NOW(), updated_at = NOW()
	          WHERE id = $7
	          RETURNING ` + orderColumns
	row := r.db.QueryRowContext(ctx, query,
		order.UserID, order.ProductID, order.Quantity, order.TotalPrice, order.CustomerName, order.CustomerAddress, order.ID)
	return scanOrder(row)
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return translateError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) ReportOrders(ctx context.Context) ([]models.ReportLine, error) {
	query := `
		SELECT o.id, p.name, c.name, o.quantity, o.total_price, o.customer_name, o.order_date
		FROM orders o
		JOIN products p ON o.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		ORDER BY o.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query order report: %w", err)
	}
	defer rows.Close()

	lines := make([]models.ReportLine, 0)
	for rows.Next() {
		var line models.ReportLine
		if err := rows.Scan(&line.ID, &line.ProductName, &line.CategoryName, &line.Quantity,
			&line.TotalPrice, &line.CustomerName, &line.OrderDate); err != nil {
			return nil, fmt.Errorf("failed to scan report line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
