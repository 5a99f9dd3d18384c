package service_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/shop-api/internal/domain/models"
	"github.com/linemk/shop-api/internal/storage"
)

// fakeDB — in-memory реализация всех репозиториев с теми же
// ограничениями внешних ключей, что и в схеме БД
type fakeDB struct {
	nextID     int64
	users      map[int64]*models.User
	categories map[int64]*models.Category
	products   map[int64]*models.Product
	orders     map[int64]*models.Order
	revoked    map[uuid.UUID]time.Time
}

var (
	_ storage.UserStorage     = (*fakeDB)(nil)
	_ storage.CategoryStorage = (*fakeDB)(nil)
	_ storage.ProductStorage  = (*fakeDB)(nil)
	_ storage.OrderStorage    = (*fakeDB)(nil)
	_ storage.TokenStorage    = (*fakeDB)(nil)
)

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:      make(map[int64]*models.User),
		categories: make(map[int64]*models.Category),
		products:   make(map[int64]*models.Product),
		orders:     make(map[int64]*models.Order),
		revoked:    make(map[uuid.UUID]time.Time),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (f *fakeDB) id() int64 {
	f.nextID++
	return f.nextID
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// users

func (f *fakeDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeDB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeDB) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = f.id()
	f.users[user.ID] = user
	return user, nil
}

// categories

func (f *fakeDB) ListCategories(ctx context.Context) ([]*models.Category, error) {
	out := make([]*models.Category, 0, len(f.categories))
	for _, id := range sortedKeys(f.categories) {
		out = append(out, f.categories[id])
	}
	return out, nil
}

func (f *fakeDB) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, storage.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeDB) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	c := &models.Category{ID: f.id(), Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeDB) UpdateCategory(ctx context.Context, id int64, name string) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, storage.ErrCategoryNotFound
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return c, nil
}

func (f *fakeDB) DeleteCategory(ctx context.Context, id int64) error {
	if _, ok := f.categories[id]; !ok {
		return storage.ErrCategoryNotFound
	}
	for _, p := range f.products {
		if p.CategoryID == id {
			return storage.ErrForeignKeyViolation
		}
	}
	delete(f.categories, id)
	return nil
}

// products

func (f *fakeDB) ListProducts(ctx context.Context) ([]*models.Product, error) {
	out := make([]*models.Product, 0, len(f.products))
	for _, id := range sortedKeys(f.products) {
		out = append(out, f.products[id])
	}
	return out, nil
}

func (f *fakeDB) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeDB) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if _, ok := f.categories[product.CategoryID]; !ok {
		return nil, storage.ErrForeignKeyViolation
	}
	p := *product
	p.ID = f.id()
	f.products[p.ID] = &p
	return &p, nil
}

func (f *fakeDB) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if _, ok := f.products[product.ID]; !ok {
		return nil, storage.ErrProductNotFound
	}
	if _, ok := f.categories[product.CategoryID]; !ok {
		return nil, storage.ErrForeignKeyViolation
	}
	p := *product
	f.products[p.ID] = &p
	return &p, nil
}

func (f *fakeDB) DeleteProduct(ctx context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return storage.ErrProductNotFound
	}
	for _, o := range f.orders {
		if o.ProductID == id {
			return storage.ErrForeignKeyViolation
		}
	}
	delete(f.products, id)
	return nil
}

// orders

func (f *fakeDB) ListOrders(ctx context.Context) ([]*models.OrderListItem, error) {
	out := make([]*models.OrderListItem, 0, len(f.orders))
	for _, id := range sortedKeys(f.orders) {
		o := f.orders[id]
		u := f.users[o.UserID]
		out = append(out, &models.OrderListItem{
			ID:              o.ID,
			ProductID:       o.ProductID,
			Quantity:        o.Quantity,
			TotalPrice:      o.TotalPrice,
			CustomerName:    u.Name,
			CustomerAddress: u.Address,
			CreatedAt:       o.CreatedAt,
			UpdatedAt:       o.UpdatedAt,
		})
	}
	return out, nil
}

func (f *fakeDB) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, storage.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeDB) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if _, ok := f.products[order.ProductID]; !ok {
		return nil, storage.ErrForeignKeyViolation
	}
	o := *order
	o.ID = f.id()
	now := time.Now()
	o.OrderDate, o.CreatedAt, o.UpdatedAt = now, now, now
	f.orders[o.ID] = &o
	cp := o
	return &cp, nil
}

func (f *fakeDB) UpdateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	existing, ok := f.orders[order.ID]
	if !ok {
		return nil, storage.ErrOrderNotFound
	}
	o := *order
	o.CreatedAt = existing.CreatedAt
	o.OrderDate = time.Now()
	o.UpdatedAt = o.OrderDate
	f.orders[o.ID] = &o
	cp := o
	return &cp, nil
}

func (f *fakeDB) DeleteOrder(ctx context.Context, id int64) error {
	if _, ok := f.orders[id]; !ok {
		return storage.ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeDB) ReportOrders(ctx context.Context) ([]models.ReportLine, error) {
	out := make([]models.ReportLine, 0, len(f.orders))
	for _, id := range sortedKeys(f.orders) {
		o := f.orders[id]
		p := f.products[o.ProductID]
		c := f.categories[p.CategoryID]
		out = append(out, models.ReportLine{
			ID:           o.ID,
			ProductName:  p.Name,
			CategoryName: c.Name,
			Quantity:     o.Quantity,
			TotalPrice:   o.TotalPrice,
			CustomerName: o.CustomerName,
			OrderDate:    o.OrderDate,
		})
	}
	return out, nil
}

// tokens

func (f *fakeDB) RevokeToken(ctx context.Context, jti uuid.UUID, userID int64, expiresAt time.Time) error {
	if _, ok := f.revoked[jti]; !ok {
		f.revoked[jti] = expiresAt
	}
	return nil
}

func (f *fakeDB) IsTokenRevoked(ctx context.Context, jti uuid.UUID) (bool, error) {
	_, ok := f.revoked[jti]
	return ok, nil
}
