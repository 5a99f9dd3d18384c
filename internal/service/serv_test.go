package service_test

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/linemk/shop-api/internal/domain/models"
	"github.com/linemk/shop-api/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "testsecret"

func newAuthService(db *fakeDB) *service.AuthService {
	return service.NewAuthService(discardLogger(), db, db, testSecret, 60*time.Minute)
}

func ptr[T any](v T) *T { return &v }

func registerUser(t *testing.T, auth *service.AuthService, name, email string) *models.User {
	t.Helper()
	user, err := auth.Register(context.Background(), service.RegisterInput{
		Name:     name,
		Email:    email,
		Password: "password123",
		Address:  "Main street 1",
	})
	require.NoError(t, err)
	return user
}

func assertValidation(t *testing.T, err error, message string) {
	t.Helper()
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, message, verr.Message)
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	db := newFakeDB()
	auth := newAuthService(db)
	ctx := context.Background()

	user := registerUser(t, auth, "Alice", "alice@example.com")
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, []byte("password123"), user.PassHash, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword(db.users[user.ID].PassHash, []byte("password123")))

	res, err := auth.Login(ctx, service.LoginInput{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, models.UserBrief{ID: user.ID, Name: "Alice", Email: "alice@example.com"}, res.User)

	// выданный токен аутентифицирует последующие запросы
	current, err := auth.CurrentUser(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	db := newFakeDB()
	auth := newAuthService(db)
	registerUser(t, auth, "Alice", "alice@example.com")

	res, err := auth.Login(context.Background(), service.LoginInput{Email: "alice@example.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	assert.Nil(t, res, "no token must be issued")
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	auth := newAuthService(newFakeDB())

	res, err := auth.Login(context.Background(), service.LoginInput{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	assert.Nil(t, res)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	auth := newAuthService(newFakeDB())

	tests := []struct {
		name    string
		in      service.RegisterInput
		message string
	}{
		{
			name:    "missing name",
			in:      service.RegisterInput{Email: "a@example.com", Password: "secret1", Address: "Street 1"},
			message: "The name field is required.",
		},
		{
			name:    "bad email",
			in:      service.RegisterInput{Name: "A", Email: "not-an-email", Password: "secret1", Address: "Street 1"},
			message: "The email field must be a valid email address.",
		},
		{
			name:    "short password",
			in:      service.RegisterInput{Name: "A", Email: "a@example.com", Password: "12345", Address: "Street 1"},
			message: "The password field must be at least 6 characters.",
		},
		{
			name:    "short address",
			in:      service.RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1", Address: "St"},
			message: "The address field must be at least 6 characters.",
		},
		{
			name:    "name longer than column",
			in:      service.RegisterInput{Name: strings.Repeat("a", 256), Email: "a@example.com", Password: "secret1", Address: "Street 1"},
			message: "The name field must not be greater than 255 characters.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := auth.Register(context.Background(), tt.in)
			assert.Nil(t, user)
			assertValidation(t, err, tt.message)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	db := newFakeDB()
	auth := newAuthService(db)
	ctx := context.Background()
	registerUser(t, auth, "Alice", "alice@example.com")

	res, err := auth.Login(ctx, service.LoginInput{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, res.Token))

	_, err = auth.CurrentUser(ctx, res.Token)
	assert.ErrorIs(t, err, service.ErrUnauthorized, "revoked token must not authenticate")

	// повторный отзыв того же токена не ошибка
	assert.NoError(t, auth.Logout(ctx, res.Token))

	// другой логин того же пользователя продолжает работать
	again, err := auth.Login(ctx, service.LoginInput{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	_, err = auth.CurrentUser(ctx, again.Token)
	assert.NoError(t, err)
}

func TestAuthService_CurrentUserRejects(t *testing.T) {
	db := newFakeDB()
	auth := newAuthService(db)
	ctx := context.Background()

	_, err := auth.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = auth.CurrentUser(ctx, "invalid.token.value")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	// токен, подписанный другим секретом
	other := service.NewAuthService(discardLogger(), db, db, "othersecret", time.Hour)
	registerUser(t, other, "Bob", "bob@example.com")
	res, err := other.Login(ctx, service.LoginInput{Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)
	_, err = auth.CurrentUser(ctx, res.Token)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	// пользователь удален из БД
	delete(db.users, res.User.ID)
	_, err = other.CurrentUser(ctx, res.Token)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestCategoryService_CRUD(t *testing.T) {
	db := newFakeDB()
	svc := service.NewCategoryService(discardLogger(), db)
	ctx := context.Background()

	created, err := svc.Create(ctx, service.CategoryInput{Name: "Books"})
	require.NoError(t, err)
	assert.Equal(t, "Books", created.Name)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	updated, err := svc.Update(ctx, created.ID, service.CategoryInput{Name: "Comics"})
	require.NoError(t, err)
	assert.Equal(t, "Comics", updated.Name)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCategoryService_Validation(t *testing.T) {
	svc := service.NewCategoryService(discardLogger(), newFakeDB())
	ctx := context.Background()

	_, err := svc.Create(ctx, service.CategoryInput{})
	assertValidation(t, err, "The name field is required.")

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Create(ctx, service.CategoryInput{Name: string(long)})
	assertValidation(t, err, "The name field must not be greater than 255 characters.")
}

func TestCategoryService_UpdateNotFoundBeforeValidation(t *testing.T) {
	svc := service.NewCategoryService(discardLogger(), newFakeDB())

	_, err := svc.Update(context.Background(), 404, service.CategoryInput{})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCategoryService_DeleteReferenced(t *testing.T) {
	db := newFakeDB()
	categories := service.NewCategoryService(discardLogger(), db)
	products := service.NewProductService(discardLogger(), db, db)
	ctx := context.Background()

	used, err := categories.Create(ctx, service.CategoryInput{Name: "Books"})
	require.NoError(t, err)
	unused, err := categories.Create(ctx, service.CategoryInput{Name: "Games"})
	require.NoError(t, err)

	_, err = products.Create(ctx, service.ProductInput{Name: "Go book", CategoryID: ptr(used.ID), Price: ptr(decimal.NewFromInt(10))})
	require.NoError(t, err)

	err = categories.Delete(ctx, used.ID)
	assert.ErrorIs(t, err, service.ErrConflict)
	_, err = categories.Get(ctx, used.ID)
	assert.NoError(t, err, "referenced category must survive")

	assert.NoError(t, categories.Delete(ctx, unused.ID))

	assert.ErrorIs(t, categories.Delete(ctx, 404), service.ErrNotFound)
}

func TestProductService_CreateWithMissingCategory(t *testing.T) {
	svc := service.NewProductService(discardLogger(), newFakeDB(), newFakeDB())

	product, err := svc.Create(context.Background(), service.ProductInput{
		Name:       "Go book",
		CategoryID: ptr(int64(999)),
		Price:      ptr(decimal.NewFromInt(10)),
	})
	assert.Nil(t, product)
	assertValidation(t, err, "The selected category id is invalid.")
}

func TestProductService_Validation(t *testing.T) {
	db := newFakeDB()
	category, err := db.CreateCategory(context.Background(), "Books")
	require.NoError(t, err)
	svc := service.NewProductService(discardLogger(), db, db)

	tests := []struct {
		name    string
		in      service.ProductInput
		message string
	}{
		{
			name:    "name first",
			in:      service.ProductInput{CategoryID: ptr(int64(999))},
			message: "The name field is required.",
		},
		{
			name:    "category before price",
			in:      service.ProductInput{Name: "Go book", CategoryID: ptr(int64(999))},
			message: "The selected category id is invalid.",
		},
		{
			name:    "missing category",
			in:      service.ProductInput{Name: "Go book", Price: ptr(decimal.NewFromInt(1))},
			message: "The category id field is required.",
		},
		{
			name:    "missing price",
			in:      service.ProductInput{Name: "Go book", CategoryID: ptr(category.ID)},
			message: "The price field is required.",
		},
		{
			name:    "negative price",
			in:      service.ProductInput{Name: "Go book", CategoryID: ptr(category.ID), Price: ptr(decimal.NewFromInt(-1))},
			message: "The price field must be at least 0.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			assertValidation(t, err, tt.message)
		})
	}
}

func TestProductService_UpdateAndDelete(t *testing.T) {
	db := newFakeDB()
	ctx := context.Background()
	books, _ := db.CreateCategory(ctx, "Books")
	games, _ := db.CreateCategory(ctx, "Games")
	svc := service.NewProductService(discardLogger(), db, db)

	product, err := svc.Create(ctx, service.ProductInput{Name: "Go book", CategoryID: ptr(books.ID), Price: ptr(decimal.RequireFromString("10.00"))})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, product.ID, service.ProductInput{Name: "Go game", CategoryID: ptr(games.ID), Price: ptr(decimal.RequireFromString("12.50"))})
	require.NoError(t, err)
	assert.Equal(t, "Go game", updated.Name)
	assert.Equal(t, games.ID, updated.CategoryID)
	assert.Equal(t, "12.50", updated.Price.StringFixed(2))

	_, err = svc.Update(ctx, 404, service.ProductInput{})
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, product.ID))
	assert.ErrorIs(t, svc.Delete(ctx, product.ID), service.ErrNotFound)
}

// orderFixture — два пользователя, две категории и два товара
type orderFixture struct {
	db       *fakeDB
	orders   service.OrderService
	products service.ProductService
	alice    *models.User
	bob      *models.User
	book     *models.Product
	game     *models.Product
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := newFakeDB()
	ctx := context.Background()
	auth := newAuthService(db)

	f := &orderFixture{
		db:       db,
		orders:   service.NewOrderService(discardLogger(), db, db, db),
		products: service.NewProductService(discardLogger(), db, db),
	}
	f.alice = registerUser(t, auth, "Alice", "alice@example.com")
	f.bob = registerUser(t, auth, "Bob", "bob@example.com")

	books, err := db.CreateCategory(ctx, "Books")
	require.NoError(t, err)
	games, err := db.CreateCategory(ctx, "Games")
	require.NoError(t, err)

	f.book, err = f.products.Create(ctx, service.ProductInput{Name: "Go book", CategoryID: ptr(books.ID), Price: ptr(decimal.RequireFromString("10.00"))})
	require.NoError(t, err)
	f.game, err = f.products.Create(ctx, service.ProductInput{Name: "Go game", CategoryID: ptr(games.ID), Price: ptr(decimal.RequireFromString("19.99"))})
	require.NoError(t, err)
	return f
}

func TestOrderService_CreateComputesTotal(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.orders.Create(context.Background(), f.alice.ID, service.OrderInput{ProductID: ptr(f.book.ID), Quantity: ptr(3)})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("30.00").Equal(order.TotalPrice), "10.00 * 3 must be exactly 30.00, got %s", order.TotalPrice)
	assert.Equal(t, f.alice.ID, order.UserID)
	assert.Equal(t, "Alice", order.CustomerName)
	assert.Equal(t, "Main street 1", order.CustomerAddress)
	assert.False(t, order.OrderDate.IsZero())
}

func TestOrderService_TotalIsSnapshot(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, f.alice.ID, service.OrderInput{ProductID: ptr(f.book.ID), Quantity: ptr(2)})
	require.NoError(t, err)

	f.db.products[f.book.ID].Price = decimal.RequireFromString("99.00")

	got, err := f.orders.Get(ctx, f.alice.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "20.00", got.TotalPrice.StringFixed(2), "price change must not touch existing orders")
}

func TestOrderService_CreateValidation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		in      service.OrderInput
		message string
	}{
		{name: "missing product", in: service.OrderInput{Quantity: ptr(1)}, message: "The product id field is required."},
		{name: "unknown product", in: service.OrderInput{ProductID: ptr(int64(999)), Quantity: ptr(1)}, message: "The selected product id is invalid."},
		{name: "missing quantity", in: service.OrderInput{ProductID: ptr(f.book.ID)}, message: "The quantity field is required."},
		{name: "zero quantity", in: service.OrderInput{ProductID: ptr(f.book.ID), Quantity: ptr(0)}, message: "The quantity field must be at least 1."},
		{name: "negative quantity", in: service.OrderInput{ProductID: ptr(f.book.ID), Quantity: ptr(-2)}, message: "The quantity field must be at least 1."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := f.orders.Create(ctx, f.alice.ID, tt.in)
			assert.Nil(t, order)
			assertValidation(t, err, tt.message)
		})
	}
	assert.Empty(t, f.db.orders, "no order must be stored on validation failure")
}

func TestOrderService_OwnershipGuards(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	bobsOrder, err := f.orders.Create(ctx, f.bob.ID, service.OrderInput{ProductID: ptr(f.book.ID), Quantity: ptr(1)})
	require.NoError(t, err)

	_, err = f.orders.Get(ctx, f.alice.ID, bobsOrder.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = f.orders.Update(ctx, f.alice.ID, bobsOrder.ID, service.OrderInput{ProductID: ptr(f.game.ID), Quantity: ptr(5)})
	assert.ErrorIs(t, err, service.ErrForbidden)

	err = f.orders.Delete(ctx, f.alice.ID, bobsOrder.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	// заказ Боба не изменился
	stored := f.db.orders[bobsOrder.ID]
	assert.Equal(t, f.book.ID, stored.ProductID)
	assert.Equal(t, 1, stored.Quantity)

	// Боб может
	_, err = f.orders.Get(ctx, f.bob.ID, bobsOrder.ID)
	assert.NoError(t, err)
	assert.NoError(t, f.orders.Delete(ctx, f.bob.ID, bobsOrder.ID))
}

func TestOrderService_NotFoundBeforeOwnership(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.orders.Get(ctx, f.alice.ID, 404)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.orders.Update(ctx, f.alice.ID, 404, service.OrderInput{})
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.ErrorIs(t, f.orders.Delete(ctx, f.alice.ID, 404), service.ErrNotFound)
}

func TestOrderService_UpdateRecomputesFromNewProduct(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, f.alice.ID, service.OrderInput{ProductID: ptr(f.book.ID), Quantity: ptr(3)})
	require.NoError(t, err)

	updated, err := f.orders.Update(ctx, f.alice.ID, order.ID, service.OrderInput{ProductID: ptr(f.game.ID), Quantity: ptr(2)})
	require.NoError(t, err)

	assert.Equal(t, f.game.ID, updated.ProductID)
	assert.Equal(t, 2, updated.Quantity)
	assert.Equal(t, "39.98", updated.TotalPrice.StringFixed(2), "total must use the new product's price")
	assert.False(t, updated.OrderDate.Before(order.OrderDate), "order_date is re-snapshotted on update")
}

func TestOrderService_UpdateValidation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, f.alice.ID, service.OrderInput{ProductID: ptr(f.book.ID), Quantity: ptr(3)})
	require.NoError(t, err)

	_, err = f.orders.Update(ctx, f.alice.ID, order.ID, service.OrderInput{ProductID: ptr(f.book.ID), Quantity: ptr(0)})
	assertValidation(t, err, "The quantity field must be at least 1.")
}

func TestOrderService_ReportAcrossAllUsers(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.orders.Create(ctx, f.alice.ID, service.OrderInput{ProductID: ptr(f.book.ID), Quantity: ptr(3)})
	require.NoError(t, err)
	_, err = f.orders.Create(ctx, f.bob.ID, service.OrderInput{ProductID: ptr(f.game.ID), Quantity: ptr(1)})
	require.NoError(t, err)
	_, err = f.orders.Create(ctx, f.bob.ID, service.OrderInput{ProductID: ptr(f.book.ID), Quantity: ptr(1)})
	require.NoError(t, err)

	report, err := f.orders.Report(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalOrders)
	assert.Equal(t, "59.99", report.TotalRevenue.StringFixed(2))

	sum := decimal.Zero
	for _, line := range report.Orders {
		sum = sum.Add(line.TotalPrice)
	}
	assert.True(t, sum.Equal(report.TotalRevenue))

	assert.Equal(t, "Go book", report.Orders[0].ProductName)
	assert.Equal(t, "Books", report.Orders[0].CategoryName)
	assert.Equal(t, "Alice", report.Orders[0].CustomerName)
	assert.Equal(t, "Games", report.Orders[1].CategoryName)
	assert.Equal(t, "Bob", report.Orders[1].CustomerName)
}

func TestOrderService_ReportEmpty(t *testing.T) {
	f := newOrderFixture(t)

	report, err := f.orders.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalOrders)
	assert.True(t, report.TotalRevenue.IsZero())
	assert.NotNil(t, report.Orders)
}

func TestOrderService_ListAnnotatesCustomer(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.orders.Create(ctx, f.alice.ID, service.OrderInput{ProductID: ptr(f.book.ID), Quantity: ptr(1)})
	require.NoError(t, err)
	_, err = f.orders.Create(ctx, f.bob.ID, service.OrderInput{ProductID: ptr(f.game.ID), Quantity: ptr(1)})
	require.NoError(t, err)

	list, err := f.orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2, "listing is not scoped to the caller")
	assert.Equal(t, "Alice", list[0].CustomerName)
	assert.Equal(t, "Bob", list[1].CustomerName)
}

func TestProductService_DeleteReferencedByOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.orders.Create(ctx, f.alice.ID, service.OrderInput{ProductID: ptr(f.book.ID), Quantity: ptr(1)})
	require.NoError(t, err)

	assert.ErrorIs(t, f.products.Delete(ctx, f.book.ID), service.ErrConflict)
	assert.NoError(t, f.products.Delete(ctx, f.game.ID))
}

func decodeProduct(t *testing.T, body string) service.ProductInput {
	t.Helper()
	var in service.ProductInput
	require.NoError(t, json.Unmarshal([]byte(body), &in), "well-formed body must decode")
	return in
}

func decodeOrder(t *testing.T, body string) service.OrderInput {
	t.Helper()
	var in service.OrderInput
	require.NoError(t, json.Unmarshal([]byte(body), &in), "well-formed body must decode")
	return in
}

func TestProductService_WrongTypedFields(t *testing.T) {
	db := newFakeDB()
	category, err := db.CreateCategory(context.Background(), "Books")
	require.NoError(t, err)
	svc := service.NewProductService(discardLogger(), db, db)
	catID := strconv.FormatInt(category.ID, 10)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "price not numeric", body: `{"name":"Pen","category_id":` + catID + `,"price":"abc"}`, message: "The price field must be a number."},
		{name: "price boolean", body: `{"name":"Pen","category_id":` + catID + `,"price":true}`, message: "The price field must be a number."},
		{name: "category before price", body: `{"name":"Pen","category_id":"x","price":"abc"}`, message: "The selected category id is invalid."},
		{name: "name not string", body: `{"name":42,"category_id":"x","price":"abc"}`, message: "The name field must be a string."},
		{name: "empty price string", body: `{"name":"Pen","category_id":` + catID + `,"price":""}`, message: "The price field is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), decodeProduct(t, tt.body))
			assertValidation(t, err, tt.message)
		})
	}
	assert.Empty(t, db.products)
}

func TestProductService_NumericStrings(t *testing.T) {
	db := newFakeDB()
	category, err := db.CreateCategory(context.Background(), "Books")
	require.NoError(t, err)
	svc := service.NewProductService(discardLogger(), db, db)

	body := `{"name":"Pen","category_id":"` + strconv.FormatInt(category.ID, 10) + `","price":"10.50"}`
	product, err := svc.Create(context.Background(), decodeProduct(t, body))
	require.NoError(t, err)
	assert.Equal(t, category.ID, product.CategoryID)
	assert.Equal(t, "10.50", product.Price.StringFixed(2))
}

func TestOrderService_WrongTypedFields(t *testing.T) {
	f := newOrderFixture(t)
	bookID := strconv.FormatInt(f.book.ID, 10)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "fractional quantity", body: `{"product_id":` + bookID + `,"quantity":1.5}`, message: "The quantity field must be an integer."},
		{name: "text quantity", body: `{"product_id":` + bookID + `,"quantity":"three"}`, message: "The quantity field must be an integer."},
		{name: "product id not integer", body: `{"product_id":"x","quantity":3}`, message: "The selected product id is invalid."},
		{name: "product before quantity", body: `{"product_id":true,"quantity":1.5}`, message: "The selected product id is invalid."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := f.orders.Create(context.Background(), f.alice.ID, decodeOrder(t, tt.body))
			assert.Nil(t, order)
			assertValidation(t, err, tt.message)
		})
	}
	assert.Empty(t, f.db.orders)
}

func TestOrderService_QuantityAsString(t *testing.T) {
	f := newOrderFixture(t)

	body := `{"product_id":"` + strconv.FormatInt(f.book.ID, 10) + `","quantity":"3"}`
	order, err := f.orders.Create(context.Background(), f.alice.ID, decodeOrder(t, body))
	require.NoError(t, err)
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, "30.00", order.TotalPrice.StringFixed(2))
}
