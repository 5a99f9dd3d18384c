package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/shop-api/internal/app/handlers"
	"github.com/linemk/shop-api/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/shop-api/internal/lib/api/response"
	"github.com/linemk/shop-api/internal/lib/logger/handlers/urllog"
	"github.com/linemk/shop-api/internal/service"
)

// Services содержит сервисы, которые обслуживает роутер
type Services struct {
	Auth       service.AuthServiceInterface
	Categories service.CategoryService
	Products   service.ProductService
	Orders     service.OrderService
}

// NewRouter собирает chi-роутер со всеми эндпоинтами API
func NewRouter(log *slog.Logger, svc Services) http.Handler {
	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, "OK", nil)
	})

	// публичные эндпоинты аутентификации
	router.Post("/login", handlers.LoginHandler(log, svc.Auth))
	router.Post("/register", handlers.RegisterHandler(log, svc.Auth))

	router.Group(func(r chi.Router) {
		r.Use(jwtmiddleware.NewJWTMiddleware(svc.Auth))

		r.Post("/logout", handlers.LogoutHandler(log, svc.Auth))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", handlers.ListCategoriesHandler(log, svc.Categories))
			r.Post("/", handlers.CreateCategoryHandler(log, svc.Categories))
			r.Get("/{id}", handlers.GetCategoryHandler(log, svc.Categories))
			r.Put("/{id}", handlers.UpdateCategoryHandler(log, svc.Categories))
			r.Delete("/{id}", handlers.DeleteCategoryHandler(log, svc.Categories))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", handlers.ListProductsHandler(log, svc.Products))
			r.Post("/", handlers.CreateProductHandler(log, svc.Products))
			r.Get("/{id}", handlers.GetProductHandler(log, svc.Products))
			r.Put("/{id}", handlers.UpdateProductHandler(log, svc.Products))
			r.Delete("/{id}", handlers.DeleteProductHandler(log, svc.Products))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", handlers.ListOrdersHandler(log, svc.Orders))
			r.Post("/", handlers.CreateOrderHandler(log, svc.Orders))
			// статический путь раньше {id}
			r.Get("/report", handlers.OrderReportHandler(log, svc.Orders))
			r.Get("/{id}", handlers.GetOrderHandler(log, svc.Orders))
			r.Put("/{id}", handlers.UpdateOrderHandler(log, svc.Orders))
			r.Delete("/{id}", handlers.DeleteOrderHandler(log, svc.Orders))
		})
	})

	return router
}
