package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/shop-api/internal/lib/api/response"
	"github.com/linemk/shop-api/internal/service"
)

var productErrors = errorMessages{
	notFound: "Product not found.",
	conflict: "Cannot delete product because it is referenced by one or more orders.",
}

// ListProductsHandler обрабатывает GET /products
func ListProductsHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ListProductsHandler"))

		products, err := productService.List(r.Context())
		if err != nil {
			writeServiceError(w, logger, err, productErrors)
			return
		}
		response.OK(w, "Products retrieved successfully", products)
	}
}

// CreateProductHandler обрабатывает POST /products
func CreateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.CreateProductHandler"))

		var req service.ProductInput
		if err := decodeJSON(r, &req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}

		product, err := productService.Create(r.Context(), req)
		if err != nil {
			writeServiceError(w, logger, err, productErrors)
			return
		}
		response.OK(w, "Product created successfully", product)
	}
}

// GetProductHandler обрабатывает GET /products/{id}
func GetProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.GetProductHandler"))

		id, ok := idParam(r)
		if !ok {
			response.Error(w, http.StatusNotFound, productErrors.notFound)
			return
		}

		product, err := productService.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, logger, err, productErrors)
			return
		}
		response.OK(w, "Product retrieved successfully", product)
	}
}

// UpdateProductHandler обрабатывает PUT /products/{id}
func UpdateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.UpdateProductHandler"))

		id, ok := idParam(r)
		if !ok {
			response.Error(w, http.StatusNotFound, productErrors.notFound)
			return
		}

		var req service.ProductInput
		if err := decodeJSON(r, &req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}

		product, err := productService.Update(r.Context(), id, req)
		if err != nil {
			writeServiceError(w, logger, err, productErrors)
			return
		}
		response.OK(w, "Product updated successfully", product)
	}
}

// DeleteProductHandler обрабатывает DELETE /products/{id}
func DeleteProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.DeleteProductHandler"))

		id, ok := idParam(r)
		if !ok {
			response.Error(w, http.StatusNotFound, productErrors.notFound)
			return
		}

		if err := productService.Delete(r.Context(), id); err != nil {
			writeServiceError(w, logger, err, productErrors)
			return
		}
		response.OK(w, "Product deleted successfully", nil)
	}
}
