package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/shop-api/internal/lib/api/response"
	"github.com/linemk/shop-api/internal/service"
)

var categoryErrors = errorMessages{
	notFound: "Category not found.",
	conflict: "Cannot delete category because it is referenced by one or more products.",
}

// ListCategoriesHandler обрабатывает GET /categories
func ListCategoriesHandler(log *slog.Logger, categoryService service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ListCategoriesHandler"))

		categories, err := categoryService.List(r.Context())
		if err != nil {
			writeServiceError(w, logger, err, categoryErrors)
			return
		}
		response.OK(w, "Categories retrieved successfully", categories)
	}
}

// CreateCategoryHandler обрабатывает POST /categories
func CreateCategoryHandler(log *slog.Logger, categoryService service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.CreateCategoryHandler"))

		var req service.CategoryInput
		if err := decodeJSON(r, &req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}

		category, err := categoryService.Create(r.Context(), req)
		if err != nil {
			writeServiceError(w, logger, err, categoryErrors)
			return
		}
		response.OK(w, "Category created successfully", category)
	}
}

// GetCategoryHandler обрабатывает GET /categories/{id}
func GetCategoryHandler(log *slog.Logger, categoryService service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.GetCategoryHandler"))

		id, ok := idParam(r)
		if !ok {
			response.Error(w, http.StatusNotFound, categoryErrors.notFound)
			return
		}

		category, err := categoryService.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, logger, err, categoryErrors)
			return
		}
		response.OK(w, "Category retrieved successfully", category)
	}
}

// UpdateCategoryHandler обрабатывает PUT /categories/{id}
func UpdateCategoryHandler(log *slog.Logger, categoryService service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.UpdateCategoryHandler"))

		id, ok := idParam(r)
		if !ok {
			response.Error(w, http.StatusNotFound, categoryErrors.notFound)
			return
		}

		var req service.CategoryInput
		if err := decodeJSON(r, &req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}

		category, err := categoryService.Update(r.Context(), id, req)
		if err != nil {
			writeServiceError(w, logger, err, categoryErrors)
			return
		}
		response.OK(w, "Category updated successfully", category)
	}
}

// DeleteCategoryHandler обрабатывает DELETE /categories/{id}
func DeleteCategoryHandler(log *slog.Logger, categoryService service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.DeleteCategoryHandler"))

		id, ok := idParam(r)
		if !ok {
			response.Error(w, http.StatusNotFound, categoryErrors.notFound)
			return
		}

		if err := categoryService.Delete(r.Context(), id); err != nil {
			writeServiceError(w, logger, err, categoryErrors)
			return
		}
		response.OK(w, "Category deleted successfully.", nil)
	}
}
