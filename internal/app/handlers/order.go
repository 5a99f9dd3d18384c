package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/shop-api/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/shop-api/internal/lib/api/response"
	"github.com/linemk/shop-api/internal/service"
)

const orderNotFound = "Order not found."

// для каждой операции свой текст при чужом заказе
var (
	orderErrors       = errorMessages{notFound: orderNotFound}
	orderGetErrors    = errorMessages{notFound: orderNotFound, forbidden: "Unauthorized to retrieve this order."}
	orderUpdateErrors = errorMessages{notFound: orderNotFound, forbidden: "Unauthorized to update this order."}
	orderDeleteErrors = errorMessages{notFound: orderNotFound, forbidden: "Unauthorized to delete this order."}
)

// ListOrdersHandler обрабатывает GET /orders: все заказы, без фильтра по владельцу
func ListOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ListOrdersHandler"))

		orders, err := orderService.List(r.Context())
		if err != nil {
			writeServiceError(w, logger, err, orderErrors)
			return
		}
		response.OK(w, "Orders retrieved successfully", orders)
	}
}

// CreateOrderHandler обрабатывает POST /orders от имени текущего пользователя
func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			response.Error(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}

		var req service.OrderInput
		if err := decodeJSON(r, &req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}

		order, err := orderService.Create(r.Context(), userID, req)
		if err != nil {
			writeServiceError(w, logger, err, orderErrors)
			return
		}
		response.OK(w, "Order created successfully", order)
	}
}

// GetOrderHandler обрабатывает GET /orders/{id}
func GetOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.GetOrderHandler"))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			response.Error(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}
		id, ok := idParam(r)
		if !ok {
			response.Error(w, http.StatusNotFound, orderNotFound)
			return
		}

		order, err := orderService.Get(r.Context(), userID, id)
		if err != nil {
			writeServiceError(w, logger, err, orderGetErrors)
			return
		}
		response.OK(w, "Order retrieved successfully", order)
	}
}

// UpdateOrderHandler обрабатывает PUT /orders/{id}
func UpdateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.UpdateOrderHandler"))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			response.Error(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}
		id, ok := idParam(r)
		if !ok {
			response.Error(w, http.StatusNotFound, orderNotFound)
			return
		}

		var req service.OrderInput
		if err := decodeJSON(r, &req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}

		order, err := orderService.Update(r.Context(), userID, id, req)
		if err != nil {
			writeServiceError(w, logger, err, orderUpdateErrors)
			return
		}
		response.OK(w, "Order updated successfully", order)
	}
}

// DeleteOrderHandler обрабатывает DELETE /orders/{id}
func DeleteOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.DeleteOrderHandler"))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			response.Error(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}
		id, ok := idParam(r)
		if !ok {
			response.Error(w, http.StatusNotFound, orderNotFound)
			return
		}

		if err := orderService.Delete(r.Context(), userID, id); err != nil {
			writeServiceError(w, logger, err, orderDeleteErrors)
			return
		}
		response.OK(w, "Order deleted successfully", nil)
	}
}

// OrderReportHandler обрабатывает GET /orders/report, отчет по всем заказам
func OrderReportHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.OrderReportHandler"))

		report, err := orderService.Report(r.Context())
		if err != nil {
			writeServiceError(w, logger, err, orderErrors)
			return
		}
		response.OK(w, "Order report generated successfully", report)
	}
}
