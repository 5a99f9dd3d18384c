package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/shop-api/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/shop-api/internal/lib/api/response"
	"github.com/linemk/shop-api/internal/service"
)

var authErrors = errorMessages{}

// LoginHandler обрабатывает POST /login
func LoginHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req service.LoginInput
		if err := decodeJSON(r, &req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}

		res, err := authService.Login(r.Context(), req)
		if err != nil {
			writeServiceError(w, logger, err, authErrors)
			return
		}

		response.OK(w, "Login successfully", res)
	}
}

// RegisterHandler обрабатывает POST /register
func RegisterHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RegisterHandler"
		logger := log.With(slog.String("op", op))

		var req service.RegisterInput
		if err := decodeJSON(r, &req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}

		user, err := authService.Register(r.Context(), req)
		if err != nil {
			writeServiceError(w, logger, err, authErrors)
			return
		}

		response.OK(w, "User registered successfully", map[string]any{"user": user})
	}
}

// LogoutHandler обрабатывает POST /logout: предъявленный токен больше не принимается
func LogoutHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LogoutHandler"
		logger := log.With(slog.String("op", op))

		token, ok := jwtmiddleware.TokenFromContext(r.Context())
		if !ok {
			logger.Error("token not found in context")
			response.Error(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}

		if err := authService.Logout(r.Context(), token); err != nil {
			writeServiceError(w, logger, err, authErrors)
			return
		}

		response.OK(w, "Logout successfully", nil)
	}
}
