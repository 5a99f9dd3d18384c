package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/shop-api/internal/lib/api/response"
	"github.com/linemk/shop-api/internal/service"
)

// ValidationStatus — HTTP-статус ответа с ошибкой валидации. Исторически
// клиенты получают 200 с конвертом status=error, поэтому статус не меняем.
const ValidationStatus = http.StatusOK

const (
	msgInvalidRequest  = "invalid request"
	msgInternalError   = "internal server error"
	msgUnauthorized    = "Unauthorized"
	msgUnauthenticated = "Unauthenticated."
)

// errorMessages — тексты ошибок конкретного ресурса
type errorMessages struct {
	notFound  string
	forbidden string
	conflict  string
}

// writeServiceError переводит ошибку сервиса в конверт и HTTP-статус
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error, msgs errorMessages) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		logger.Info("validation failed", slog.String("field", verr.Field), slog.String("message", verr.Message))
		response.Error(w, ValidationStatus, verr.Message)
	case errors.Is(err, service.ErrNotFound):
		response.Error(w, http.StatusNotFound, msgs.notFound)
	case errors.Is(err, service.ErrForbidden):
		response.Error(w, http.StatusForbidden, msgs.forbidden)
	case errors.Is(err, service.ErrConflict):
		response.Error(w, http.StatusBadRequest, msgs.conflict)
	case errors.Is(err, service.ErrUnauthorized):
		response.Error(w, http.StatusUnauthorized, msgUnauthorized)
	default:
		logger.Error("request failed", slog.Any("error", err))
		response.Error(w, http.StatusInternalServerError, msgInternalError)
	}
}

// decodeJSON читает тело запроса; пустое тело равносильно пустому объекту,
// чтобы клиент получил сообщение валидации, а не ошибку формата.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// idParam извлекает числовой {id} из пути
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
