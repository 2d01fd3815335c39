package middleware

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/iudanet/goalsync/pkg/api"
)

// writeJSONError отвечает ошибкой в том же формате, что и обработчики
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// Chain оборачивает handler в middleware; первый в списке выполняется первым
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
