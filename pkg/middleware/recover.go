package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"notedeck/pkg/handlers"
)

// Recoverer turns an uncaught panic into a 500 response in the standard JSON
// envelope, with the panic value and stack logged but never surfaced.
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path),
						zap.ByteString("stack", debug.Stack()),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(handlers.Envelope{
						Success: false,
						Error:   &handlers.ErrorBody{Message: "internal server error"},
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
