package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"landmark-catalog/internal/api/handlers"
	"landmark-catalog/internal/logger"
	"landmark-catalog/internal/services"

	"github.com/sirupsen/logrus"
)

// RecoveryMiddleware turns a handler panic into a 500 response.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		defer func() {
			if err := recover(); err != nil {
				requestID, _ := services.RequestIDFromContext(r.Context())
				logger.LogEvent(logrus.ErrorLevel, "Handler panicked", logrus.Fields{
					"request_id": requestID,
					"panic":      fmt.Sprint(err),
					"stack":      string(debug.Stack()),
				})
				if !rw.wroteHeader {
					handlers.RespondWithError(rw, http.StatusInternalServerError, handlers.MsgInternalError)
				}
			}
		}()

		next.ServeHTTP(rw, r)
	})
}
