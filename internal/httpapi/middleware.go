package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

func loggingMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("from", r.RemoteAddr),
			zap.Duration("dur", time.Since(start)))
	})
}
