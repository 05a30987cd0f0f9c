package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Jeet1511/EliteZero/internal/middleware"
)

// Logging logs every API request with the api component tag
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "api")))
}
