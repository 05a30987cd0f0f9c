package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicHandler writes the error response after a recovered panic
type PanicHandler func(w http.ResponseWriter, r *http.Request, err any)

// Recovery turns handler panics into an error response. http.ErrAbortHandler
// is passed through so the server can drop the connection.
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if e, ok := err.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(err)
				}

				attrs := append(requestAttrs(r),
					slog.Any("error", err),
					slog.String("stack", string(debug.Stack())),
				)
				logger.Error("panic recovered", attrs...)

				handler(w, r, err)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

