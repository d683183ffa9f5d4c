package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/metrics"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/utils"
)

// Recovery returns a middleware that recovers from panics in handlers and
// answers with the standard error envelope. The panic value stays in the log.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					// net/http uses this panic to abort a response; let it through
					if err == http.ErrAbortHandler {
						panic(err)
					}

					// Log the panic with stack trace
					stack := debug.Stack()
					log.WithFields(map[string]interface{}{
						"error":      err,
						"stack":      string(stack),
						"method":     r.Method,
						"path":       r.URL.Path,
						"request_id": GetRequestID(r),
					}).Error("Panic recovered")
					metrics.RecordPanic(r.Method)

					// Return 500 error to client without the panic value
					appErr := errors.Internal("Internal server error", fmt.Errorf("panic: %v", err))
					utils.WriteError(w, appErr)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
