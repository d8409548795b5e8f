package rest

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// Recoverer turns a panicking request into a JSON 500 and logs the panic
// with its stack. http.ErrAbortHandler is re-raised so net/http can abort
// the connection.
func Recoverer(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				err := WriteError(w, Internal("internal server error", fmt.Errorf("panic: %v", recovered)))
				log.WithError(err).WithFields(logrus.Fields{
					"method": req.Method,
					"path":   req.URL.Path,
					"stack":  string(debug.Stack()),
				}).Error("Handler.Panic")
			}()

			next.ServeHTTP(w, req)
		})
	}
}
