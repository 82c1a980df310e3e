package respond

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

// RecovererOption configures Recoverer.
type RecovererOption func(*recovererConfig)

type recovererConfig struct {
	exposePanic bool
}

// WithPanicDetail puts the panic value into the 500 problem detail. Only for
// debug mode: it can leak internals to clients.
func WithPanicDetail() RecovererOption {
	return func(c *recovererConfig) { c.exposePanic = true }
}

// Recoverer turns handler panics into 500 problem responses and logs the stack.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
// When the handler already started the response nothing more is written.
func Recoverer(opts ...RecovererOption) func(http.Handler) http.Handler {
	cfg := recovererConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				err := fmt.Errorf("panic: %v\n%s", rec, debug.Stack())
				if rw.wroteHeader {
					logProblem(r, http.StatusInternalServerError, "panic after response started", err)
					return
				}
				detail := msgInternalServerErr
				if cfg.exposePanic {
					detail = fmt.Sprintf("%s: %v", msgInternalServerErr, rec)
				}
				WriteProblem(rw, r, http.StatusInternalServerError, detail, err)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// responseWriter records whether the response has started.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
