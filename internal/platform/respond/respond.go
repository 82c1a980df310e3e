// Package respond renders the default error responses (not found, method not
// allowed, recovered panics) as RFC 9457 problem details. The body matches
// huma.ErrorModel and is encoded as JSON, or CBOR when the client prefers it.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	applog "github.com/janisto/hello-server/internal/platform/logging"
)

const (
	schemaPath = "/schemas/ErrorModel.json"

	msgNotFound          = "resource not found"
	msgInternalServerErr = "internal server error"
)

// Problem is an RFC 9457 problem details body.
type Problem struct {
	Schema string `json:"$schema,omitempty"`
	Title  string `json:"title,omitempty"`
	Status int    `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// WriteProblem negotiates the problem encoding from the request Accept header
// and writes the response. 4xx statuses are logged as warnings, 5xx as errors.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string, cause error) {
	logProblem(r, status, detail, cause)

	schemaURL := schemaLink(r)
	p := Problem{
		Schema: schemaURL,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}

	contentType := contentTypeProblemJSON
	var (
		body []byte
		err  error
	)
	if prefersCBOR(r.Header.Get("Accept")) {
		contentType = contentTypeProblemCBOR
		body, err = cbor.Marshal(p)
	} else {
		body, err = json.Marshal(p)
	}
	if err != nil {
		applog.LogError(r.Context(), "failed to encode problem", err, zap.Int("status", status))
		http.Error(w, http.StatusText(status), status)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Link", fmt.Sprintf(`<%s>; rel="describedBy"`, schemaURL))
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		applog.LogWarn(r.Context(), "failed to write problem", zap.Error(err))
	}
}

// NotFoundHandler is installed as the router's NotFound handler.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteProblem(w, r, http.StatusNotFound, msgNotFound, nil)
	}
}

// MethodNotAllowedHandler is installed as the router's MethodNotAllowed
// handler. The Allow header lists the methods the matched path accepts.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		WriteProblem(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method), nil)
	}
}

// candidateMethods is the order used for the Allow header.
var candidateMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// allowedMethods asks chi's route tree which methods match the request path.
// HEAD is reported for GET routes because the router serves HEAD through the
// GET handler.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	path := rctx.RoutePath
	if path == "" {
		path = r.URL.RawPath
		if path == "" {
			path = r.URL.Path
		}
		if path == "" {
			path = "/"
		}
	}

	matched := make(map[string]bool, len(candidateMethods))
	for _, method := range candidateMethods {
		matched[method] = rctx.Routes.Match(chi.NewRouteContext(), method, path)
	}
	if matched[http.MethodGet] {
		matched[http.MethodHead] = true
	}

	allowed := make([]string, 0, len(candidateMethods))
	for _, method := range candidateMethods {
		if matched[method] {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

// schemaLink builds an absolute URL for the ErrorModel schema served by huma.
func schemaLink(r *http.Request) string {
	if r.Host == "" {
		return schemaPath
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + schemaPath
}

func logProblem(r *http.Request, status int, detail string, cause error) {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if status >= http.StatusInternalServerError {
		applog.LogError(r.Context(), detail, cause, fields...)
		return
	}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	applog.LogWarn(r.Context(), detail, fields...)
}
