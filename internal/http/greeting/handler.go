// Package greeting serves the liveness greeting at the site root.
package greeting

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/hello-server/internal/platform/logging"
)

const (
	// Message is the fixed greeting body.
	Message = "Hello, Flask!"
	// ContentType is the default for a plain HTML string response.
	ContentType = "text/html; charset=utf-8"
)

// Register wires the greeting route into the provided API router.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-greeting",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Greeting",
		Description: "Returns a fixed greeting so an operator can check the server is up.",
		Tags:        []string{"Greeting"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Fixed greeting",
				Content: map[string]*huma.MediaType{
					"text/html": {Schema: &huma.Schema{Type: huma.TypeString, Examples: []any{Message}}},
				},
			},
		},
	}, getHandler)
}

func getHandler(ctx context.Context, _ *struct{}) (*GetOutput, error) {
	applog.LogDebug(ctx, "greeting", zap.String("path", "/"))
	return &GetOutput{ContentType: ContentType, Body: []byte(Message)}, nil
}
