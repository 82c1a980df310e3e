package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/hello-server/internal/http/greeting"
)

// Register wires all API operations into the provided API router.
func Register(api huma.API) {
	greeting.Register(api)
}
