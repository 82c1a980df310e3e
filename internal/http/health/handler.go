package health

import (
	"encoding/json"
	"net/http"

	"github.com/janisto/hello-server/internal/platform/timeutil"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status    string        `json:"status"`
	Version   string        `json:"version"`
	Timestamp timeutil.Time `json:"timestamp"`
}

// Handler returns a plain HTTP handler for the health check endpoint. It stays
// outside the huma API so probes do not show up in the OpenAPI document.
func Handler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Response{
			Status:    "healthy",
			Version:   version,
			Timestamp: timeutil.Now(),
		})
	}
}
