package logging

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

var (
	projectIDOnce   sync.Once
	cachedProjectID string
)

// traceparent is a parsed W3C trace context header.
type traceparent struct {
	traceID string
	spanID  string
	sampled bool
}

func parseTraceparent(header string) (traceparent, bool) {
	m := traceparentRe.FindStringSubmatch(header)
	if len(m) != 5 {
		return traceparent{}, false
	}
	return traceparent{traceID: m[2], spanID: m[3], sampled: m[4] == "01"}, true
}

// resource renders the Cloud Trace resource name for the trace.
func (tp traceparent) resource(projectID string) string {
	return fmt.Sprintf("projects/%s/traces/%s", projectID, tp.traceID)
}

// requestFields returns the correlation fields for one request. Trace fields
// are only emitted when a project ID is known.
func requestFields(header, projectID, requestID string) (fields []zap.Field, correlationID string) {
	if tp, ok := parseTraceparent(header); ok && projectID != "" {
		correlationID = tp.resource(projectID)
		fields = append(fields,
			zap.String("logging.googleapis.com/trace", correlationID),
			zap.String("logging.googleapis.com/spanId", tp.spanID),
			zap.Bool("logging.googleapis.com/trace_sampled", tp.sampled),
		)
	}
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
		if correlationID == "" {
			correlationID = requestID
		}
	}
	return fields, correlationID
}

func resolveProjectID() string {
	projectIDOnce.Do(func() {
		for _, key := range []string{"GOOGLE_CLOUD_PROJECT", "GCP_PROJECT", "GCLOUD_PROJECT", "PROJECT_ID"} {
			if v := os.Getenv(key); v != "" {
				cachedProjectID = v
				return
			}
		}
	})
	return cachedProjectID
}
