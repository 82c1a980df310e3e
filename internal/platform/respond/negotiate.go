package respond

import (
	"strconv"
	"strings"
)

const (
	contentTypeProblemJSON = "application/problem+json"
	contentTypeProblemCBOR = "application/problem+cbor"
)

// prefersCBOR reports whether the Accept header ranks a CBOR media type above
// every JSON one. Ranking is by q-value first, then specificity
// (application/problem+cbor beats application/cbor). Ties, wildcards and
// unknown types fall back to JSON.
func prefersCBOR(accept string) bool {
	var bestJSON, bestCBOR rank
	for part := range strings.SplitSeq(accept, ",") {
		mediaType, q := parseMediaRange(part)
		if q <= 0 {
			continue
		}
		switch mediaType {
		case "application/json":
			bestJSON = bestJSON.max(rank{q: q, specificity: 1})
		case contentTypeProblemJSON:
			bestJSON = bestJSON.max(rank{q: q, specificity: 2})
		case "application/cbor":
			bestCBOR = bestCBOR.max(rank{q: q, specificity: 1})
		case contentTypeProblemCBOR:
			bestCBOR = bestCBOR.max(rank{q: q, specificity: 2})
		}
	}
	return bestCBOR.greater(bestJSON)
}

type rank struct {
	q           float64
	specificity int
}

func (r rank) greater(o rank) bool {
	if r.q != o.q {
		return r.q > o.q
	}
	return r.specificity > o.specificity
}

func (r rank) max(o rank) rank {
	if o.greater(r) {
		return o
	}
	return r
}

// parseMediaRange returns the lower-cased media type and its q parameter.
// A missing or malformed q counts as 1.
func parseMediaRange(part string) (string, float64) {
	mediaType, params, _ := strings.Cut(part, ";")
	q := 1.0
	for param := range strings.SplitSeq(params, ";") {
		key, value, ok := strings.Cut(param, "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			q = parsed
		}
	}
	return strings.ToLower(strings.TrimSpace(mediaType)), q
}
