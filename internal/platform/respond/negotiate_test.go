package respond

import "testing"

func TestPrefersCBOR(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   bool
	}{
		{"empty accept defaults to JSON", "", false},
		{"wildcard defaults to JSON", "*/*", false},
		{"application wildcard defaults to JSON", "application/*", false},
		{"text/html defaults to JSON", "text/html", false},
		{"explicit JSON", "application/json", false},
		{"explicit CBOR", "application/cbor", true},
		{"CBOR with quality parameter", "application/cbor;q=1.0", true},
		{"equal q-values default to JSON", "application/json, application/cbor", false},
		{"CBOR preferred with quality", "application/json;q=0.9, application/cbor;q=1.0", true},
		{"JSON preferred with quality", "application/cbor;q=0.5, application/json;q=0.9", false},
		{"problem+cbor explicit", "application/problem+cbor", true},
		{"problem+json explicit", "application/problem+json", false},
		{"problem+cbor over base cbor", "application/cbor, application/problem+cbor", true},
		{"CBOR excluded with q=0", "application/cbor;q=0, application/json", false},
		{"low quality CBOR alone still accepted", "application/cbor;q=0.1", true},
		{"explicit CBOR over wildcard", "*/*;q=0.1, application/cbor;q=1.0", true},
		{"q-value wins over specificity for JSON", "application/problem+cbor;q=0.1, application/json;q=1.0", false},
		{"q-value wins over specificity for CBOR", "application/problem+json;q=0.1, application/cbor;q=1.0", true},
		{"specificity breaks ties for CBOR", "application/json;q=0.8, application/problem+cbor;q=0.8", true},
		{"specificity breaks ties for JSON", "application/cbor;q=0.8, application/problem+json;q=0.8", false},
		{"malformed quality counts as 1", "application/cbor;q=invalid", true},
		{"whitespace tolerated", "  application/cbor  ;  q=1.0  ", true},
		{"case insensitive", "Application/CBOR", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prefersCBOR(tt.accept); got != tt.want {
				t.Fatalf("prefersCBOR(%q) = %v, want %v", tt.accept, got, tt.want)
			}
		})
	}
}
