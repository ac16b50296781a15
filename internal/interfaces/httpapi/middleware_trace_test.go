package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/lol-stats/internal/platform/logging"
)

func TestIsProbe(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"/healthz":             true,
		" /READYZ ":            true,
		"/livez":               true,
		"/v1/summoners/lookup": false,
		"/v1/tasks/abc":        false,
		"/":                    false,
	}
	for path, want := range tests {
		if got := isProbe(path); got != want {
			t.Fatalf("unexpected probe check for %q: got=%v want=%v", path, got, want)
		}
	}
}

func TestRequestLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewJSONWriter(&buf, logging.LevelInfo)
	h := RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if buf.Len() != 0 {
		t.Fatalf("expected probes to skip logging, got %q", buf.String())
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/sweep", nil))
	line := buf.String()
	for _, want := range []string{`"level":"WARN"`, `"status":503`, `"bytes":4`, `"path":"/v1/sweep"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %s", line, want)
		}
	}
}
