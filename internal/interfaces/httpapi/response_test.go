package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/lol-stats/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeSuccess(rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("unexpected apiVersion: got=%v want=2.0", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad region", usecase.ErrInvalidInput), status: http.StatusBadRequest, reason: "invalidInput"},
		{name: "summoner not found", err: fmt.Errorf("%w: faker", usecase.ErrSummonerNotFound), status: http.StatusNotFound, reason: "summonerNotFound"},
		{name: "refresh cooldown", err: fmt.Errorf("%w: summoner 9", usecase.ErrRefreshCooldown), status: http.StatusTooManyRequests, reason: "refreshCooldown"},
		{name: "dependency unavailable", err: usecase.ErrDependencyUnavailable, status: http.StatusServiceUnavailable, reason: "dependencyUnavailable"},
		{name: "anything else", err: errors.New("boom"), status: http.StatusInternalServerError, reason: "internalError"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := mapError(tc.err)
			if got.HTTPStatus != tc.status || got.Reason != tc.reason {
				t.Fatalf("unexpected mapping: got=%+v want status=%d reason=%s", got, tc.status, tc.reason)
			}
		})
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("%w: summoner 9", usecase.ErrRefreshCooldown))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusTooManyRequests)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "RESOURCE_EXHAUSTED" {
		t.Fatalf("unexpected error status: got=%v want=RESOURCE_EXHAUSTED", errorObj["status"])
	}
}
