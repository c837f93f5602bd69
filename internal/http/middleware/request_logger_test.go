package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

func TestRequestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter("info", &buf)
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.Header.Set("X-Request-ID", "req-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "request completed" {
		t.Fatalf("unexpected msg %v", rec["msg"])
	}
	if rec["status"] != float64(http.StatusBadRequest) {
		t.Fatalf("unexpected status %v", rec["status"])
	}
	if rec["request_id"] != "req-123" {
		t.Fatalf("unexpected request id %v", rec["request_id"])
	}
	if _, ok := rec["trace_id"]; ok {
		t.Fatal("no trace id expected without a span")
	}
}
