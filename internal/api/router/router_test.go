package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/portfolio-contact/internal/contact"
	httpmiddleware "github.com/wolfman30/portfolio-contact/internal/http/middleware"
	"github.com/wolfman30/portfolio-contact/internal/notify"
	"github.com/wolfman30/portfolio-contact/internal/observability/metrics"
	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

const adaPayload = `{"name":"Ada","email":"ada@example.com","projectType":"web-application","description":"Need a booking system"}`

// fakeResend records every email posted to it.
type fakeResend struct {
	mu       sync.Mutex
	payloads []map[string]any
}

func (f *fakeResend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	_ = json.NewDecoder(r.Body).Decode(&payload)
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"id":"email_1"}`))
}

func (f *fakeResend) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

type testRouter struct {
	handler http.Handler
	resend  *fakeResend
}

func newTestRouter(t *testing.T, apiKey string, limiter httpmiddleware.Limiter, origins ...string) *testRouter {
	t.Helper()

	resend := &fakeResend{}
	srv := httptest.NewServer(resend)
	t.Cleanup(srv.Close)

	logger := logging.New("error")
	reg := prometheus.NewRegistry()
	m := metrics.NewContactMetrics(reg)
	provider := notify.NewProvider(notify.ProviderConfig{
		Provider:      notify.ProviderResend,
		ResendAPIKey:  apiKey,
		FromEmail:     "noreply@mikeyoung.ai",
		FromName:      "mikeyoung.ai",
		ResendBaseURL: srv.URL + "/",
	}, logger)
	service := contact.NewService(provider, contact.ServiceConfig{
		Identity: contact.Identity{
			SiteName: "mikeyoung.ai",
			From:     "mikeyoung.ai <noreply@mikeyoung.ai>",
			To:       "hello@mikeyoung.ai",
		},
	}, m, logger)

	return &testRouter{
		handler: New(&Config{
			Logger:             logger,
			ContactHandler:     contact.NewHandler(service, contact.DefaultOptions(), m, logger),
			MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			CORSAllowedOrigins: origins,
			RateLimiter:        limiter,
			Metrics:            m,
		}),
		resend: resend,
	}
}

func (tr *testRouter) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	tr.handler.ServeHTTP(rr, req)
	return rr
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, "re_test", nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterContactSubmission(t *testing.T) {
	router := newTestRouter(t, "re_test", nil)

	rr := router.post(adaPayload)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if strings.TrimSpace(rr.Body.String()) != `{"success":true}` {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
	if router.resend.count() != 1 {
		t.Fatalf("expected one email, got %d", router.resend.count())
	}

	email := router.resend.payloads[0]
	if email["subject"] != "New inquiry: web-application from Ada" {
		t.Errorf("unexpected subject %v", email["subject"])
	}
	text, _ := email["text"].(string)
	if !strings.Contains(text, "Company: Not provided") || !strings.Contains(text, "Timeline: Not specified") {
		t.Errorf("expected placeholders in body, got %q", text)
	}
}

func TestRouterContactMissingFields(t *testing.T) {
	router := newTestRouter(t, "re_test", nil)

	rr := router.post(`{"name":"Ada","email":"ada@example.com","projectType":"web-application"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Missing required fields") {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
	if router.resend.count() != 0 {
		t.Fatal("no email should be sent for an invalid submission")
	}
}

func TestRouterContactUnconfiguredProvider(t *testing.T) {
	router := newTestRouter(t, "", nil)

	rr := router.post(adaPayload)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if router.resend.count() != 0 {
		t.Fatal("no email should be sent without credentials")
	}
}

func TestRouterContactOptions(t *testing.T) {
	router := newTestRouter(t, "re_test", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/contact/options", nil)
	rr := httptest.NewRecorder()
	router.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var opts contact.Options
	if err := json.NewDecoder(rr.Body).Decode(&opts); err != nil {
		t.Fatalf("failed to decode options: %v", err)
	}
	if len(opts.ProjectTypes) != len(contact.DefaultOptions().ProjectTypes) {
		t.Fatalf("unexpected project types %+v", opts.ProjectTypes)
	}
}

func TestRouterContactRejectsGet(t *testing.T) {
	router := newTestRouter(t, "re_test", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	rr := httptest.NewRecorder()
	router.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
	}
}

func TestRouterContactRateLimited(t *testing.T) {
	router := newTestRouter(t, "re_test", httpmiddleware.NewMemoryLimiter(1, time.Hour))

	if rr := router.post(adaPayload); rr.Code != http.StatusOK {
		t.Fatalf("expected first submission to pass, got %d", rr.Code)
	}
	rr := router.post(adaPayload)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, rr.Code)
	}
	if router.resend.count() != 1 {
		t.Fatalf("expected one email, got %d", router.resend.count())
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mrr := httptest.NewRecorder()
	router.handler.ServeHTTP(mrr, req)
	if !strings.Contains(mrr.Body.String(), "portfolio_contact_rate_limited_total 1") {
		t.Fatalf("expected rate limited counter in metrics output")
	}
}

func TestRouterContactPreflight(t *testing.T) {
	router := newTestRouter(t, "re_test", nil, "https://mikeyoung.ai")

	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://mikeyoung.ai")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	router.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != http.MethodPost {
		t.Fatalf("expected POST only, got %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = httptest.NewRecorder()
	router.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
	if router.resend.count() != 0 {
		t.Fatal("preflight must not send email")
	}
}
