package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/wolfman30/portfolio-contact/internal/observability/metrics"
	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

const maxBodyBytes = 64 << 10

// Submitter is the part of Service the handler depends on.
type Submitter interface {
	Submit(ctx context.Context, req *SubmissionRequest) error
}

// Handler serves the contact form endpoints.
type Handler struct {
	service Submitter
	options Options
	metrics *metrics.ContactMetrics
	logger  *logging.Logger
}

// NewHandler creates a new contact handler.
func NewHandler(service Submitter, options Options, m *metrics.ContactMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		options: options,
		metrics: m,
		logger:  logger,
	}
}

// Submit handles POST /api/contact requests
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	req, err := decodeRequest(r.Body)
	if err != nil {
		h.logger.Error("failed to decode contact request", "error", err)
		h.fail(w, newError(KindTransport, fmt.Errorf("%w: %v", ErrMalformedBody, err)))
		return
	}

	if err := h.service.Submit(r.Context(), req); err != nil {
		h.fail(w, err)
		return
	}

	h.metrics.ObserveSubmission("success")
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// GetOptions handles GET /api/contact/options requests
func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.options)
}

// decodeRequest reads exactly one JSON object; trailing data is an error.
func decodeRequest(body io.Reader) (*SubmissionRequest, error) {
	dec := json.NewDecoder(body)
	var req SubmissionRequest
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON body")
	}
	return &req, nil
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	kind := KindOf(err)
	h.metrics.ObserveSubmission(kind.String())
	writeJSON(w, kind.Status(), ErrorResponse{Error: kind.Message()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
