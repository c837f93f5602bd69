package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/portfolio-contact/internal/notify"
	"github.com/wolfman30/portfolio-contact/internal/observability/metrics"
	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

var contactTracer = otel.Tracer("portfolio.internal.contact")

const defaultDispatchTimeout = 10 * time.Second

// SenderProvider hands out an email sender for a single request.
type SenderProvider interface {
	SenderFor(ctx context.Context) (notify.EmailSender, error)
}

// ServiceConfig configures the submission service.
type ServiceConfig struct {
	Identity        Identity
	DispatchTimeout time.Duration
}

// Service validates submissions and dispatches them as email.
type Service struct {
	senders  SenderProvider
	identity Identity
	timeout  time.Duration
	metrics  *metrics.ContactMetrics
	logger   *logging.Logger
}

// NewService creates a submission service.
func NewService(senders SenderProvider, cfg ServiceConfig, m *metrics.ContactMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.DispatchTimeout <= 0 {
		cfg.DispatchTimeout = defaultDispatchTimeout
	}
	return &Service{
		senders:  senders,
		identity: cfg.Identity,
		timeout:  cfg.DispatchTimeout,
		metrics:  m,
		logger:   logger,
	}
}

// Submit validates req, composes the outbound message and sends it once.
// Failures come back as *Error.
func (s *Service) Submit(ctx context.Context, req *SubmissionRequest) error {
	if err := req.Validate(); err != nil {
		s.logger.Warn("contact submission rejected", "error", err)
		return newError(KindValidation, err)
	}

	if s.senders == nil {
		err := fmt.Errorf("%w: no sender provider", notify.ErrNotConfigured)
		s.logger.Error("contact dispatch unavailable", "error", err)
		return newError(KindConfiguration, err)
	}
	sender, err := s.senders.SenderFor(ctx)
	if err != nil {
		s.logger.Error("contact dispatch unavailable", "error", err)
		if errors.Is(err, notify.ErrNotConfigured) || errors.Is(err, notify.ErrUnknownProvider) {
			return newError(KindConfiguration, err)
		}
		return newError(KindTransport, err)
	}

	msg := ComposeMessage(*req, s.identity)

	if err := s.dispatch(ctx, sender, msg); err != nil {
		s.logger.Error("contact dispatch failed", "error", logging.RedactError(err))
		return newError(KindDispatch, err)
	}

	s.logger.Info("contact form submitted",
		"project_type", req.ProjectType,
		"timeline", req.Timeline,
		"budget", req.Budget,
	)
	return nil
}

func (s *Service) dispatch(ctx context.Context, sender notify.EmailSender, msg OutboundMessage) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ctx, span := contactTracer.Start(ctx, "contact.dispatch")
	defer span.End()

	start := time.Now()
	err := sender.Send(ctx, msg.Email())
	s.metrics.ObserveDispatchLatency(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		span.SetAttributes(attribute.Bool("contact.timeout", errors.Is(ctx.Err(), context.DeadlineExceeded)))
		return err
	}
	return nil
}
