package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"docverify/internal/metrics"
	"docverify/internal/model"
	"docverify/internal/verification"
)

const tracerName = "docverify/internal/service"

// VerificationResult pairs a verdict with the id assigned to this verification.
// The id is only used for correlation in logs, traces and response headers.
type VerificationResult struct {
	DocumentID string
	Verdict    *model.VerificationVerdict
}

// VerificationService defines the use case for verifying an uploaded document.
type VerificationService interface {
	// Verify runs the verification pipeline on an in-memory document.
	// Intake failures are returned as errors matching the verification sentinels.
	Verify(ctx context.Context, content []byte, filename, contentType string) (*VerificationResult, error)
}

// Verifier is the pipeline contract the service depends on.
type Verifier interface {
	Verify(p verification.Payload) (*model.VerificationVerdict, error)
}

// Observer receives verification outcomes. *metrics.VerificationMetrics implements it.
type Observer interface {
	ObserveOutcome(contentType, outcome string)
	ObserveSize(contentType string, size int64)
}

type noopObserver struct{}

func (noopObserver) ObserveOutcome(string, string) {}
func (noopObserver) ObserveSize(string, int64)     {}

// verificationService is a concrete implementation of VerificationService.
type verificationService struct {
	verifier Verifier
	observer Observer
	log      *slog.Logger
	tracer   trace.Tracer
}

// NewVerificationService constructs a new VerificationService.
// A nil observer disables metrics; a nil logger uses slog.Default().
func NewVerificationService(v Verifier, obs Observer, log *slog.Logger) VerificationService {
	if obs == nil {
		obs = noopObserver{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &verificationService{
		verifier: v,
		observer: obs,
		log:      log,
		tracer:   otel.Tracer(tracerName),
	}
}

func (s *verificationService) Verify(ctx context.Context, content []byte, filename, contentType string) (*VerificationResult, error) {
	docID := uuid.NewString()

	ctx, span := s.tracer.Start(ctx, "verification.Verify", trace.WithAttributes(
		attribute.String("document.id", docID),
		attribute.String("document.content_type", contentType),
		attribute.Int("document.size_bytes", len(content)),
	))
	defer span.End()

	// Filename and bytes are never logged.
	s.log.InfoContext(ctx, "verification_received",
		"document_id", docID,
		"content_type", contentType,
		"size_bytes", len(content),
	)

	verdict, err := s.verifier.Verify(verification.Payload{
		Content:     content,
		Filename:    filename,
		ContentType: contentType,
	})
	if err != nil {
		outcome := outcomeFor(err)
		s.observer.ObserveOutcome(contentType, outcome)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		attrs := []any{
			"document_id", docID,
			"outcome", outcome,
			"error", err.Error(),
		}
		if verification.IsIntakeError(err) {
			s.log.WarnContext(ctx, "verification_rejected", attrs...)
		} else {
			s.log.ErrorContext(ctx, "verification_failed", attrs...)
		}
		return nil, err
	}

	outcome := metrics.OutcomeValid
	if !verdict.Valid {
		outcome = metrics.OutcomeInvalid
	}
	s.observer.ObserveOutcome(contentType, outcome)
	s.observer.ObserveSize(contentType, verdict.Metadata.SizeBytes)
	span.SetAttributes(
		attribute.Bool("verdict.valid", verdict.Valid),
		attribute.String("document.sha256", verdict.Metadata.SHA256),
	)

	s.log.InfoContext(ctx, "verification_completed",
		"document_id", docID,
		"valid", verdict.Valid,
		"sha256", verdict.Metadata.SHA256,
	)

	return &VerificationResult{DocumentID: docID, Verdict: verdict}, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, verification.ErrEmptyPayload):
		return metrics.OutcomeEmptyPayload
	case errors.Is(err, verification.ErrUnsupportedType):
		return metrics.OutcomeUnsupportedType
	case errors.Is(err, verification.ErrPayloadTooLarge):
		return metrics.OutcomePayloadTooLarge
	default:
		return metrics.OutcomeError
	}
}
