package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels recorded for each verification attempt.
const (
	OutcomeValid           = "valid"
	OutcomeInvalid         = "invalid"
	OutcomeEmptyPayload    = "empty_payload"
	OutcomeUnsupportedType = "unsupported_type"
	OutcomePayloadTooLarge = "payload_too_large"
	OutcomeError           = "error"
	otherContentType       = "other"
)

// VerificationMetrics counts verification outcomes and payload sizes.
type VerificationMetrics struct {
	total *prometheus.CounterVec
	size  *prometheus.HistogramVec
	known map[string]struct{}
}

// NewVerificationMetrics registers the verification collectors on reg.
// knownTypes bounds the content_type label; anything else is reported as "other".
func NewVerificationMetrics(reg prometheus.Registerer, knownTypes []string) (*VerificationMetrics, error) {
	m := &VerificationMetrics{
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "document_verifications_total",
				Help: "Total number of document verification attempts by outcome.",
			},
			[]string{"content_type", "outcome"},
		),
		size: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "document_verification_payload_bytes",
				Help:    "Size of documents that passed intake validation.",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
			[]string{"content_type"},
		),
		known: make(map[string]struct{}, len(knownTypes)),
	}
	for _, t := range knownTypes {
		m.known[t] = struct{}{}
	}

	for _, c := range []prometheus.Collector{m.total, m.size} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveOutcome records one verification attempt.
func (m *VerificationMetrics) ObserveOutcome(contentType, outcome string) {
	m.total.WithLabelValues(m.label(contentType), outcome).Inc()
}

// ObserveSize records the size of an accepted payload.
func (m *VerificationMetrics) ObserveSize(contentType string, size int64) {
	m.size.WithLabelValues(m.label(contentType)).Observe(float64(size))
}

func (m *VerificationMetrics) label(contentType string) string {
	if _, ok := m.known[contentType]; ok {
		return contentType
	}
	return otherContentType
}
