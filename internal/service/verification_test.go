package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"docverify/internal/logging"
	"docverify/internal/metrics"
	"docverify/internal/model"
	"docverify/internal/verification"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(p verification.Payload) (*model.VerificationVerdict, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VerificationVerdict), args.Error(1)
}

type mockObserver struct {
	mock.Mock
}

func (m *mockObserver) ObserveOutcome(contentType, outcome string) {
	m.Called(contentType, outcome)
}

func (m *mockObserver) ObserveSize(contentType string, size int64) {
	m.Called(contentType, size)
}

func TestVerificationService_Verify(t *testing.T) {
	ctx := context.Background()
	reason := verification.ReasonHeuristicFailed

	tests := []struct {
		name        string
		content     []byte
		filename    string
		contentType string
		setupMocks  func(mv *mockVerifier, mo *mockObserver)
		wantErr     error
		wantValid   bool
	}{
		{
			name:        "valid document",
			content:     []byte("png"),
			filename:    "scan.png",
			contentType: "image/png",
			setupMocks: func(mv *mockVerifier, mo *mockObserver) {
				mv.On("Verify", verification.Payload{Content: []byte("png"), Filename: "scan.png", ContentType: "image/png"}).
					Return(&model.VerificationVerdict{Valid: true, Metadata: model.DocumentMetadata{SizeBytes: 3}}, nil)
				mo.On("ObserveOutcome", "image/png", metrics.OutcomeValid).Once()
				mo.On("ObserveSize", "image/png", int64(3)).Once()
			},
			wantValid: true,
		},
		{
			name:        "negative verdict is not an error",
			content:     []byte("pdf"),
			contentType: "application/pdf",
			setupMocks: func(mv *mockVerifier, mo *mockObserver) {
				mv.On("Verify", mock.Anything).
					Return(&model.VerificationVerdict{Valid: false, Reason: &reason, Metadata: model.DocumentMetadata{SizeBytes: 3}}, nil)
				mo.On("ObserveOutcome", "application/pdf", metrics.OutcomeInvalid).Once()
				mo.On("ObserveSize", "application/pdf", int64(3)).Once()
			},
			wantValid: false,
		},
		{
			name:        "empty payload",
			contentType: "image/png",
			setupMocks: func(mv *mockVerifier, mo *mockObserver) {
				mv.On("Verify", mock.Anything).Return(nil, verification.ErrEmptyPayload)
				mo.On("ObserveOutcome", "image/png", metrics.OutcomeEmptyPayload).Once()
			},
			wantErr: verification.ErrEmptyPayload,
		},
		{
			name:        "unsupported type keeps wrapped sentinel",
			content:     []byte("x"),
			contentType: "text/plain",
			setupMocks: func(mv *mockVerifier, mo *mockObserver) {
				mv.On("Verify", mock.Anything).Return(nil, fmt.Errorf("%w: %q", verification.ErrUnsupportedType, "text/plain"))
				mo.On("ObserveOutcome", "text/plain", metrics.OutcomeUnsupportedType).Once()
			},
			wantErr: verification.ErrUnsupportedType,
		},
		{
			name:        "too large",
			content:     []byte("x"),
			contentType: "image/jpeg",
			setupMocks: func(mv *mockVerifier, mo *mockObserver) {
				mv.On("Verify", mock.Anything).Return(nil, verification.ErrPayloadTooLarge)
				mo.On("ObserveOutcome", "image/jpeg", metrics.OutcomePayloadTooLarge).Once()
			},
			wantErr: verification.ErrPayloadTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mv := new(mockVerifier)
			mo := new(mockObserver)
			tt.setupMocks(mv, mo)

			svc := NewVerificationService(mv, mo, logging.Discard())
			res, err := svc.Verify(ctx, tt.content, tt.filename, tt.contentType)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				require.NotNil(t, res)
				assert.NotEmpty(t, res.DocumentID)
				assert.Equal(t, tt.wantValid, res.Verdict.Valid)
			}

			mv.AssertExpectations(t)
			mo.AssertExpectations(t)
		})
	}
}

func TestVerificationService_RealPipeline(t *testing.T) {
	svc := NewVerificationService(verification.New(), nil, nil)

	res, err := svc.Verify(context.Background(), []byte("%PDF-1.4 test"), "test.pdf", "application/pdf")
	require.NoError(t, err)
	assert.True(t, res.Verdict.Valid)
	assert.Equal(t, "d663640088750cf16276d623c2588d7233f2b84b45f4b2e20832f47b16aa5618", res.Verdict.Metadata.SHA256)

	other, err := svc.Verify(context.Background(), []byte("%PDF-1.4 test"), "test.pdf", "application/pdf")
	require.NoError(t, err)
	assert.NotEqual(t, res.DocumentID, other.DocumentID)
}

func TestVerificationService_LogsWithoutFilename(t *testing.T) {
	var buf bytes.Buffer
	svc := NewVerificationService(verification.New(), nil, logging.New(&buf, nil))

	_, err := svc.Verify(context.Background(), []byte("jpeg"), "passport-john-doe.jpg", "image/jpeg")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "verification_received")
	assert.Contains(t, out, "verification_completed")
	assert.NotContains(t, out, "passport-john-doe")
}

func TestVerificationService_LogLevelByFailureKind(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantMsg   string
		wantLevel string
	}{
		{name: "intake rejection", err: fmt.Errorf("%w: text/plain", verification.ErrUnsupportedType), wantMsg: "verification_rejected", wantLevel: `"level":"warn"`},
		{name: "internal failure", err: errors.New("engine exploded"), wantMsg: "verification_failed", wantLevel: `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			mv := new(mockVerifier)
			mv.On("Verify", mock.Anything).Return(nil, tt.err)

			svc := NewVerificationService(mv, nil, logging.New(&buf, nil))
			_, err := svc.Verify(context.Background(), []byte("x"), "a.txt", "text/plain")
			require.ErrorIs(t, err, tt.err)

			out := buf.String()
			assert.Contains(t, out, tt.wantMsg)
			assert.Contains(t, out, tt.wantLevel)
		})
	}
}

func TestVerificationService_RecordsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	svc := NewVerificationService(verification.New(), nil, logging.Discard())
	_, err := svc.Verify(context.Background(), nil, "", "image/png")
	require.True(t, errors.Is(err, verification.ErrEmptyPayload))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "verification.Verify", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, metrics.OutcomeEmptyPayload, spans[0].Status().Description)
}
