package upload

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/observability"
)

const tracerName = "github.com/jonathan/resume-matcher/internal/upload"

// State is the controller's lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateInFlight
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in_flight"
	default:
		return "unknown"
	}
}

// Config is fixed for the controller's lifetime.
type Config struct {
	// BaseURL is prefixed to /upload. Empty means origin-relative.
	BaseURL string
	Options *Options
}

// Outcome describes a completed submission.
type Outcome struct {
	RequestID string
	Elapsed   time.Duration
	Response  *ScoringResponse
	View      View
}

// Controller runs the submit-and-render cycle. At most one submission is in flight at a time.
type Controller struct {
	client  *Client
	display Display
	logger  *zap.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
	now     func() time.Time

	state atomic.Int32
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records submissions in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithTracer replaces the global tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Controller) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithClock replaces time.Now for elapsed time measurement.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController creates an idle controller rendering onto display.
func NewController(cfg Config, display Display, opts ...Option) *Controller {
	c := &Controller{
		client:  NewClient(cfg.BaseURL, cfg.Options),
		display: display,
		logger:  zap.NewNop(),
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports whether a submission is waiting for its response.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Submit validates in, sends it to {base_url}/upload and renders the result. On any failure
// the display only receives a notice and keeps what it showed before.
func (c *Controller) Submit(ctx context.Context, in SubmissionInput) (*Outcome, error) {
	if err := in.Validate(); err != nil {
		var validationErr *ValidationError
		msg := err.Error()
		if errors.As(err, &validationErr) {
			msg = validationErr.Message
		}
		c.logger.Debug("submission rejected by validation", zap.Error(err))
		c.display.Notify(Notice{Kind: NoticeValidation, Message: msg})
		c.metrics.RecordOutcome(observability.OutcomeValidationError)
		return nil, err
	}

	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateInFlight)) {
		c.logger.Warn("submission rejected while another is in flight")
		c.display.Notify(Notice{Kind: NoticeBusy, Message: "A submission is already in progress. Please wait for it to finish."})
		c.metrics.RecordOutcome(observability.OutcomeRejected)
		return nil, ErrSubmissionInProgress
	}
	defer c.state.Store(int32(StateIdle))

	c.metrics.SetInFlight(true)
	defer c.metrics.SetInFlight(false)

	requestID := uuid.NewString()
	endpoint := c.client.Endpoint(UploadPath)

	ctx, span := c.tracer.Start(ctx, "upload.submit", trace.WithAttributes(
		attribute.String("request_id", requestID),
		attribute.String("url", endpoint),
		attribute.Int("files", len(in.Files)),
	))
	defer span.End()

	logger := c.logger.With(zap.String("request_id", requestID))

	outcome, subErr := c.dispatch(ctx, in, requestID)
	if subErr != nil {
		logger.Error("submission failed",
			zap.String("kind", subErr.Kind.String()),
			zap.Int("status", subErr.StatusCode),
			zap.Duration("elapsed", subErr.Elapsed),
			zap.Error(subErr),
		)
		c.display.Notify(Notice{Kind: NoticeSubmission, Message: subErr.UserMessage()})
		c.metrics.RecordOutcome(outcomeFor(subErr.Kind))
		span.RecordError(subErr)
		span.SetStatus(codes.Error, subErr.Kind.String())
		return nil, subErr
	}

	outcome.View.Apply(c.display)
	c.metrics.RecordOutcome(observability.OutcomeSuccess)
	span.SetAttributes(attribute.Int("results", len(outcome.Response.AllResults)))
	span.SetStatus(codes.Ok, "")
	logger.Info("submission completed",
		zap.Int("files", len(in.Files)),
		zap.Int("results", len(outcome.Response.AllResults)),
		zap.String("elapsed", outcome.View.Elapsed),
	)
	return outcome, nil
}

// dispatch performs the single request and interprets its response.
func (c *Controller) dispatch(ctx context.Context, in SubmissionInput, requestID string) (*Outcome, *SubmissionError) {
	endpoint := c.client.Endpoint(UploadPath)

	payload, err := BuildPayload(in)
	if err != nil {
		return nil, &SubmissionError{Kind: KindPayload, URL: endpoint, Cause: err}
	}

	start := c.now()
	resp, err := c.client.Upload(ctx, payload, requestID)
	if err != nil {
		return nil, &SubmissionError{Kind: KindNetwork, URL: endpoint, Cause: err}
	}

	elapsed := c.now().Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	c.metrics.ObserveDuration(elapsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &SubmissionError{
			Kind:          KindStatus,
			URL:           endpoint,
			StatusCode:    resp.StatusCode,
			ServerMessage: serverMessage(resp.Body),
			Elapsed:       elapsed,
		}
	}

	parsed, err := ParseResponse(resp.Body)
	if err != nil {
		return nil, &SubmissionError{
			Kind:       KindBody,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Elapsed:    elapsed,
			Cause:      err,
		}
	}

	return &Outcome{
		RequestID: requestID,
		Elapsed:   elapsed,
		Response:  parsed,
		View:      Project(parsed, elapsed),
	}, nil
}

func outcomeFor(kind Kind) string {
	switch kind {
	case KindStatus:
		return observability.OutcomeStatusError
	case KindBody:
		return observability.OutcomeBodyError
	case KindPayload:
		return observability.OutcomePayloadError
	default:
		return observability.OutcomeNetworkError
	}
}
