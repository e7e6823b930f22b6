// Package service implements the temporal versioning rules of variable definitions:
// creating definitions, opening validity periods and patching within a period.
//
// Every write derives a complete new record from the latest persisted one, runs it
// through the validation registry and inserts it. Records are never updated in place;
// the store's unique (definition id, valid from, patch id) key turns concurrent writers
// into a conflict for all but one of them.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"vardef/internal/definitions/events"
	"vardef/internal/definitions/metrics"
	"vardef/internal/definitions/models"
	"vardef/internal/definitions/store"
	"vardef/internal/definitions/validation"
	klassmodels "vardef/internal/klass/models"
	dErrors "vardef/pkg/domain-errors"
	"vardef/pkg/requestcontext"
)

type Store interface {
	Insert(ctx context.Context, records ...*models.SavedVariableDefinition) error
	ListByDefinition(ctx context.Context, definitionID string) ([]*models.SavedVariableDefinition, error)
	FindDefinitionIDByShortName(ctx context.Context, shortName string) (string, error)
	FindDefinitionIDsByShortNames(ctx context.Context, shortNames []string) (map[string]string, error)
	ListLatestPatches(ctx context.Context) ([]*models.SavedVariableDefinition, error)
}

// Classifications validates and resolves classification codes.
type Classifications interface {
	Validate(classificationID, code string) bool
	Lookup(classificationID, code, language string) *klassmodels.ReferenceItem
	ClassificationURI(classificationID string) string
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service owns the definition write paths and queries.
type Service struct {
	store     Store
	codes     Classifications
	rules     *validation.Registry
	immutable []models.Field
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	newID     func() string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithImmutableFields replaces the fields locked once a definition is published.
func WithImmutableFields(fields []models.Field) Option {
	return func(s *Service) {
		s.immutable = fields
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithIDGenerator overrides definition id generation. Tests use it for stable ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// New constructs a Service.
func New(st Store, codes Classifications, opts ...Option) *Service {
	s := &Service{
		store:     st,
		codes:     codes,
		immutable: models.DefaultPublishedImmutableFields,
		newID:     NewDefinitionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("vardef/internal/definitions/service")
	}
	s.rules = validation.NewRegistry(codes, s.immutable)
	return s
}

// NewDefinitionID returns an 8 character opaque id.
func NewDefinitionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// begin opens a span and returns the function that closes it and records metrics.
func (s *Service) begin(ctx context.Context, op validation.Operation, definitionID string) (context.Context, func(*error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "definitions."+string(op), trace.WithAttributes(
		attribute.String("definition_id", definitionID),
	))
	return ctx, func(errp *error) {
		if err := *errp; err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, dErrors.MessageOf(err))
			s.metrics.IncrementRejection(string(op), string(dErrors.CodeOf(err)))
		}
		s.metrics.ObserveLatency(string(op), time.Since(start))
		span.End()
	}
}

// load fetches a definition's history, mapping an empty result to not found.
func (s *Service) load(ctx context.Context, definitionID string) (history, error) {
	records, err := s.store.ListByDefinition(ctx, definitionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load variable definition")
	}
	if len(records) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "variable definition "+definitionID+" not found")
	}
	return newHistory(records), nil
}

func (s *Service) insert(ctx context.Context, records ...*models.SavedVariableDefinition) error {
	if err := s.store.Insert(ctx, records...); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return dErrors.Wrap(err, dErrors.CodeConflict, "variable definition was modified concurrently, retry against the latest version")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save variable definition")
	}
	return nil
}

func (s *Service) publish(ctx context.Context, t events.Type, records ...*models.SavedVariableDefinition) {
	if s.publisher == nil {
		return
	}
	for _, r := range records {
		event := events.FromRecord(t, r)
		event.RequestID = requestcontext.RequestID(ctx)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish variable definition event",
				"type", string(t),
				"definition_id", r.DefinitionID,
				"error", err,
				"request_id", event.RequestID,
			)
		}
	}
}

// stamp sets the last-updated audit fields from the request context.
func stamp(ctx context.Context, r *models.SavedVariableDefinition) {
	r.LastUpdatedAt = requestcontext.Now(ctx).UTC()
	r.LastUpdatedBy = requestcontext.User(ctx)
}
