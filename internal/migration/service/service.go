// Package service migrates Vardok documents into variable definitions, at most once
// per Vardok id.
//
// Creating the definition and recording the mapping are two writes. When the second
// one fails the definition exists unmapped and the result carries a warning; Repair
// records the missing mapping later.
package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	defmodels "vardef/internal/definitions/models"
	"vardef/internal/migration/metrics"
	"vardef/internal/migration/models"
	"vardef/internal/migration/store"
	"vardef/internal/vardok"
	dErrors "vardef/pkg/domain-errors"
	"vardef/pkg/platform/sentinel"
	vstrings "vardef/pkg/platform/strings"
	"vardef/pkg/requestcontext"
)

// Legacy reads single-language Vardok documents.
type Legacy interface {
	Fetch(ctx context.Context, id, language string) (*vardok.FIMD, error)
}

// Definitions is the slice of the definitions service a migration drives.
type Definitions interface {
	CreateDefinition(ctx context.Context, draft defmodels.Draft, activeGroup string) (*defmodels.SavedVariableDefinition, error)
	FindDefinitionIDByShortName(ctx context.Context, shortName string) (string, error)
	FindDefinitionIDsByShortNames(ctx context.Context, shortNames []string) (map[string]string, error)
}

type Store interface {
	Create(ctx context.Context, m *models.Mapping) error
	FindByVardokID(ctx context.Context, vardokID string) (*models.Mapping, error)
	List(ctx context.Context) ([]*models.Mapping, error)
}

type Service struct {
	legacy      Legacy
	definitions Definitions
	store       Store
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
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

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(legacy Legacy, definitions Definitions, st Store, opts ...Option) *Service {
	s := &Service{
		legacy:      legacy,
		definitions: definitions,
		store:       st,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("vardef/internal/migration/service")
	}
	return s
}

// Migrate imports one Vardok document set as a new definition owned by activeGroup.
func (s *Service) Migrate(ctx context.Context, vardokID, activeGroup string) (_ *models.Result, err error) {
	ctx, span := s.tracer.Start(ctx, "migration.migrate", trace.WithAttributes(
		attribute.String("vardok_id", vardokID),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, dErrors.MessageOf(err))
			s.metrics.IncrementMigration("rejected")
		}
		span.End()
	}()

	if err := s.ensureUnmapped(ctx, vardokID); err != nil {
		return nil, err
	}

	docs, err := s.fetch(ctx, vardokID)
	if err != nil {
		return nil, err
	}
	draft, err := vardok.Translate(vardokID, docs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, err.Error())
	}

	created, err := s.definitions.CreateDefinition(ctx, *draft, activeGroup)
	if err != nil {
		return nil, err
	}

	result := &models.Result{Definition: created}
	definitionID, err := s.definitions.FindDefinitionIDByShortName(ctx, draft.ShortName)
	if err != nil {
		return s.unmapped(ctx, result, vardokID, "could not resolve the created definition by short name "+draft.ShortName, err), nil
	}
	mapping := &models.Mapping{
		VardokID:     vardokID,
		DefinitionID: definitionID,
		CreatedAt:    requestcontext.Now(ctx).UTC(),
	}
	if err := s.store.Create(ctx, mapping); err != nil {
		return s.unmapped(ctx, result, vardokID, "could not record the vardok mapping", err), nil
	}
	result.Mapping = mapping

	s.metrics.IncrementMigration("migrated")
	s.logger.InfoContext(ctx, "vardok document migrated",
		"vardok_id", vardokID,
		"definition_id", definitionID,
		"short_name", draft.ShortName,
		"request_id", requestcontext.RequestID(ctx),
	)
	return result, nil
}

func (s *Service) unmapped(ctx context.Context, result *models.Result, vardokID, warning string, cause error) *models.Result {
	result.Warnings = append(result.Warnings, warning)
	s.metrics.IncrementMigration("unmapped")
	s.logger.WarnContext(ctx, "vardok document migrated without mapping",
		"vardok_id", vardokID,
		"definition_id", result.Definition.DefinitionID,
		"error", cause,
		"request_id", requestcontext.RequestID(ctx),
	)
	return result
}

func (s *Service) ensureUnmapped(ctx context.Context, vardokID string) error {
	existing, err := s.store.FindByVardokID(ctx, vardokID)
	switch {
	case err == nil:
		return dErrors.Wrap(models.ErrAlreadyMigrated, dErrors.CodeConflict,
			"vardok id "+vardokID+" is already migrated to variable definition "+existing.DefinitionID)
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up vardok mapping")
	}
}

// fetch loads the primary language first, then every other supported language the
// document advertises, concurrently.
func (s *Service) fetch(ctx context.Context, vardokID string) (map[string]*vardok.FIMD, error) {
	primary, err := s.fetchOne(ctx, vardokID, vardok.PrimaryLanguage)
	if err != nil {
		return nil, err
	}
	docs := map[string]*vardok.FIMD{vardok.PrimaryLanguage: primary}

	var others []string
	for _, lang := range primary.Languages() {
		if lang == vardok.PrimaryLanguage || slices.Contains(others, lang) {
			continue
		}
		if defmodels.SupportedLanguage(lang).IsValid() {
			others = append(others, lang)
		}
	}

	fetched := make([]*vardok.FIMD, len(others))
	g, gctx := errgroup.WithContext(ctx)
	for i, lang := range others {
		g.Go(func() error {
			doc, err := s.fetchOne(gctx, vardokID, lang)
			if err != nil {
				return err
			}
			fetched[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, lang := range others {
		docs[lang] = fetched[i]
	}
	return docs, nil
}

func (s *Service) fetchOne(ctx context.Context, vardokID, language string) (*vardok.FIMD, error) {
	start := time.Now()
	doc, err := s.legacy.Fetch(ctx, vardokID, language)
	s.metrics.ObserveFetch(language, time.Since(start))
	if err == nil {
		return doc, nil
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "vardok id "+vardokID+" not found")
	case errors.Is(err, sentinel.ErrBadData):
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "vardok document "+vardokID+" ("+language+") could not be read")
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "vardok is unavailable")
	}
}

// Repair records the mapping for a Vardok id whose definition was created but not
// mapped. The short name is re-derived from the primary document.
func (s *Service) Repair(ctx context.Context, vardokID string) (_ *models.Mapping, err error) {
	ctx, span := s.tracer.Start(ctx, "migration.repair", trace.WithAttributes(
		attribute.String("vardok_id", vardokID),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, dErrors.MessageOf(err))
		}
		span.End()
	}()

	if err := s.ensureUnmapped(ctx, vardokID); err != nil {
		return nil, err
	}
	primary, err := s.fetchOne(ctx, vardokID, vardok.PrimaryLanguage)
	if err != nil {
		return nil, err
	}
	shortName := vardok.ShortName(vardokID, primary.Variable.DataElementName)
	definitionID, err := s.definitions.FindDefinitionIDByShortName(ctx, shortName)
	if err != nil {
		return nil, err
	}

	mapping := &models.Mapping{
		VardokID:     vardokID,
		DefinitionID: definitionID,
		CreatedAt:    requestcontext.Now(ctx).UTC(),
	}
	if err := s.store.Create(ctx, mapping); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "variable definition "+definitionID+" is already mapped")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record vardok mapping")
	}
	s.metrics.IncrementRepair()
	s.logger.InfoContext(ctx, "vardok mapping repaired",
		"vardok_id", vardokID,
		"definition_id", definitionID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return mapping, nil
}

// RepairAll runs the repair pass over many Vardok ids with a single short name lookup.
// Ids that are already mapped are skipped; per-id failures are reported, not returned.
func (s *Service) RepairAll(ctx context.Context, vardokIDs []string) (*models.RepairReport, error) {
	vardokIDs = vstrings.DedupeAndTrim(vardokIDs)
	report := &models.RepairReport{Failed: make(map[string]string)}
	shortNames := make(map[string]string, len(vardokIDs))
	for _, id := range vardokIDs {
		if err := s.ensureUnmapped(ctx, id); err != nil {
			if errors.Is(err, models.ErrAlreadyMigrated) {
				report.Skipped = append(report.Skipped, id)
				continue
			}
			return nil, err
		}
		primary, err := s.fetchOne(ctx, id, vardok.PrimaryLanguage)
		if err != nil {
			report.Failed[id] = dErrors.MessageOf(err)
			continue
		}
		shortNames[id] = vardok.ShortName(id, primary.Variable.DataElementName)
	}
	if len(shortNames) == 0 {
		return report, nil
	}

	names := make([]string, 0, len(shortNames))
	for _, name := range shortNames {
		names = append(names, name)
	}
	ids, err := s.definitions.FindDefinitionIDsByShortNames(ctx, names)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx).UTC()
	for _, vardokID := range vardokIDs {
		shortName, ok := shortNames[vardokID]
		if !ok {
			continue
		}
		definitionID, ok := ids[shortName]
		if !ok {
			report.Failed[vardokID] = "no variable definition with short name " + shortName
			continue
		}
		mapping := &models.Mapping{VardokID: vardokID, DefinitionID: definitionID, CreatedAt: now}
		if err := s.store.Create(ctx, mapping); err != nil {
			report.Failed[vardokID] = "could not record mapping: " + err.Error()
			continue
		}
		s.metrics.IncrementRepair()
		report.Repaired = append(report.Repaired, mapping)
	}
	s.logger.InfoContext(ctx, "vardok repair pass finished",
		"repaired", len(report.Repaired),
		"skipped", len(report.Skipped),
		"failed", len(report.Failed),
		"request_id", requestcontext.RequestID(ctx),
	)
	return report, nil
}

func (s *Service) GetMapping(ctx context.Context, vardokID string) (*models.Mapping, error) {
	m, err := s.store.FindByVardokID(ctx, vardokID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "vardok id "+vardokID+" is not migrated")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up vardok mapping")
	}
	return m, nil
}

func (s *Service) ListMappings(ctx context.Context) ([]*models.Mapping, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list vardok mappings")
	}
	return list, nil
}
