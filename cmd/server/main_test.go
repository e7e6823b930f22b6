package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	defservice "vardef/internal/definitions/service"
	defstore "vardef/internal/definitions/store"
	"vardef/internal/klass"
	klassmodels "vardef/internal/klass/models"
	"vardef/internal/platform/config"
	"vardef/internal/platform/scheduler"
)

type unitTypes struct{}

func (unitTypes) FetchClassification(_ context.Context, id string) (*klassmodels.Classification, error) {
	return &klassmodels.Classification{ID: id, Codes: map[string]map[string]klassmodels.CodeItem{
		"nb": {"20": {Code: "20", Name: "Person"}},
	}}, nil
}

func TestBackgroundJobsPopulateCacheAtBoot(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Server{
		Klass:                 config.KlassConfig{RefreshInterval: 24 * time.Hour},
		MetricsExportInterval: time.Hour,
	}
	cache := klass.New(unitTypes{}, []string{"702"}, klass.WithLogger(log))
	definitions := defservice.New(defstore.NewInMemory(), cache, defservice.WithLogger(log))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- scheduler.New(log, backgroundJobs(cfg, cache, definitions)...).Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return cache.State("702") == klassmodels.StatePopulated
	}, time.Second, 10*time.Millisecond, "cache must not wait a full refresh interval after boot")
	assert.True(t, cache.Validate("702", "20"))

	cancel()
	require.NoError(t, <-done)
}
