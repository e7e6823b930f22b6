package events

import (
	"context"
	"log/slog"
)

// LogPublisher writes events to the structured log. Used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "variable definition event",
		"type", string(event.Type),
		"definition_id", event.DefinitionID,
		"valid_from", event.ValidFrom.String(),
		"patch_id", event.PatchID,
		"variable_status", string(event.VariableStatus),
		"actor", event.Actor,
		"request_id", event.RequestID,
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
