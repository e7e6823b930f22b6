// Package events publishes definition change notifications for downstream consumers.
//
// Publishing is fail-open: the record is already persisted when an event is emitted,
// so publish failures are logged by the caller and never roll back a write.
package events

import (
	"context"
	"time"

	"vardef/internal/definitions/models"
)

// Type names a change.
type Type string

const (
	TypeCreated               Type = "variable_definition.created"
	TypePatched               Type = "variable_definition.patched"
	TypeValidityPeriodCreated Type = "variable_definition.validity_period_created"
)

// Event describes one persisted record.
type Event struct {
	Type           Type                  `json:"type"`
	DefinitionID   string                `json:"definitionId"`
	ShortName      string                `json:"shortName"`
	ValidFrom      models.Date           `json:"validFrom"`
	ValidUntil     *models.Date          `json:"validUntil,omitempty"`
	PatchID        int                   `json:"patchId"`
	VariableStatus models.VariableStatus `json:"variableStatus"`
	Actor          string                `json:"actor"`
	RequestID      string                `json:"requestId,omitempty"`
	OccurredAt     time.Time             `json:"occurredAt"`
}

// FromRecord builds the event for a freshly written record.
func FromRecord(t Type, r *models.SavedVariableDefinition) Event {
	return Event{
		Type:           t,
		DefinitionID:   r.DefinitionID,
		ShortName:      r.ShortName,
		ValidFrom:      r.ValidFrom,
		ValidUntil:     r.ValidUntil,
		PatchID:        r.PatchID,
		VariableStatus: r.VariableStatus,
		Actor:          r.LastUpdatedBy,
		OccurredAt:     r.LastUpdatedAt,
	}
}

// Publisher sends events somewhere.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
