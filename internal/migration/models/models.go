package models

import (
	"errors"
	"time"

	defmodels "vardef/internal/definitions/models"
)

// ErrAlreadyMigrated is returned when a Vardok id already has a mapping.
var ErrAlreadyMigrated = errors.New("vardok id is already migrated")

// Mapping links a Vardok id to the definition created from it. Both sides are unique.
type Mapping struct {
	VardokID     string    `json:"vardokId"`
	DefinitionID string    `json:"definitionId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Result reports a migration. Mapping is nil when the definition was created but
// could not be mapped; Warnings then says why.
type Result struct {
	Definition *defmodels.SavedVariableDefinition `json:"definition"`
	Mapping    *Mapping                           `json:"mapping,omitempty"`
	Warnings   []string                           `json:"warnings,omitempty"`
}

// RepairReport summarizes a bulk repair pass. Failed maps Vardok id to reason.
type RepairReport struct {
	Repaired []*Mapping        `json:"repaired"`
	Skipped  []string          `json:"skipped"`
	Failed   map[string]string `json:"failed"`
}
