package store

import (
	"time"

	"vardef/internal/definitions/models"
)

func record(definitionID, shortName, validFrom string, patchID int) *models.SavedVariableDefinition {
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return &models.SavedVariableDefinition{
		DefinitionID:   definitionID,
		PatchID:        patchID,
		ShortName:      shortName,
		ValidFrom:      models.MustParseDate(validFrom),
		VariableStatus: models.StatusDraft,
		Owner:          models.Owner{Team: "play-enhjoern-a", Groups: []string{"play-enhjoern-a-developers"}},
		Content: models.Content{
			Name:       models.LanguageStringType{Nb: "Navn"},
			Definition: models.LanguageStringType{Nb: "Definisjon"},
			UnitTypes:  []string{"01"},
		},
		CreatedAt:     at,
		CreatedBy:     "ano@ssb.no",
		LastUpdatedAt: at,
		LastUpdatedBy: "ano@ssb.no",
	}
}
