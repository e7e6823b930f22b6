package models

import klassmodels "vardef/internal/klass/models"

// RenderedVariableDefinition is a single-language view of a record with coded fields
// resolved to classification titles.
type RenderedVariableDefinition struct {
	ID                                      string                       `json:"id"`
	PatchID                                 int                          `json:"patchId"`
	Name                                    string                       `json:"name"`
	ShortName                               string                       `json:"shortName"`
	Definition                              string                       `json:"definition"`
	ClassificationURI                       string                       `json:"classificationUri,omitempty"`
	UnitTypes                               []*klassmodels.ReferenceItem `json:"unitTypes"`
	SubjectFields                           []*klassmodels.ReferenceItem `json:"subjectFields"`
	ContainsSpecialCategoriesOfPersonalData bool                         `json:"containsSpecialCategoriesOfPersonalData"`
	MeasurementType                         *klassmodels.ReferenceItem   `json:"measurementType,omitempty"`
	ValidFrom                               Date                         `json:"validFrom"`
	ValidUntil                              *Date                        `json:"validUntil"`
	ExternalReferenceURI                    string                       `json:"externalReferenceUri,omitempty"`
	Comment                                 string                       `json:"comment,omitempty"`
	RelatedVariableDefinitionURIs           []string                     `json:"relatedVariableDefinitionUris"`
	ContactTitle                            string                       `json:"contactTitle,omitempty"`
	ContactEmail                            string                       `json:"contactEmail,omitempty"`
	LastUpdatedAt                           string                       `json:"lastUpdatedAt"`
}
