package models

import "slices"

// Draft is the input for creating a brand new definition.
type Draft struct {
	ShortName  string `json:"shortName"`
	ValidFrom  Date   `json:"validFrom"`
	ValidUntil *Date  `json:"validUntil"`
	Content
}

// Patch is a partial change set. Nil fields are copied forward from the previous patch.
// ShortName and ValidFrom exist so requests carrying them can be rejected explicitly.
type Patch struct {
	Name                                    *LanguageStringType `json:"name,omitempty"`
	ShortName                               *string             `json:"shortName,omitempty"`
	Definition                              *LanguageStringType `json:"definition,omitempty"`
	ClassificationReference                 *string             `json:"classificationReference,omitempty"`
	UnitTypes                               []string            `json:"unitTypes,omitempty"`
	SubjectFields                           []string            `json:"subjectFields,omitempty"`
	ContainsSpecialCategoriesOfPersonalData *bool               `json:"containsSpecialCategoriesOfPersonalData,omitempty"`
	VariableStatus                          *VariableStatus     `json:"variableStatus,omitempty"`
	MeasurementType                         *string             `json:"measurementType,omitempty"`
	ValidFrom                               *Date               `json:"validFrom,omitempty"`
	ValidUntil                              *Date               `json:"validUntil,omitempty"`
	ExternalReferenceURI                    *string             `json:"externalReferenceUri,omitempty"`
	Comment                                 *LanguageStringType `json:"comment,omitempty"`
	RelatedVariableDefinitionURIs           []string            `json:"relatedVariableDefinitionUris,omitempty"`
	Owner                                   *Owner              `json:"owner,omitempty"`
	Contact                                 *Contact            `json:"contact,omitempty"`
}

// Fields lists the fields the patch sets, in declaration order.
func (p Patch) Fields() []Field {
	var out []Field
	add := func(set bool, f Field) {
		if set {
			out = append(out, f)
		}
	}
	add(p.Name != nil, FieldName)
	add(p.ShortName != nil, FieldShortName)
	add(p.Definition != nil, FieldDefinition)
	add(p.ClassificationReference != nil, FieldClassificationReference)
	add(p.UnitTypes != nil, FieldUnitTypes)
	add(p.SubjectFields != nil, FieldSubjectFields)
	add(p.ContainsSpecialCategoriesOfPersonalData != nil, FieldContainsSpecialCategories)
	add(p.VariableStatus != nil, FieldVariableStatus)
	add(p.MeasurementType != nil, FieldMeasurementType)
	add(p.ValidFrom != nil, FieldValidFrom)
	add(p.ValidUntil != nil, FieldValidUntil)
	add(p.ExternalReferenceURI != nil, FieldExternalReferenceURI)
	add(p.Comment != nil, FieldComment)
	add(p.RelatedVariableDefinitionURIs != nil, FieldRelatedVariableDefinitionURIs)
	add(p.Owner != nil, FieldOwner)
	add(p.Contact != nil, FieldContact)
	return out
}

// ApplyTo returns a copy of base with the patch's fields written over it. Anchor fields
// (ShortName, ValidFrom) are never applied; rejecting them is the caller's job.
func (p Patch) ApplyTo(base *SavedVariableDefinition) *SavedVariableDefinition {
	next := base.Clone()
	if p.Name != nil {
		next.Name = *p.Name
	}
	if p.Definition != nil {
		next.Definition = *p.Definition
	}
	if p.ClassificationReference != nil {
		next.ClassificationReference = *p.ClassificationReference
	}
	if p.UnitTypes != nil {
		next.UnitTypes = slices.Clone(p.UnitTypes)
	}
	if p.SubjectFields != nil {
		next.SubjectFields = slices.Clone(p.SubjectFields)
	}
	if p.ContainsSpecialCategoriesOfPersonalData != nil {
		next.ContainsSpecialCategoriesOfPersonalData = *p.ContainsSpecialCategoriesOfPersonalData
	}
	if p.VariableStatus != nil {
		next.VariableStatus = *p.VariableStatus
	}
	if p.MeasurementType != nil {
		next.MeasurementType = *p.MeasurementType
	}
	if p.ValidUntil != nil {
		next.ValidUntil = DatePtr(*p.ValidUntil)
	}
	if p.ExternalReferenceURI != nil {
		next.ExternalReferenceURI = *p.ExternalReferenceURI
	}
	if p.Comment != nil {
		next.Comment = *p.Comment
	}
	if p.RelatedVariableDefinitionURIs != nil {
		next.RelatedVariableDefinitionURIs = slices.Clone(p.RelatedVariableDefinitionURIs)
	}
	if p.Owner != nil {
		next.Owner = Owner{Team: p.Owner.Team, Groups: slices.Clone(p.Owner.Groups)}
	}
	if p.Contact != nil {
		next.Contact = *p.Contact
	}
	return next
}

// NewValidityPeriod is the input for starting a new period on an existing definition.
// Changes are applied over the latest patch of the preceding period; Changes.Definition
// is required because a new period must say something new.
type NewValidityPeriod struct {
	ValidFrom  Date  `json:"validFrom"`
	ValidUntil *Date `json:"validUntil"`
	Changes    Patch `json:"changes"`
}
