package models

import (
	"fmt"
	"reflect"
	"strings"
)

// Field names a definition attribute. Names match the JSON representation so the
// immutable-once-published set can be configured with the same spelling clients use.
type Field string

const (
	FieldName                          Field = "name"
	FieldShortName                     Field = "shortName"
	FieldDefinition                    Field = "definition"
	FieldClassificationReference       Field = "classificationReference"
	FieldUnitTypes                     Field = "unitTypes"
	FieldSubjectFields                 Field = "subjectFields"
	FieldContainsSpecialCategories     Field = "containsSpecialCategoriesOfPersonalData"
	FieldVariableStatus                Field = "variableStatus"
	FieldMeasurementType               Field = "measurementType"
	FieldValidFrom                     Field = "validFrom"
	FieldValidUntil                    Field = "validUntil"
	FieldExternalReferenceURI          Field = "externalReferenceUri"
	FieldComment                       Field = "comment"
	FieldRelatedVariableDefinitionURIs Field = "relatedVariableDefinitionUris"
	FieldOwner                         Field = "owner"
	FieldContact                       Field = "contact"
)

var allFields = []Field{
	FieldName, FieldShortName, FieldDefinition, FieldClassificationReference, FieldUnitTypes,
	FieldSubjectFields, FieldContainsSpecialCategories, FieldVariableStatus, FieldMeasurementType,
	FieldValidFrom, FieldValidUntil, FieldExternalReferenceURI, FieldComment,
	FieldRelatedVariableDefinitionURIs, FieldOwner, FieldContact,
}

// DefaultPublishedImmutableFields are locked once a definition is published.
var DefaultPublishedImmutableFields = []Field{FieldClassificationReference, FieldUnitTypes}

// ParseFields parses a comma separated field list, rejecting unknown names.
func ParseFields(s string) ([]Field, error) {
	var out []Field
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f := Field(part)
		if !f.IsValid() {
			return nil, fmt.Errorf("unknown field %q", part)
		}
		out = append(out, f)
	}
	return out, nil
}

func (f Field) IsValid() bool {
	for _, known := range allFields {
		if f == known {
			return true
		}
	}
	return false
}

// Value returns the record's value for f.
func (s *SavedVariableDefinition) Value(f Field) any {
	switch f {
	case FieldName:
		return s.Name
	case FieldShortName:
		return s.ShortName
	case FieldDefinition:
		return s.Definition
	case FieldClassificationReference:
		return s.ClassificationReference
	case FieldUnitTypes:
		return s.UnitTypes
	case FieldSubjectFields:
		return s.SubjectFields
	case FieldContainsSpecialCategories:
		return s.ContainsSpecialCategoriesOfPersonalData
	case FieldVariableStatus:
		return s.VariableStatus
	case FieldMeasurementType:
		return s.MeasurementType
	case FieldValidFrom:
		return s.ValidFrom
	case FieldValidUntil:
		return s.ValidUntil
	case FieldExternalReferenceURI:
		return s.ExternalReferenceURI
	case FieldComment:
		return s.Comment
	case FieldRelatedVariableDefinitionURIs:
		return s.RelatedVariableDefinitionURIs
	case FieldOwner:
		return s.Owner
	case FieldContact:
		return s.Contact
	}
	return nil
}

// SameValue reports whether a and b agree on f. Nil and empty lists are equal.
func SameValue(f Field, a, b *SavedVariableDefinition) bool {
	av, bv := a.Value(f), b.Value(f)
	if as, ok := av.([]string); ok {
		bs, _ := bv.([]string)
		if len(as) == 0 && len(bs) == 0 {
			return true
		}
	}
	return reflect.DeepEqual(av, bv)
}

// AllFields returns every field in declaration order.
func AllFields() []Field {
	return append([]Field(nil), allFields...)
}
