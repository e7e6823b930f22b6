// Package validation holds the rules a candidate definition record must satisfy before
// it is persisted.
//
// Every rule is a pure function of the candidate and the current state returning a
// Result. Rules are a closed set of kinds registered per operation and field, and a
// Registry runs them in registration order, stopping at the first failure.
package validation

import (
	"regexp"
	"slices"

	"vardef/internal/definitions/models"
	dErrors "vardef/pkg/domain-errors"
)

// Operation is the kind of write being validated.
type Operation string

const (
	OpCreate         Operation = "create"
	OpPatch          Operation = "patch"
	OpValidityPeriod Operation = "validity_period"
)

// Kind tags a rule variant.
type Kind string

const (
	KindRequiredText         Kind = "required_text"
	KindShortNameFormat      Kind = "short_name_format"
	KindStatusValue          Kind = "status_value"
	KindDateOrder            Kind = "date_order"
	KindCodeMembership       Kind = "code_membership"
	KindDisallowedPatchField Kind = "disallowed_patch_field"
	KindPublishedImmutable   Kind = "published_immutable"
	KindStatusTransition     Kind = "status_transition"
	KindClosedPeriod         Kind = "closed_period"
)

// Classification ids for coded fields.
const (
	ClassificationUnitTypes       = "702"
	ClassificationSubjectFields   = "618"
	ClassificationMeasurementType = "303"
)

// Candidate is the record a write would produce together with the fields the caller
// touched. For creates every populated field counts as touched.
type Candidate struct {
	Record  *models.SavedVariableDefinition
	Changed []models.Field
}

func (c Candidate) touched(f models.Field) bool {
	return slices.Contains(c.Changed, f)
}

// State is what is persisted right now. Current is nil for creates.
type State struct {
	Current *models.SavedVariableDefinition
}

// Result is the typed outcome of one rule.
type Result struct {
	Kind  Kind
	Field models.Field
	Err   error
}

func (r Result) OK() bool { return r.Err == nil }

func pass(kind Kind, field models.Field) Result {
	return Result{Kind: kind, Field: field}
}

func fail(kind Kind, field models.Field, err error) Result {
	return Result{Kind: kind, Field: field, Err: err}
}

// Rule is one registered check.
type Rule struct {
	Kind  Kind
	Field models.Field
	Check func(Candidate, State) Result
}

// CodeValidator answers classification membership questions.
type CodeValidator interface {
	Validate(classificationID, code string) bool
}

var shortNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// RequiredText fails when field carries no text in any language.
func RequiredText(field models.Field) Rule {
	return Rule{Kind: KindRequiredText, Field: field, Check: func(c Candidate, _ State) Result {
		text, _ := c.Record.Value(field).(models.LanguageStringType)
		if text.IsEmpty() {
			return fail(KindRequiredText, field, dErrors.Wrap(models.ErrMissingText, dErrors.CodeValidation, string(field)+" is required"))
		}
		return pass(KindRequiredText, field)
	}}
}

// ShortNameFormat checks the anchor short name pattern.
func ShortNameFormat() Rule {
	return Rule{Kind: KindShortNameFormat, Field: models.FieldShortName, Check: func(c Candidate, _ State) Result {
		if !shortNamePattern.MatchString(c.Record.ShortName) {
			return fail(KindShortNameFormat, models.FieldShortName, dErrors.Wrap(models.ErrInvalidShortName, dErrors.CodeValidation, "invalid short name"))
		}
		return pass(KindShortNameFormat, models.FieldShortName)
	}}
}

// StatusValue rejects unknown statuses.
func StatusValue() Rule {
	return Rule{Kind: KindStatusValue, Field: models.FieldVariableStatus, Check: func(c Candidate, _ State) Result {
		if !c.Record.VariableStatus.IsValid() {
			return fail(KindStatusValue, models.FieldVariableStatus, dErrors.Wrap(models.ErrInvalidStatus, dErrors.CodeValidation, "invalid variable status"))
		}
		return pass(KindStatusValue, models.FieldVariableStatus)
	}}
}

// DateOrder requires ValidUntil, when set, not to precede ValidFrom.
func DateOrder() Rule {
	return Rule{Kind: KindDateOrder, Field: models.FieldValidUntil, Check: func(c Candidate, _ State) Result {
		r := c.Record
		if r.ValidUntil != nil && r.ValidUntil.Before(r.ValidFrom) {
			return fail(KindDateOrder, models.FieldValidUntil, dErrors.Wrap(models.ErrInvalidValidDate, dErrors.CodeValidation, "valid until is before valid from"))
		}
		return pass(KindDateOrder, models.FieldValidUntil)
	}}
}

// CodeMembership requires every code of a touched coded field to be in its classification.
func CodeMembership(field models.Field, classificationID string, codes CodeValidator) Rule {
	return Rule{Kind: KindCodeMembership, Field: field, Check: func(c Candidate, _ State) Result {
		if !c.touched(field) {
			return pass(KindCodeMembership, field)
		}
		for _, code := range codesOf(c.Record.Value(field)) {
			if !codes.Validate(classificationID, code) {
				return fail(KindCodeMembership, field, dErrors.Wrap(models.ErrCodeNotInClassification, dErrors.CodeValidation,
					"code "+code+" is not valid for "+string(field)+" (classification "+classificationID+")"))
			}
		}
		return pass(KindCodeMembership, field)
	}}
}

func codesOf(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	}
	return nil
}

// DisallowedPatchField rejects any patch carrying field, whatever its value.
func DisallowedPatchField(field models.Field, err error) Rule {
	return Rule{Kind: KindDisallowedPatchField, Field: field, Check: func(c Candidate, _ State) Result {
		if c.touched(field) {
			return fail(KindDisallowedPatchField, field, dErrors.Wrap(err, dErrors.CodeBadRequest, string(field)+" may not be patched"))
		}
		return pass(KindDisallowedPatchField, field)
	}}
}

// PublishedImmutable rejects value changes to field once the current record is published.
func PublishedImmutable(field models.Field) Rule {
	return Rule{Kind: KindPublishedImmutable, Field: field, Check: func(c Candidate, s State) Result {
		if s.Current == nil || !s.Current.VariableStatus.IsPublished() || !c.touched(field) {
			return pass(KindPublishedImmutable, field)
		}
		if models.SameValue(field, s.Current, c.Record) {
			return pass(KindPublishedImmutable, field)
		}
		return fail(KindPublishedImmutable, field, dErrors.Wrap(models.ErrPublishedVariableAccess, dErrors.CodeConflict,
			string(field)+" cannot be changed on a published variable definition"))
	}}
}

// StatusTransition rejects moving the status backwards.
func StatusTransition() Rule {
	return Rule{Kind: KindStatusTransition, Field: models.FieldVariableStatus, Check: func(c Candidate, s State) Result {
		if s.Current == nil || s.Current.VariableStatus.CanTransitionTo(c.Record.VariableStatus) {
			return pass(KindStatusTransition, models.FieldVariableStatus)
		}
		return fail(KindStatusTransition, models.FieldVariableStatus, dErrors.Wrap(models.ErrInvalidStatusTransition, dErrors.CodeConflict,
			"variable status cannot change from "+string(s.Current.VariableStatus)+" to "+string(c.Record.VariableStatus)))
	}}
}

// ClosedPeriod rejects setting validUntil on a period that already has one.
func ClosedPeriod() Rule {
	return Rule{Kind: KindClosedPeriod, Field: models.FieldValidUntil, Check: func(c Candidate, s State) Result {
		if s.Current == nil || s.Current.IsOpen() || !c.touched(models.FieldValidUntil) {
			return pass(KindClosedPeriod, models.FieldValidUntil)
		}
		return fail(KindClosedPeriod, models.FieldValidUntil, dErrors.Wrap(models.ErrClosedValidityPeriod, dErrors.CodeConflict,
			"validity period from "+s.Current.ValidFrom.String()+" is already closed"))
	}}
}
