package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// SupportedLanguage is a language a definition carries text in.
type SupportedLanguage string

const (
	LanguageBokmal  SupportedLanguage = "nb"
	LanguageNynorsk SupportedLanguage = "nn"
	LanguageEnglish SupportedLanguage = "en"
)

// SupportedLanguages in rendering preference order.
var SupportedLanguages = []SupportedLanguage{LanguageBokmal, LanguageNynorsk, LanguageEnglish}

func (l SupportedLanguage) IsValid() bool {
	return slices.Contains(SupportedLanguages, l)
}

// LanguageStringType holds one text per supported language. An empty string means the
// language is absent.
type LanguageStringType struct {
	Nb string `json:"nb,omitempty"`
	Nn string `json:"nn,omitempty"`
	En string `json:"en,omitempty"`
}

func (l LanguageStringType) Get(lang SupportedLanguage) string {
	switch lang {
	case LanguageBokmal:
		return l.Nb
	case LanguageNynorsk:
		return l.Nn
	case LanguageEnglish:
		return l.En
	}
	return ""
}

func (l *LanguageStringType) Set(lang SupportedLanguage, text string) {
	switch lang {
	case LanguageBokmal:
		l.Nb = text
	case LanguageNynorsk:
		l.Nn = text
	case LanguageEnglish:
		l.En = text
	}
}

func (l LanguageStringType) IsEmpty() bool {
	return l.Nb == "" && l.Nn == "" && l.En == ""
}

// VariableStatus is the publication state of a definition.
type VariableStatus string

const (
	StatusDraft             VariableStatus = "DRAFT"
	StatusPublishedInternal VariableStatus = "PUBLISHED_INTERNAL"
	StatusPublishedExternal VariableStatus = "PUBLISHED_EXTERNAL"
)

func (s VariableStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublishedInternal, StatusPublishedExternal:
		return true
	}
	return false
}

func (s VariableStatus) IsPublished() bool {
	return s == StatusPublishedInternal || s == StatusPublishedExternal
}

// CanTransitionTo allows DRAFT → PUBLISHED_INTERNAL → PUBLISHED_EXTERNAL (skipping
// allowed) and never backwards.
func (s VariableStatus) CanTransitionTo(next VariableStatus) bool {
	return statusRank(next) >= statusRank(s)
}

func statusRank(s VariableStatus) int {
	switch s {
	case StatusPublishedInternal:
		return 1
	case StatusPublishedExternal:
		return 2
	}
	return 0
}

// Owner is the team responsible for a definition and the groups allowed to edit it.
type Owner struct {
	Team   string   `json:"team"`
	Groups []string `json:"groups"`
}

// Contact names who answers questions about a definition.
type Contact struct {
	Title LanguageStringType `json:"title"`
	Email string             `json:"email,omitempty"`
}

// Content is the patchable part of a definition: everything except the anchor fields,
// the period bounds and the audit stamps.
type Content struct {
	Name                                    LanguageStringType `json:"name"`
	Definition                              LanguageStringType `json:"definition"`
	ClassificationReference                 string             `json:"classificationReference,omitempty"`
	UnitTypes                               []string           `json:"unitTypes"`
	SubjectFields                           []string           `json:"subjectFields"`
	ContainsSpecialCategoriesOfPersonalData bool               `json:"containsSpecialCategoriesOfPersonalData"`
	MeasurementType                         string             `json:"measurementType,omitempty"`
	ExternalReferenceURI                    string             `json:"externalReferenceUri,omitempty"`
	Comment                                 LanguageStringType `json:"comment"`
	RelatedVariableDefinitionURIs           []string           `json:"relatedVariableDefinitionUris"`
	Contact                                 Contact            `json:"contact"`
}

func (c Content) clone() Content {
	out := c
	out.UnitTypes = slices.Clone(c.UnitTypes)
	out.SubjectFields = slices.Clone(c.SubjectFields)
	out.RelatedVariableDefinitionURIs = slices.Clone(c.RelatedVariableDefinitionURIs)
	return out
}

// SavedVariableDefinition is one persisted patch of one validity period.
//
// Invariants:
//   - (DefinitionID, ValidFrom, PatchID) is unique; PatchID starts at 1 per period
//   - records are never updated in place, every edit is a new record
//   - CreatedAt/CreatedBy are identical for all patches of a period
type SavedVariableDefinition struct {
	ID             uuid.UUID      `json:"-"`
	DefinitionID   string         `json:"id"`
	PatchID        int            `json:"patchId"`
	ShortName      string         `json:"shortName"`
	ValidFrom      Date           `json:"validFrom"`
	ValidUntil     *Date          `json:"validUntil"`
	VariableStatus VariableStatus `json:"variableStatus"`
	Owner          Owner          `json:"owner"`
	Content
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Clone deep-copies the record so callers can derive the next patch without aliasing.
func (s *SavedVariableDefinition) Clone() *SavedVariableDefinition {
	out := *s
	out.Content = s.Content.clone()
	out.Owner.Groups = slices.Clone(s.Owner.Groups)
	if s.ValidUntil != nil {
		out.ValidUntil = DatePtr(*s.ValidUntil)
	}
	return &out
}

// IsOpen reports whether the record's period has no end.
func (s *SavedVariableDefinition) IsOpen() bool {
	return s.ValidUntil == nil
}

// Covers reports whether date falls within the record's period.
func (s *SavedVariableDefinition) Covers(date Date) bool {
	if date.Before(s.ValidFrom) {
		return false
	}
	return s.ValidUntil == nil || !date.After(*s.ValidUntil)
}

// Period returns the record's validity bounds.
func (s *SavedVariableDefinition) Period() ValidityPeriod {
	return ValidityPeriod{ValidFrom: s.ValidFrom, ValidUntil: s.ValidUntil}
}

// ValidityPeriod is a [ValidFrom, ValidUntil] range; nil ValidUntil is open-ended.
type ValidityPeriod struct {
	ValidFrom  Date  `json:"validFrom"`
	ValidUntil *Date `json:"validUntil"`
}
