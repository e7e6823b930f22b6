package service

import (
	"time"

	"vardef/internal/definitions/models"
	"vardef/internal/definitions/validation"
	klassmodels "vardef/internal/klass/models"
	dErrors "vardef/pkg/domain-errors"
)

// Render produces a single-language view with coded fields resolved through the
// classification cache. A code without a title in language falls back to its bokmål
// title; codes the cache cannot resolve at all are rendered with the bare code.
func (s *Service) Render(r *models.SavedVariableDefinition, language models.SupportedLanguage) (*models.RenderedVariableDefinition, error) {
	if !language.IsValid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unsupported language "+string(language))
	}
	out := &models.RenderedVariableDefinition{
		ID:                                      r.DefinitionID,
		PatchID:                                 r.PatchID,
		Name:                                    r.Name.Get(language),
		ShortName:                               r.ShortName,
		Definition:                              r.Definition.Get(language),
		ContainsSpecialCategoriesOfPersonalData: r.ContainsSpecialCategoriesOfPersonalData,
		ValidFrom:                               r.ValidFrom,
		ValidUntil:                              r.ValidUntil,
		ExternalReferenceURI:                    r.ExternalReferenceURI,
		Comment:                                 r.Comment.Get(language),
		RelatedVariableDefinitionURIs:           r.RelatedVariableDefinitionURIs,
		ContactTitle:                            r.Contact.Title.Get(language),
		ContactEmail:                            r.Contact.Email,
		LastUpdatedAt:                           r.LastUpdatedAt.Format(time.RFC3339),
	}
	if r.ClassificationReference != "" {
		out.ClassificationURI = s.codes.ClassificationURI(r.ClassificationReference)
	}
	lang := string(language)
	for _, code := range r.UnitTypes {
		out.UnitTypes = append(out.UnitTypes, s.lookup(validation.ClassificationUnitTypes, code, lang))
	}
	for _, code := range r.SubjectFields {
		out.SubjectFields = append(out.SubjectFields, s.lookup(validation.ClassificationSubjectFields, code, lang))
	}
	if r.MeasurementType != "" {
		out.MeasurementType = s.lookup(validation.ClassificationMeasurementType, r.MeasurementType, lang)
	}
	return out, nil
}

func (s *Service) lookup(classificationID, code, language string) *klassmodels.ReferenceItem {
	if item := s.codes.Lookup(classificationID, code, language); item != nil {
		return item
	}
	if bokmal := string(models.LanguageBokmal); language != bokmal {
		if item := s.codes.Lookup(classificationID, code, bokmal); item != nil {
			return item
		}
	}
	return &klassmodels.ReferenceItem{Code: code}
}
