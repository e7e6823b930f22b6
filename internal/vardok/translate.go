package vardok

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"vardef/internal/definitions/models"
)

// PrimaryLanguage is fetched first; it must carry title and description.
const PrimaryLanguage = "nb"

const documentURLFormat = "https://www.ssb.no/a/metadata/conceptvariable/vardok/%s/nb"

var (
	ErrMissingTitle       = errors.New("vardok document has no norwegian title")
	ErrMissingDescription = errors.New("vardok document has no norwegian description")
	ErrInvalidValidity    = errors.New("vardok validity could not be parsed")
	ErrUnknownUnitType    = errors.New("vardok statistical unit has no unit type code")
)

var (
	validPattern     = regexp.MustCompile(`From:\s*(\d{4}-\d{2}-\d{2})\s*-\s*To:\s*(\d{4}-\d{2}-\d{2})?`)
	shortNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// Statistical unit names mapped to classification 702 codes.
var unitTypeCodes = map[string]string{
	"adresse":                       "01",
	"arbeidsulykke":                 "02",
	"bedrift":                       "03",
	"bolig":                         "04",
	"bygning":                       "05",
	"eiendom":                       "06",
	"enhet i offentlig forvaltning": "07",
	"foretak":                       "08",
	"familie":                       "09",
	"husholdning":                   "10",
	"jordbruksbedrift":              "11",
	"kjøretøy":                      "12",
	"kommune":                       "13",
	"kurs":                          "14",
	"skip":                          "16",
	"statlig virksomhet":            "17",
	"stilling":                      "18",
	"transaksjon":                   "19",
	"person":                        "20",
	"verdipapir":                    "21",
	"vare/tjeneste":                 "22",
	"virksomhet":                    "23",
}

// Translate maps a Vardok document set into a draft. docs is keyed by language and
// must contain PrimaryLanguage. The function does no I/O.
func Translate(id string, docs map[string]*FIMD) (*models.Draft, error) {
	primary, ok := docs[PrimaryLanguage]
	if !ok || primary == nil {
		return nil, fmt.Errorf("vardok %s: %w", id, ErrMissingTitle)
	}
	if strings.TrimSpace(primary.Common.Title) == "" {
		return nil, fmt.Errorf("vardok %s: %w", id, ErrMissingTitle)
	}
	if strings.TrimSpace(primary.Common.Description) == "" {
		return nil, fmt.Errorf("vardok %s: %w", id, ErrMissingDescription)
	}

	validFrom, validUntil, err := ParseValidity(primary.DC.Valid)
	if err != nil {
		return nil, fmt.Errorf("vardok %s: %w", id, err)
	}
	unitType, err := UnitTypeCode(primary.Variable.StatisticalUnit)
	if err != nil {
		return nil, fmt.Errorf("vardok %s: %w", id, err)
	}

	draft := &models.Draft{
		ShortName:  ShortName(id, primary.Variable.DataElementName),
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
	}
	draft.UnitTypes = []string{unitType}
	draft.ClassificationReference = classificationID(primary.Relations.ClassificationRelation)
	draft.ExternalReferenceURI = fmt.Sprintf(documentURLFormat, id)
	draft.Contact.Email = contactEmail(primary.Common.ContactPerson)

	for _, lang := range models.SupportedLanguages {
		doc, ok := docs[string(lang)]
		if !ok || doc == nil {
			continue
		}
		draft.Name.Set(lang, strings.TrimSpace(doc.Common.Title))
		draft.Definition.Set(lang, strings.TrimSpace(doc.Common.Description))
		draft.Comment.Set(lang, comment(doc))
		draft.Contact.Title.Set(lang, strings.TrimSpace(doc.Common.ContactDivision.CodeText))
	}
	return draft, nil
}

// ShortName lowercases the data element name and falls back to generert_<id> when the
// result is not a valid short name.
func ShortName(id, dataElementName string) string {
	candidate := strings.ToLower(strings.TrimSpace(dataElementName))
	if shortNamePattern.MatchString(candidate) {
		return candidate
	}
	return "generert_" + strings.ToLower(id)
}

// ParseValidity reads "From: 2003-01-01 - To: 2010-12-31"; an empty To is open-ended.
func ParseValidity(s string) (models.Date, *models.Date, error) {
	m := validPattern.FindStringSubmatch(s)
	if m == nil {
		return models.Date{}, nil, fmt.Errorf("%w: %q", ErrInvalidValidity, s)
	}
	from, err := models.ParseDate(m[1])
	if err != nil {
		return models.Date{}, nil, fmt.Errorf("%w: %v", ErrInvalidValidity, err)
	}
	if m[2] == "" {
		return from, nil, nil
	}
	until, err := models.ParseDate(m[2])
	if err != nil {
		return models.Date{}, nil, fmt.Errorf("%w: %v", ErrInvalidValidity, err)
	}
	return from, &until, nil
}

func UnitTypeCode(statisticalUnit string) (string, error) {
	code, ok := unitTypeCodes[strings.ToLower(strings.TrimSpace(statisticalUnit))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnitType, statisticalUnit)
	}
	return code, nil
}

func classificationID(rel *Link) string {
	if rel == nil || rel.Href == "" {
		return ""
	}
	return path.Base(strings.TrimRight(rel.Href, "/"))
}

func contactEmail(person string) string {
	person = strings.TrimSpace(person)
	if strings.Contains(person, "@") {
		return person
	}
	return ""
}

func comment(doc *FIMD) string {
	parts := make([]string, 0, 2)
	if notes := strings.TrimSpace(doc.Common.Notes); notes != "" {
		parts = append(parts, notes)
	}
	if calc := strings.TrimSpace(doc.Variable.Calculation); calc != "" {
		parts = append(parts, calc)
	}
	return strings.Join(parts, "\n")
}
