package vardok

import (
	"encoding/xml"
	"strings"
)

// FIMD is one language version of a Vardok concept variable document.
type FIMD struct {
	XMLName         xml.Name  `xml:"FIMD"`
	ID              string    `xml:"id,attr"`
	CreatedOn       string    `xml:"createdOn,attr"`
	LastChangedDate string    `xml:"lastChangedDate,attr"`
	OtherLanguages  string    `xml:"otherLanguages,attr"`
	Common          Common    `xml:"Common"`
	DC              DC        `xml:"DC"`
	Variable        Variable  `xml:"Variable"`
	Relations       Relations `xml:"Relations"`
}

type Common struct {
	Title           string       `xml:"Title"`
	Description     string       `xml:"Description"`
	ContactPerson   string       `xml:"ContactPerson"`
	ContactDivision CodeWithText `xml:"ContactDivision"`
	Notes           string       `xml:"Notes"`
}

type CodeWithText struct {
	CodeValue string `xml:"CodeValue"`
	CodeText  string `xml:"CodeText"`
}

// DC carries the Dublin Core block; Valid holds "From: yyyy-mm-dd - To: [yyyy-mm-dd]".
type DC struct {
	ContentCreator string `xml:"ContentCreator"`
	Creator        string `xml:"Creator"`
	Valid          string `xml:"Valid"`
	Type           string `xml:"Type"`
}

type Variable struct {
	DataElementName  string `xml:"DataElementName"`
	StatisticalUnit  string `xml:"StatisticalUnit"`
	Calculation      string `xml:"Calculation"`
	ExternalDocument string `xml:"ExternalDocument"`
	ExternalSource   string `xml:"ExternalSource"`
}

type Relations struct {
	ClassificationRelation *Link  `xml:"ClassificationRelation"`
	ConceptVariables       []Link `xml:"ConceptVariableRelation"`
}

type Link struct {
	Href string `xml:"href,attr"`
}

// Languages lists the other languages the document advertises, lowercased. The
// separator varies between documents.
func (f *FIMD) Languages() []string {
	fields := strings.FieldsFunc(f.OtherLanguages, func(r rune) bool {
		return r == ';' || r == ',' || r == ' '
	})
	out := make([]string, 0, len(fields))
	for _, l := range fields {
		out = append(out, strings.ToLower(strings.TrimSpace(l)))
	}
	return out
}
