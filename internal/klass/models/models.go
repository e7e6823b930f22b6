package models

import "time"

// CodeItem is one code of a classification in one language.
type CodeItem struct {
	Code       string     `json:"code"`
	ParentCode string     `json:"parentCode,omitempty"`
	Level      string     `json:"level,omitempty"`
	Name       string     `json:"name"`
	ShortName  string     `json:"shortName,omitempty"`
	ValidFrom  *time.Time `json:"validFrom,omitempty"`
	ValidTo    *time.Time `json:"validTo,omitempty"`
}

// ReferenceItem is what renderers show for a code.
type ReferenceItem struct {
	ReferenceURI string `json:"referenceUri"`
	Code         string `json:"code"`
	Title        string `json:"title"`
}

// Classification holds every code of one classification, keyed by language then code.
type Classification struct {
	ID          string                         `json:"id"`
	Codes       map[string]map[string]CodeItem `json:"codes"`
	RefreshedAt time.Time                      `json:"refreshedAt"`
}

// Has reports whether code exists in any language.
func (c *Classification) Has(code string) bool {
	for _, byCode := range c.Codes {
		if _, ok := byCode[code]; ok {
			return true
		}
	}
	return false
}

// Size is the number of distinct codes across languages.
func (c *Classification) Size() int {
	seen := make(map[string]struct{})
	for _, byCode := range c.Codes {
		for code := range byCode {
			seen[code] = struct{}{}
		}
	}
	return len(seen)
}

// State is the lifecycle of one classification in the cache.
type State string

const (
	StateEmpty     State = "EMPTY"
	StatePopulated State = "POPULATED"
	StateStale     State = "POPULATED_STALE"
)
