package service

import "vardef/internal/definitions/models"

// period is every patch of one validity period, ascending by patch id.
type period []*models.SavedVariableDefinition

func (p period) first() *models.SavedVariableDefinition  { return p[0] }
func (p period) latest() *models.SavedVariableDefinition { return p[len(p)-1] }

func (p period) patch(id int) *models.SavedVariableDefinition {
	for _, r := range p {
		if r.PatchID == id {
			return r
		}
	}
	return nil
}

// history is a definition's periods ascending by valid from.
type history []period

// newHistory groups records that arrive ordered by (validFrom, patchId).
func newHistory(records []*models.SavedVariableDefinition) history {
	var h history
	for _, r := range records {
		if n := len(h); n > 0 && h[n-1].first().ValidFrom.Equal(r.ValidFrom) {
			h[n-1] = append(h[n-1], r)
			continue
		}
		h = append(h, period{r})
	}
	return h
}

func (h history) earliest() period { return h[0] }
func (h history) latest() period   { return h[len(h)-1] }

// current is the latest patch of the latest period.
func (h history) current() *models.SavedVariableDefinition {
	return h.latest().latest()
}

// origin is the very first record written for the definition.
func (h history) origin() *models.SavedVariableDefinition {
	return h.earliest().first()
}

func (h history) startingAt(validFrom models.Date) period {
	for _, p := range h {
		if p.first().ValidFrom.Equal(validFrom) {
			return p
		}
	}
	return nil
}

func (h history) covering(date models.Date) period {
	for _, p := range h {
		if p.latest().Covers(date) {
			return p
		}
	}
	return nil
}

func (h history) records() []*models.SavedVariableDefinition {
	var out []*models.SavedVariableDefinition
	for _, p := range h {
		out = append(out, p...)
	}
	return out
}
