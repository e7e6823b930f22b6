package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	t.Run("parses and formats ISO dates", func(t *testing.T) {
		d, err := ParseDate("2024-06-05")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-05", d.String())
		assert.Equal(t, time.UTC, d.Location())
	})

	t.Run("rejects anything but a calendar date", func(t *testing.T) {
		_, err := ParseDate("2024-06-05T10:00:00Z")
		assert.Error(t, err)
	})

	t.Run("DateOf drops the clock", func(t *testing.T) {
		oslo := time.FixedZone("CEST", 2*60*60)
		d := DateOf(time.Date(2024, 6, 5, 23, 30, 0, 0, oslo))
		assert.True(t, d.Equal(MustParseDate("2024-06-05")))
	})

	t.Run("AddDays crosses month and leap day", func(t *testing.T) {
		assert.Equal(t, "2024-03-01", MustParseDate("2024-02-28").AddDays(2).String())
		assert.Equal(t, "2023-12-31", MustParseDate("2024-01-01").AddDays(-1).String())
	})

	t.Run("JSON uses the plain date string", func(t *testing.T) {
		b, err := json.Marshal(ValidityPeriod{ValidFrom: MustParseDate("2024-01-01")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"validFrom":"2024-01-01","validUntil":null}`, string(b))

		var p ValidityPeriod
		require.NoError(t, json.Unmarshal([]byte(`{"validFrom":"2020-02-02","validUntil":"2021-01-01"}`), &p))
		assert.Equal(t, "2021-01-01", p.ValidUntil.String())

		assert.Error(t, json.Unmarshal([]byte(`{"validFrom":"02.02.2020"}`), &p))
	})
}

func TestVariableStatus(t *testing.T) {
	tests := []struct {
		from, to VariableStatus
		allowed  bool
	}{
		{StatusDraft, StatusDraft, true},
		{StatusDraft, StatusPublishedInternal, true},
		{StatusDraft, StatusPublishedExternal, true},
		{StatusPublishedInternal, StatusPublishedExternal, true},
		{StatusPublishedInternal, StatusDraft, false},
		{StatusPublishedExternal, StatusPublishedInternal, false},
		{StatusPublishedExternal, StatusDraft, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.False(t, VariableStatus("DEPRECATED").IsValid())
	assert.False(t, StatusDraft.IsPublished())
	assert.True(t, StatusPublishedInternal.IsPublished())
}

func TestSavedVariableDefinitionCovers(t *testing.T) {
	closed := &SavedVariableDefinition{
		ValidFrom:  MustParseDate("2020-01-01"),
		ValidUntil: DatePtr(MustParseDate("2020-12-31")),
	}
	assert.True(t, closed.Covers(MustParseDate("2020-01-01")))
	assert.True(t, closed.Covers(MustParseDate("2020-12-31")), "validUntil is inclusive")
	assert.False(t, closed.Covers(MustParseDate("2021-01-01")))
	assert.False(t, closed.Covers(MustParseDate("2019-12-31")))

	open := &SavedVariableDefinition{ValidFrom: MustParseDate("2021-01-01")}
	assert.True(t, open.IsOpen())
	assert.True(t, open.Covers(MustParseDate("2999-01-01")))
}

func TestPatchApplyTo(t *testing.T) {
	base := &SavedVariableDefinition{
		DefinitionID: "aaaa0001",
		ShortName:    "landbak",
		ValidFrom:    MustParseDate("2024-01-01"),
		Content: Content{
			Name:       LanguageStringType{Nb: "Landbakgrunn"},
			Definition: LanguageStringType{Nb: "Gammel"},
			UnitTypes:  []string{"01"},
		},
		VariableStatus: StatusDraft,
	}

	t.Run("writes only set fields", func(t *testing.T) {
		name := LanguageStringType{Nb: "Landbakgrunn", En: "Country background"}
		next := Patch{Name: &name}.ApplyTo(base)

		assert.Equal(t, "Country background", next.Name.En)
		assert.Equal(t, "Gammel", next.Definition.Nb)
		assert.Equal(t, []string{"01"}, next.UnitTypes)
	})

	t.Run("ignores anchor fields", func(t *testing.T) {
		short := "nytt"
		from := MustParseDate("1999-01-01")
		next := Patch{ShortName: &short, ValidFrom: &from}.ApplyTo(base)

		assert.Equal(t, "landbak", next.ShortName)
		assert.Equal(t, "2024-01-01", next.ValidFrom.String())
	})

	t.Run("never aliases the base", func(t *testing.T) {
		units := []string{"02"}
		next := Patch{UnitTypes: units}.ApplyTo(base)
		units[0] = "20"
		next.Name.Nb = "endret"

		assert.Equal(t, []string{"02"}, next.UnitTypes)
		assert.Equal(t, []string{"01"}, base.UnitTypes)
		assert.Equal(t, "Landbakgrunn", base.Name.Nb)
	})

	t.Run("Fields lists what is set", func(t *testing.T) {
		status := StatusPublishedInternal
		until := MustParseDate("2024-12-31")
		p := Patch{VariableStatus: &status, ValidUntil: &until}
		assert.Equal(t, []Field{FieldVariableStatus, FieldValidUntil}, p.Fields())
	})
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields("unitTypes, classificationReference,,")
	require.NoError(t, err)
	assert.Equal(t, []Field{FieldUnitTypes, FieldClassificationReference}, fields)

	_, err = ParseFields("unitTypes,colour")
	assert.ErrorContains(t, err, "colour")
}

func TestSameValue(t *testing.T) {
	a := &SavedVariableDefinition{Content: Content{UnitTypes: nil}}
	b := &SavedVariableDefinition{Content: Content{UnitTypes: []string{}}}
	assert.True(t, SameValue(FieldUnitTypes, a, b))

	b.UnitTypes = []string{"01"}
	assert.False(t, SameValue(FieldUnitTypes, a, b))
}

func TestLanguageStringType(t *testing.T) {
	var l LanguageStringType
	assert.True(t, l.IsEmpty())
	l.Set(LanguageNynorsk, "Sivilstand")
	assert.Equal(t, "Sivilstand", l.Get(LanguageNynorsk))
	assert.Equal(t, "", l.Get(SupportedLanguage("de")))
	assert.False(t, SupportedLanguage("de").IsValid())
}
