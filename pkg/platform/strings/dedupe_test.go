package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: []string{}},
		{name: "keeps first-seen order", input: []string{"131", "130", "131"}, expected: []string{"131", "130"}},
		{name: "trims before comparing", input: []string{" 130", "130 ", "\t130"}, expected: []string{"130"}},
		{name: "drops blanks", input: []string{"", "  ", "702"}, expected: []string{"702"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("   "))
	assert.Equal(t, []string{"702", "618"}, SplitList("702, 618,,702"))
	assert.Equal(t, []string{"localhost:9092"}, SplitList("localhost:9092"))
}
