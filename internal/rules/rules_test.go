package rules

import (
	"strings"
	"testing"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"PURCHASE AUTHORIZED ON 03/12 STARBUCKS #12345 SEATTLE WA", "purchase authorized on 03 12 starbucks seattle wa"},
		{"  NETFLIX.COM   ", "netflix com"},
		{"CHECKCARD 0412 TRADER JOE'S #552", "checkcard 0412 trader joe's 552"},
		{"ACH DEPOSIT 9876543210", "ach deposit"}, // long digit runs stripped, short ones kept
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDescription(tt.in))
	}
}

func TestParse_PreservesFileOrder(t *testing.T) {
	// Both categories match "amazon prime video"; the first listed wins.
	cr, err := Parse(strings.NewReader(`{
		"Streaming": ["prime video"],
		"Shopping": ["amazon"]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Streaming", cr.Suggest("AMAZON PRIME VIDEO"))

	cr, err = Parse(strings.NewReader(`{
		"Shopping": ["amazon"],
		"Streaming": ["prime video"]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Shopping", cr.Suggest("AMAZON PRIME VIDEO"))
}

func TestSuggest_SubstringAndRegex(t *testing.T) {
	cr, err := New([]Rule{
		{Category: "Coffee", Patterns: []string{"starbucks"}},
		{Category: "Transfers", Patterns: []string{`re:^zelle (to|from) `}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Coffee", cr.Suggest("STARBUCKS STORE 0412"))
	assert.Equal(t, "Transfers", cr.Suggest("Zelle to John Doe"))
	assert.Equal(t, "", cr.Suggest("SHELL OIL"))
}

func TestSuggest_SubstringIsLiteral(t *testing.T) {
	// Dots in plain patterns must not act as regex wildcards.
	cr, err := New([]Rule{{Category: "Streaming", Patterns: []string{"netflix.com"}}})
	require.NoError(t, err)

	assert.Equal(t, "", cr.Suggest("NETFLIXXCOM"))
}

func TestNew_RejectsBadRegex(t *testing.T) {
	_, err := New([]Rule{{Category: "Bad", Patterns: []string{"re:["}}})
	assert.Error(t, err)
}

func TestParse_RejectsMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader(`["not", "an", "object"]`))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(`{"Coffee": "starbucks"}`))
	assert.Error(t, err)
}

func TestApply_RespectsOverridesAndExistingCategories(t *testing.T) {
	cr, err := New([]Rule{{Category: "Coffee", Patterns: []string{"starbucks"}}})
	require.NoError(t, err)

	txns := []model.Transaction{
		{ID: "a", Description: "starbucks seattle", Category: model.CategoryUncategorized},
		{ID: "b", Description: "starbucks reserve", Category: "Treats", UserOverride: true},
		{ID: "c", Description: "starbucks downtown", Category: "Dining"},
		{ID: "d", Description: "shell oil", Category: model.CategoryUncategorized},
	}

	cr.Apply(txns, false)
	assert.Equal(t, "Coffee", txns[0].Category)
	assert.Equal(t, "Treats", txns[1].Category) // manual edit kept
	assert.Equal(t, "Dining", txns[2].Category) // existing category kept
	assert.Equal(t, model.CategoryUncategorized, txns[3].Category)

	cr.Apply(txns, true)
	assert.Equal(t, "Coffee", txns[1].Category)
	assert.Equal(t, "Coffee", txns[2].Category)
}
