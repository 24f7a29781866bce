package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIdentifier_Email(t *testing.T) {
	ident := ClassifyIdentifier("  Someone@Example.com ")
	assert.Equal(t, IdentifierEmail, ident.Kind)
	assert.Equal(t, "Someone@Example.com", ident.Canonical)
	assert.Nil(t, ident.AlternatePhoneFormats())
}

func TestClassifyIdentifier_Phone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare ten digits", "5551234567", "+15551234567"},
		{"dashed", "555-123-4567", "+15551234567"},
		{"parenthesized", "(555) 123-4567", "+15551234567"},
		{"dotted", "555.123.4567", "+15551234567"},
		{"with country code", "15551234567", "+15551234567"},
		{"e164 input", "+15551234567", "+15551234567"},
		{"country code dashed", "1-555-123-4567", "+15551234567"},
		{"short number", "12345", "+112345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident := ClassifyIdentifier(tt.input)
			assert.Equal(t, IdentifierPhone, ident.Kind)
			assert.Equal(t, tt.want, ident.Canonical)
		})
	}
}

func TestClassifyIdentifier_SamePhoneAllPunctuations(t *testing.T) {
	// Every common rendering of one number canonicalizes identically.
	inputs := []string{
		"5551234567", "555-123-4567", "(555)123-4567", "(555) 123 4567",
		"555 123 4567", "+1 (555) 123-4567", "1 555 123 4567", "+15551234567",
	}
	for _, in := range inputs {
		assert.Equal(t, "+15551234567", ClassifyIdentifier(in).Canonical, "input %q", in)
	}
}

func TestAlternatePhoneFormats(t *testing.T) {
	ident := ClassifyIdentifier("(555) 123-4567")
	assert.Equal(t, []string{"+5551234567", "+15551234567", "5551234567"}, ident.AlternatePhoneFormats())
}
