package domain

import "strings"

// IdentifierKind discriminates email and phone identifiers.
type IdentifierKind string

const (
	IdentifierEmail IdentifierKind = "email"
	IdentifierPhone IdentifierKind = "phone"
)

// Identifier is the tagged, canonical form of a user-supplied email or phone
// string. It is produced exactly once at the API boundary and carried through
// every downstream call, so nothing re-tests the raw string.
type Identifier struct {
	Kind      IdentifierKind
	Canonical string
	// RawDigits keeps the digits-only form of the original input. The
	// legacy phone lookup derives its alternate formats from this, not from
	// the canonical value.
	RawDigits string
}

// ClassifyIdentifier canonicalizes raw input and classifies it. Presence of
// '@' means email (kept unchanged); everything else is treated as a phone
// number and coerced to a '+'-prefixed string, defaulting to the North
// American country code when none is detectable. Pure, never fails:
// malformed input simply produces a canonical string that matches nothing.
func ClassifyIdentifier(raw string) Identifier {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "@") {
		return Identifier{Kind: IdentifierEmail, Canonical: raw}
	}

	digits := stripNonDigits(raw)
	var canonical string
	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		canonical = "+" + digits
	default:
		canonical = "+1" + digits
	}
	return Identifier{Kind: IdentifierPhone, Canonical: canonical, RawDigits: digits}
}

// AlternatePhoneFormats lists the legacy representations a stored phone
// number may use when the canonical lookup misses: records written before
// the current canonicalization convention. Order matters, the first match
// wins.
func (i Identifier) AlternatePhoneFormats() []string {
	if i.Kind != IdentifierPhone {
		return nil
	}
	return []string{
		"+" + i.RawDigits,
		"+1" + i.RawDigits,
		i.RawDigits,
	}
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
