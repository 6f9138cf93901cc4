package validator

import (
	"unicode/utf8"

	"github.com/dmitrymomot/beast/pkg/form"
)

// Password strength tiers.
const (
	PasswordWeak   = "weak"
	PasswordMedium = "medium"
	PasswordStrong = "strong"
)

type passwordPolicy struct {
	minLen     int
	letter     bool
	lowercase  bool
	uppercase  bool
	digit      bool
	specialChr bool
}

var passwordPolicies = map[string]passwordPolicy{
	PasswordWeak:   {minLen: 6},
	PasswordMedium: {minLen: 8, letter: true, digit: true},
	PasswordStrong: {minLen: 10, lowercase: true, uppercase: true, digit: true, specialChr: true},
}

// PasswordStrength checks a non-empty value against a tier policy. Unknown
// tiers use the medium policy.
type PasswordStrength struct {
	Tier string
}

func (PasswordStrength) Kind() Kind { return KindPasswordStrength }
func (PasswordStrength) rule()      {}

func (r PasswordStrength) check(field form.Field) outcome {
	if field.Value == "" {
		return pass()
	}
	policy, ok := passwordPolicies[r.Tier]
	if !ok {
		policy = passwordPolicies[PasswordMedium]
	}
	if policy.satisfied(field.Value) {
		return pass()
	}

	key := MsgPasswordPrefix + r.Tier
	fallback, known := fallbacks[key]
	if !known {
		fallback = "Password is not " + r.Tier + " enough"
	}
	return fail(newMessage(key, fallback))
}

func (p passwordPolicy) satisfied(value string) bool {
	if utf8.RuneCountInString(value) < p.minLen {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	switch {
	case p.letter && !hasLower && !hasUpper:
		return false
	case p.lowercase && !hasLower:
		return false
	case p.uppercase && !hasUpper:
		return false
	case p.digit && !hasDigit:
		return false
	case p.specialChr && !hasSpecial:
		return false
	}
	return true
}
