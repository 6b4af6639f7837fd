package types

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Field length limits, counted in runes.
const (
	MaxIDLength          = 10
	MaxPersonNameLength  = 10
	PhoneLength          = 10
	MaxAddressLength     = 30
	MaxTaskNameLength    = 20
	MaxDescriptionLength = 50
)

// InjectionChars lists the characters rejected in every validated string field.
const InjectionChars = `<>"'%;()&+`

// Blacklist holds the substrings rejected in description fields. Matching is
// exact and case-sensitive.
var Blacklist = []string{
	"DROP TABLE",
	"DELETE FROM",
	"UPDATE",
	"INSERT",
	"<script>",
	"alert(",
	"SELECT *",
}

// ValidateRequired rejects an empty value or one longer than maxLength.
func ValidateRequired(field, value string, maxLength int) error {
	if value == "" {
		return invalidField(field, ReasonEmpty, "must not be empty")
	}
	if n := utf8.RuneCountInString(value); n > maxLength {
		return invalidField(field, ReasonTooLong, "%d characters exceeds limit of %d", n, maxLength)
	}
	return nil
}

// ValidateExactLength rejects an empty value or one whose length is not
// exactly length.
func ValidateExactLength(field, value string, length int) error {
	if value == "" {
		return invalidField(field, ReasonEmpty, "must not be empty")
	}
	if n := utf8.RuneCountInString(value); n != length {
		return invalidField(field, ReasonWrongLength, "%d characters, want exactly %d", n, length)
	}
	return nil
}

// ValidateNoInjection rejects a value containing any of InjectionChars.
func ValidateNoInjection(field, value string) error {
	if i := strings.IndexAny(value, InjectionChars); i >= 0 {
		r, _ := utf8.DecodeRuneInString(value[i:])
		return invalidField(field, ReasonIllegalCharacter, "contains %q", r)
	}
	return nil
}

// ValidateNoBlacklist rejects a value containing any Blacklist entry.
func ValidateNoBlacklist(field, value string) error {
	for _, bad := range Blacklist {
		if strings.Contains(value, bad) {
			return invalidField(field, ReasonBlacklistedSubstring, "contains %q", bad)
		}
	}
	return nil
}

// ValidateNotPast rejects the zero time and any time strictly before now.
func ValidateNotPast(field string, t, now time.Time) error {
	if t.IsZero() {
		return invalidField(field, ReasonMissing, "must be set")
	}
	if t.Before(now) {
		return invalidField(field, ReasonInThePast, "%s is before %s", t.Format(time.RFC3339), now.Format(time.RFC3339))
	}
	return nil
}

// validateText runs the required-length and injection checks shared by
// every string field.
func validateText(field, value string, maxLength int) error {
	if err := ValidateRequired(field, value, maxLength); err != nil {
		return err
	}
	return ValidateNoInjection(field, value)
}

// validateDescription adds the blacklist check to validateText.
func validateDescription(field, value string) error {
	if err := validateText(field, value, MaxDescriptionLength); err != nil {
		return err
	}
	return ValidateNoBlacklist(field, value)
}
