package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
	PasswordMinLen = 6
	PasswordMaxLen = 100
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9._-]{3,50}$`)

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsSizeInRange reports whether s has between min and max characters.
func IsSizeInRange(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// IsValidUsername: 3–50 characters from [A-Za-z0-9._-], surrounding
// whitespace ignored.
func IsValidUsername(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && usernameRe.MatchString(s)
}

// IsValidPassword: 6–100 ASCII letters and digits with at least one of each.
func IsValidPassword(s string) bool {
	s = strings.TrimSpace(s)
	if IsBlank(s) || !IsSizeInRange(s, PasswordMinLen, PasswordMaxLen) {
		return false
	}

	var letter, digit bool
	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		default:
			return false
		}
	}
	return letter && digit
}
