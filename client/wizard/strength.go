package wizard

import (
	"regexp"
	"unicode/utf16"
)

// Strength is the password strength shown to the user while typing.
type Strength string

const (
	// StrengthNone is only reported before the password is first edited.
	StrengthNone       Strength = "none"
	StrengthWeak       Strength = "weak"
	StrengthModerate   Strength = "moderate"
	StrengthStrong     Strength = "strong"
	StrengthVeryStrong Strength = "very-strong"
)

var (
	upperRe       = regexp.MustCompile(`[A-Z]`)
	digitRe       = regexp.MustCompile(`[0-9]`)
	nonAlnumRe    = regexp.MustCompile(`[^A-Za-z0-9]`)
	specialRe     = regexp.MustCompile(`[!@#$%^&*]`)
	passwordSetRe = regexp.MustCompile(`^[A-Za-z0-9!@#$%^&*]{8,}$`)
)

// ScorePassword gives one point each for length >= 8, an uppercase letter,
// a digit and any non-alphanumeric character. Length is counted in UTF-16
// code units, so a character outside the BMP counts twice.
//
// The score is independent of AcceptPassword: "Abcdefg~1" is very strong
// here yet not accepted, and "abcdefg1!" is accepted but only strong.
func ScorePassword(pw string) Strength {
	points := 0
	if len(utf16.Encode([]rune(pw))) >= 8 {
		points++
	}
	if upperRe.MatchString(pw) {
		points++
	}
	if digitRe.MatchString(pw) {
		points++
	}
	if nonAlnumRe.MatchString(pw) {
		points++
	}

	switch points {
	case 0, 1:
		return StrengthWeak
	case 2:
		return StrengthModerate
	case 3:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}

// AcceptPassword reports whether pw is at least 8 characters drawn from
// letters, digits and !@#$%^&*, with at least one digit and one of those
// symbols.
func AcceptPassword(pw string) bool {
	return passwordSetRe.MatchString(pw) && digitRe.MatchString(pw) && specialRe.MatchString(pw)
}
