// Package otp generates and checks the one-time passwords gating the
// final transfer confirmation.
package otp

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// Length is the number of digits in every generated code.
const Length = 6

var bareCode = regexp.MustCompile(`^[0-9]{6}$`)

// Generate returns a uniformly random 6-digit code in [100000, 999999].
// A leading zero is impossible by construction, so the string is always
// exactly six digits.
func Generate() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}

// Matches reports whether candidate is exactly the stored code.
func Matches(stored, candidate string) bool {
	return stored != "" && stored == candidate
}

// MatchesUtterance checks a spoken utterance against the stored code.
// The utterance matches when it contains the code, or when it is itself
// a bare 6-digit number: users often just speak the digits without any
// confirmation wording, and the demo accepts that path without checking
// the value. No expiry and no attempt limit.
func MatchesUtterance(stored, utterance string) bool {
	if stored == "" {
		return false
	}
	utterance = strings.TrimSpace(utterance)
	return strings.Contains(utterance, stored) || bareCode.MatchString(utterance)
}
