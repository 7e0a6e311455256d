package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Full name: letters, spaces, hyphens, apostrophes only.
var fullNameRe = regexp.MustCompile(`^[A-Za-z\s\-']+$`)

// Phone: digits with optional leading +, 7 to 15 digits.
var phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPassword enforces:
// - at least 8 characters
// - contains at least one letter
// - contains at least one number
// - contains at least one special character
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit, hasSpecial := false, false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}

func IsValidFullName(fullName string) bool {
	return fullName != "" && fullNameRe.MatchString(fullName)
}

func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(strings.ReplaceAll(phone, " ", ""))
}

// IsValidLatitude reports whether lat is in [-90, 90].
func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// IsValidLongitude reports whether lon is in [-180, 180].
func IsValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

// IsPlausibleImageURL accepts HTTP(S) URLs and internal storage paths.
// The image store is a pass-through; no deeper validation happens here.
func IsPlausibleImageURL(u string) bool {
	if u == "" {
		return true
	}
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "/")
}
