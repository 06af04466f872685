package venue

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxInputLength is the rune limit applied by SanitizeInput.
const MaxInputLength = 1000

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usZipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	caZipPattern = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z] \d[A-Za-z]\d$`)
)

// ValidateEmail reports whether email looks like local@domain.tld.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhoneNumber accepts 10 digits, or 11 with a country code, ignoring
// any punctuation.
func ValidatePhoneNumber(phone string) bool {
	digits := 0
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits++
		}
	}
	return digits == 10 || digits == 11
}

// ValidateZipCode checks US and Canadian postal codes; codes of other
// countries always pass. An empty country means US.
func ValidateZipCode(zip, country string) bool {
	switch country {
	case "", "US":
		return usZipPattern.MatchString(zip)
	case "CA":
		return caZipPattern.MatchString(zip)
	default:
		return true
	}
}

// ValidateCoordinates parses both values and checks they are on the globe.
func ValidateCoordinates(lat, lon string) bool {
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return false
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return false
	}
	return latitude >= -90 && latitude <= 90 &&
		longitude >= -180 && longitude <= 180
}

// SanitizeInput normalises to NFC, trims, drops angle brackets, and keeps at
// most MaxInputLength runes.
func SanitizeInput(input string) string {
	s := norm.NFC.String(input)
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	if utf8.RuneCountInString(s) > MaxInputLength {
		s = string([]rune(s)[:MaxInputLength])
	}
	return s
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValidateDateRange reports whether both dates parse and end is not before start.
func ValidateDateRange(start, end string) bool {
	s, ok := parseDate(start)
	if !ok {
		return false
	}
	e, ok := parseDate(end)
	if !ok {
		return false
	}
	return !e.Before(s)
}

// IsValidURL accepts absolute http and https URLs.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
