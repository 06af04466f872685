package venue

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	absoluteZeroC = 273.15

	// DefaultTruncateLength is used by TruncateText for non-positive limits.
	DefaultTruncateLength = 50
)

// KelvinToCelsius converts without rounding.
func KelvinToCelsius(kelvin float64) float64 { return kelvin - absoluteZeroC }

func fahrenheit(kelvin float64) float64 { return KelvinToCelsius(kelvin)*9/5 + 32 }

// KelvinToFahrenheit renders kelvin as whole degrees Fahrenheit, e.g. "80".
func KelvinToFahrenheit(kelvin float64) string {
	return strconv.FormatFloat(roundHalfUp(fahrenheit(kelvin)), 'f', 0, 64)
}

// FormatTemperature converts kelvin to whole degrees of unit ("F" or "C").
// Any other unit returns kelvin unchanged.
func FormatTemperature(kelvin float64, unit string) float64 {
	switch unit {
	case "F":
		return roundHalfUp(fahrenheit(kelvin))
	case "C":
		return roundHalfUp(KelvinToCelsius(kelvin))
	default:
		return kelvin
	}
}

// roundHalfUp rounds .5 towards positive infinity, so -0.5 becomes 0.
func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }

// FormatDate renders a unix timestamp as "Monday, Jan 2" in the local zone.
func FormatDate(unix int64) string { return FormatDateIn(unix, time.Local) }

// FormatDateIn is FormatDate for an explicit location.
func FormatDateIn(unix int64, loc *time.Location) string {
	return time.Unix(unix, 0).In(loc).Format("Monday, Jan 2")
}

// WeatherIconURL returns the OpenWeather icon for an icon code such as "10d".
func WeatherIconURL(code string) string {
	return "https://openweathermap.org/img/wn/" + code + "@2x.png"
}

var cityPattern = regexp.MustCompile(`^[a-zA-Z\s-]+$`)

// ValidateCity accepts non-blank names made of letters, spaces, and hyphens.
func ValidateCity(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return cityPattern.MatchString(name)
}

// TruncateText cuts text to max runes and appends "..." when it was longer.
func TruncateText(text string, max int) string {
	if max <= 0 {
		max = DefaultTruncateLength
	}
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + "..."
}
