package venue

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// ErrUnknownService is returned for services missing from Services.
var ErrUnknownService = errors.New("unknown service")

// Service is the endpoint configuration of one upstream API.
type Service struct {
	BaseURL string
	// Version is the Foursquare "v" parameter.
	Version string
	// Units is the OpenWeather "units" parameter.
	Units string
}

// Services lists the upstream APIs by name.
var Services = map[string]Service{
	"foursquare": {
		BaseURL: "https://api.foursquare.com/v2/venues/explore",
		Version: "20200404",
	},
	"openWeather": {
		BaseURL: "https://api.openweathermap.org/data/2.5/weather",
		Units:   "metric",
	},
}

// BuildAPIURL returns the service URL with params as its query, keys sorted.
func BuildAPIURL(service string, params map[string]string) (string, error) {
	cfg, ok := Services[service]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownService, service)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, encodeComponent(k)+"="+encodeComponent(params[k]))
	}
	return cfg.BaseURL + "?" + strings.Join(pairs, "&"), nil
}

// componentUnescaper restores the characters encodeURIComponent leaves alone
// but url.QueryEscape escapes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes like encodeURIComponent.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// APIError is the failure value handed back to the page.
type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"error"`
	Service string `json:"service"`
}

// NewAPIError describes err for service.
func NewAPIError(err error, service string) APIError {
	msg := "An unknown error occurred"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return APIError{Message: msg, Service: service}
}

// Retry calls fn up to attempts times, waiting delay*n before the n-th retry.
// The last error is returned when every attempt fails.
func Retry[T any](ctx context.Context, attempts int, delay time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(delay * time.Duration(i+1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
	return zero, lastErr
}
