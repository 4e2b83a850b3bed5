package footballapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var (
	// ErrNotFound is returned when the API has no record for a lookup.
	ErrNotFound = crerr.New("not found")
	// ErrUnauthorized is returned when the API key is missing or rejected.
	ErrUnauthorized = crerr.New("api key rejected")
	// ErrRateLimited is returned when the account has run out of requests.
	ErrRateLimited = crerr.New("request limit reached")
	// ErrUpstream covers every other failure reported by the API.
	ErrUpstream = crerr.New("football api error")

	errTransient = crerr.New("football api transient failure")
)

const redacted = "REDACTED"

// statusError classifies a non-2xx response.
func statusError(code int, body []byte) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return crerr.Wrapf(ErrUnauthorized, "status=%d body=%s", code, abbreviateBody(body))
	case code == http.StatusNotFound:
		return crerr.Wrapf(ErrNotFound, "status=%d", code)
	case code == http.StatusTooManyRequests:
		return crerr.Mark(crerr.Wrapf(ErrRateLimited, "status=%d body=%s", code, abbreviateBody(body)), errTransient)
	case code >= http.StatusInternalServerError:
		return crerr.Mark(crerr.Wrapf(ErrUpstream, "status=%d body=%s", code, abbreviateBody(body)), errTransient)
	default:
		return crerr.Wrapf(ErrUpstream, "status=%d body=%s", code, abbreviateBody(body))
	}
}

// reportedError converts the envelope's errors field into an error. The API
// sends either an empty array or an object keyed by problem area, usually
// with HTTP 200. A nil return means no errors were reported.
func reportedError(field any) error {
	var parts []string
	var keys []string
	switch v := field.(type) {
	case nil:
		return nil
	case []any:
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
	case map[string]any:
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %v", k, v[k]))
		}
	case string:
		if v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	base := ErrUpstream
	for _, k := range keys {
		switch strings.ToLower(k) {
		case "token":
			base = ErrUnauthorized
		case "requests", "ratelimit":
			base = ErrRateLimited
		}
	}
	return crerr.Wrap(base, strings.Join(parts, "; "))
}

func isTransient(err error) bool {
	return crerr.Is(err, errTransient)
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if key != "" {
		value = strings.ReplaceAll(value, key, redacted)
	}
	return value
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
