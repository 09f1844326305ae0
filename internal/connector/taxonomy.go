// Package connector implements real, HTTP-backed service providers for hr,
// google, slack, jira, and github, satisfying the same service.Service
// contract as internal/simulator.
package connector

import (
	"fmt"
	"net/http"

	"github.com/wiredwork/orcheo/internal/service"
)

// StatusError maps a provider's HTTP status code onto the wire error
// taxonomy shared by every REST-backed connector (hr, google, jira,
// github). Slack's Web API reports errors in the response body instead of
// the status line, so it is mapped separately by mapSlackError.
func StatusError(status int, action string, body string) error {
	switch status {
	case http.StatusUnauthorized:
		return service.NewError(service.ErrAuth, fmt.Sprintf("%s authentication failed", action), nil)
	case http.StatusForbidden:
		return service.NewError(service.ErrPermissionDenied, fmt.Sprintf("%s permission denied", action), nil)
	case http.StatusNotFound:
		return service.NewError(service.ErrNotFound, fmt.Sprintf("%s: resource not found", action), nil)
	case http.StatusConflict:
		return service.NewError(service.ErrAlreadyExists, fmt.Sprintf("%s: resource already exists", action), nil)
	case http.StatusTooManyRequests:
		return service.NewError(service.ErrRateLimit, fmt.Sprintf("%s: rate limit hit", action), nil)
	default:
		return service.NewError(service.ErrConnectorError, fmt.Sprintf("%s failed (%d): %s", action, status, truncate(body, 300)), nil)
	}
}

// okStatus reports whether status falls in the 2xx range accepted as success.
func okStatus(status int, extra ...int) bool {
	if status >= 200 && status < 300 {
		return true
	}
	for _, s := range extra {
		if status == s {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
