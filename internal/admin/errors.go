package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// RequestError is returned for every non-2xx backend response. The backend
// guarantees no error body, so only the status line is kept.
type RequestError struct {
	StatusCode int
	StatusText string
	Method     string
	Path       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("API Error: %d %s", e.StatusCode, e.StatusText)
}

func newRequestError(method, path string, resp *http.Response) *RequestError {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return &RequestError{
		StatusCode: resp.StatusCode,
		StatusText: text,
		Method:     method,
		Path:       path,
	}
}

// StatusCode extracts the HTTP status from a RequestError, or 0.
func StatusCode(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// IsRequestError reports whether the backend answered with a non-2xx status,
// as opposed to a transport failure.
func IsRequestError(err error) bool {
	return StatusCode(err) != 0
}
