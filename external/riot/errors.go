package riot

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

// Class is the retry-relevant category of a failed call.
type Class string

const (
	ClassRateLimited Class = "rate_limited"
	ClassServerError Class = "server_error"
	ClassNotFound    Class = "not_found"
	ClassClientError Class = "client_error"
	ClassUnknown     Class = "unknown"
)

// Retryable reports whether a call failing with c may succeed when repeated.
func (c Class) Retryable() bool {
	return c == ClassRateLimited || c == ClassServerError
}

// APIError is the only error type Invoke returns.
type APIError struct {
	Class         Class
	Operation     string
	StatusCode    int
	RetryAfter    time.Duration
	HasRetryAfter bool
	Body          string
	cause         error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("riot ")
	b.WriteString(e.Operation)
	b.WriteString(": ")
	b.WriteString(string(e.Class))
	if e.StatusCode > 0 {
		b.WriteString(" status=")
		b.WriteString(strconv.Itoa(e.StatusCode))
	}
	if e.HasRetryAfter {
		b.WriteString(" retry_after=")
		b.WriteString(e.RetryAfter.String())
	}
	if e.Body != "" {
		b.WriteString(" body=")
		b.WriteString(e.Body)
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// ClassOf extracts the class of err. Errors that did not come from Invoke are
// ClassUnknown; nil has no class.
func ClassOf(err error) Class {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if crerr.As(err, &apiErr) {
		return apiErr.Class
	}
	return ClassUnknown
}

func IsNotFound(err error) bool {
	return ClassOf(err) == ClassNotFound
}

// RetryAfterOf returns the server delay hint carried by err, if any.
func RetryAfterOf(err error) (time.Duration, bool) {
	var apiErr *APIError
	if crerr.As(err, &apiErr) && apiErr.HasRetryAfter {
		return apiErr.RetryAfter, true
	}
	return 0, false
}

func classifyStatus(code int) Class {
	switch {
	case code == http.StatusTooManyRequests:
		return ClassRateLimited
	case code == http.StatusNotFound:
		return ClassNotFound
	case code >= http.StatusInternalServerError && code <= 599:
		return ClassServerError
	case code >= http.StatusBadRequest && code < http.StatusInternalServerError:
		return ClassClientError
	default:
		return ClassUnknown
	}
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(raw string, now time.Time) (time.Duration, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs * float64(time.Second)), true
	}
	if at, err := http.ParseTime(raw); err == nil {
		d := at.Sub(now)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

func newStatusError(op Operation, code int, retryAfterHeader string, body []byte, now time.Time) *APIError {
	apiErr := &APIError{
		Class:      classifyStatus(code),
		Operation:  op.Kind(),
		StatusCode: code,
		Body:       abbreviateBody(body),
	}
	if apiErr.Class == ClassRateLimited {
		apiErr.RetryAfter, apiErr.HasRetryAfter = parseRetryAfter(retryAfterHeader, now)
	}
	return apiErr
}

func newCauseError(op Operation, class Class, cause error, format string, args ...any) *APIError {
	kind := "unknown"
	if op != nil {
		kind = op.Kind()
	}
	return &APIError{
		Class:     class,
		Operation: kind,
		cause:     crerr.Wrapf(cause, format, args...),
	}
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
