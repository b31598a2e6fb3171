package recrutai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrUnauthorized signals that the backend rejected the bearer token. The
// session has already been cleared by the time callers see it; the only
// recovery is logging in again.
var ErrUnauthorized = errors.New("authorization required: run 'recrutai auth login'")

// ErrorKind classifies an APIError by origin rather than by type name.
type ErrorKind int

const (
	// KindValidation is a 400-class rejection carrying a field-keyed map.
	KindValidation ErrorKind = iota
	// KindDetail is a 400-class rejection with a single message.
	KindDetail
	// KindServer is a 5xx response; the payload is not trusted.
	KindServer
	// KindTransport means no response was received at all.
	KindTransport
)

// APIError is the closed error schema every non-2xx response is normalized
// into at the HTTP boundary. Callers never inspect raw payloads.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Fields holds per-field messages for KindValidation.
	Fields map[string][]string
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindValidation:
		return fmt.Sprintf("validation failed: %s", e.fieldSummary())
	case KindServer:
		return "server error, try again later"
	case KindTransport:
		return fmt.Sprintf("cannot reach server: %s", e.Message)
	default:
		return e.Message
	}
}

func (e *APIError) fieldSummary() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return strings.Join(parts, ", ")
}

// errorBody covers every error shape the backend emits: a field-keyed
// "errors" map with a message, a bare "message", a bare "error", or a DRF
// style "detail".
type errorBody struct {
	Message string                     `json:"message"`
	Error   string                     `json:"error"`
	Detail  string                     `json:"detail"`
	Errors  map[string]json.RawMessage `json:"errors"`
}

// decodeError normalizes a non-2xx response into an APIError. 401 is handled
// by the caller before reaching here.
func decodeError(status int, body []byte) error {
	if status >= http.StatusInternalServerError {
		return &APIError{Kind: KindServer, Status: status, Message: messageFrom(body, status)}
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		return &APIError{
			Kind:    KindValidation,
			Status:  status,
			Message: firstNonEmpty(parsed.Message, "validation failed"),
			Fields:  fieldMap(parsed.Errors),
		}
	}

	return &APIError{Kind: KindDetail, Status: status, Message: messageFrom(body, status)}
}

// transportError wraps a failure where no response was received, so the user
// sees a connectivity message rather than a server one.
func transportError(err error) error {
	return &APIError{Kind: KindTransport, Message: err.Error()}
}

// messageFrom extracts a human-readable message from an error payload, in
// priority order: structured error field, generic server message, status text.
func messageFrom(body []byte, status int) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if msg := firstNonEmpty(parsed.Error, parsed.Detail, parsed.Message); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("request failed: %s", http.StatusText(status))
}

// fieldMap flattens DRF-style field errors, where each value is either a
// string or a list of strings.
func fieldMap(raw map[string]json.RawMessage) map[string][]string {
	fields := make(map[string][]string, len(raw))
	for key, value := range raw {
		var list []string
		if err := json.Unmarshal(value, &list); err == nil {
			fields[key] = list
			continue
		}
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			fields[key] = []string{single}
			continue
		}
		fields[key] = []string{string(value)}
	}
	return fields
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
