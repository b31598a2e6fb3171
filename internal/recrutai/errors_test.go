package recrutai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDecodeErrorValidationShape(t *testing.T) {
	body := []byte(`{
		"message": "Erreur de validation",
		"errors": {"email": ["required"], "role": "unknown role"}
	}`)

	var apiErr *APIError
	if !errors.As(decodeError(400, body), &apiErr) {
		t.Fatalf("expected an APIError")
	}

	if apiErr.Kind != KindValidation || apiErr.Status != 400 {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if got := apiErr.Fields["email"]; len(got) != 1 || got[0] != "required" {
		t.Fatalf("unexpected email errors: %v", got)
	}
	if got := apiErr.Fields["role"]; len(got) != 1 || got[0] != "unknown role" {
		t.Fatalf("unexpected role errors: %v", got)
	}
	if !strings.Contains(apiErr.Error(), "email: required") {
		t.Fatalf("expected field details in the message, got %q", apiErr.Error())
	}
}

func TestDecodeErrorMessagePriority(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"error": "E", "detail": "D", "message": "M"}`, "E"},
		{`{"detail": "D", "message": "M"}`, "D"},
		{`{"message": "M"}`, "M"},
		{`not json at all`, "request failed: Bad Request"},
	}

	for _, tc := range cases {
		var apiErr *APIError
		if !errors.As(decodeError(400, []byte(tc.body)), &apiErr) {
			t.Fatalf("expected an APIError for %s", tc.body)
		}
		if apiErr.Kind != KindDetail {
			t.Fatalf("expected KindDetail for %s, got %v", tc.body, apiErr.Kind)
		}
		if apiErr.Message != tc.want {
			t.Fatalf("body %s: expected message %q, got %q", tc.body, tc.want, apiErr.Message)
		}
	}
}

func TestDecodeErrorHidesServerDetails(t *testing.T) {
	var apiErr *APIError
	if !errors.As(decodeError(503, []byte(`{"error": "db connection pool exhausted"}`)), &apiErr) {
		t.Fatalf("expected an APIError")
	}

	if apiErr.Kind != KindServer {
		t.Fatalf("expected KindServer, got %v", apiErr.Kind)
	}
	// The user-facing message never leaks server internals.
	if got := apiErr.Error(); got != "server error, try again later" {
		t.Fatalf("unexpected user message: %q", got)
	}
}

func TestTransportErrorMentionsConnectivity(t *testing.T) {
	var apiErr *APIError
	if !errors.As(transportError(errors.New("connection refused")), &apiErr) {
		t.Fatalf("expected an APIError")
	}

	if apiErr.Kind != KindTransport {
		t.Fatalf("expected KindTransport, got %v", apiErr.Kind)
	}
	if got := apiErr.Error(); !strings.Contains(got, "cannot reach server") {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestUnreachableServerSurfacesTransportError(t *testing.T) {
	client, _ := newTestClient(t, nil)
	// Point the client at a port nothing listens on.
	client.APIURL = "http://127.0.0.1:1"

	_, err := client.Ping(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindTransport {
		t.Fatalf("expected a transport APIError, got %v", err)
	}
}
