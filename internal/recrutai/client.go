package recrutai

import (
	"net/http"
	"strings"
	"time"

	"github.com/recrutai/recrutai-cli/internal/session"

	"go.uber.org/zap"
)

const (
	defaultAPIURL = "http://127.0.0.1:8000"
	userAgent     = "recrutai-cli"

	defaultTimeout = 10 * time.Second
	// Uploads carry whole PDFs and get a longer timeout.
	uploadTimeout = 30 * time.Second
)

// Client is the single configured HTTP client for the RecrutAI backend.
// It attaches the bearer token from the session store to every request and
// clears the session on any 401 response.
type Client struct {
	APIURL     string
	HTTPClient *http.Client
	UserAgent  string

	uploadClient *http.Client
	session      *session.Store
	logger       *zap.Logger
}

// New creates a client against baseURL. An empty baseURL falls back to the
// local development endpoint.
func New(baseURL string, sess *session.Store, logger *zap.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	return &Client{
		APIURL:       baseURL,
		HTTPClient:   &http.Client{Timeout: defaultTimeout},
		uploadClient: &http.Client{Timeout: uploadTimeout},
		UserAgent:    userAgent,
		session:      sess,
		logger:       logger,
	}
}

// Session exposes the session store the client mutates on auth flows.
func (c *Client) Session() *session.Store {
	return c.session
}
