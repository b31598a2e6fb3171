package recrutai

import (
	"context"
	"errors"
	"strings"

	"github.com/recrutai/recrutai-cli/internal/session"

	"go.uber.org/zap"
)

const (
	loginPath    = "/api/auth/login/"
	registerPath = "/api/auth/register/"
	refreshPath  = "/api/auth/token/refresh/"
	logoutPath   = "/api/auth/logout/"
	mePath       = "/api/auth/me/"
	pingPath     = "/api/auth/test/"
)

// AuthResponse is what the backend returns on successful login/registration.
type AuthResponse struct {
	User    *session.Principal `json:"user"`
	Access  string             `json:"access"`
	Refresh string             `json:"refresh"`
	Message string             `json:"message,omitempty"`
}

// RegistrationForm carries the fields the register endpoint expects.
type RegistrationForm struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Login exchanges credentials for tokens and the principal. Stored session
// state changes only on success; a rejected login, including the backend's
// 401 for bad credentials, leaves it untouched.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Principal, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	var resp AuthResponse
	payload := map[string]string{"email": email, "password": password}
	if err := c.postCredentials(ctx, loginPath, payload, &resp); err != nil {
		return nil, err
	}

	if err := c.session.SetSession(resp.Access, resp.Refresh, resp.User); err != nil {
		return nil, err
	}

	return resp.User, nil
}

// Register creates an account and stores the returned session exactly as
// Login does. A 400-class failure surfaces as an APIError with a field map.
func (c *Client) Register(ctx context.Context, form *RegistrationForm) (*session.Principal, error) {
	if form == nil || strings.TrimSpace(form.Email) == "" || form.Password == "" {
		return nil, errors.New("email and password are required")
	}
	if form.Role == "" {
		form.Role = session.RoleCandidate
	}

	var resp AuthResponse
	if err := c.postCredentials(ctx, registerPath, form, &resp); err != nil {
		return nil, err
	}

	if err := c.session.SetSession(resp.Access, resp.Refresh, resp.User); err != nil {
		return nil, err
	}

	return resp.User, nil
}

// Refresh exchanges the stored refresh token for a new access token. It is
// an explicit operation, never triggered automatically on a 401.
func (c *Client) Refresh(ctx context.Context) error {
	refresh := c.session.RefreshToken()
	if refresh == "" {
		return errors.New("no refresh token stored")
	}

	var resp struct {
		Access string `json:"access"`
	}
	if err := c.postJSON(ctx, refreshPath, map[string]string{"refresh": refresh}, &resp); err != nil {
		return err
	}

	return c.session.SetAccessToken(resp.Access)
}

// Logout asks the backend to blacklist the refresh token, then clears local
// state. The local reset happens even when the backend call fails, so a
// broken network never traps the user in a stale session.
func (c *Client) Logout(ctx context.Context) error {
	if refresh := c.session.RefreshToken(); refresh != "" {
		payload := map[string]string{"refresh": refresh}
		if err := c.postJSON(ctx, logoutPath, payload, nil); err != nil && !errors.Is(err, ErrUnauthorized) {
			c.logger.Warn("backend logout failed, clearing local session anyway", zap.Error(err))
		}
	}

	return c.session.Clear()
}

// Me fetches the authenticated principal from the backend.
func (c *Client) Me(ctx context.Context) (*session.Principal, error) {
	var resp struct {
		User *session.Principal `json:"user"`
	}
	if err := c.getJSON(ctx, mePath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Ping hits the connectivity smoke-test endpoint.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	}
	if err := c.getJSON(ctx, pingPath, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
