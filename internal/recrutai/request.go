package recrutai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const contentTypeJSON = "application/json"

// getJSON makes a GET request and decodes the body into target. Passing a
// nil target discards the body.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+path, nil)
	if err != nil {
		return err
	}
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	return c.do(c.HTTPClient, req, target)
}

// postJSON marshals payload, POSTs it and decodes the response into target.
func (c *Client) postJSON(ctx context.Context, path string, payload, target any) error {
	req, err := c.newPost(ctx, path, payload)
	if err != nil {
		return err
	}

	return c.do(c.HTTPClient, req, target)
}

// postCredentials is postJSON for the credential-exchange endpoints. A 401
// there means the submitted credentials were rejected, not that the stored
// session expired, so the stored session stays untouched and the server's
// message is surfaced as a regular APIError.
func (c *Client) postCredentials(ctx context.Context, path string, payload, target any) error {
	req, err := c.newPost(ctx, path, payload)
	if err != nil {
		return err
	}

	return c.send(c.HTTPClient, req, target, false)
}

func (c *Client) newPost(ctx context.Context, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentTypeJSON)

	return req, nil
}

// deleteJSON makes a DELETE request, discarding any response body.
func (c *Client) deleteJSON(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.APIURL+path, nil)
	if err != nil {
		return err
	}

	return c.do(c.HTTPClient, req, nil)
}

// uploadFiles builds a multipart payload with the given files under field
// and POSTs it with the longer upload timeout. No chunking, no resumability.
func (c *Client) uploadFiles(ctx context.Context, path, field string, paths []string, target any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, name := range paths {
		file, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("opening %q: %w", name, err)
		}

		part, err := w.CreateFormFile(field, filepath.Base(name))
		if err != nil {
			file.Close()
			return err
		}

		if _, err := io.Copy(part, file); err != nil {
			file.Close()
			return fmt.Errorf("reading %q: %w", name, err)
		}
		file.Close()
	}

	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(c.uploadClient, req, target)
}

// do sends the request with auth headers attached and normalizes the result.
// A 401 clears the whole session before surfacing ErrUnauthorized; this is a
// blanket policy with no silent refresh attempt. The credential-exchange
// endpoints opt out via postCredentials.
func (c *Client) do(httpClient *http.Client, req *http.Request, target any) error {
	return c.send(httpClient, req, target, true)
}

func (c *Client) send(httpClient *http.Client, req *http.Request, target any, clearOn401 bool) error {
	c.setHeaders(req)
	c.logger.Debug("make request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized && clearOn401 {
		if clearErr := c.session.Clear(); clearErr != nil {
			c.logger.Warn("clearing session after 401", zap.Error(clearErr))
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp.StatusCode, body)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decoding response from %s: %w", req.URL.Path, err)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	if token := c.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("X-Request-ID", uuid.NewString())
}
