package recrutai

import (
	"context"
	"errors"
	"strings"
)

const sendEmailPath = "/api/cvs/send-email/"

// SendEmail asks the backend to mail a candidate. The backend owns delivery;
// this is a one-shot request/response wrapper.
func (c *Client) SendEmail(ctx context.Context, candidateID int, subject, message string) error {
	if candidateID <= 0 {
		return errors.New("candidate id is required")
	}
	if strings.TrimSpace(subject) == "" {
		return errors.New("email subject is required")
	}
	if strings.TrimSpace(message) == "" {
		return errors.New("email message is required")
	}

	payload := map[string]any{
		"candidate_id": candidateID,
		"subject":      subject,
		"message":      message,
	}

	return c.postJSON(ctx, sendEmailPath, payload, nil)
}
