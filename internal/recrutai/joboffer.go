package recrutai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	jobOffersPath     = "/api/job-offers/"
	myJobOffersPath   = "/api/job-offers/my/"
	offerRankPath     = "/api/job-offers/%d/rank/"
	analyzeOfferPath  = "/api/analyze/job-offer/%d/"
	recruiterJobsPath = "/api/recruiters/%d/job-offers/"
)

// JobOffer is a posting owned by a recruiter. No client-side update or
// delete flows exist.
type JobOffer struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Location     string   `json:"location,omitempty"`
	Deadline     string   `json:"deadline,omitempty"`
	Status       string   `json:"status,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"`
}

// NewJobOffer carries the fields accepted by the create endpoint.
type NewJobOffer struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Location     string   `json:"location,omitempty"`
	Deadline     string   `json:"deadline,omitempty"`
}

// OfferRanking pairs a CV with its analysis against a stored offer.
type OfferRanking struct {
	CV       *CV             `json:"cv"`
	Analysis *AnalysisResult `json:"analysis"`
}

// CreateJobOffer posts a new offer.
func (c *Client) CreateJobOffer(ctx context.Context, offer *NewJobOffer) (*JobOffer, error) {
	if offer == nil || strings.TrimSpace(offer.Title) == "" {
		return nil, errors.New("offer title is required")
	}
	if strings.TrimSpace(offer.Description) == "" {
		return nil, errors.New("offer description is required")
	}

	var created JobOffer
	if err := c.postJSON(ctx, jobOffersPath, offer, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// GetMyJobOffers lists offers owned by the caller.
func (c *Client) GetMyJobOffers(ctx context.Context) ([]*JobOffer, error) {
	var offers []*JobOffer
	if err := c.getJSON(ctx, myJobOffersPath, nil, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// AnalyzeOffer scores a CV against a stored offer. A zero cvID omits the
// reference and lets the backend pick the caller's CV.
func (c *Client) AnalyzeOffer(ctx context.Context, offerID, cvID int) (*AnalysisResult, error) {
	if offerID <= 0 {
		return nil, errors.New("job offer id is required")
	}

	payload := map[string]any{}
	if cvID > 0 {
		payload["cv_id"] = cvID
	}

	var result AnalysisResult
	if err := c.postJSON(ctx, fmt.Sprintf(analyzeOfferPath, offerID), payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// RankByOffer ranks all candidate CVs against a stored offer. The result
// keeps the server's order.
func (c *Client) RankByOffer(ctx context.Context, offerID int) ([]*OfferRanking, error) {
	if offerID <= 0 {
		return nil, errors.New("job offer id is required")
	}

	var rankings []*OfferRanking
	if err := c.postJSON(ctx, fmt.Sprintf(offerRankPath, offerID), nil, &rankings); err != nil {
		return nil, err
	}

	return rankings, nil
}

// JobOffersByRecruiter lists another recruiter's offers.
func (c *Client) JobOffersByRecruiter(ctx context.Context, recruiterID int) ([]*JobOffer, error) {
	if recruiterID <= 0 {
		return nil, errors.New("recruiter id is required")
	}

	var offers []*JobOffer
	if err := c.getJSON(ctx, fmt.Sprintf(recruiterJobsPath, recruiterID), nil, &offers); err != nil {
		return nil, err
	}

	return offers, nil
}
