package recrutai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	batchUploadPath   = "/api/cvs/recruteur/upload/"
	analyzeSinglePath = "/api/cvs/recruteur/analyze-single/"
	rankPath          = "/api/cvs/recruteur/rank/"

	// MaxBatchFiles bounds how many CVs a recruiter may rank at once.
	MaxBatchFiles = 10
)

// RankedCV is one row of a ranking, ordered by the server.
type RankedCV struct {
	CVID            int      `json:"cv_id"`
	CandidateID     int      `json:"candidat_id"`
	CandidateName   string   `json:"candidat_name"`
	CandidateEmail  string   `json:"candidat_email"`
	Score           float64  `json:"score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

// Rankings is a server-ordered list of ranked CVs. The client never
// re-sorts it; the order is descending score as provided.
type Rankings struct {
	Items []*RankedCV `json:"rankings"`
}

func (r *Rankings) Len() int {
	return len(r.Items)
}

// Keep returns a new Rankings holding only entries the predicate accepts,
// preserving the server's order.
func (r *Rankings) Keep(pred func(*RankedCV) bool) *Rankings {
	kept := make([]*RankedCV, 0, len(r.Items))
	for _, item := range r.Items {
		if pred(item) {
			kept = append(kept, item)
		}
	}
	return &Rankings{Items: kept}
}

// SingleAnalysis is the recruiter-side verdict for one CV.
type SingleAnalysis struct {
	CVID               int      `json:"cv_id"`
	CandidateName      string   `json:"candidat_name"`
	CandidateEmail     string   `json:"candidat_email"`
	CompatibilityScore float64  `json:"compatibility_score"`
	MatchedKeywords    []string `json:"matched_keywords"`
	MissingKeywords    []string `json:"missing_keywords"`
	Summary            string   `json:"summary"`
}

// UploadBatch sends up to MaxBatchFiles PDFs in one multipart request and
// returns the created CV references.
func (c *Client) UploadBatch(ctx context.Context, paths []string) ([]*CV, error) {
	if len(paths) == 0 {
		return nil, errors.New("at least one cv file is required")
	}
	if len(paths) > MaxBatchFiles {
		return nil, fmt.Errorf("too many files: %d (maximum %d)", len(paths), MaxBatchFiles)
	}
	for _, path := range paths {
		if err := checkPDF(path); err != nil {
			return nil, err
		}
	}

	var resp struct {
		UploadedCVs []*CV `json:"uploaded_cvs"`
	}
	if err := c.uploadFiles(ctx, batchUploadPath, "files", paths, &resp); err != nil {
		return nil, err
	}

	return resp.UploadedCVs, nil
}

// AnalyzeSingle scores one already-uploaded CV against job text.
func (c *Client) AnalyzeSingle(ctx context.Context, cvID int, jobText string) (*SingleAnalysis, error) {
	if cvID <= 0 {
		return nil, errors.New("cv id is required")
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, errors.New("job description text is required")
	}

	var result SingleAnalysis
	payload := map[string]any{"cv_id": cvID, "job_offer_text": jobText}
	if err := c.postJSON(ctx, analyzeSinglePath, payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// RankCVs uploads a batch of files and requests a ranking against the job
// text. Both guards fail fast before any network request is issued.
func (c *Client) RankCVs(ctx context.Context, paths []string, jobText string) (*Rankings, error) {
	if strings.TrimSpace(jobText) == "" {
		return nil, errors.New("job description text is required")
	}
	if len(paths) == 0 {
		return nil, errors.New("at least one cv file is required")
	}

	if _, err := c.UploadBatch(ctx, paths); err != nil {
		return nil, err
	}

	return c.RankUploaded(ctx, jobText)
}

// RankUploaded ranks every CV already uploaded by the recruiter against the
// job text, in the order the server returns.
func (c *Client) RankUploaded(ctx context.Context, jobText string) (*Rankings, error) {
	if strings.TrimSpace(jobText) == "" {
		return nil, errors.New("job description text is required")
	}

	var rankings Rankings
	payload := map[string]string{"job_offer_text": jobText}
	if err := c.postJSON(ctx, rankPath, payload, &rankings); err != nil {
		return nil, err
	}

	return &rankings, nil
}
