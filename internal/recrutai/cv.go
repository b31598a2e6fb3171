package recrutai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	uploadCVPath   = "/api/cvs/candidat/upload/"
	myCVsPath      = "/api/cvs/candidat/cvs/"
	analyzeJobPath = "/api/cvs/candidat/analyze-job/%d/"
	historyPath    = "/api/cvs/history/"

	// Client-side guards; the server enforces its own limits too.
	maxUploadSize = 5 << 20
)

// CV is a reference to an uploaded resume. ParsedData is whatever the
// server-side parser extracted; use Parsed for the typed view.
type CV struct {
	ID         int            `json:"id"`
	FileName   string         `json:"file_name"`
	UploadedAt string         `json:"uploaded_at"`
	ParsedData map[string]any `json:"parsed_data,omitempty"`

	// Analysis is attached after a successful analyze call and is never
	// persisted client-side.
	Analysis *AnalysisResult `json:"-"`
}

// ParsedData is the typed shape of the server-extracted CV fields.
type ParsedData struct {
	Skills          []string `mapstructure:"skills"`
	ExperienceYears int      `mapstructure:"experience_years"`
}

// Parsed decodes the loosely-typed parsed_data payload.
func (cv *CV) Parsed() (*ParsedData, error) {
	var parsed ParsedData
	if err := mapstructure.Decode(cv.ParsedData, &parsed); err != nil {
		return nil, fmt.Errorf("decoding parsed cv data: %w", err)
	}
	return &parsed, nil
}

// CVList is the caller's CVs plus the server's per-candidate cap, used only
// for messaging.
type CVList struct {
	CVs    []*CV `json:"cvs"`
	MaxCVs int   `json:"max_cvs"`
}

// AnalysisResult is a compatibility verdict computed entirely server-side.
// The client renders it as-is and never recomputes the score.
type AnalysisResult struct {
	CompatibilityScore float64  `json:"compatibility_score" mapstructure:"compatibility_score"`
	MatchedKeywords    []string `json:"matched_keywords" mapstructure:"matched_keywords"`
	MissingKeywords    []string `json:"missing_keywords" mapstructure:"missing_keywords"`
	Summary            string   `json:"summary,omitempty" mapstructure:"summary"`
}

// HistoryEntry is one past analysis from the history endpoint.
type HistoryEntry struct {
	ID                 int      `mapstructure:"id"`
	CVID               int      `mapstructure:"cv"`
	JobOfferText       string   `mapstructure:"job_offer_text"`
	CompatibilityScore float64  `mapstructure:"compatibility_score"`
	MatchedKeywords    []string `mapstructure:"matched_keywords"`
	MissingKeywords    []string `mapstructure:"missing_keywords"`
	Summary            string   `mapstructure:"summary"`
	CreatedAt          string   `mapstructure:"created_at"`
}

// UploadCV sends a single PDF and returns the CV reference with the
// server-parsed fields. The extension and size checks are a user-experience
// guard, not a security boundary.
func (c *Client) UploadCV(ctx context.Context, path string) (*CV, error) {
	if err := checkPDF(path); err != nil {
		return nil, err
	}

	var resp struct {
		Message string `json:"message"`
		CV      *CV    `json:"cv"`
	}
	if err := c.uploadFiles(ctx, uploadCVPath, "file", []string{path}, &resp); err != nil {
		return nil, err
	}
	if resp.CV == nil {
		return nil, errors.New("server returned no cv")
	}

	return resp.CV, nil
}

// GetMyCVs lists the caller's CVs with the maximum-allowed count.
func (c *Client) GetMyCVs(ctx context.Context) (*CVList, error) {
	var list CVList
	if err := c.getJSON(ctx, myCVsPath, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteCV removes the CV by id.
func (c *Client) DeleteCV(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.New("cv id is required")
	}
	return c.deleteJSON(ctx, fmt.Sprintf("%s%d/", myCVsPath, id))
}

// AnalyzeWithJobText compares an uploaded CV against free job-description
// text. The only client-side validation is non-emptiness.
func (c *Client) AnalyzeWithJobText(ctx context.Context, cvID int, jobText string) (*AnalysisResult, error) {
	if cvID <= 0 {
		return nil, errors.New("cv id is required")
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, errors.New("job description text is required")
	}

	var result AnalysisResult
	payload := map[string]string{"job_offer_text": jobText}
	if err := c.postJSON(ctx, fmt.Sprintf(analyzeJobPath, cvID), payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// History returns past analyses for the caller, newest first as the server
// orders them.
func (c *Client) History(ctx context.Context) ([]*HistoryEntry, error) {
	var items []map[string]any
	if err := c.getJSON(ctx, historyPath, nil, &items); err != nil {
		return nil, err
	}

	var entries []*HistoryEntry
	if err := mapstructure.WeakDecode(items, &entries); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}

	return entries, nil
}

// checkPDF rejects files that are obviously not uploadable before any
// network call happens.
func checkPDF(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fmt.Errorf("%q is not a PDF file", filepath.Base(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("checking %q: %w", path, err)
	}
	if info.Size() > maxUploadSize {
		return fmt.Errorf("%q exceeds the %dMB upload limit", filepath.Base(path), maxUploadSize>>20)
	}

	return nil
}
