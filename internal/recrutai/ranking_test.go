package recrutai

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestRankCVsFailsFastWithoutJobText(t *testing.T) {
	path := writeTempPDF(t, "a.pdf", 64)

	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		requests++
	}))

	if _, err := client.RankCVs(context.Background(), []string{path}, "  "); err == nil {
		t.Fatalf("expected an error for blank job text")
	}
	if requests != 0 {
		t.Fatalf("expected no request to be issued, got %d", requests)
	}
}

func TestRankCVsFailsFastWithoutFiles(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		requests++
	}))

	if _, err := client.RankCVs(context.Background(), nil, "Backend Go engineer"); err == nil {
		t.Fatalf("expected an error for an empty file list")
	}
	if requests != 0 {
		t.Fatalf("expected no request to be issued, got %d", requests)
	}
}

func TestUploadBatchRejectsTooManyFiles(t *testing.T) {
	paths := make([]string, MaxBatchFiles+1)
	for i := range paths {
		paths[i] = writeTempPDF(t, fmt.Sprintf("cv%d.pdf", i), 16)
	}

	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		requests++
	}))

	if _, err := client.UploadBatch(context.Background(), paths); err == nil {
		t.Fatalf("expected an error for %d files", len(paths))
	}
	if requests != 0 {
		t.Fatalf("expected no request to be issued, got %d", requests)
	}
}

func TestRankCVsUploadsThenRanks(t *testing.T) {
	paths := []string{
		writeTempPDF(t, "a.pdf", 64),
		writeTempPDF(t, "b.pdf", 64),
	}

	var calls []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)

		switch r.URL.Path {
		case "/api/cvs/recruteur/upload/":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("parsing multipart form: %v", err)
			}
			if got := len(r.MultipartForm.File["files"]); got != 2 {
				t.Fatalf("expected 2 files under 'files', got %d", got)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"uploaded_cvs": [{"id": 1}, {"id": 2}]}`))
		case "/api/cvs/recruteur/rank/":
			w.Write([]byte(`{
				"rankings": [
					{"cv_id": 2, "candidat_name": "B", "score": 90, "matched_keywords": ["go"]},
					{"cv_id": 1, "candidat_name": "A", "score": 70, "matched_keywords": []}
				]
			}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	client, _ := newTestClient(t, handler)

	rankings, err := client.RankCVs(context.Background(), paths, "Backend Go engineer")
	if err != nil {
		t.Fatalf("RankCVs: %v", err)
	}

	if len(calls) != 2 || calls[0] != "/api/cvs/recruteur/upload/" || calls[1] != "/api/cvs/recruteur/rank/" {
		t.Fatalf("unexpected call sequence: %v", calls)
	}

	// The server's order must survive untouched.
	if rankings.Len() != 2 {
		t.Fatalf("expected 2 rankings, got %d", rankings.Len())
	}
	if rankings.Items[0].CVID != 2 || rankings.Items[1].CVID != 1 {
		t.Fatalf("server order was not preserved: %+v", rankings.Items)
	}
}

func TestAnalyzeSingleSendsCVReference(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cvs/recruteur/analyze-single/" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"cv_id": 4, "candidat_name": "Amina Diallo",
			"compatibility_score": 85, "matched_keywords": ["go"]
		}`))
	})

	client, _ := newTestClient(t, handler)

	result, err := client.AnalyzeSingle(context.Background(), 4, "Backend Go engineer")
	if err != nil {
		t.Fatalf("AnalyzeSingle: %v", err)
	}
	if result.CVID != 4 || result.CompatibilityScore != 85 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestKeepPreservesOrder(t *testing.T) {
	rankings := &Rankings{Items: []*RankedCV{
		{CVID: 1, Score: 95},
		{CVID: 2, Score: 40},
		{CVID: 3, Score: 80},
	}}

	kept := rankings.Keep(func(rc *RankedCV) bool { return rc.Score >= 50 })

	if kept.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", kept.Len())
	}
	if kept.Items[0].CVID != 1 || kept.Items[1].CVID != 3 {
		t.Fatalf("order was not preserved: %+v", kept.Items)
	}
	if rankings.Len() != 3 {
		t.Fatalf("Keep must not mutate the original ranking")
	}
}
