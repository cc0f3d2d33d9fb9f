package s2

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))
}

func TestMatchTitle(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/paper/search/match" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "Attention Is All You Need" {
			t.Errorf("query = %q", got)
		}
		fmt.Fprint(w, `{"data":[{"paperId":"abc123","title":"Attention Is All You Need","year":2017}]}`)
	})

	p, err := c.MatchTitle(context.Background(), "Attention Is All You Need")
	if err != nil {
		t.Fatalf("MatchTitle: %v", err)
	}
	if p == nil || p.PaperID != "abc123" || p.Year != 2017 {
		t.Errorf("MatchTitle = %+v", p)
	}
}

func TestMatchTitle_NotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Title match not found"}`, http.StatusNotFound)
	})

	p, err := c.MatchTitle(context.Background(), "No Such Paper")
	if err != nil {
		t.Fatalf("MatchTitle: %v", err)
	}
	if p != nil {
		t.Errorf("MatchTitle = %+v, want nil", p)
	}
}

func TestMatchTitle_EmptyData(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	})

	p, err := c.MatchTitle(context.Background(), "x")
	if err != nil || p != nil {
		t.Errorf("MatchTitle = %+v, %v, want nil, nil", p, err)
	}
}

func TestPaper_IdentifierRouting(t *testing.T) {
	var gotPath string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"paperId":"abc123","title":"T"}`)
	})

	if _, err := c.Paper(context.Background(), "2106.15928"); err != nil {
		t.Fatalf("Paper: %v", err)
	}
	if gotPath != "/paper/ARXIV:2106.15928" {
		t.Errorf("path = %q, want /paper/ARXIV:2106.15928", gotPath)
	}
}

func TestPaper_ServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.Paper(context.Background(), "DOI:10.1/x")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("err = %v, want APIError with status 500", err)
	}
}

func TestGet_RetriesOn429(t *testing.T) {
	old := retryBaseDelay
	retryBaseDelay = time.Millisecond
	defer func() { retryBaseDelay = old }()

	attempts := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"paperId":"abc123","title":"T"}`)
	})

	p, err := c.Paper(context.Background(), "DOI:10.1/x")
	if err != nil {
		t.Fatalf("Paper after retries: %v", err)
	}
	if p == nil || p.PaperID != "abc123" {
		t.Errorf("Paper = %+v", p)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestGet_RateLimitedExhausted(t *testing.T) {
	old := retryBaseDelay
	retryBaseDelay = time.Millisecond
	defer func() { retryBaseDelay = old }()

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	_, err := c.Paper(context.Background(), "DOI:10.1/x")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("err = %v, want ErrRateLimited", err)
	}
}

func TestCitations_Pagination(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("offset") {
		case "0":
			fmt.Fprint(w, `{"offset":0,"next":100,"data":[{"citingPaper":{"paperId":"p1","title":"One"}},{"citingPaper":{"paperId":"p2","title":"Two"}}]}`)
		default:
			fmt.Fprint(w, `{"offset":100,"data":[{"citingPaper":{"paperId":"p3","title":"Three"}}]}`)
		}
	})

	papers, err := c.Citations(context.Background(), "abc123", 10)
	if err != nil {
		t.Fatalf("Citations: %v", err)
	}
	if len(papers) != 3 {
		t.Fatalf("citations = %d, want 3", len(papers))
	}
	if papers[2].PaperID != "p3" {
		t.Errorf("last paper = %+v", papers[2])
	}
}

func TestCitations_MaxResultsCap(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"offset":0,"next":100,"data":[{"citingPaper":{"paperId":"p1","title":"One"}},{"citingPaper":{"paperId":"p2","title":"Two"}}]}`)
	})

	papers, err := c.Citations(context.Background(), "abc123", 1)
	if err != nil {
		t.Fatalf("Citations: %v", err)
	}
	if len(papers) != 1 {
		t.Errorf("citations = %d, want 1 (capped)", len(papers))
	}
}

func TestCitations_SkipsNullCitingPaper(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"offset":0,"data":[{"citingPaper":null},{"citingPaper":{"paperId":"p1","title":"One"}}]}`)
	})

	papers, err := c.Citations(context.Background(), "abc123", 10)
	if err != nil {
		t.Fatalf("Citations: %v", err)
	}
	if len(papers) != 1 || papers[0].PaperID != "p1" {
		t.Errorf("citations = %+v", papers)
	}
}

func TestAPIKeyHeader(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		fmt.Fprint(w, `{"paperId":"abc123","title":"T"}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000), WithAPIKey("secret"))
	if _, err := c.Paper(context.Background(), "DOI:10.1/x"); err != nil {
		t.Fatalf("Paper: %v", err)
	}
	if gotKey != "secret" {
		t.Errorf("x-api-key = %q, want secret", gotKey)
	}
}
