package textpipeline_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonesrussell/crawlsearch/internal/textpipeline"
)

func TestFetcherFetchReturnsBodyAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "crawlsearch-test" {
			t.Errorf("User-Agent = %q, want %q", got, "crawlsearch-test")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello world"))
	}))
	defer srv.Close()

	f := textpipeline.NewFetcher(srv.Client(), "crawlsearch-test")
	result, err := f.Fetch(t.Context(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, want %d", result.StatusCode, http.StatusOK)
	}
	if string(result.Body) != "hello world" {
		t.Fatalf("Body = %q, want %q", result.Body, "hello world")
	}
}

func TestRedirectPolicyStopsAfterMaxHops(t *testing.T) {
	policy := textpipeline.RedirectPolicy(2)

	via := make([]*http.Request, 2)
	if err := policy(nil, via); err != textpipeline.ErrTooManyRedirects {
		t.Fatalf("policy() at hop limit = %v, want ErrTooManyRedirects", err)
	}

	if err := policy(nil, via[:1]); err != nil {
		t.Fatalf("policy() under hop limit = %v, want nil", err)
	}
}

func TestRedirectPolicyUnlimitedWhenZero(t *testing.T) {
	policy := textpipeline.RedirectPolicy(0)
	via := make([]*http.Request, 50)
	if err := policy(nil, via); err != nil {
		t.Fatalf("policy() with maxHops=0 = %v, want nil", err)
	}
}
