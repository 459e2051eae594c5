package registry_test

import (
	"testing"

	"github.com/jonesrussell/crawlsearch/internal/domain"
	"github.com/jonesrussell/crawlsearch/internal/registry"
)

func TestURLRegistryGetOrCreateIsBijective(t *testing.T) {
	r := registry.NewURLRegistry()

	a := r.GetOrCreate("https://example.com/a")
	b := r.GetOrCreate("https://example.com/a")
	if a != b {
		t.Fatalf("GetOrCreate returned distinct documents for the same url")
	}

	c := r.GetOrCreate("https://example.com/b")
	if a.URLID == c.URLID {
		t.Fatalf("distinct urls got the same urlId")
	}

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
}

func TestURLRegistryLookupAndByID(t *testing.T) {
	r := registry.NewURLRegistry()
	doc := r.GetOrCreate("https://example.com")

	got, ok := r.Lookup("https://example.com")
	if !ok || got.URLID != doc.URLID {
		t.Fatalf("Lookup() = %v, %v; want %v, true", got, ok, doc)
	}

	got, ok = r.ByID(doc.URLID)
	if !ok || got.URL != doc.URL {
		t.Fatalf("ByID() = %v, %v; want %v, true", got, ok, doc)
	}

	if _, ok := r.Lookup("https://unknown.example"); ok {
		t.Fatalf("Lookup() found an unregistered url")
	}
}

func TestURLRegistryMarkFetched(t *testing.T) {
	r := registry.NewURLRegistry()
	doc := r.GetOrCreate("https://example.com")

	if doc.Fetched {
		t.Fatalf("new document should start unfetched")
	}

	r.MarkFetched(doc)
	if !doc.Fetched {
		t.Fatalf("MarkFetched did not set Fetched")
	}
}

func TestURLRegistryRestorePreservesID(t *testing.T) {
	r := registry.NewURLRegistry()
	doc := &domain.Document{URLID: "fixed-id", URL: "https://example.com"}

	r.Restore(doc)

	got, ok := r.ByID("fixed-id")
	if !ok || got.URL != doc.URL {
		t.Fatalf("Restore did not register by its original urlId")
	}

	again := r.GetOrCreate("https://example.com")
	if again.URLID != "fixed-id" {
		t.Fatalf("GetOrCreate minted a new id for a restored url")
	}
}
