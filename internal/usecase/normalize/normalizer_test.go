package normalize

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/assessrec/internal/domain"
	"github.com/kailas-cloud/assessrec/internal/metrics"
)

type mockFetcher struct {
	bodies map[string]string
	calls  []string
}

func (m *mockFetcher) Fetch(_ context.Context, url string) (string, error) {
	m.calls = append(m.calls, url)
	body, ok := m.bodies[url]
	if !ok {
		return "", domain.ErrFetchFailed
	}
	return body, nil
}

func TestNormalize_NoURLs(t *testing.T) {
	f := &mockFetcher{}
	text, urls := New(f, nil).Normalize(context.Background(), "Java developer, 40 minutes")

	if text != "Java developer, 40 minutes" {
		t.Errorf("text = %q", text)
	}
	if len(urls) != 0 || len(f.calls) != 0 {
		t.Errorf("urls = %v, calls = %v", urls, f.calls)
	}
}

func TestNormalize_FetchFailureUsesPlaceholder(t *testing.T) {
	before := testutil.ToFloat64(metrics.URLFetchTotal.WithLabelValues("error"))

	text, urls := New(&mockFetcher{}, nil).Normalize(context.Background(), `See "https://example.com/jd" please`)

	if text != "See URL Content: Could not fetch content please" {
		t.Errorf("text = %q", text)
	}
	if len(urls) != 1 || urls[0] != "https://example.com/jd" {
		t.Errorf("urls = %v", urls)
	}
	if got := testutil.ToFloat64(metrics.URLFetchTotal.WithLabelValues("error")) - before; got != 1 {
		t.Errorf("error fetches counted = %v, want 1", got)
	}
}

func TestNormalize_InlinesBodiesInOrder(t *testing.T) {
	f := &mockFetcher{bodies: map[string]string{
		"https://a.example/jd": "Python role",
		"http://b.example/x":   "SQL role",
	}}

	text, urls := New(f, nil).Normalize(context.Background(),
		`first "https://a.example/jd" then "http://b.example/x" and "https://a.example/jd" again`)

	want := "first URL Content: Python role then URL Content: SQL role and URL Content: Python role again"
	if text != want {
		t.Errorf("text = %q\nwant  %q", text, want)
	}
	wantURLs := []string{"https://a.example/jd", "http://b.example/x", "https://a.example/jd"}
	if len(urls) != len(wantURLs) {
		t.Fatalf("urls = %v", urls)
	}
	for i := range wantURLs {
		if urls[i] != wantURLs[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], wantURLs[i])
		}
	}
	// дубликаты скачиваются для каждого вхождения
	if len(f.calls) != 3 {
		t.Errorf("fetch calls = %d, want 3", len(f.calls))
	}
}

func TestNormalize_EmptyBodyUsesPlaceholder(t *testing.T) {
	f := &mockFetcher{bodies: map[string]string{"https://empty.example": ""}}

	text, _ := New(f, nil).Normalize(context.Background(), `"https://empty.example"`)
	if text != "URL Content: Could not fetch content" {
		t.Errorf("text = %q", text)
	}
}

func TestNormalize_IgnoresUnquotedAndNonHTTP(t *testing.T) {
	f := &mockFetcher{}
	in := `https://bare.example "ftp://files.example" "not a url"`

	text, urls := New(f, nil).Normalize(context.Background(), in)
	if text != in || len(urls) != 0 || len(f.calls) != 0 {
		t.Errorf("text = %q, urls = %v, calls = %v", text, urls, f.calls)
	}
}

func TestNormalize_FetcherErrorTypesDoNotLeak(t *testing.T) {
	f := fetcherFunc(func(context.Context, string) (string, error) {
		return "", errors.New("dial tcp: i/o timeout")
	})
	text, _ := New(f, nil).Normalize(context.Background(), `"https://slow.example"`)
	if text != "URL Content: Could not fetch content" {
		t.Errorf("text = %q", text)
	}
}

type fetcherFunc func(ctx context.Context, url string) (string, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) (string, error) { return f(ctx, url) }
