package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(server *httptest.Server) *Client {
	return &Client{
		token:   "test-token",
		apiURL:  server.URL,
		httpCli: server.Client(),
	}
}

func TestGetPRDiff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Authorization = %q, want %q", r.Header.Get("Authorization"), "Bearer test-token")
		}
		if r.Header.Get("Accept") != "application/vnd.github.v3.diff" {
			t.Errorf("Accept = %q, want %q", r.Header.Get("Accept"), "application/vnd.github.v3.diff")
		}
		if r.URL.Path != "/repos/owner/repo/pulls/42" {
			t.Errorf("Path = %q, want %q", r.URL.Path, "/repos/owner/repo/pulls/42")
		}
		w.Write([]byte("diff --git a/file.go b/file.go\n"))
	}))
	defer server.Close()

	diff, err := testClient(server).GetPRDiff(context.Background(), "owner", "repo", 42)
	if err != nil {
		t.Fatalf("GetPRDiff error: %v", err)
	}
	if diff != "diff --git a/file.go b/file.go\n" {
		t.Errorf("diff = %q", diff)
	}
}

func TestGetPRDiff_404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	_, err := testClient(server).GetPRDiff(context.Background(), "owner", "repo", 99)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if got := err.Error(); got != "PR #99 not found in owner/repo" {
		t.Errorf("error = %q", got)
	}
}

func TestGetPRDiff_401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer server.Close()

	_, err := testClient(server).GetPRDiff(context.Background(), "owner", "repo", 1)
	if err == nil {
		t.Fatal("expected error for 401")
	}
}

func TestGetPR(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo/pulls/7" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"number":7,"title":"Rename default branch","head":{"sha":"abc123"}}`))
	}))
	defer server.Close()

	pr, err := testClient(server).GetPR(context.Background(), "owner", "repo", 7)
	if err != nil {
		t.Fatalf("GetPR error: %v", err)
	}
	if pr.HeadSHA != "abc123" {
		t.Errorf("HeadSHA = %q, want %q", pr.HeadSHA, "abc123")
	}
	if pr.Number != 7 {
		t.Errorf("Number = %d, want 7", pr.Number)
	}
}

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		url       string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"https://github.com/octocat/hello.git", "octocat", "hello", false},
		{"https://github.com/octocat/hello", "octocat", "hello", false},
		{"git@github.com:octocat/hello.git", "octocat", "hello", false},
		{"not a url", "", "", true},
	}
	for _, tt := range tests {
		owner, repo, err := ParseRemoteURL(tt.url)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRemoteURL(%q): expected error", tt.url)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRemoteURL(%q): %v", tt.url, err)
			continue
		}
		if owner != tt.wantOwner || repo != tt.wantRepo {
			t.Errorf("ParseRemoteURL(%q) = %q/%q, want %q/%q", tt.url, owner, repo, tt.wantOwner, tt.wantRepo)
		}
	}
}
