// Package github reads files from GitHub repositories for code-repository
// checklist questions.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/bryanwahyu/auditronaut/internal/domain/evidence"
)

var ErrInvalidRepository = errors.New("repository must be in owner/name form")

type Fetcher struct {
	client *gh.Client
}

var _ evidence.CodeRepositoryFetcher = (*Fetcher)(nil)

// New returns a fetcher authenticated with token; an empty token reaches
// public repositories only.
func New(token string, httpClient *http.Client) *Fetcher {
	c := gh.NewClient(httpClient)
	if token != "" {
		c = c.WithAuthToken(token)
	}
	return &Fetcher{client: c}
}

// WithBaseURL points the fetcher at a GitHub Enterprise or test server.
func (f *Fetcher) WithBaseURL(raw string) (*Fetcher, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	f.client.BaseURL = u
	return f, nil
}

// FetchFiles reads each path from the default branch of repository and
// joins them under labelled separators. A missing path yields a "not found"
// marker in its place; any other failure aborts with ErrSourceUnavailable.
func (f *Fetcher) FetchFiles(ctx context.Context, repository string, paths []string) (string, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(repository), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidRepository, repository)
	}

	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		text, err := f.read(ctx, owner, name, p)
		if err != nil {
			return "", err
		}
		parts = append(parts, evidence.Label(p, text))
	}
	return strings.Join(parts, "\n\n"), nil
}

func (f *Fetcher) read(ctx context.Context, owner, repo, path string) (string, error) {
	file, _, resp, err := f.client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return notFound(path), nil
		}
		return "", fmt.Errorf("%w: github %s/%s: %v", evidence.ErrSourceUnavailable, owner, repo, err)
	}
	if file == nil {
		// path is a directory
		return notFound(path), nil
	}
	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return content, nil
}

func notFound(path string) string {
	return fmt.Sprintf("Error: The file '%s' was not found in the repository.", path)
}
