package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v68/github"
)

// Issue is a created GitHub issue.
type Issue struct {
	Number  int
	HTMLURL string
}

// ErrIssuesDisabled is returned by CreateIssue when the target repository has
// issues disabled (the API answers 410 Gone).
var ErrIssuesDisabled = errors.New("issues are disabled for this repository")

// Client is a typed GitHub API client wrapping go-github.
type Client struct {
	gh *gh.Client
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	baseURL string
}

// WithBaseURL overrides the GitHub API base URL (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *clientConfig) { c.baseURL = url }
}

// New creates a new GitHub API client authenticating with the given personal
// access token. An empty token yields an unauthenticated client.
func New(token string, opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if cfg.baseURL != "" {
		client, _ = client.WithEnterpriseURLs(cfg.baseURL, cfg.baseURL)
	}

	return &Client{gh: client}
}

// RepositoryExists reports whether the repository exists and is visible to
// the client.
func (c *Client) RepositoryExists(ctx context.Context, owner, name string) (bool, error) {
	_, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("checking repository %s/%s: %w", owner, name, err)
	}
	return true, nil
}

// CreateIssue creates an issue on the repository and returns its number and
// URL. A repository with issues disabled yields ErrIssuesDisabled.
func (c *Client) CreateIssue(ctx context.Context, owner, name, title, body string) (Issue, error) {
	issue, resp, err := c.gh.Issues.Create(ctx, owner, name, &gh.IssueRequest{
		Title: gh.Ptr(title),
		Body:  gh.Ptr(body),
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusGone {
			return Issue{}, ErrIssuesDisabled
		}
		return Issue{}, fmt.Errorf("creating issue %q on %s/%s: %w", title, owner, name, err)
	}
	return Issue{
		Number:  issue.GetNumber(),
		HTMLURL: issue.GetHTMLURL(),
	}, nil
}
