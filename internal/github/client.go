package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/rs/zerolog"
)

// maxReadmeSize caps how much of a README is read for classification
const maxReadmeSize = 1 << 20

// Repository is the subset of the GitHub repository object gitpilot uses
type Repository struct {
	Name          string `json:"name"`
	HTMLURL       string `json:"html_url"`
	CloneURL      string `json:"clone_url"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
	Fork          bool   `json:"fork"`
}

// Client talks to the public GitHub REST API and the raw content host
type Client struct {
	APIBase string
	RawBase string
	PerPage int
	HTTP    *http.Client
	Log     *zerolog.Logger
}

// NewClient creates a Client from configuration
func NewClient(cfg config.GitHubConfig, log *zerolog.Logger) *Client {
	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = 100
	}

	return &Client{
		APIBase: strings.TrimRight(cfg.APIBase, "/"),
		RawBase: strings.TrimRight(cfg.RawBase, "/"),
		PerPage: perPage,
		HTTP:    &http.Client{Timeout: cfg.Timeout()},
		Log:     log,
	}
}

// ListRepositories returns every public repository of username, requesting
// pages until one comes back empty. Any non-200 page aborts the listing.
func (c *Client) ListRepositories(ctx context.Context, username string) ([]Repository, error) {
	var repos []Repository

	for page := 1; ; page++ {
		pageURL := fmt.Sprintf("%s/users/%s/repos?page=%d&per_page=%d",
			c.APIBase, url.PathEscape(username), page, c.PerPage)

		batch, err := c.fetchRepoPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		c.debug().Int("page", page).Int("count", len(batch)).Msg("fetched repository page")

		if len(batch) == 0 {
			break
		}
		repos = append(repos, batch...)
	}

	return repos, nil
}

func (c *Client) fetchRepoPage(ctx context.Context, pageURL string) ([]Repository, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrListingFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w (HTTP %d)", core.ErrListingFailed, resp.StatusCode)
	}

	var batch []Repository
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", core.ErrListingFailed, err)
	}

	return batch, nil
}

// FetchReadme downloads README.md of repo at branch from the raw content host
func (c *Client) FetchReadme(ctx context.Context, username, repo, branch string) (string, error) {
	readmeURL := fmt.Sprintf("%s/%s/%s/%s/README.md",
		c.RawBase, url.PathEscape(username), url.PathEscape(repo), url.PathEscape(branch))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, readmeURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch readme: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch readme %s@%s: HTTP %d", repo, branch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReadmeSize))
	if err != nil {
		return "", fmt.Errorf("read readme: %w", err)
	}

	return string(body), nil
}

func (c *Client) debug() *zerolog.Event {
	if c.Log == nil {
		return nil
	}
	return c.Log.Debug()
}
