package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	searchPath = "/rest/api/2/search"
	pageSize   = 100
)

// Client defines the Jira REST operations the fill run needs.
type Client interface {
	SearchOpenIssues(ctx context.Context, lookbackDays int) ([]Issue, error)
	LoggedSecondsForDay(ctx context.Context, day time.Time) (int, error)
	AddWorklog(ctx context.Context, issueKey, comment string, started time.Time, seconds int) error
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	Token      string
	UserAgent  string
	HTTPClient httpDoer

	// Warn receives per-issue worklog fetch failures, which are tolerated
	// while summing a day's logged time. Defaults to stderr.
	Warn io.Writer
}

type HTTPClient struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient httpDoer
	warn       io.Writer
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("Jira token is empty; pass --token or set jira.token in the config")
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}
	warn := cfg.Warn
	if warn == nil {
		warn = os.Stderr
	}

	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: doer,
		warn:       warn,
	}, nil
}

// Issue is one open tracker issue assigned to the current user.
type Issue struct {
	Key     string
	Summary string
}

type searchResponse struct {
	StartAt    int           `json:"startAt"`
	MaxResults int           `json:"maxResults"`
	Total      int           `json:"total"`
	Issues     []searchIssue `json:"issues"`
}

type searchIssue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
	} `json:"fields"`
}

type worklogPage struct {
	StartAt    int           `json:"startAt"`
	MaxResults int           `json:"maxResults"`
	Total      int           `json:"total"`
	Worklogs   []worklogItem `json:"worklogs"`
}

type worklogItem struct {
	Started          string `json:"started"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

// SearchOpenIssues pages through the issues assigned to the current user
// that are not done and were created within the lookback window, newest
// first.
func (c *HTTPClient) SearchOpenIssues(ctx context.Context, lookbackDays int) ([]Issue, error) {
	jql := fmt.Sprintf(
		"assignee=currentUser() AND statusCategory!=Done AND created>=-%dd ORDER BY created DESC",
		lookbackDays,
	)

	issues := make([]Issue, 0, pageSize)
	startAt := 0
	for {
		query := url.Values{}
		query.Set("jql", jql)
		query.Set("fields", "key,summary")
		query.Set("startAt", strconv.Itoa(startAt))
		query.Set("maxResults", strconv.Itoa(pageSize))

		var page searchResponse
		if err := c.doJSON(ctx, http.MethodGet, searchPath, query, nil, &page); err != nil {
			return nil, fmt.Errorf("search open issues: %w", err)
		}

		for _, item := range page.Issues {
			if item.Key == "" {
				continue
			}
			summary := strings.TrimSpace(item.Fields.Summary)
			if summary == "" {
				summary = "no summary"
			}
			issues = append(issues, Issue{Key: item.Key, Summary: summary})
		}

		if page.StartAt+page.MaxResults >= page.Total {
			break
		}
		startAt = page.StartAt + page.MaxResults
	}
	return issues, nil
}

// LoggedSecondsForDay sums the seconds the current user already logged on
// the given day: first the issues with a worklog on that day, then each
// issue's worklog pages filtered to entries started on that day. A failure
// to fetch one issue's worklog is warned and skipped; the day query itself
// failing is fatal.
func (c *HTTPClient) LoggedSecondsForDay(ctx context.Context, day time.Time) (int, error) {
	keys, err := c.fetchDayIssueKeys(ctx, day)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}

	total := 0
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		worklogs, err := c.fetchIssueWorklogs(ctx, key)
		if err != nil {
			fmt.Fprintf(c.warn, "Warning: failed to fetch worklog for %s: %v\n", key, err)
			continue
		}
		for _, item := range worklogs {
			if item.TimeSpentSeconds <= 0 || item.Started == "" {
				continue
			}
			started, err := ParseStarted(item.Started)
			if err != nil {
				continue
			}
			if started.Year() == day.Year() && started.YearDay() == day.YearDay() {
				total += item.TimeSpentSeconds
			}
		}
	}
	return total, nil
}

func (c *HTTPClient) fetchDayIssueKeys(ctx context.Context, day time.Time) ([]string, error) {
	jql := fmt.Sprintf(
		"worklogAuthor=currentUser() AND worklogDate=%q",
		day.Format("2006-01-02"),
	)

	keys := make([]string, 0, pageSize)
	startAt := 0
	for {
		query := url.Values{}
		query.Set("jql", jql)
		query.Set("fields", "key")
		query.Set("startAt", strconv.Itoa(startAt))
		query.Set("maxResults", strconv.Itoa(pageSize))

		var page searchResponse
		if err := c.doJSON(ctx, http.MethodGet, searchPath, query, nil, &page); err != nil {
			return nil, fmt.Errorf("search worklog issues for %s: %w", day.Format("2006-01-02"), err)
		}

		for _, item := range page.Issues {
			if item.Key != "" {
				keys = append(keys, item.Key)
			}
		}

		if page.StartAt+page.MaxResults >= page.Total {
			break
		}
		startAt = page.StartAt + page.MaxResults
	}
	return keys, nil
}

func (c *HTTPClient) fetchIssueWorklogs(ctx context.Context, issueKey string) ([]worklogItem, error) {
	endpoint := fmt.Sprintf("/rest/api/2/issue/%s/worklog", issueKey)

	items := make([]worklogItem, 0, pageSize)
	startAt := 0
	for {
		query := url.Values{}
		query.Set("startAt", strconv.Itoa(startAt))
		query.Set("maxResults", strconv.Itoa(pageSize))

		var page worklogPage
		if err := c.doJSON(ctx, http.MethodGet, endpoint, query, nil, &page); err != nil {
			return nil, err
		}
		items = append(items, page.Worklogs...)

		returned := page.MaxResults
		if returned == 0 {
			returned = len(page.Worklogs)
		}
		if returned == 0 || startAt+returned >= page.Total {
			break
		}
		startAt += returned
	}
	return items, nil
}

// AddWorklog posts one worklog entry on the issue.
func (c *HTTPClient) AddWorklog(ctx context.Context, issueKey, comment string, started time.Time, seconds int) error {
	endpoint := fmt.Sprintf("/rest/api/2/issue/%s/worklog", issueKey)
	payload := NewWorklogPayload(comment, started, seconds)
	if err := c.doJSON(ctx, http.MethodPost, endpoint, nil, payload, nil); err != nil {
		return fmt.Errorf("add worklog on %s: %w", issueKey, err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpointPath string, query url.Values, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	requestURL := c.baseURL + endpointPath
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request %s %s: %w", method, endpointPath, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, endpointPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf(
			"request %s %s failed with status %d: %s",
			method,
			endpointPath,
			resp.StatusCode,
			strings.TrimSpace(string(responseBody)),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response %s %s: %w", method, endpointPath, err)
	}
	return nil
}
