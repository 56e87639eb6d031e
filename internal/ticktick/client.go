package ticktick

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// DefaultBaseURL is the TickTick Open API base URL.
const DefaultBaseURL = "https://api.ticktick.com/open/v1"

// EnvAccessToken is the environment variable that overrides the stored token.
const EnvAccessToken = "TICKTICK_ACCESS_TOKEN"

const (
	authURL  = "https://ticktick.com/oauth/authorize"
	tokenURL = "https://ticktick.com/oauth/token"

	defaultTimeout = 30 * time.Second
)

// OAuthConfig returns the oauth2 configuration for the TickTick
// authorization server. The redirect URL must match the one registered
// with the TickTick developer application.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	if redirectURL == "" {
		redirectURL = "http://localhost:8000/callback"
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"tasks:read", "tasks:write"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
	}
}

// tokenFilePath returns the path of the stored OAuth token.
func tokenFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config dir: %w", err)
	}
	return filepath.Join(dir, "ticktick-mcp", "token.json"), nil
}

// LoadToken reads the stored OAuth token from the user config dir.
func LoadToken() (*oauth2.Token, error) {
	path, err := tokenFilePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", path, err)
	}
	return &tok, nil
}

// SaveToken writes the OAuth token to the user config dir with
// owner-only permissions.
func SaveToken(tok *oauth2.Token) error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// resolveToken returns the access token from the environment or the
// stored token file. Empty string means no credentials are available.
func resolveToken() string {
	if tok := os.Getenv(EnvAccessToken); tok != "" {
		return tok
	}
	if tok, err := LoadToken(); err == nil && tok.AccessToken != "" {
		return tok.AccessToken
	}
	return ""
}

// HasToken reports whether an access token is available from any source.
func HasToken() bool {
	return resolveToken() != ""
}

// Config holds the options for constructing a Client. The zero value
// resolves the token from the environment/token file and talks to the
// production API.
type Config struct {
	// AccessToken overrides environment and token-file resolution.
	AccessToken string

	// BaseURL overrides the API base URL (tests point this at httptest).
	BaseURL string

	// HTTPClient overrides the HTTP client. When nil, an oauth2 client
	// carrying the bearer token is used.
	HTTPClient *http.Client
}

// Client talks to the TickTick Open API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a TickTick API client. It returns an error when no
// access token can be resolved; callers surface that as the fixed
// credentials message rather than retrying.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		token := cfg.AccessToken
		if token == "" {
			token = resolveToken()
		}
		if token == "" {
			return nil, fmt.Errorf("no TickTick access token found; set %s or run 'ticktick-mcp auth'", EnvAccessToken)
		}
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, src)
		httpClient.Timeout = defaultTimeout
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// apiError is the error payload some endpoints return on failure.
type apiError struct {
	ErrorID      string `json:"errorId"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// do performs an API request and decodes the JSON response into out
// (when out is non-nil). Non-2xx responses become errors carrying the
// status and whatever error detail the API provided.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.ErrorMessage != "" {
			return fmt.Errorf("API error %d: %s", resp.StatusCode, apiErr.ErrorMessage)
		}
		detail := strings.TrimSpace(string(data))
		if detail == "" {
			return fmt.Errorf("API error %d", resp.StatusCode)
		}
		return fmt.Errorf("API error %d: %s", resp.StatusCode, detail)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// ListProjects lists all projects for the authenticated user.
// The synthetic inbox project is not included; callers inject it.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/project", nil, &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a single project by ID.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodGet, "/project/"+projectID, nil, &project); err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// GetProjectData retrieves a project together with its tasks and columns.
func (c *Client) GetProjectData(ctx context.Context, projectID string) (*ProjectData, error) {
	var data ProjectData
	if err := c.do(ctx, http.MethodGet, "/project/"+projectID+"/data", nil, &data); err != nil {
		return nil, fmt.Errorf("failed to get project data: %w", err)
	}
	return &data, nil
}

// GetTask retrieves a single task.
func (c *Client) GetTask(ctx context.Context, projectID, taskID string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, "/project/"+projectID+"/task/"+taskID, nil, &task); err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/task", input, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// UpdateTask updates an existing task. The API requires the task ID
// both in the path and in the body.
func (c *Client) UpdateTask(ctx context.Context, taskID string, input TaskInput) (*Task, error) {
	payload := struct {
		ID string `json:"id"`
		TaskInput
	}{ID: taskID, TaskInput: input}

	var task Task
	if err := c.do(ctx, http.MethodPost, "/task/"+taskID, payload, &task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return &task, nil
}

// CompleteTask marks a task as completed.
func (c *Client) CompleteTask(ctx context.Context, projectID, taskID string) error {
	if err := c.do(ctx, http.MethodPost, "/project/"+projectID+"/task/"+taskID+"/complete", nil, nil); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	return nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, projectID, taskID string) error {
	if err := c.do(ctx, http.MethodDelete, "/project/"+projectID+"/task/"+taskID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, name, color, viewMode string) (*Project, error) {
	payload := struct {
		Name     string `json:"name"`
		Color    string `json:"color,omitempty"`
		ViewMode string `json:"viewMode,omitempty"`
	}{Name: name, Color: color, ViewMode: viewMode}

	var project Project
	if err := c.do(ctx, http.MethodPost, "/project", payload, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	if err := c.do(ctx, http.MethodDelete, "/project/"+projectID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
