package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trivia-client/internal/domain"
)

// DefaultBaseURL points at the public Open Trivia DB.
const DefaultBaseURL = "https://opentdb.com"

// Open Trivia DB response codes.
const (
	CodeSuccess          = 0
	CodeNoResults        = 1
	CodeInvalidParameter = 2
	CodeTokenNotFound    = 3
	CodeTokenEmpty       = 4
	CodeRateLimit        = 5
)

// APIError reports a response the API answered with a non-zero response_code.
type APIError struct {
	Code int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trivia api: response code %d (%s)", e.Code, codeText(e.Code))
}

func codeText(code int) string {
	switch code {
	case CodeNoResults:
		return "not enough questions for the query"
	case CodeInvalidParameter:
		return "invalid parameter"
	case CodeTokenNotFound:
		return "session token not found"
	case CodeTokenEmpty:
		return "session token exhausted"
	case CodeRateLimit:
		return "rate limited"
	}
	return "unknown"
}

// Client talks to the trivia HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP lets callers supply their own *http.Client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type categoriesResponse struct {
	Categories []domain.Category `json:"trivia_categories"`
}

type questionsResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []domain.Question `json:"results"`
}

// LoadCategories returns the selectable categories in API order.
func (c *Client) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	var body categoriesResponse
	if err := c.getJSON(ctx, "/api_category.php", nil, &body); err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return body.Categories, nil
}

// FetchQuestions requests amount multiple-choice questions. A category of 0 and an empty
// difficulty are left out of the query.
func (c *Client) FetchQuestions(ctx context.Context, amount, category int, difficulty domain.Difficulty) ([]domain.Question, error) {
	query := QuestionQuery(amount, category, difficulty)

	var body questionsResponse
	if err := c.getJSON(ctx, "/api.php", query, &body); err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	if body.ResponseCode != CodeSuccess {
		return nil, fmt.Errorf("fetch questions: %w", &APIError{Code: body.ResponseCode})
	}
	return body.Results, nil
}

// QuestionQuery builds the query string for a question request.
func QuestionQuery(amount, category int, difficulty domain.Difficulty) url.Values {
	query := url.Values{}
	query.Set("amount", strconv.Itoa(amount))
	if category > 0 {
		query.Set("category", strconv.Itoa(category))
	}
	if difficulty != domain.DifficultyAny {
		query.Set("difficulty", string(difficulty))
	}
	query.Set("type", "multiple")
	return query
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
