package wxauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ResHubApp/ResHub/app/models"
	"github.com/ResHubApp/ResHub/internal/pkg/env"
)

// Backend is the auth-backend collaborator as seen by the flow controllers.
// It owns state tokens, provider API calls and persistence; this side only
// consumes its HTTP surface.
type Backend interface {
	Start(ctx context.Context, intent Intent, returnTo string) (*StartParams, error)
	CompleteLogin(ctx context.Context, code, state string) (string, error)
	ConfirmLink(ctx context.Context, accessToken, code, state string) (*LinkRecord, error)
	LinkStatus(ctx context.Context, accessToken string) (*LinkRecord, error)
	Unlink(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*models.User, error)
}

// Client talks to the auth backend over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	validate *validator.Validate
}

func NewClientFromEnv() *Client {
	base := strings.TrimRight(env.GetEnv("BACKEND_API_URL", "http://localhost:8000"), "/")

	return &Client{
		BaseURL: base,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		validate: validator.New(),
	}
}

type startRequest struct {
	Action   string `json:"action,omitempty"`
	ReturnTo string `json:"return_to,omitempty"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type exchangeRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// Start requests provider parameters for a new flow attempt. A 403/404 means
// WeChat login is disabled on the backend and surfaces as an *APIError for
// the caller to classify.
func (c *Client) Start(ctx context.Context, intent Intent, returnTo string) (*StartParams, error) {
	body := startRequest{Action: string(intent), ReturnTo: returnTo}

	var params StartParams
	if err := c.do(ctx, http.MethodPost, "/api/v1/login/wechat/start", "", body, &params); err != nil {
		return nil, err
	}

	// The widget passes these through verbatim; refuse incomplete payloads
	// here instead of rendering a broken QR iframe.
	if err := c.validate.Struct(&params); err != nil {
		return nil, fmt.Errorf("invalid start params from backend: %w", err)
	}

	return &params, nil
}

// CompleteLogin exchanges code and state for an access token.
func (c *Client) CompleteLogin(ctx context.Context, code, state string) (string, error) {
	var tok tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/login/wechat/complete", "", exchangeRequest{Code: code, State: state}, &tok)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// ConfirmLink exchanges code and state to attach the WeChat identity to the
// authenticated account. A 409 is the already-linked conflict family.
func (c *Client) ConfirmLink(ctx context.Context, accessToken, code, state string) (*LinkRecord, error) {
	var rec LinkRecord
	err := c.do(ctx, http.MethodPost, "/api/v1/users/me/wechat/link", accessToken, exchangeRequest{Code: code, State: state}, &rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// LinkStatus returns the current link, or nil when the account has none.
func (c *Client) LinkStatus(ctx context.Context, accessToken string) (*LinkRecord, error) {
	var rec LinkRecord
	err := c.do(ctx, http.MethodGet, "/api/v1/users/me/wechat", accessToken, nil, &rec)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if rec.OpenID == "" {
		// Backend reports "not linked" as an empty body.
		return nil, nil
	}
	return &rec, nil
}

// Unlink removes the current link. The backend rejects it with 400 and a
// "cannot unlink" detail when the link is the account's only sign-in method.
func (c *Client) Unlink(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/users/me/wechat/link", accessToken, nil, nil)
}

// CurrentUser fetches the read-only copy of the authenticated account.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type errorBody struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &APIError{StatusCode: 0, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Detail != "" {
			return &APIError{StatusCode: resp.StatusCode, Detail: eb.Detail}
		}
		return &APIError{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			// Empty 2xx body, e.g. link status for an unlinked account.
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
