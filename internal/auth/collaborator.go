// Package auth mediates between the application and the external managed
// auth service. The service owns all identity and session state; this
// package only forwards credentials, mirrors state-change notifications,
// and verifies the access tokens the service issues.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// User is the transient reference to the current authenticated identity.
// The auth service is the source of truth; this is only a mirror.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	ConfirmedAt string `json:"confirmed_at,omitempty"`
}

// Session is an active session as returned by the auth service.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         *User  `json:"user"`
}

// SignUpResult distinguishes the two success shapes of a sign-up: an
// immediately active session, or a created user awaiting email
// confirmation (Session nil).
type SignUpResult struct {
	User    *User
	Session *Session
}

// Collaborator is the surface of the external auth service the bridge
// depends on. Tests substitute a fake; production uses HTTPCollaborator.
type Collaborator interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*SignUpResult, error)
	SignOut(ctx context.Context, accessToken string) error
	AuthorizeURL(provider, redirectTo string) (string, error)
	ExchangeCode(ctx context.Context, code string) (*Session, error)
}

// CollaboratorError is a failure reported by the auth service. It is
// propagated as-is; the bridge does not invent its own taxonomy on top.
type CollaboratorError struct {
	Status  int
	Message string
}

func (e *CollaboratorError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("auth service returned status %d", e.Status)
}

// HTTPCollaborator talks to a GoTrue-style managed auth service over HTTP.
type HTTPCollaborator struct {
	baseURL string
	anonKey string
	client  *http.Client
}

// NewHTTPCollaborator creates a client for the auth service at baseURL.
// The anon key is sent as both the apikey header and, where no user token
// exists yet, the bearer credential.
func NewHTTPCollaborator(baseURL, anonKey string) *HTTPCollaborator {
	return &HTTPCollaborator{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		client:  &http.Client{},
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type exchangeCodeRequest struct {
	AuthCode string `json:"auth_code"`
}

// signUpResponse covers both success shapes: autoconfirmed sign-ups return
// a full session, confirmation-required sign-ups return the bare user.
type signUpResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         *User  `json:"user"`

	ID          string `json:"id"`
	Email       string `json:"email"`
	ConfirmedAt string `json:"confirmed_at"`
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (e *errorResponse) text() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (c *HTTPCollaborator) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	err := c.postJSON(ctx, "/token?grant_type=password", credentialsRequest{Email: email, Password: password}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPCollaborator) SignUp(ctx context.Context, email, password string) (*SignUpResult, error) {
	var resp signUpResponse
	err := c.postJSON(ctx, "/signup", credentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.AccessToken != "" {
		session := &Session{
			AccessToken:  resp.AccessToken,
			TokenType:    resp.TokenType,
			RefreshToken: resp.RefreshToken,
			ExpiresIn:    resp.ExpiresIn,
			User:         resp.User,
		}
		return &SignUpResult{User: resp.User, Session: session}, nil
	}

	user := resp.User
	if user == nil {
		user = &User{ID: resp.ID, Email: resp.Email, ConfirmedAt: resp.ConfirmedAt}
	}
	return &SignUpResult{User: user}, nil
}

func (c *HTTPCollaborator) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/logout", nil)
	if err != nil {
		return fmt.Errorf("building sign-out request: %w", err)
	}
	c.setHeaders(req, accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("auth service sign-out failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}
	return nil
}

// AuthorizeURL builds the redirect target that starts the service-hosted
// OAuth flow for the given provider. The service handles the provider
// round-trip and calls back with an authorization code.
func (c *HTTPCollaborator) AuthorizeURL(provider, redirectTo string) (string, error) {
	u, err := url.Parse(c.baseURL + "/authorize")
	if err != nil {
		return "", fmt.Errorf("building authorize URL: %w", err)
	}
	q := u.Query()
	q.Set("provider", provider)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *HTTPCollaborator) ExchangeCode(ctx context.Context, code string) (*Session, error) {
	var session Session
	err := c.postJSON(ctx, "/token?grant_type=authorization_code", exchangeCodeRequest{AuthCode: code}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPCollaborator) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building auth request: %w", err)
	}
	c.setHeaders(req, "")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("auth service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding auth response: %w", err)
	}
	return nil
}

func (c *HTTPCollaborator) setHeaders(req *http.Request, accessToken string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if accessToken == "" {
		accessToken = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
}

func (c *HTTPCollaborator) decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if msg := parsed.text(); msg != "" {
			return &CollaboratorError{Status: resp.StatusCode, Message: msg}
		}
	}
	return &CollaboratorError{Status: resp.StatusCode}
}
