// Package client talks to the report gateway: login, report pages, and the
// bearer-token plumbing between them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tomraj007/txnportal/internal/domain/auth"
	"github.com/tomraj007/txnportal/internal/domain/report"
	xerrors "github.com/tomraj007/txnportal/internal/pkg/errors"
	"github.com/tomraj007/txnportal/internal/session"
	"go.uber.org/zap"
)

// Gateway endpoint paths, as served by cmd/gateway.
const (
	LoginPath  = "/api/gateway/usermgt/UserAccountManager/login"
	ReportPath = "/api/gateway/report/TransactionReport"
)

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the portal's HTTP client. All requests flow through the
// AuthorizedTransport so token attachment and 401 handling stay in one place.
type Client struct {
	http    *http.Client
	baseURL string
	store   *session.Store
	watcher *session.Watcher
	logger  *zap.Logger
}

// New builds a client. onUnauthorized is invoked whenever any response
// comes back 401, after the session has been cleared; callers use it to
// return to the login surface.
func New(cfg Config, store *session.Store, watcher *session.Watcher, onUnauthorized func(), logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: NewAuthorizedTransport(nil, store, onUnauthorized, logger),
		},
		baseURL: cfg.BaseURL,
		store:   store,
		watcher: watcher,
		logger:  logger,
	}
}

// Login validates and encodes the credentials, performs a single login
// attempt, and on success persists the session and arms the expiry watcher.
// On any failure the stored state is left untouched. No retries.
func (c *Client) Login(ctx context.Context, username, password string) (*auth.Session, error) {
	if err := auth.ValidateCredentials(username, password); err != nil {
		return nil, err
	}

	var loginResp auth.LoginResponse
	enc := auth.EncodeCredentials(username, password)
	if err := c.post(ctx, LoginPath, enc, &loginResp); err != nil {
		return nil, err
	}

	sess, err := auth.SessionFromLoginResponse(&loginResp)
	if err != nil {
		return nil, fmt.Errorf("malformed login response: %w", err)
	}

	if err := c.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	c.watcher.Arm(ctx, sess.ExpiryDate)

	c.logger.Info("logged in",
		zap.String("user", sess.Profile.UserName),
		zap.Time("expires", sess.ExpiryDate),
	)
	return sess, nil
}

// Logout clears the session and cancels the pending expiry callback.
func (c *Client) Logout(ctx context.Context) error {
	c.watcher.Stop()
	return c.store.Clear(ctx)
}

// FetchReport requests one report page. The bearer token rides along via
// the transport.
func (c *Client) FetchReport(ctx context.Context, req report.Request) (*report.Response, error) {
	var resp report.Response
	if err := c.post(ctx, ReportPath, report.Envelope{TransactionReportDto: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &xerrors.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return transportError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// transportError turns a non-2xx response into a TransportError, keeping
// the server's message when the body carries one.
func transportError(resp *http.Response) error {
	terr := &xerrors.TransportError{StatusCode: resp.StatusCode}
	if resp.StatusCode == http.StatusUnauthorized {
		terr.Err = xerrors.ErrSessionExpired
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return terr
	}

	var wire struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Message != "" {
		terr.Message = wire.Message
	}
	return terr
}
