// Package httpapi reads users and posts from the backend's REST API.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/orgball2608/social-detail-bot/internal/api"
	"github.com/orgball2608/social-detail-bot/internal/domain"
	"github.com/orgball2608/social-detail-bot/pkg/config"
	"github.com/orgball2608/social-detail-bot/pkg/errors"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
	"github.com/orgball2608/social-detail-bot/pkg/retry"
	"go.uber.org/fx"
)

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     logger.Logger
	retryCfg   retry.Config
}

var _ api.Client = (*Client)(nil)

func New(opts Opts) (*Client, error) {
	return NewClient(opts.Config.API.BaseURL, opts.Config.API.Token, opts.Config.API.Timeout, opts.Logger)
}

func NewClient(baseURL, token string, timeout time.Duration, log logger.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.WrapWithCode(errors.ErrInvalidInput, "", fmt.Sprintf("invalid api base url %q", baseURL))
	}

	return &Client{
		baseURL:    u,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.WithComponent("HTTPAPI"),
		retryCfg:   retry.DefaultConfig(),
	}, nil
}

// WithRetryConfig returns a copy of c using cfg for transient failures.
func (c *Client) WithRetryConfig(cfg retry.Config) *Client {
	cp := *c
	cp.retryCfg = cfg
	return &cp
}

func (c *Client) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "users", id, errors.CodeUserNotFound, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) GetPostByID(ctx context.Context, id string) (*domain.Post, error) {
	var p domain.Post
	if err := c.get(ctx, "posts", id, errors.CodePostNotFound, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// get fetches /{resource}/{id} into out. Server errors and network failures
// are retried with backoff; everything else fails at once.
func (c *Client) get(ctx context.Context, resource, id, notFoundCode string, out any) error {
	if id == "" || id == "." || id == ".." {
		return errors.WrapWithCode(errors.ErrNotFound, notFoundCode, fmt.Sprintf("%s %q", resource, id))
	}

	endpoint := c.baseURL.JoinPath(resource, url.PathEscape(id)).String()

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return retry.Permanent(errors.Wrap(err, "build request"))
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return retry.Permanent(ctx.Err())
			}
			return errors.WrapWithCode(fmt.Errorf("%w: %v", errors.ErrServiceUnavailable, err), errors.CodeTransport, "GET "+endpoint)
		}
		defer safeClose(resp.Body, c.logger)

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return retry.Permanent(errors.WrapWithCode(errors.ErrNotFound, notFoundCode, fmt.Sprintf("%s %q", resource, id)))
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return retry.Permanent(errors.WrapWithCode(errors.ErrUnauthorized, errors.CodeTransport, "GET "+endpoint))
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return errors.WrapWithCode(errors.ErrServiceUnavailable, errors.CodeTransport, fmt.Sprintf("GET %s: status %d", endpoint, resp.StatusCode))
		case resp.StatusCode != http.StatusOK:
			return retry.Permanent(errors.WrapWithCode(errors.ErrInvalidInput, errors.CodeTransport, fmt.Sprintf("GET %s: status %d", endpoint, resp.StatusCode)))
		}

		if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
			return retry.Permanent(errors.WrapWithCode(err, errors.CodeDecode, "decode "+resource))
		}
		return nil
	}

	return retry.Do(ctx, c.logger, "GET "+resource, operation, c.retryCfg)
}

func safeClose(closer io.Closer, log logger.Logger) {
	if err := closer.Close(); err != nil {
		log.Error("Failed to close response body", "error", err)
	}
}
