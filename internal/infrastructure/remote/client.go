// Package remote is the typed client for the remote ledger API.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"resty.dev/v3"

	"github.com/sangkips/ledgerbook/internal/config"
	"github.com/sangkips/ledgerbook/internal/domain/repository"
	"github.com/sangkips/ledgerbook/pkg/apperror"
)

// Client talks to the remote ledger API. Auth endpoints go out without a
// credential; everything else carries the cached session token.
type Client struct {
	public *resty.Client
	authed *resty.Client
	log    *zap.Logger
}

// NewClient creates a ledger API client. base may be nil, in which case
// http.DefaultTransport is used.
func NewClient(cfg *config.RemoteConfig, sessions repository.SessionRepository, base http.RoundTripper, log *zap.Logger) *Client {
	if base == nil {
		base = http.DefaultTransport
	}

	publicHTTP := &http.Client{Transport: base, Timeout: cfg.Timeout}
	// oauth2.NewClient wraps the source in a ReuseTokenSource, which would keep
	// serving a token after logout, so the transport is built directly.
	authedHTTP := &http.Client{
		Transport: &oauth2.Transport{Source: NewSessionTokenSource(sessions), Base: base},
		Timeout:   cfg.Timeout,
	}

	return &Client{
		public: newRestyClient(publicHTTP, cfg.BaseURL),
		authed: newRestyClient(authedHTTP, cfg.BaseURL),
		log:    log,
	}
}

func newRestyClient(hc *http.Client, baseURL string) *resty.Client {
	return resty.NewWithClient(hc).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
}

// call is one request/response exchange with the ledger API
type call struct {
	method     string
	path       string
	pathParams map[string]string
	body       any
	authed     bool
}

func do[T any](ctx context.Context, c *Client, op call) (T, error) {
	var zero T

	rc := c.public
	if op.authed {
		rc = c.authed
	}

	ok := &envelope[T]{}
	failed := &envelope[json.RawMessage]{}
	req := rc.R().
		SetContext(ctx).
		SetResult(ok).
		SetError(failed)
	if op.body != nil {
		req.SetBody(op.body)
	}
	if len(op.pathParams) > 0 {
		req.SetPathParams(op.pathParams)
	}

	res, err := req.Execute(op.method, op.path)
	if err != nil {
		return zero, c.transportError(op, err)
	}

	if res.IsError() {
		appErr := remoteError(res.StatusCode(), failed, op.authed)
		c.log.Debug("ledger api rejected request",
			zap.String("method", op.method),
			zap.String("path", op.path),
			zap.Int("status", res.StatusCode()),
			zap.String("message", appErr.Message),
		)
		return zero, appErr
	}
	if res.StatusCode() == http.StatusNoContent {
		return zero, nil
	}
	if !ok.Success {
		return zero, remoteError(res.StatusCode(), &envelope[json.RawMessage]{
			Message: ok.Message,
			Code:    ok.Code,
			Errors:  ok.Errors,
		}, op.authed)
	}

	return ok.Data, nil
}

// transportError keeps local session failures and cancellations as they are
// and reports everything else as the server being unreachable
func (c *Client) transportError(op call, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	c.log.Warn("ledger api unreachable",
		zap.String("method", op.method),
		zap.String("path", op.path),
		zap.Error(err),
	)
	return apperror.ErrNetwork
}
