// Package connector posts reply activities back to the chat channel's connector service.
//
// Replies are sent to <serviceUrl>/v3/conversations/<id>/activities, where serviceUrl comes from the inbound activity.
// When app credentials are configured, requests carry a bearer token obtained with the OAuth2 client-credentials grant
// ([clientcredentials.Config]); the token is cached and refreshed by the oauth2 transport.
package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const defaultTimeout = 15 * time.Second

// Opts configures a [Client].
type Opts struct {
	AppID       string
	AppPassword string
	TokenURL    string
	Scope       string
	HTTPClient  *http.Client // base transport, also used to fetch tokens
	Logger      *log.Logger
}

// Client delivers chunks as outbound activities.
type Client struct {
	httpClient    *http.Client
	authenticated bool
	logger        *log.Logger
}

// New creates a [Client]. Without both AppID and AppPassword, requests are sent unauthenticated (local emulator mode).
func New(opts Opts) (*Client, error) {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	c := &Client{
		httpClient: opts.HTTPClient,
		logger:     shared.WithLogger(opts.Logger, "component", "connector"),
	}

	switch {
	case opts.AppID == "" && opts.AppPassword == "":
		return c, nil
	case opts.AppID == "" || opts.AppPassword == "":
		return nil, fmt.Errorf("%w: connector app_id and app_password must be set together", shared.ErrMissingCredentials)
	case opts.TokenURL == "":
		return nil, fmt.Errorf("%w: connector token_url", shared.ErrMissingConfig)
	}

	config := &clientcredentials.Config{
		ClientID:     opts.AppID,
		ClientSecret: opts.AppPassword,
		TokenURL:     opts.TokenURL,
	}
	if opts.Scope != "" {
		config.Scopes = []string{opts.Scope}
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, opts.HTTPClient)
	c.httpClient = config.Client(ctx)
	c.httpClient.Timeout = opts.HTTPClient.Timeout
	c.authenticated = true
	return c, nil
}

// NewFromConfig creates a [Client] from the connector credentials section.
func NewFromConfig(cfg shared.ConnectorConfig, logger *log.Logger) (*Client, error) {
	return New(Opts{
		AppID:       cfg.AppID,
		AppPassword: cfg.AppPassword,
		TokenURL:    cfg.TokenURL,
		Scope:       cfg.Scope,
		Logger:      logger,
	})
}

// Authenticated reports whether requests carry an OAuth2 token.
func (c *Client) Authenticated() bool {
	return c.authenticated
}

// Reply posts chunk to the conversation as one activity.
func (c *Client) Reply(ctx context.Context, conv models.Conversation, chunk models.Chunk) error {
	endpoint, err := ActivitiesURL(conv)
	if err != nil {
		return err
	}

	activity := chunk.Activity(conv)
	activity.ID = shared.GenerateID()
	activity.Timestamp = time.Now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("failed to encode activity: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", shared.ErrDelivery, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	c.logger.Debug("reply delivered", "conversation", conv.ID, "kind", chunk.Kind, "activity", activity.ID)
	return nil
}

// ActivitiesURL returns the endpoint replies to conv are posted to.
func ActivitiesURL(conv models.Conversation) (string, error) {
	if conv.ServiceURL == "" || conv.ID == "" {
		return "", fmt.Errorf("%w: conversation address needs serviceUrl and id", shared.ErrInvalidInput)
	}

	base, err := url.Parse(conv.ServiceURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("%w: bad serviceUrl %q", shared.ErrInvalidInput, conv.ServiceURL)
	}

	return strings.TrimSuffix(base.String(), "/") + "/v3/conversations/" + url.PathEscape(conv.ID) + "/activities", nil
}
